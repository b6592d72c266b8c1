package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newQuestService(t *testing.T) (*QuestService, *gorm.DB, *model.User) {
	t.Helper()
	db := newTestDB(t)
	svc := NewQuestService(
		repository.NewQuestRepository(db),
		repository.NewStreakRepository(db),
		repository.NewUserRepository(db),
		nil, // redis 缺席走数据库兜底
	)
	user := createTestUser(t, db, "quest_user")
	return svc, db, user
}

func insertQuest(t *testing.T, db *gorm.DB, userID uint, date string, category model.QuestCategory, points, total int) *model.DailyQuest {
	t.Helper()
	quest := &model.DailyQuest{
		UserID:    userID,
		QuestDate: date,
		Code:      string(category) + "-fixture",
		Title:     "fixture",
		Type:      model.QuestDaily,
		Category:  category,
		Points:    points,
		Total:     total,
	}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("插入任务失败: %v", err)
	}
	return quest
}

func insertStreak(t *testing.T, db *gorm.DB, userID uint, typ model.QuestCategory, count int, lastActive time.Time) {
	t.Helper()
	streak := &model.Streak{
		UserID:     userID,
		Type:       typ,
		Count:      count,
		Best:       count,
		Multiplier: count/7 + 1,
		LastActive: lastActive,
	}
	if err := db.Create(streak).Error; err != nil {
		t.Fatalf("插入连击记录失败: %v", err)
	}
}

func setFreezes(t *testing.T, db *gorm.DB, userID uint, n int) {
	t.Helper()
	if err := db.Model(&model.User{}).Where("id = ?", userID).Update("freezes_left", n).Error; err != nil {
		t.Fatalf("设置冻结符失败: %v", err)
	}
}

var questNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestGetTodayQuests(t *testing.T) {
	svc, db, user := newQuestService(t)

	templates := []model.QuestTemplate{
		{Code: "coding-session", Title: "编程一小时", Type: model.QuestDaily, Category: model.CategoryCoding, Points: 50, Total: 1, Enabled: true},
		{Code: "learning-note", Title: "记一条笔记", Type: model.QuestDaily, Category: model.CategoryLearning, Points: 20, Total: 1, Enabled: true},
		{Code: "retired", Title: "已下线", Type: model.QuestDaily, Category: model.CategoryCoding, Points: 10, Total: 1, Enabled: false},
	}
	if err := db.Create(&templates).Error; err != nil {
		t.Fatalf("写入模板失败: %v", err)
	}

	quests, err := svc.GetTodayQuests(user.ID, questNow)
	if err != nil {
		t.Fatalf("GetTodayQuests: %v", err)
	}
	if len(quests) != 2 {
		t.Fatalf("quest count = %d, want 2（下线模板不生成）", len(quests))
	}
	if quests[0].Code != "coding-session" || quests[0].Points != 50 {
		t.Errorf("quest[0] = %s/%d", quests[0].Code, quests[0].Points)
	}
	if quests[0].QuestDate != "2026-03-10" {
		t.Errorf("questDate = %q", quests[0].QuestDate)
	}

	// 第二次访问不重复生成
	again, err := svc.GetTodayQuests(user.ID, questNow)
	if err != nil {
		t.Fatalf("GetTodayQuests 第二次: %v", err)
	}
	if len(again) != 2 || again[0].ID != quests[0].ID {
		t.Errorf("重复访问生成了新任务")
	}
}

func TestCompleteQuestCombo(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()
	date := questNow.Format(util.DateFormat)

	coding := insertQuest(t, db, user.ID, date, model.CategoryCoding, 50, 1)
	learning := insertQuest(t, db, user.ID, date, model.CategoryLearning, 20, 1)
	community := insertQuest(t, db, user.ID, date, model.CategoryCommunity, 30, 1)
	mentoring := insertQuest(t, db, user.ID, date, model.CategoryMentoring, 40, 1)

	res, err := svc.CompleteQuest(ctx, user.ID, coding.ID, questNow)
	if err != nil {
		t.Fatalf("第一次完成: %v", err)
	}
	if res.ComboMultiplier != 1 || res.PointsAwarded != 50 {
		t.Errorf("combo/points = %d/%d, want 1/50", res.ComboMultiplier, res.PointsAwarded)
	}
	if !res.Quest.Completed || res.Quest.CompletedAt == nil {
		t.Errorf("任务未标记完成")
	}

	res, err = svc.CompleteQuest(ctx, user.ID, learning.ID, questNow)
	if err != nil {
		t.Fatalf("第二次完成: %v", err)
	}
	if res.ComboMultiplier != 2 || res.PointsAwarded != 40 {
		t.Errorf("combo/points = %d/%d, want 2/40", res.ComboMultiplier, res.PointsAwarded)
	}

	res, err = svc.CompleteQuest(ctx, user.ID, community.ID, questNow)
	if err != nil {
		t.Fatalf("第三次完成: %v", err)
	}
	if res.ComboMultiplier != 5 || res.PointsAwarded != 150 {
		t.Errorf("combo/points = %d/%d, want 5/150", res.ComboMultiplier, res.PointsAwarded)
	}

	// 三类之后继续封顶在 5 档
	res, err = svc.CompleteQuest(ctx, user.ID, mentoring.ID, questNow)
	if err != nil {
		t.Fatalf("第四次完成: %v", err)
	}
	if res.ComboMultiplier != 5 || res.PointsAwarded != 200 {
		t.Errorf("combo/points = %d/%d, want 5/200", res.ComboMultiplier, res.PointsAwarded)
	}

	var got model.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("查用户: %v", err)
	}
	if want := 50 + 40 + 150 + 200; got.Points != want {
		t.Errorf("累计积分 = %d, want %d", got.Points, want)
	}
}

func TestCompleteQuestErrors(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()
	date := questNow.Format(util.DateFormat)

	t.Run("quest not found", func(t *testing.T) {
		_, err := svc.CompleteQuest(ctx, user.ID, 9999, questNow)
		if !errors.Is(err, util.ErrQuestNotFound) {
			t.Errorf("err = %v, want ErrQuestNotFound", err)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		other := createTestUser(t, db, "other_user")
		quest := insertQuest(t, db, other.ID, date, model.CategoryCoding, 50, 1)
		_, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
		if !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("already done", func(t *testing.T) {
		quest := insertQuest(t, db, user.ID, date, model.CategoryLearning, 20, 1)
		if _, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow); err != nil {
			t.Fatalf("首次完成: %v", err)
		}
		_, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
		if !errors.Is(err, util.ErrQuestAlreadyDone) {
			t.Errorf("err = %v, want ErrQuestAlreadyDone", err)
		}
	})
}

func TestCompleteQuestPartialProgress(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()
	quest := insertQuest(t, db, user.ID, questNow.Format(util.DateFormat), model.CategoryCoding, 60, 2)

	res, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
	if err != nil {
		t.Fatalf("推进进度: %v", err)
	}
	if res.Quest.Completed || res.Quest.Progress != 1 {
		t.Errorf("进度 = %d/completed=%v, want 1/false", res.Quest.Progress, res.Quest.Completed)
	}
	if res.PointsAwarded != 0 || len(res.Streaks) != 0 {
		t.Errorf("未达成不应结算积分或连击")
	}

	res, err = svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
	if err != nil {
		t.Fatalf("最后一步: %v", err)
	}
	if !res.Quest.Completed || res.PointsAwarded != 60 {
		t.Errorf("达成结算 = completed=%v/points=%d", res.Quest.Completed, res.PointsAwarded)
	}
	if len(res.Streaks) != 2 {
		t.Errorf("streak count = %d, want 2（类别 + overall）", len(res.Streaks))
	}
}

func TestStreakProgression(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()

	day1 := questNow
	day2 := questNow.AddDate(0, 0, 1)

	q1 := insertQuest(t, db, user.ID, day1.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err := svc.CompleteQuest(ctx, user.ID, q1.ID, day1)
	if err != nil {
		t.Fatalf("day1: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Count != 1 || s.Best != 1 || s.Multiplier != 1 {
			t.Errorf("day1 streak %s = %d/%d/x%d, want 1/1/x1", s.Type, s.Count, s.Best, s.Multiplier)
		}
	}

	// 同日再完成一个同类任务不重复累计
	q1b := insertQuest(t, db, user.ID, day1.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err = svc.CompleteQuest(ctx, user.ID, q1b.ID, day1)
	if err != nil {
		t.Fatalf("day1 second: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Count != 1 {
			t.Errorf("同日重复完成把 %s 连击推到了 %d", s.Type, s.Count)
		}
	}

	q2 := insertQuest(t, db, user.ID, day2.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err = svc.CompleteQuest(ctx, user.ID, q2.ID, day2)
	if err != nil {
		t.Fatalf("day2: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Count != 2 || s.Best != 2 {
			t.Errorf("day2 streak %s = %d/%d, want 2/2", s.Type, s.Count, s.Best)
		}
	}
}

func TestStreakFreezeBridgesOneDayHole(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()

	twoDaysAgo := questNow.AddDate(0, 0, -2)
	insertStreak(t, db, user.ID, model.CategoryCoding, 5, twoDaysAgo)
	insertStreak(t, db, user.ID, model.CategoryOverall, 5, twoDaysAgo)
	setFreezes(t, db, user.ID, 1)

	quest := insertQuest(t, db, user.ID, questNow.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Count != 6 {
			t.Errorf("冻结符未保住 %s 连击: count = %d, want 6", s.Type, s.Count)
		}
	}

	// 两条连击共用同一枚冻结符
	var got model.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("查用户: %v", err)
	}
	if got.FreezesLeft != 0 {
		t.Errorf("freezesLeft = %d, want 0（只消耗一枚）", got.FreezesLeft)
	}
}

func TestStreakResetsWithoutFreeze(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()

	insertStreak(t, db, user.ID, model.CategoryCoding, 5, questNow.AddDate(0, 0, -2))
	setFreezes(t, db, user.ID, 0)

	quest := insertQuest(t, db, user.ID, questNow.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Type == model.CategoryCoding {
			if s.Count != 1 {
				t.Errorf("count = %d, want 1（归零重新起算）", s.Count)
			}
			if s.Best != 5 {
				t.Errorf("best = %d, want 5（历史最佳不回退）", s.Best)
			}
		}
	}
}

func TestStreakHoleBeyondFreeze(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()

	// 空洞两天，冻结符救不回来，也不该被消耗
	insertStreak(t, db, user.ID, model.CategoryCoding, 9, questNow.AddDate(0, 0, -3))
	setFreezes(t, db, user.ID, 3)

	quest := insertQuest(t, db, user.ID, questNow.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Type == model.CategoryCoding && s.Count != 1 {
			t.Errorf("count = %d, want 1", s.Count)
		}
	}

	var got model.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("查用户: %v", err)
	}
	if got.FreezesLeft != 3 {
		t.Errorf("freezesLeft = %d, want 3（不应消耗）", got.FreezesLeft)
	}
}

func TestStreakMultiplierStepsAtSeven(t *testing.T) {
	svc, db, user := newQuestService(t)
	ctx := context.Background()

	insertStreak(t, db, user.ID, model.CategoryCoding, 6, questNow.AddDate(0, 0, -1))

	quest := insertQuest(t, db, user.ID, questNow.Format(util.DateFormat), model.CategoryCoding, 50, 1)
	res, err := svc.CompleteQuest(ctx, user.ID, quest.ID, questNow)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	for _, s := range res.Streaks {
		if s.Type == model.CategoryCoding {
			if s.Count != 7 || s.Multiplier != 2 {
				t.Errorf("streak = %d/x%d, want 7/x2", s.Count, s.Multiplier)
			}
		}
	}
}

func TestUseFreeze(t *testing.T) {
	svc, db, user := newQuestService(t)

	yesterday := questNow.AddDate(0, 0, -1)
	insertStreak(t, db, user.ID, model.CategoryCoding, 4, yesterday)
	insertStreak(t, db, user.ID, model.CategoryOverall, 4, yesterday)
	insertStreak(t, db, user.ID, model.CategoryLearning, 0, time.Time{})
	setFreezes(t, db, user.ID, 1)

	if err := svc.UseFreeze(user.ID, questNow); err != nil {
		t.Fatalf("UseFreeze: %v", err)
	}

	streaks, err := svc.GetStreaks(user.ID)
	if err != nil {
		t.Fatalf("GetStreaks: %v", err)
	}
	for _, s := range streaks {
		if s.Count == 0 {
			continue
		}
		if !s.LastActive.Equal(questNow) {
			t.Errorf("%s lastActive = %v, want %v", s.Type, s.LastActive, questNow)
		}
	}

	if err := svc.UseFreeze(user.ID, questNow); !errors.Is(err, util.ErrNoFreezesLeft) {
		t.Errorf("err = %v, want ErrNoFreezesLeft", err)
	}
}

func TestSweepStaleStreaks(t *testing.T) {
	svc, db, user := newQuestService(t)

	insertStreak(t, db, user.ID, model.CategoryCoding, 8, questNow.AddDate(0, 0, -3))    // 空洞超限，清零
	insertStreak(t, db, user.ID, model.CategoryLearning, 5, questNow.AddDate(0, 0, -1)) // 正常
	insertStreak(t, db, user.ID, model.CategoryOverall, 5, questNow.AddDate(0, 0, -2))  // 恰好可被冻结符救，留给完成时处理

	if err := svc.SweepStaleStreaks(questNow); err != nil {
		t.Fatalf("SweepStaleStreaks: %v", err)
	}

	streaks, err := svc.GetStreaks(user.ID)
	if err != nil {
		t.Fatalf("GetStreaks: %v", err)
	}
	for _, s := range streaks {
		switch s.Type {
		case model.CategoryCoding:
			if s.Count != 0 || s.Multiplier != 1 {
				t.Errorf("coding = %d/x%d, want 0/x1", s.Count, s.Multiplier)
			}
			if s.Best != 8 {
				t.Errorf("coding best = %d, want 8", s.Best)
			}
		case model.CategoryLearning:
			if s.Count != 5 {
				t.Errorf("learning = %d, want 5", s.Count)
			}
		case model.CategoryOverall:
			if s.Count != 5 {
				t.Errorf("overall = %d, want 5（一天空洞不清零）", s.Count)
			}
		}
	}
}

func TestLeaderboardFallsBackToDatabase(t *testing.T) {
	svc, db, _ := newQuestService(t)

	for _, u := range []struct {
		name   string
		points int
	}{
		{"bronze", 100},
		{"gold", 900},
		{"silver", 500},
	} {
		user := createTestUser(t, db, u.name)
		if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("points", u.points).Error; err != nil {
			t.Fatalf("设置积分失败: %v", err)
		}
	}

	users, err := svc.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("size = %d, want 2", len(users))
	}
	if users[0].Name != "gold" || users[1].Name != "silver" {
		t.Errorf("排名 = %s, %s", users[0].Name, users[1].Name)
	}
}

func TestComboMultiplier(t *testing.T) {
	tests := []struct {
		categories int64
		want       int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 5},
		{4, 5},
	}
	for _, tt := range tests {
		if got := comboMultiplier(tt.categories); got != tt.want {
			t.Errorf("comboMultiplier(%d) = %d, want %d", tt.categories, got, tt.want)
		}
	}
}
