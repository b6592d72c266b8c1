package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"career_guide_backend/pkg/logger"
	"career_guide_backend/pkg/monitoring"
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardKey = "leaderboard:points"

// 连击重置清理的宽限：空洞超过一天的连击冻结符也救不回来
const sweepGraceDays = 2

type QuestService struct {
	QuestRepo  *repository.QuestRepository
	StreakRepo *repository.StreakRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
}

func NewQuestService(questRepo *repository.QuestRepository, streakRepo *repository.StreakRepository, userRepo *repository.UserRepository, rdb *redis.Client) *QuestService {
	return &QuestService{QuestRepo: questRepo, StreakRepo: streakRepo, UserRepo: userRepo, Redis: rdb}
}

// GetTodayQuests 返回用户当日任务，首次访问时按模板生成
func (s *QuestService) GetTodayQuests(userID uint, now time.Time) ([]model.DailyQuest, error) {
	date := now.Format(util.DateFormat)

	quests, err := s.QuestRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if len(quests) > 0 {
		return quests, nil
	}

	templates, err := s.QuestRepo.EnabledTemplates()
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return []model.DailyQuest{}, nil
	}

	quests = make([]model.DailyQuest, 0, len(templates))
	for _, t := range templates {
		quests = append(quests, model.DailyQuest{
			UserID:      userID,
			QuestDate:   date,
			Code:        t.Code,
			Title:       t.Title,
			Description: t.Description,
			Type:        t.Type,
			Category:    t.Category,
			Points:      t.Points,
			Total:       t.Total,
		})
	}
	if err := s.QuestRepo.CreateBatch(quests); err != nil {
		// 并发首访可能撞唯一键，重查当日记录兜底
		existing, ferr := s.QuestRepo.FindByUserAndDate(userID, date)
		if ferr == nil && len(existing) > 0 {
			return existing, nil
		}
		return nil, err
	}
	return quests, nil
}

// CompleteResult 完成任务后的结算明细
type CompleteResult struct {
	Quest           model.DailyQuest `json:"quest"`
	ComboMultiplier int              `json:"comboMultiplier"`
	PointsAwarded   int              `json:"pointsAwarded"`
	Streaks         []model.Streak   `json:"streaks"`
}

// CompleteQuest 推进任务进度。完成状态只进不退：已完成的任务重复提交直接报错。
// 积分、连击与排行榜仅在本次提交使任务首次达成时结算，
// 连击加成按当日已完成类别数取 1/2/5 档，只作用于本次达成的任务。
func (s *QuestService) CompleteQuest(ctx context.Context, userID, questID uint, now time.Time) (*CompleteResult, error) {
	quest, err := s.QuestRepo.FindByID(questID)
	if err != nil {
		return nil, util.ErrQuestNotFound
	}
	if quest.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if quest.Completed {
		return nil, util.ErrQuestAlreadyDone
	}

	quest.Progress++
	if quest.Progress < quest.Total {
		if err := s.QuestRepo.Update(quest); err != nil {
			return nil, err
		}
		return &CompleteResult{Quest: *quest, ComboMultiplier: 1}, nil
	}

	quest.Progress = quest.Total
	quest.Completed = true
	completedAt := now
	quest.CompletedAt = &completedAt
	if err := s.QuestRepo.Update(quest); err != nil {
		return nil, err
	}

	categories, err := s.QuestRepo.DistinctCompletedCategories(userID, quest.QuestDate)
	if err != nil {
		return nil, err
	}
	combo := comboMultiplier(categories)
	awarded := quest.Points * combo

	if err := s.UserRepo.AddPoints(userID, awarded); err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := s.Redis.ZIncrBy(ctx, leaderboardKey, float64(awarded), strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
			logger.Log.Warn("排行榜更新失败", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	// 同一次结算最多消耗一枚冻结符，类别和总连击共用
	freezeUsed := false
	consumeFreeze := func() bool {
		if freezeUsed {
			return true
		}
		ok, cerr := s.UserRepo.ConsumeFreeze(userID)
		if cerr != nil {
			logger.Log.Warn("冻结符扣减失败", zap.Uint("user_id", userID), zap.Error(cerr))
			return false
		}
		freezeUsed = ok
		return ok
	}

	streaks := make([]model.Streak, 0, 2)
	for _, typ := range []model.QuestCategory{quest.Category, model.CategoryOverall} {
		streak, serr := s.touchStreak(userID, typ, now, consumeFreeze)
		if serr != nil {
			return nil, serr
		}
		streaks = append(streaks, *streak)
	}

	monitoring.QuestCompletions.WithLabelValues(string(quest.Category)).Inc()

	return &CompleteResult{
		Quest:           *quest,
		ComboMultiplier: combo,
		PointsAwarded:   awarded,
		Streaks:         streaks,
	}, nil
}

// touchStreak 按日历日推进连击：
// 当天已计过不重复计；隔一天正常 +1；空洞恰好一天且冻结符可用时
// 保住计数继续 +1，否则归零后从 1 重新起算。Best 单调不减。
func (s *QuestService) touchStreak(userID uint, typ model.QuestCategory, now time.Time, consumeFreeze func() bool) (*model.Streak, error) {
	streak, err := s.StreakRepo.FindOrInit(userID, typ)
	if err != nil {
		return nil, err
	}

	switch {
	case streak.LastActive.IsZero():
		streak.Count = 1
	default:
		elapsed := dayDiff(streak.LastActive, now)
		switch {
		case elapsed <= 0:
			// 当天已经计过
		case elapsed == 1:
			streak.Count++
		case elapsed == 2 && consumeFreeze():
			streak.Count++
		default:
			streak.Count = 1
		}
	}

	if streak.Count > streak.Best {
		streak.Best = streak.Count
	}
	streak.Multiplier = streak.Count/7 + 1
	streak.LastActive = now

	if err := s.StreakRepo.Save(streak); err != nil {
		return nil, err
	}
	return streak, nil
}

// GetStreaks 返回用户全部连击记录
func (s *QuestService) GetStreaks(userID uint) ([]model.Streak, error) {
	return s.StreakRepo.FindByUserID(userID)
}

// UseFreeze 手动消耗一枚冻结符，把所有活跃连击的最后活跃时间顶到今天，
// 用于用户预知当天无法完成任务时提前保护连击
func (s *QuestService) UseFreeze(userID uint, now time.Time) error {
	ok, err := s.UserRepo.ConsumeFreeze(userID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNoFreezesLeft
	}

	streaks, err := s.StreakRepo.FindByUserID(userID)
	if err != nil {
		return err
	}
	for i := range streaks {
		if streaks[i].Count == 0 {
			continue
		}
		streaks[i].LastActive = now
		if err := s.StreakRepo.Save(&streaks[i]); err != nil {
			return err
		}
	}
	return nil
}

// SweepStaleStreaks 夜间清理：空洞已超出冻结符能救的范围（两天以上）的连击归零。
// 恰好一天的空洞留给下次完成时的冻结符逻辑处理。
func (s *QuestService) SweepStaleStreaks(now time.Time) error {
	cutoff := startOfDay(now).AddDate(0, 0, -sweepGraceDays)
	stale, err := s.StreakRepo.FindStale(cutoff.Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}
	for i := range stale {
		stale[i].Count = 0
		stale[i].Multiplier = 1
		if err := s.StreakRepo.Save(&stale[i]); err != nil {
			return err
		}
	}
	if len(stale) > 0 {
		logger.Log.Info("连击清理完成", zap.Int("reset", len(stale)))
	}
	return nil
}

// Leaderboard 按积分取前 n 名，redis 不可用时回落数据库
func (s *QuestService) Leaderboard(ctx context.Context, limit int) ([]model.User, error) {
	if s.Redis != nil {
		entries, err := s.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil && len(entries) > 0 {
			users := make([]model.User, 0, len(entries))
			for _, e := range entries {
				id, perr := strconv.ParseUint(e.Member.(string), 10, 64)
				if perr != nil {
					continue
				}
				user, uerr := s.UserRepo.FindByID(uint(id))
				if uerr != nil {
					continue
				}
				users = append(users, *user)
			}
			return users, nil
		}
	}
	return s.UserRepo.FindTopByPoints(limit)
}

func comboMultiplier(categories int64) int {
	switch {
	case categories >= 3:
		return 5
	case categories == 2:
		return 2
	default:
		return 1
	}
}

func dayDiff(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
