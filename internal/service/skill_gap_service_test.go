package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func newSkillGapService(t *testing.T) (*SkillGapService, *repository.AssessmentRepository, *model.User) {
	t.Helper()
	db := newTestDB(t)
	assessmentRepo := repository.NewAssessmentRepository(db)
	user := createTestUser(t, db, "gap_user")
	return NewSkillGapService(assessmentRepo, repository.NewUserRepository(db)), assessmentRepo, user
}

func submissionFixture(userID uint, level model.SkillLevel, percentage float64, submittedAt time.Time) *model.AssessmentSubmission {
	return &model.AssessmentSubmission{
		UserID:      userID,
		Stream:      "Software Development",
		Level:       level,
		Percentage:  percentage,
		StartedAt:   submittedAt.Add(-5 * time.Minute),
		SubmittedAt: submittedAt,
	}
}

func TestAnalyzeUnknownRole(t *testing.T) {
	svc, _, user := newSkillGapService(t)

	_, err := svc.Analyze(user.ID, "Astronaut")
	if !errors.Is(err, util.ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}

func TestAnalyzeWithAssessment(t *testing.T) {
	svc, repo, user := newSkillGapService(t)

	// intermediate 基线 55，正确率 80% 修正 +5 → 当前 60
	sub := submissionFixture(user.ID, model.LevelIntermediate, 80, time.Now())
	if err := repo.CreateSubmission(sub); err != nil {
		t.Fatalf("写入测评记录失败: %v", err)
	}

	report, err := svc.Analyze(user.ID, "Data Scientist")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Role != "Data Scientist" {
		t.Errorf("role = %q", report.Role)
	}
	if len(report.Gaps) != 4 {
		t.Fatalf("gap count = %d, want 4", len(report.Gaps))
	}
	for _, gap := range report.Gaps {
		if gap.CurrentLevel != 60 {
			t.Errorf("%s: current = %d, want 60", gap.Skill, gap.CurrentLevel)
		}
	}

	// 差距按百分比降序
	for i := 1; i < len(report.Gaps); i++ {
		if report.Gaps[i].GapPercentage > report.Gaps[i-1].GapPercentage {
			t.Errorf("gaps 未按差距降序: %v > %v", report.Gaps[i].GapPercentage, report.Gaps[i-1].GapPercentage)
		}
	}

	// Statistics: (85-60)/85 = 29.4% → high, 8 周 2 导师
	top := report.Gaps[0]
	if top.Skill != "Statistics" || top.GapPercentage != 29.4 {
		t.Errorf("top gap = %s %v, want Statistics 29.4", top.Skill, top.GapPercentage)
	}
	if top.Priority != PriorityHigh || top.EstimatedWeeks != 8 || top.MentorCount != 2 {
		t.Errorf("top gap estimate = %s/%d/%d", top.Priority, top.EstimatedWeeks, top.MentorCount)
	}

	// readiness = 240/300 = 80%
	if report.Readiness != 80 {
		t.Errorf("readiness = %v, want 80", report.Readiness)
	}
}

func TestAnalyzeAdjustmentClamp(t *testing.T) {
	svc, repo, user := newSkillGapService(t)

	// 正确率 0% 的偏移 -15 被夹到 -10：beginner 基线 30 → 当前 20
	sub := submissionFixture(user.ID, model.LevelBeginner, 0, time.Now())
	if err := repo.CreateSubmission(sub); err != nil {
		t.Fatalf("写入测评记录失败: %v", err)
	}

	report, err := svc.Analyze(user.ID, "Backend Developer")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for _, gap := range report.Gaps {
		if gap.CurrentLevel != 20 {
			t.Errorf("%s: current = %d, want 20", gap.Skill, gap.CurrentLevel)
		}
	}
}

func TestAnalyzeCurrentClampedToTarget(t *testing.T) {
	svc, repo, user := newSkillGapService(t)

	// advanced 基线 75 + 10 = 85 超过 Databases 的目标 65，应被压到目标值
	sub := submissionFixture(user.ID, model.LevelAdvanced, 100, time.Now())
	if err := repo.CreateSubmission(sub); err != nil {
		t.Fatalf("写入测评记录失败: %v", err)
	}

	report, err := svc.Analyze(user.ID, "Data Scientist")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for _, gap := range report.Gaps {
		if gap.CurrentLevel > gap.TargetLevel {
			t.Errorf("%s: current %d 超出 target %d", gap.Skill, gap.CurrentLevel, gap.TargetLevel)
		}
		if gap.Skill == "Databases" {
			if gap.CurrentLevel != 65 || gap.GapPercentage != 0 || gap.Priority != PriorityLow {
				t.Errorf("Databases gap = %d/%v/%s", gap.CurrentLevel, gap.GapPercentage, gap.Priority)
			}
		}
	}
}

func TestAnalyzeUsesLatestSubmission(t *testing.T) {
	svc, repo, user := newSkillGapService(t)

	old := submissionFixture(user.ID, model.LevelBeginner, 30, time.Now().Add(-48*time.Hour))
	recent := submissionFixture(user.ID, model.LevelAdvanced, 60, time.Now())
	for _, sub := range []*model.AssessmentSubmission{old, recent} {
		if err := repo.CreateSubmission(sub); err != nil {
			t.Fatalf("写入测评记录失败: %v", err)
		}
	}

	report, err := svc.Analyze(user.ID, "Frontend Developer")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// 应取 advanced 基线 75（修正 0），而不是旧记录的 beginner
	// 差距最大的是 HTML & CSS（目标 90）
	if report.Gaps[0].Skill != "HTML & CSS" || report.Gaps[0].CurrentLevel != 75 {
		t.Errorf("top gap = %s/%d, want HTML & CSS/75", report.Gaps[0].Skill, report.Gaps[0].CurrentLevel)
	}
}

func TestAnalyzeWithoutAssessment(t *testing.T) {
	t.Run("falls back to self reported level", func(t *testing.T) {
		svc, _, user := newSkillGapService(t)
		if err := svc.UserRepo.SetSkillLevel(user.ID, model.LevelIntermediate); err != nil {
			t.Fatalf("设置自述档失败: %v", err)
		}

		report, err := svc.Analyze(user.ID, "Backend Developer")
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		for _, gap := range report.Gaps {
			if gap.CurrentLevel != 55 {
				t.Errorf("%s: current = %d, want 55", gap.Skill, gap.CurrentLevel)
			}
		}
	})

	t.Run("defaults to beginner baseline", func(t *testing.T) {
		svc, _, user := newSkillGapService(t)

		report, err := svc.Analyze(user.ID, "Backend Developer")
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		for _, gap := range report.Gaps {
			if gap.CurrentLevel != 30 {
				t.Errorf("%s: current = %d, want 30", gap.Skill, gap.CurrentLevel)
			}
		}
	})
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		gap  float64
		want GapPriority
	}{
		{60, PriorityCritical},
		{40.1, PriorityCritical},
		{40, PriorityHigh},
		{25.1, PriorityHigh},
		{25, PriorityMedium},
		{10.1, PriorityMedium},
		{10, PriorityLow},
		{0, PriorityLow},
	}
	for _, tt := range tests {
		if got := priorityFor(tt.gap); got != tt.want {
			t.Errorf("priorityFor(%v) = %s, want %s", tt.gap, got, tt.want)
		}
	}
}

func TestRolesSorted(t *testing.T) {
	svc, _, _ := newSkillGapService(t)
	roles := svc.Roles()
	if len(roles) != 4 {
		t.Fatalf("role count = %d, want 4", len(roles))
	}
	for i := 1; i < len(roles); i++ {
		if roles[i] < roles[i-1] {
			t.Errorf("roles 未排序: %q 在 %q 之后", roles[i], roles[i-1])
		}
	}
}
