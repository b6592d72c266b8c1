package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"errors"
	"math"
	"sort"

	"gorm.io/gorm"
)

// GapPriority 技能差距的优先级档
type GapPriority string

const (
	PriorityCritical GapPriority = "critical"
	PriorityHigh     GapPriority = "high"
	PriorityMedium   GapPriority = "medium"
	PriorityLow      GapPriority = "low"
)

// SkillGap 单项技能差距，按需计算不落库
type SkillGap struct {
	Skill          string      `json:"skill"`
	TargetLevel    int         `json:"targetLevel"`
	CurrentLevel   int         `json:"currentLevel"`
	GapPercentage  float64     `json:"gapPercentage"`
	Priority       GapPriority `json:"priority"`
	EstimatedWeeks int         `json:"estimatedWeeks"`
	MentorCount    int         `json:"mentorCount"`
}

// GapReport 目标岗位的完整差距报告
type GapReport struct {
	Role      string     `json:"role"`
	Readiness float64    `json:"readiness"` // avg(current)/avg(target)*100
	Gaps      []SkillGap `json:"gaps"`
}

type skillRequirement struct {
	Skill  string
	Target int
}

// 岗位要求表：每个岗位各技能的目标熟练度（0-100）
var roleRequirements = map[string][]skillRequirement{
	"Frontend Developer": {
		{"HTML & CSS", 90},
		{"JavaScript", 85},
		{"Frontend Framework", 80},
		{"Web Fundamentals", 75},
		{"Tooling", 70},
	},
	"Backend Developer": {
		{"Data Structures", 80},
		{"Algorithms", 75},
		{"Databases", 85},
		{"System Design", 70},
		{"Tooling", 70},
	},
	"Full Stack Developer": {
		{"JavaScript", 80},
		{"Frontend Framework", 75},
		{"Databases", 75},
		{"System Design", 70},
		{"Web Fundamentals", 80},
	},
	"Data Scientist": {
		{"Statistics", 85},
		{"Machine Learning", 80},
		{"Databases", 65},
		{"Tooling", 70},
	},
}

// 基线熟练度：按测评评定等级取值，未测评用户按问卷自述档取值
var levelBaselines = map[model.SkillLevel]int{
	model.LevelBeginner:     30,
	model.LevelIntermediate: 55,
	model.LevelAdvanced:     75,
}

const defaultBaseline = 30

// 各优先级档的补齐周数与建议导师数
var priorityEstimates = map[GapPriority]struct {
	Weeks   int
	Mentors int
}{
	PriorityCritical: {Weeks: 12, Mentors: 3},
	PriorityHigh:     {Weeks: 8, Mentors: 2},
	PriorityMedium:   {Weeks: 4, Mentors: 1},
	PriorityLow:      {Weeks: 2, Mentors: 0},
}

type SkillGapService struct {
	AssessmentRepo *repository.AssessmentRepository
	UserRepo       *repository.UserRepository
}

func NewSkillGapService(assessmentRepo *repository.AssessmentRepository, userRepo *repository.UserRepository) *SkillGapService {
	return &SkillGapService{AssessmentRepo: assessmentRepo, UserRepo: userRepo}
}

// Roles 返回支持差距分析的岗位列表
func (s *SkillGapService) Roles() []string {
	roles := make([]string, 0, len(roleRequirements))
	for role := range roleRequirements {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Analyze 对照岗位要求计算差距。当前熟练度不是随机模拟：
// 有测评记录时以评定等级为基线、按测评正确率修正；
// 没有测评记录时按问卷自述档取基线并在报告中如实返回。
func (s *SkillGapService) Analyze(userID uint, targetRole string) (*GapReport, error) {
	requirements, ok := roleRequirements[targetRole]
	if !ok {
		return nil, util.ErrUnknownRole
	}

	baseline := defaultBaseline
	adjustment := 0.0

	sub, err := s.AssessmentRepo.LatestSubmission(userID)
	switch {
	case err == nil:
		baseline = levelBaselines[sub.Level]
		// 正确率相对 60% 的偏移折算成 ±10 以内的修正
		adjustment = (sub.Percentage - 60) / 4
		if adjustment > 10 {
			adjustment = 10
		}
		if adjustment < -10 {
			adjustment = -10
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, uerr := s.UserRepo.FindByID(userID)
		if uerr == nil && user.SkillLevel != "" {
			baseline = levelBaselines[user.SkillLevel]
		}
	default:
		return nil, err
	}

	report := &GapReport{Role: targetRole, Gaps: make([]SkillGap, 0, len(requirements))}

	var currentSum, targetSum float64
	for _, req := range requirements {
		current := int(math.Round(float64(baseline) + adjustment))
		if current < 0 {
			current = 0
		}
		if current > req.Target {
			current = req.Target
		}

		gapPct := float64(req.Target-current) / float64(req.Target) * 100
		priority := priorityFor(gapPct)
		estimate := priorityEstimates[priority]

		report.Gaps = append(report.Gaps, SkillGap{
			Skill:          req.Skill,
			TargetLevel:    req.Target,
			CurrentLevel:   current,
			GapPercentage:  math.Round(gapPct*10) / 10,
			Priority:       priority,
			EstimatedWeeks: estimate.Weeks,
			MentorCount:    estimate.Mentors,
		})

		currentSum += float64(current)
		targetSum += float64(req.Target)
	}

	if targetSum > 0 {
		report.Readiness = math.Round(currentSum/targetSum*1000) / 10
	}

	// 差距大的排前面
	sort.SliceStable(report.Gaps, func(i, j int) bool {
		return report.Gaps[i].GapPercentage > report.Gaps[j].GapPercentage
	})

	return report, nil
}

func priorityFor(gapPct float64) GapPriority {
	switch {
	case gapPct > 40:
		return PriorityCritical
	case gapPct > 25:
		return PriorityHigh
	case gapPct > 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
