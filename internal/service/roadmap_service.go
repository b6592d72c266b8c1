package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"career_guide_backend/pkg/logger"
	"career_guide_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var yearTitles = [4]string{
	"Foundation Building",
	"Skill Development",
	"Specialization",
	"Advanced Mastery",
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var goalPhrases = map[string]string{
	"job":            "Land a software engineering job at a product company",
	"higher-studies": "Get into a strong graduate program in your field",
	"startup":        "Launch your own startup with a working product",
	"freelance":      "Build a sustainable freelance practice",
	"government":     "Qualify for a public sector technology role",
}

const defaultGoalPhrase = "Build a strong career foundation in technology"

// GenerateRoadmap 根据问卷答案生成年→月→周→日→任务的课程树。
// 纯函数：相同输入必产出结构相同的树，任何输入都不会失败。
func GenerateRoadmap(o *model.CareerOnboarding) *model.RoadmapData {
	yearsRemaining := o.GraduationYear - o.CurrentYear + 1
	if yearsRemaining < 1 {
		yearsRemaining = 1
	}

	interest := ""
	if len(o.Interests) > 0 {
		interest = o.Interests[0]
	}
	curriculum := CurriculumFor(interest)

	overallGoal, ok := goalPhrases[o.PrimaryGoal]
	if !ok {
		overallGoal = defaultGoalPhrase
	}

	data := &model.RoadmapData{
		OverallGoal:   overallGoal,
		TotalDuration: formatDuration(yearsRemaining),
		Years:         make([]model.RoadmapYear, 0, yearsRemaining),
	}

	for i := 0; i < yearsRemaining; i++ {
		titleIdx := i
		if titleIdx > 3 {
			titleIdx = 3
		}

		yearGoal := "Keep building depth and breadth in your chosen field"
		if i < len(curriculum.YearGoals) {
			yearGoal = curriculum.YearGoals[i]
		}

		year := model.RoadmapYear{
			Year:   o.CurrentYear + i,
			Title:  yearTitles[titleIdx],
			Goal:   yearGoal,
			Months: make([]model.RoadmapMonth, 0, 12),
		}

		for m := 0; m < 12; m++ {
			globalMonth := i*12 + m
			var month model.RoadmapMonth
			if !curriculum.Fallback && globalMonth < len(curriculum.Months) {
				month = buildAuthoredMonth(year.Year, globalMonth, monthNames[m], curriculum.Months[globalMonth])
			} else {
				month = buildFallbackMonth(year.Year, globalMonth, monthNames[m])
			}
			year.Months = append(year.Months, month)
		}

		data.Years = append(data.Years, year)
	}

	return data
}

func formatDuration(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

func buildAuthoredMonth(year, globalMonth int, name string, content MonthContent) model.RoadmapMonth {
	month := model.RoadmapMonth{
		Month: name,
		Goal:  content.Goal,
		Weeks: make([]model.RoadmapWeek, 0, len(content.Weeks)),
	}
	for w, wc := range content.Weeks {
		month.Weeks = append(month.Weeks, buildWeek(year, globalMonth, w+1, wc))
	}
	return month
}

func buildFallbackMonth(year, globalMonth int, name string) model.RoadmapMonth {
	month := model.RoadmapMonth{
		Month: name,
		Goal:  "Continue advancing your skills with applied practice",
		Weeks: make([]model.RoadmapWeek, 0, 4),
	}
	generic := WeekContent{
		Weekday:  []string{"a topic from your current focus area"},
		Saturday: []string{"Start a small practice project", "Outline what you will build"},
		Sunday:   []string{"Finish the practice project", "Review what you learned this week"},
	}
	for w := 1; w <= 4; w++ {
		wc := generic
		wc.Focus = fmt.Sprintf("Week %d: applied practice and review", w)
		month.Weeks = append(month.Weeks, buildWeek(year, globalMonth, w, wc))
	}
	return month
}

// buildWeek 展开一周的 7 天：周一到周五各 4 条任务，
// 周六开工项目 2 条，周日收尾加复盘 2 条。
func buildWeek(year, globalMonth, weekNum int, wc WeekContent) model.RoadmapWeek {
	week := model.RoadmapWeek{
		Week:       weekNum,
		Focus:      wc.Focus,
		DailyTasks: make([]model.RoadmapDay, 0, 7),
	}

	for d := 0; d < 5; d++ {
		activity := "your current topic"
		if len(wc.Weekday) > 0 {
			idx := d
			if idx >= len(wc.Weekday) {
				idx = 0
			}
			activity = wc.Weekday[idx]
		}
		day := model.RoadmapDay{
			Day: weekdayNames[d],
			Tasks: []model.RoadmapTask{
				{ID: taskID(year, globalMonth, weekNum, weekdayNames[d], 0), Title: "Learn: " + activity, Type: model.TaskStudy, Duration: "45 min"},
				{ID: taskID(year, globalMonth, weekNum, weekdayNames[d], 1), Title: "Practice: " + activity, Type: model.TaskPractice, Duration: "1 hour"},
				{ID: taskID(year, globalMonth, weekNum, weekdayNames[d], 2), Title: "Apply: build something small with " + activity, Type: model.TaskPractice, Duration: "30 min"},
				{ID: taskID(year, globalMonth, weekNum, weekdayNames[d], 3), Title: "Review today's notes", Type: model.TaskReview, Duration: "15 min"},
			},
		}
		week.DailyTasks = append(week.DailyTasks, day)
	}

	satStart := "Start a weekend project"
	satPlan := "Plan the project scope"
	if len(wc.Saturday) > 0 {
		satStart = wc.Saturday[0]
	}
	if len(wc.Saturday) > 1 {
		satPlan = wc.Saturday[1]
	}
	week.DailyTasks = append(week.DailyTasks, model.RoadmapDay{
		Day: "Saturday",
		Tasks: []model.RoadmapTask{
			{ID: taskID(year, globalMonth, weekNum, "Saturday", 0), Title: satStart, Type: model.TaskProject, Duration: "2 hours"},
			{ID: taskID(year, globalMonth, weekNum, "Saturday", 1), Title: satPlan, Type: model.TaskProject, Duration: "1 hour"},
		},
	})

	sunFinish := "Finish the weekend project"
	sunReview := "Review the week"
	if len(wc.Sunday) > 0 {
		sunFinish = wc.Sunday[0]
	}
	if len(wc.Sunday) > 1 {
		sunReview = wc.Sunday[1]
	}
	week.DailyTasks = append(week.DailyTasks, model.RoadmapDay{
		Day: "Sunday",
		Tasks: []model.RoadmapTask{
			{ID: taskID(year, globalMonth, weekNum, "Sunday", 0), Title: sunFinish, Type: model.TaskProject, Duration: "1.5 hours"},
			{ID: taskID(year, globalMonth, weekNum, "Sunday", 1), Title: sunReview, Type: model.TaskReview, Duration: "45 min"},
		},
	})

	return week
}

// taskID 全树唯一的任务 ID，供完成标记按 ID 持久化
func taskID(year, globalMonth, week int, day string, idx int) string {
	return fmt.Sprintf("y%d-m%d-w%d-%s-%d", year, globalMonth+1, week, day[:3], idx)
}

type RoadmapService struct {
	RoadmapRepo    *repository.RoadmapRepository
	OnboardingRepo *repository.OnboardingRepository
	AI             *AIRoadmapService
}

func NewRoadmapService(roadmapRepo *repository.RoadmapRepository, onboardingRepo *repository.OnboardingRepository, ai *AIRoadmapService) *RoadmapService {
	return &RoadmapService{
		RoadmapRepo:    roadmapRepo,
		OnboardingRepo: onboardingRepo,
		AI:             ai,
	}
}

// GenerateForUser 先落静态快照并立即返回，AI 版本在后台尽力替换
func (s *RoadmapService) GenerateForUser(userID uint) (*model.RoadmapData, error) {
	onboarding, err := s.OnboardingRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrOnboardingIncomplete
		}
		return nil, err
	}

	data := GenerateRoadmap(onboarding)
	if err := s.saveSnapshot(userID, data, model.SourceStatic); err != nil {
		return nil, err
	}
	monitoring.RoadmapGenerations.WithLabelValues(string(model.SourceStatic)).Inc()

	if s.AI != nil && s.AI.Enabled() {
		go s.populateFromAI(userID, onboarding)
	}

	return data, nil
}

// populateFromAI 单次尝试，任何失败都静默保留静态快照
func (s *RoadmapService) populateFromAI(userID uint, onboarding *model.CareerOnboarding) {
	ctx, cancel := context.WithTimeout(context.Background(), s.AI.Timeout())
	defer cancel()

	data := s.AI.Generate(ctx, onboarding)
	if data == nil {
		return
	}

	if err := s.saveSnapshot(userID, data, model.SourceAI); err != nil {
		logger.Log.Error("failed to store AI roadmap", zap.Uint("userId", userID), zap.Error(err))
		return
	}
	monitoring.RoadmapGenerations.WithLabelValues(string(model.SourceAI)).Inc()
}

func (s *RoadmapService) saveSnapshot(userID uint, data *model.RoadmapData, source model.RoadmapSource) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.RoadmapRepo.SaveSnapshot(&model.CareerRoadmap{
		UserID:      userID,
		Source:      source,
		Data:        datatypes.JSON(raw),
		GeneratedAt: time.Now(),
	})
}

// RoadmapView 返回给前端的快照视图
type RoadmapView struct {
	Source      model.RoadmapSource `json:"source"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Data        *model.RoadmapData  `json:"data"`
}

// GetForUser 读取快照并回填叶子任务的完成标记
func (s *RoadmapService) GetForUser(userID uint) (*RoadmapView, error) {
	snapshot, err := s.RoadmapRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoadmapNotFound
		}
		return nil, err
	}

	var data model.RoadmapData
	if err := json.Unmarshal(snapshot.Data, &data); err != nil {
		return nil, err
	}

	completed, err := s.RoadmapRepo.CompletedTaskIDs(userID)
	if err == nil && len(completed) > 0 {
		done := make(map[string]bool, len(completed))
		for _, id := range completed {
			done[id] = true
		}
		for yi := range data.Years {
			for mi := range data.Years[yi].Months {
				for wi := range data.Years[yi].Months[mi].Weeks {
					for di := range data.Years[yi].Months[mi].Weeks[wi].DailyTasks {
						tasks := data.Years[yi].Months[mi].Weeks[wi].DailyTasks[di].Tasks
						for ti := range tasks {
							if done[tasks[ti].ID] {
								tasks[ti].Completed = true
							}
						}
					}
				}
			}
		}
	}

	return &RoadmapView{
		Source:      snapshot.Source,
		GeneratedAt: snapshot.GeneratedAt,
		Data:        &data,
	}, nil
}

func (s *RoadmapService) CompleteTask(userID uint, taskID string) error {
	return s.RoadmapRepo.MarkTaskCompleted(userID, taskID)
}
