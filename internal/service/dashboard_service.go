package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"encoding/json"
	"time"
)

// RoadmapSummary 路线图进度概要
type RoadmapSummary struct {
	Generated      bool    `json:"generated"`
	Source         string  `json:"source,omitempty"`
	Years          int     `json:"years"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	ProgressPct    float64 `json:"progressPct"`
	NextTaskID     string  `json:"nextTaskId,omitempty"`
	NextTaskTitle  string  `json:"nextTaskTitle,omitempty"`
}

// QuestSummary 当日任务概要
type QuestSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// DashboardData 首页聚合数据
type DashboardData struct {
	User            *model.User    `json:"user"`
	Roadmap         RoadmapSummary `json:"roadmap"`
	Quests          QuestSummary   `json:"quests"`
	Streaks         []model.Streak `json:"streaks"`
	FriendCount     int            `json:"friendCount"`
	PendingRequests int64          `json:"pendingRequests"`
	Motivation      string         `json:"motivation"`
}

type DashboardService struct {
	UserRepo       *repository.UserRepository
	RoadmapRepo    *repository.RoadmapRepository
	StreakRepo     *repository.StreakRepository
	FriendRepo     *repository.FriendshipRepository
	MotivationRepo *repository.MotivationRepository
	QuestService   *QuestService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	roadmapRepo *repository.RoadmapRepository,
	streakRepo *repository.StreakRepository,
	friendRepo *repository.FriendshipRepository,
	motivationRepo *repository.MotivationRepository,
	questService *QuestService,
) *DashboardService {
	return &DashboardService{
		UserRepo:       userRepo,
		RoadmapRepo:    roadmapRepo,
		StreakRepo:     streakRepo,
		FriendRepo:     friendRepo,
		MotivationRepo: motivationRepo,
		QuestService:   questService,
	}
}

// GetDashboard 聚合首页需要的全部数据，单个板块出错不拖垮整页
func (s *DashboardService) GetDashboard(userID uint, now time.Time) (*DashboardData, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.Password = ""

	data := &DashboardData{User: user}

	data.Roadmap = s.roadmapSummary(userID)

	quests, err := s.QuestService.GetTodayQuests(userID, now)
	if err == nil {
		data.Quests.Total = len(quests)
		for _, q := range quests {
			if q.Completed {
				data.Quests.Completed++
			}
		}
	}

	if streaks, err := s.StreakRepo.FindByUserID(userID); err == nil {
		data.Streaks = streaks
	}

	// 好友数走关系缓存，缓存未命中时回源数据库
	if ids, err := s.FriendRepo.GetFriendIDsCached(userID); err == nil {
		data.FriendCount = len(ids)
	}

	if count, err := s.FriendRepo.CountPendingRequests(userID); err == nil {
		data.PendingRequests = count
	}

	if m, err := s.MotivationRepo.Current(); err == nil {
		data.Motivation = m.Content
	}

	return data, nil
}

func (s *DashboardService) roadmapSummary(userID uint) RoadmapSummary {
	var summary RoadmapSummary

	rm, err := s.RoadmapRepo.FindByUserID(userID)
	if err != nil {
		return summary
	}

	var roadmap model.RoadmapData
	if err := json.Unmarshal(rm.Data, &roadmap); err != nil {
		return summary
	}

	summary.Generated = true
	summary.Source = string(rm.Source)
	summary.Years = len(roadmap.Years)

	done := make(map[string]bool)
	if completed, err := s.RoadmapRepo.CompletedTaskIDs(userID); err == nil {
		for _, id := range completed {
			done[id] = true
		}
	}

	for _, year := range roadmap.Years {
		for _, month := range year.Months {
			for _, week := range month.Weeks {
				for _, day := range week.DailyTasks {
					for _, task := range day.Tasks {
						summary.TotalTasks++
						if done[task.ID] {
							summary.CompletedTasks++
							continue
						}
						// 按课程顺序取第一个未完成的任务
						if summary.NextTaskID == "" {
							summary.NextTaskID = task.ID
							summary.NextTaskTitle = task.Title
						}
					}
				}
			}
		}
	}

	if summary.TotalTasks > 0 {
		summary.ProgressPct = float64(summary.CompletedTasks) / float64(summary.TotalTasks) * 100
	}
	return summary
}
