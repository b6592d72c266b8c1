package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"errors"
)

type OnboardingService struct {
	Repo *repository.OnboardingRepository
}

func NewOnboardingService(repo *repository.OnboardingRepository) *OnboardingService {
	return &OnboardingService{Repo: repo}
}

// OnboardingRequest 入门问卷提交
// swagger:model OnboardingRequest
type OnboardingRequest struct {
	PrimaryGoal     string   `json:"primaryGoal" binding:"required"`
	Timeframe       string   `json:"timeframe"`
	CurrentLevel    string   `json:"currentLevel"`
	Interests       []string `json:"interests" binding:"required"`
	CurrentYear     int      `json:"currentYear" binding:"required"`
	GraduationYear  int      `json:"graduationYear" binding:"required"`
	CurrentSemester string   `json:"currentSemester" binding:"required"`
}

// Save 校验并整条覆盖问卷答案
func (s *OnboardingService) Save(userID uint, req OnboardingRequest) (*model.CareerOnboarding, error) {
	if len(req.Interests) == 0 {
		return nil, errors.New("请至少选择一个兴趣方向")
	}
	if req.CurrentYear <= 0 || req.GraduationYear <= 0 {
		return nil, errors.New("学年信息不合法")
	}
	if req.GraduationYear < req.CurrentYear {
		return nil, errors.New("毕业年级不能早于当前年级")
	}
	if req.CurrentSemester == "" {
		return nil, errors.New("请选择当前学期")
	}

	o := &model.CareerOnboarding{
		UserID:          userID,
		PrimaryGoal:     req.PrimaryGoal,
		Timeframe:       req.Timeframe,
		CurrentLevel:    req.CurrentLevel,
		Interests:       req.Interests,
		CurrentYear:     req.CurrentYear,
		GraduationYear:  req.GraduationYear,
		CurrentSemester: req.CurrentSemester,
	}
	if err := s.Repo.Upsert(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OnboardingService) Get(userID uint) (*model.CareerOnboarding, error) {
	return s.Repo.FindByUserID(userID)
}
