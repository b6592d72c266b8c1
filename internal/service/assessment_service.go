package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"time"
)

// AssessmentTimeLimit 测评答题时长，超出宽限后的提交直接拒绝
const AssessmentTimeLimit = 600 * time.Second

// 超时宽限：网络往返的余量，不向学生暴露
const assessmentGrace = 5 * time.Second

const fallbackStream = "Software Development"

type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	UserRepo *repository.UserRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository, userRepo *repository.UserRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, UserRepo: userRepo}
}

// StudentQuestion 发给学生的题目视图，不含答案
type StudentQuestion struct {
	ID         uint                     `json:"id"`
	Content    string                   `json:"content"`
	Options    []string                 `json:"options"`
	Difficulty model.QuestionDifficulty `json:"difficulty"`
	Order      int                      `json:"order"`
}

// QuestionsForStream 取指定方向的题目，方向未编写题库时退回兜底题库
func (s *AssessmentService) QuestionsForStream(stream string) (string, []StudentQuestion, error) {
	questions, err := s.Repo.QuestionsByStream(stream)
	if err != nil {
		return "", nil, err
	}
	if len(questions) == 0 && stream != fallbackStream {
		stream = fallbackStream
		questions, err = s.Repo.QuestionsByStream(stream)
		if err != nil {
			return "", nil, err
		}
	}
	if len(questions) == 0 {
		return "", nil, util.ErrAssessmentNotFound
	}

	views := make([]StudentQuestion, len(questions))
	for i, q := range questions {
		views[i] = StudentQuestion{
			ID:         q.ID,
			Content:    q.Content,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Order:      q.Order,
		}
	}
	return stream, views, nil
}

// SubmitRequest 测评提交：answers 与题目顺序一一对应，-1 表示未作答
type SubmitRequest struct {
	Stream    string    `json:"stream"`
	Answers   []int     `json:"answers" binding:"required"`
	StartedAt time.Time `json:"startedAt" binding:"required"`
}

// Submit 评分并评定等级，结果写回用户档案
func (s *AssessmentService) Submit(userID uint, req SubmitRequest) (*model.AssessmentSubmission, error) {
	now := time.Now()
	if now.Sub(req.StartedAt) > AssessmentTimeLimit+assessmentGrace {
		return nil, util.ErrAssessmentExpired
	}

	stream := req.Stream
	if stream == "" {
		stream = fallbackStream
	}
	questions, err := s.Repo.QuestionsByStream(stream)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 && stream != fallbackStream {
		stream = fallbackStream
		questions, err = s.Repo.QuestionsByStream(stream)
		if err != nil {
			return nil, err
		}
	}
	if len(questions) == 0 {
		return nil, util.ErrAssessmentNotFound
	}

	result := ScoreAssessment(questions, req.Answers)

	sub := &model.AssessmentSubmission{
		UserID:        userID,
		Stream:        stream,
		Answers:       req.Answers,
		Correct:       result.Correct,
		TotalCount:    result.Total,
		EasyCorrect:   result.EasyCorrect,
		MediumCorrect: result.MediumCorrect,
		HardCorrect:   result.HardCorrect,
		Percentage:    result.Percentage,
		Level:         result.Level,
		StartedAt:     req.StartedAt,
		SubmittedAt:   now,
	}
	if err := s.Repo.CreateSubmission(sub); err != nil {
		return nil, err
	}

	if err := s.UserRepo.SetSkillLevel(userID, result.Level); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *AssessmentService) LatestResult(userID uint) (*model.AssessmentSubmission, error) {
	return s.Repo.LatestSubmission(userID)
}

// ScoreResult 按难度档分桶的评分结果
type ScoreResult struct {
	Correct       int
	Total         int
	EasyCorrect   int
	MediumCorrect int
	HardCorrect   int
	Percentage    float64
	Level         model.SkillLevel
}

// ScoreAssessment 对照题目评分。未作答（下标越界或为负）按答错计。
// 评级规则（按优先级）：
//
//	hardCorrect>=2 且 percentage>=75 → advanced
//	mediumCorrect>=2 且 percentage>=50 → intermediate
//	其余 → beginner
func ScoreAssessment(questions []model.AssessmentQuestion, answers []int) ScoreResult {
	result := ScoreResult{Total: len(questions)}

	for i, q := range questions {
		answer := -1
		if i < len(answers) {
			answer = answers[i]
		}
		if answer < 0 || answer != q.CorrectAnswer {
			continue
		}
		result.Correct++
		switch q.Difficulty {
		case model.DifficultyEasy:
			result.EasyCorrect++
		case model.DifficultyMedium:
			result.MediumCorrect++
		case model.DifficultyHard:
			result.HardCorrect++
		}
	}

	if result.Total > 0 {
		result.Percentage = float64(result.Correct) / float64(result.Total) * 100
	}

	switch {
	case result.HardCorrect >= 2 && result.Percentage >= 75:
		result.Level = model.LevelAdvanced
	case result.MediumCorrect >= 2 && result.Percentage >= 50:
		result.Level = model.LevelIntermediate
	default:
		result.Level = model.LevelBeginner
	}

	return result
}
