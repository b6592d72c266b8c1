package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionDifficulty 测评题目难度档
type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// AssessmentQuestion 技能测评题目，按职业方向分题库，迁移时播种
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	Stream        string                      `gorm:"size:100;not null;index" json:"stream"` // 职业方向，如 Software Development
	Content       string                      `gorm:"type:text;not null" json:"content"`
	Options       datatypes.JSONSlice[string] `gorm:"type:json" json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"-"` // 正确选项下标
	Difficulty    QuestionDifficulty          `gorm:"size:10;not null" json:"difficulty"`
	Skill         string                      `gorm:"size:100" json:"skill"` // 对应的技能点，供差距分析使用
	Order         int                         `gorm:"default:0" json:"order"`
	Enabled       bool                        `gorm:"default:true" json:"enabled"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// AssessmentSubmission 测评提交与评定结果
// swagger:model AssessmentSubmission
type AssessmentSubmission struct {
	BaseModel
	UserID        uint                     `gorm:"not null;index" json:"userId"`
	Stream        string                   `gorm:"size:100;not null" json:"stream"`
	Answers       datatypes.JSONSlice[int] `gorm:"type:json" json:"answers"` // 按题目顺序的选项下标，-1 表示未作答
	Correct       int                      `json:"correct"`
	TotalCount    int                      `json:"totalCount"`
	EasyCorrect   int                      `json:"easyCorrect"`
	MediumCorrect int                      `json:"mediumCorrect"`
	HardCorrect   int                      `json:"hardCorrect"`
	Percentage    float64                  `json:"percentage"`
	Level         SkillLevel               `gorm:"size:20" json:"level"`
	StartedAt     time.Time                `json:"startedAt"`
	SubmittedAt   time.Time                `json:"submittedAt"`
}

func (AssessmentSubmission) TableName() string {
	return "assessment_submissions"
}
