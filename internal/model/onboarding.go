package model

import (
	"gorm.io/datatypes"
)

// CareerOnboarding 入门问卷答案，每个用户一条，重新填写时整条覆盖
// swagger:model CareerOnboarding
type CareerOnboarding struct {
	BaseModel
	UserID          uint                        `gorm:"uniqueIndex;not null" json:"userId"`
	PrimaryGoal     string                      `gorm:"size:50;not null" json:"primaryGoal"`
	Timeframe       string                      `gorm:"size:50" json:"timeframe"`
	CurrentLevel    string                      `gorm:"size:20" json:"currentLevel"`
	Interests       datatypes.JSONSlice[string] `gorm:"type:json" json:"interests"`
	CurrentYear     int                         `gorm:"not null" json:"currentYear"`
	GraduationYear  int                         `gorm:"not null" json:"graduationYear"`
	CurrentSemester string                      `gorm:"size:20;not null" json:"currentSemester"`
}

func (CareerOnboarding) TableName() string {
	return "career_onboardings"
}
