package model

import "time"

// Streak 连续完成天数记录，每个用户每个类别一条，外加一条 overall
// 不变式：Best >= Count
// swagger:model Streak
type Streak struct {
	BaseModel
	UserID     uint          `gorm:"not null;index:idx_user_streak_type,unique" json:"userId"`
	Type       QuestCategory `gorm:"size:20;not null;index:idx_user_streak_type,unique" json:"type"`
	Count      int           `gorm:"default:0" json:"count"`
	Best       int           `gorm:"default:0" json:"best"`
	Multiplier int           `gorm:"default:1" json:"multiplier"` // floor(count/7)+1
	LastActive time.Time     `json:"lastActive"`
}

func (Streak) TableName() string {
	return "streaks"
}
