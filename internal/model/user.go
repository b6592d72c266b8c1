package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Mentor  UserRole = "mentor"
	Company UserRole = "company"
	College UserRole = "college"
	Admin   UserRole = "admin"
)

// SkillLevel 技能水平评定等级
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// swagger:model User
type User struct {
	BaseModel
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:100;unique;not null" json:"email"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	Role        UserRole   `gorm:"size:20;default:'student'" json:"role"`
	Points      int        `gorm:"default:0" json:"points"`      // 任务积分（含连击加成）
	FreezesLeft int        `gorm:"default:3" json:"freezesLeft"` // 剩余的连击冻结次数
	SkillLevel  SkillLevel `gorm:"size:20" json:"skillLevel"`    // 最近一次测评评定等级
	Language    string     `gorm:"size:10;default:'en'" json:"language"`
	Avatar      string     `gorm:"size:255" json:"avatar"`
	Headline    string     `gorm:"size:255" json:"headline"` // 个人主页一句话简介
	Disabled    bool       `gorm:"default:false" json:"disabled"`
	LastLogin   time.Time  `json:"lastLogin"`
	LastSeen    time.Time  `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
