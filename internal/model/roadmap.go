package model

import (
	"time"

	"gorm.io/datatypes"
)

// TaskType 每日任务条目类型
type TaskType string

const (
	TaskStudy    TaskType = "study"
	TaskPractice TaskType = "practice"
	TaskProject  TaskType = "project"
	TaskReview   TaskType = "review"
)

// RoadmapTask 职业路线图的叶子任务
type RoadmapTask struct {
	ID        string   `json:"id"` // 全局唯一：y{year}-m{month}-w{week}-{day}-{index}
	Title     string   `json:"title"`
	Type      TaskType `json:"type"`
	Duration  string   `json:"duration"`
	Completed bool     `json:"completed,omitempty"`
}

// RoadmapDay 单日任务清单
type RoadmapDay struct {
	Day   string        `json:"day"` // Monday..Sunday
	Tasks []RoadmapTask `json:"tasks"`
}

// RoadmapWeek 单周计划，固定 7 天
type RoadmapWeek struct {
	Week       int          `json:"week"`
	Focus      string       `json:"focus"`
	DailyTasks []RoadmapDay `json:"dailyTasks"`
}

// RoadmapMonth 单月计划
type RoadmapMonth struct {
	Month string        `json:"month"` // January..December
	Goal  string        `json:"goal"`
	Weeks []RoadmapWeek `json:"weeks"`
}

// RoadmapYear 学年计划
type RoadmapYear struct {
	Year   int            `json:"year"`
	Title  string         `json:"title"`
	Goal   string         `json:"goal"`
	Months []RoadmapMonth `json:"months"`
}

// RoadmapData 年→月→周→日→任务 的五层课程树
// swagger:model RoadmapData
type RoadmapData struct {
	OverallGoal   string        `json:"overallGoal"`
	TotalDuration string        `json:"totalDuration"`
	Years         []RoadmapYear `json:"years"`
}

// RoadmapSource 路线图的生成来源
type RoadmapSource string

const (
	SourceStatic RoadmapSource = "static"
	SourceAI     RoadmapSource = "ai"
)

// CareerRoadmap 路线图快照，每个用户一条，重新生成时整体替换
// swagger:model CareerRoadmap
type CareerRoadmap struct {
	BaseModel
	UserID      uint           `gorm:"uniqueIndex;not null" json:"userId"`
	Source      RoadmapSource  `gorm:"size:10;default:'static'" json:"source"`
	Data        datatypes.JSON `gorm:"type:json" json:"data"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

func (CareerRoadmap) TableName() string {
	return "career_roadmaps"
}

// RoadmapTaskCompletion 路线图叶子任务的完成标记，按全局唯一任务 ID 记录
type RoadmapTaskCompletion struct {
	BaseModel
	UserID uint   `gorm:"not null;index:idx_user_roadmap_task,unique" json:"userId"`
	TaskID string `gorm:"size:64;not null;index:idx_user_roadmap_task,unique" json:"taskId"`
}

func (RoadmapTaskCompletion) TableName() string {
	return "roadmap_task_completions"
}
