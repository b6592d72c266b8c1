package model

import "time"

// QuestType 任务周期类型
type QuestType string

const (
	QuestDaily   QuestType = "daily"
	QuestWeekly  QuestType = "weekly"
	QuestSpecial QuestType = "special"
)

// QuestCategory 任务所属类别，连击与连击加成按类别统计
type QuestCategory string

const (
	CategoryCoding    QuestCategory = "coding"
	CategoryLearning  QuestCategory = "learning"
	CategoryCommunity QuestCategory = "community"
	CategoryMentoring QuestCategory = "mentoring"
	CategoryOverall   QuestCategory = "overall" // 仅用于连击记录
)

// QuestTemplate 每日任务的生成模板，迁移时播种
// swagger:model QuestTemplate
type QuestTemplate struct {
	BaseModel
	Code        string        `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Type        QuestType     `gorm:"size:10;default:'daily'" json:"type"`
	Category    QuestCategory `gorm:"size:20;not null" json:"category"`
	Points      int           `gorm:"not null" json:"points"`
	Total       int           `gorm:"default:1" json:"total"`
	Enabled     bool          `gorm:"default:true" json:"enabled"`
}

func (QuestTemplate) TableName() string {
	return "quest_templates"
}

// DailyQuest 按日期生成的用户任务实例，完成状态单向推进
// swagger:model DailyQuest
type DailyQuest struct {
	BaseModel
	UserID      uint          `gorm:"not null;index:idx_user_quest_date" json:"userId"`
	QuestDate   string        `gorm:"size:10;not null;index:idx_user_quest_date" json:"questDate"` // YYYY-MM-DD
	Code        string        `gorm:"size:50;not null" json:"code"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Type        QuestType     `gorm:"size:10;default:'daily'" json:"type"`
	Category    QuestCategory `gorm:"size:20;not null" json:"category"`
	Points      int           `gorm:"not null" json:"points"`
	Completed   bool          `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Progress    int           `gorm:"default:0" json:"progress"`
	Total       int           `gorm:"default:1" json:"total"`
}

func (DailyQuest) TableName() string {
	return "daily_quests"
}
