package model

// Motivation 仪表盘展示的每日激励短句
// swagger:model Motivation
type Motivation struct {
	BaseModel
	Content         string `gorm:"type:text;not null" json:"content"`
	IsEnabled       bool   `gorm:"default:true" json:"isEnabled"`
	IsCurrentlyUsed bool   `gorm:"default:false" json:"isCurrentlyUsed"`
}

func (Motivation) TableName() string {
	return "motivations"
}
