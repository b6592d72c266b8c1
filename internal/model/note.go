package model

import "gorm.io/datatypes"

// Note 用户学习笔记
// swagger:model Note
type Note struct {
	BaseModel
	UserID  uint                        `gorm:"not null;index" json:"userId"`
	Title   string                      `gorm:"size:255;not null" json:"title"`
	Content string                      `gorm:"type:text" json:"content"`
	Tags    datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`
}

func (Note) TableName() string {
	return "notes"
}
