package repository

import (
	"career_guide_backend/internal/model"

	"gorm.io/gorm"
)

type MotivationRepository struct {
	DB *gorm.DB
}

func NewMotivationRepository(db *gorm.DB) *MotivationRepository {
	return &MotivationRepository{DB: db}
}

func (r *MotivationRepository) Current() (*model.Motivation, error) {
	var m model.Motivation
	err := r.DB.Where("is_enabled = ? AND is_currently_used = ?", true, true).First(&m).Error
	if err != nil {
		// 没有选中的短句时退回到任意一条启用的
		err = r.DB.Where("is_enabled = ?", true).First(&m).Error
	}
	return &m, err
}
