package repository

import (
	"career_guide_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// FindOrInit 取出指定类别的连击记录，不存在时返回零值记录
func (r *StreakRepository) FindOrInit(userID uint, typ model.QuestCategory) (*model.Streak, error) {
	var streak model.Streak
	err := r.DB.Where("user_id = ? AND type = ?", userID, typ).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Streak{UserID: userID, Type: typ, Multiplier: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *StreakRepository) Save(streak *model.Streak) error {
	return r.DB.Save(streak).Error
}

func (r *StreakRepository) FindByUserID(userID uint) ([]model.Streak, error) {
	var streaks []model.Streak
	err := r.DB.Where("user_id = ?", userID).Order("type").Find(&streaks).Error
	return streaks, err
}

// FindStale 找出最后活跃时间早于给定时刻的连击记录，供夜间清理
func (r *StreakRepository) FindStale(before string) ([]model.Streak, error) {
	var streaks []model.Streak
	err := r.DB.Where("count > 0 AND last_active < ?", before).Find(&streaks).Error
	return streaks, err
}
