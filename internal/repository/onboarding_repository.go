package repository

import (
	"career_guide_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepository struct {
	DB *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{DB: db}
}

// Upsert 整条覆盖：重新填写问卷时替换旧答案
func (r *OnboardingRepository) Upsert(o *model.CareerOnboarding) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(o).Error
}

func (r *OnboardingRepository) FindByUserID(userID uint) (*model.CareerOnboarding, error) {
	var o model.CareerOnboarding
	err := r.DB.Where("user_id = ?", userID).First(&o).Error
	return &o, err
}
