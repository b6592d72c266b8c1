package repository

import (
	"career_guide_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) QuestionsByStream(stream string) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	err := r.DB.Where("stream = ? AND enabled = ?", stream, true).
		Order("`order`").
		Find(&questions).Error
	return questions, err
}

func (r *AssessmentRepository) CreateSubmission(sub *model.AssessmentSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *AssessmentRepository) LatestSubmission(userID uint) (*model.AssessmentSubmission, error) {
	var sub model.AssessmentSubmission
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at DESC").First(&sub).Error
	return &sub, err
}
