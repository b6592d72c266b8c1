package repository

import (
	"career_guide_backend/internal/model"

	"gorm.io/gorm"
)

type NoteRepository struct {
	DB *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	return r.DB.Create(note).Error
}

func (r *NoteRepository) FindByUserID(userID uint, page, limit int) ([]model.Note, int64, error) {
	var notes []model.Note
	var total int64

	query := r.DB.Model(&model.Note{}).Where("user_id = ?", userID)
	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&notes).Error
	return notes, total, err
}

func (r *NoteRepository) FindByID(id uint) (*model.Note, error) {
	var note model.Note
	err := r.DB.First(&note, id).Error
	return &note, err
}

func (r *NoteRepository) Update(note *model.Note) error {
	return r.DB.Save(note).Error
}

func (r *NoteRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Note{}, id).Error
}
