package repository

import (
	"career_guide_backend/internal/model"

	"gorm.io/gorm"
)

type QuestRepository struct {
	DB *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{DB: db}
}

func (r *QuestRepository) EnabledTemplates() ([]model.QuestTemplate, error) {
	var templates []model.QuestTemplate
	err := r.DB.Where("enabled = ?", true).Order("id").Find(&templates).Error
	return templates, err
}

func (r *QuestRepository) FindByUserAndDate(userID uint, date string) ([]model.DailyQuest, error) {
	var quests []model.DailyQuest
	err := r.DB.Where("user_id = ? AND quest_date = ?", userID, date).Order("id").Find(&quests).Error
	return quests, err
}

func (r *QuestRepository) CreateBatch(quests []model.DailyQuest) error {
	return r.DB.Create(&quests).Error
}

func (r *QuestRepository) FindByID(id uint) (*model.DailyQuest, error) {
	var quest model.DailyQuest
	err := r.DB.First(&quest, id).Error
	return &quest, err
}

func (r *QuestRepository) Update(quest *model.DailyQuest) error {
	return r.DB.Save(quest).Error
}

// DistinctCompletedCategories 当日已完成任务覆盖的类别数
func (r *QuestRepository) DistinctCompletedCategories(userID uint, date string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.DailyQuest{}).
		Where("user_id = ? AND quest_date = ? AND completed = ?", userID, date, true).
		Distinct("category").
		Count(&count).Error
	return count, err
}
