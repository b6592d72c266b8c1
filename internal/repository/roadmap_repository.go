package repository

import (
	"career_guide_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

// SaveSnapshot 保存路线图快照，同一用户重新生成时整体替换
func (r *RoadmapRepository) SaveSnapshot(rm *model.CareerRoadmap) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(rm).Error
}

func (r *RoadmapRepository) FindByUserID(userID uint) (*model.CareerRoadmap, error) {
	var rm model.CareerRoadmap
	err := r.DB.Where("user_id = ?", userID).First(&rm).Error
	return &rm, err
}

// MarkTaskCompleted 记录叶子任务完成，重复标记幂等
func (r *RoadmapRepository) MarkTaskCompleted(userID uint, taskID string) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RoadmapTaskCompletion{UserID: userID, TaskID: taskID}).Error
}

func (r *RoadmapRepository) CompletedTaskIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.RoadmapTaskCompletion{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &ids).Error
	return ids, err
}
