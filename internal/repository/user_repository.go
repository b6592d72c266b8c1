package repository

import (
	"career_guide_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// AddPoints 原子累加积分
func (r *UserRepository) AddPoints(userID uint, points int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).
		Error
}

func (r *UserRepository) FindTopByPoints(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("points DESC").Limit(limit).Find(&users).Error
	return users, err
}

// ConsumeFreeze 消耗一次连击冻结，没有剩余时不做任何修改
func (r *UserRepository) ConsumeFreeze(userID uint) (bool, error) {
	res := r.DB.Model(&model.User{}).
		Where("id = ? AND freezes_left > 0", userID).
		Update("freezes_left", gorm.Expr("freezes_left - 1"))
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) SetSkillLevel(userID uint, level model.SkillLevel) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("skill_level", level).
		Error
}
