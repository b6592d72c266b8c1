package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/pkg/logger"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB 打开内存 sqlite 并迁移测试用到的表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开 sqlite 失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	// 内存库随连接销毁，限制为单连接
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.QuestTemplate{},
		&model.DailyQuest{},
		&model.Streak{},
		&model.AssessmentQuestion{},
		&model.AssessmentSubmission{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.CareerRoadmap{},
		&model.RoadmapTaskCompletion{},
		&model.Motivation{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:        name,
		Email:       name + "@example.com",
		Password:    "hashed",
		Role:        model.Student,
		FreezesLeft: 3,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}
