package database

import (
	"career_guide_backend/internal/config"
	"career_guide_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 建表并播种默认数据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.CareerOnboarding{},
		&model.CareerRoadmap{},
		&model.RoadmapTaskCompletion{},
		&model.QuestTemplate{},
		&model.DailyQuest{},
		&model.Streak{},
		&model.Friendship{},
		&model.FriendRequest{},
		&model.AssessmentQuestion{},
		&model.AssessmentSubmission{},
		&model.Note{},
		&model.Motivation{},
	)
	if err != nil {
		return err
	}

	seedMotivations(db)
	seedQuestTemplates(db)
	seedAssessmentQuestions(db)
	return nil
}

// 默认的激励短句
func seedMotivations(db *gorm.DB) {
	var count int64
	db.Model(&model.Motivation{}).Count(&count)
	if count > 0 {
		return
	}
	defaultMotivations := []string{
		"你今天完成的每一个小任务，都是未来职业版图上的一块砖。",
		"Consistency beats intensity. Show up every day.",
		"职业规划不是预测未来，而是为未来做好准备。",
		"The best time to start was yesterday. The next best time is now.",
	}
	for i, content := range defaultMotivations {
		motivation := &model.Motivation{
			Content:         content,
			IsEnabled:       true,
			IsCurrentlyUsed: i == 0,
		}
		db.Create(motivation)
	}
}

// 默认每日任务模板（每个类别至少两条，保证连击组合可达三类）
func seedQuestTemplates(db *gorm.DB) {
	var count int64
	db.Model(&model.QuestTemplate{}).Count(&count)
	if count > 0 {
		return
	}
	defaults := []model.QuestTemplate{
		{Code: "coding-session", Title: "Complete a coding session", Description: "Work through today's practice tasks from your roadmap.", Type: model.QuestDaily, Category: model.CategoryCoding, Points: 50, Total: 1, Enabled: true},
		{Code: "coding-challenge", Title: "Solve one coding challenge", Description: "Finish at least one challenge on your current topic.", Type: model.QuestDaily, Category: model.CategoryCoding, Points: 30, Total: 1, Enabled: true},
		{Code: "learning-study", Title: "Study for 30 minutes", Description: "Read or watch material scheduled for today.", Type: model.QuestDaily, Category: model.CategoryLearning, Points: 40, Total: 1, Enabled: true},
		{Code: "learning-note", Title: "Write a study note", Description: "Summarize what you learned today in your notes.", Type: model.QuestDaily, Category: model.CategoryLearning, Points: 20, Total: 1, Enabled: true},
		{Code: "community-post", Title: "Help someone in the community", Description: "Answer a question or comment on a post.", Type: model.QuestDaily, Category: model.CategoryCommunity, Points: 30, Total: 1, Enabled: true},
		{Code: "community-connect", Title: "Grow your network", Description: "Send or accept a friend request.", Type: model.QuestDaily, Category: model.CategoryCommunity, Points: 20, Total: 1, Enabled: true},
		{Code: "mentoring-checkin", Title: "Check in with your mentor", Description: "Share this week's progress with a mentor.", Type: model.QuestDaily, Category: model.CategoryMentoring, Points: 40, Total: 1, Enabled: true},
		{Code: "mentoring-feedback", Title: "Act on mentor feedback", Description: "Apply one piece of feedback you received.", Type: model.QuestWeekly, Category: model.CategoryMentoring, Points: 60, Total: 1, Enabled: true},
	}
	for _, t := range defaults {
		db.Create(&t)
	}
}

// 默认测评题库：Software Development 为兜底题库
func seedAssessmentQuestions(db *gorm.DB) {
	var count int64
	db.Model(&model.AssessmentQuestion{}).Count(&count)
	if count > 0 {
		return
	}
	defaults := []model.AssessmentQuestion{
		{Stream: "Software Development", Content: "Which data structure gives O(1) average lookup by key?", Options: []string{"Array", "Hash map", "Linked list", "Binary tree"}, CorrectAnswer: 1, Difficulty: model.DifficultyEasy, Skill: "Data Structures", Order: 1, Enabled: true},
		{Stream: "Software Development", Content: "What does HTTP status 404 mean?", Options: []string{"Server error", "Unauthorized", "Not found", "Redirect"}, CorrectAnswer: 2, Difficulty: model.DifficultyEasy, Skill: "Web Fundamentals", Order: 2, Enabled: true},
		{Stream: "Software Development", Content: "Which command records a snapshot in git history?", Options: []string{"git push", "git commit", "git fetch", "git status"}, CorrectAnswer: 1, Difficulty: model.DifficultyEasy, Skill: "Tooling", Order: 3, Enabled: true},
		{Stream: "Software Development", Content: "What is the time complexity of binary search?", Options: []string{"O(n)", "O(n log n)", "O(log n)", "O(1)"}, CorrectAnswer: 2, Difficulty: model.DifficultyMedium, Skill: "Algorithms", Order: 4, Enabled: true},
		{Stream: "Software Development", Content: "Which SQL clause filters rows after aggregation?", Options: []string{"WHERE", "HAVING", "GROUP BY", "ORDER BY"}, CorrectAnswer: 1, Difficulty: model.DifficultyMedium, Skill: "Databases", Order: 5, Enabled: true},
		{Stream: "Software Development", Content: "What problem does dependency injection primarily solve?", Options: []string{"Memory leaks", "Tight coupling", "Slow queries", "Race conditions"}, CorrectAnswer: 1, Difficulty: model.DifficultyMedium, Skill: "System Design", Order: 6, Enabled: true},
		{Stream: "Software Development", Content: "In a B+ tree index, where are row pointers stored?", Options: []string{"Every node", "Leaf nodes only", "Root node only", "Internal nodes only"}, CorrectAnswer: 1, Difficulty: model.DifficultyHard, Skill: "Databases", Order: 7, Enabled: true},
		{Stream: "Software Development", Content: "Which consistency model do most distributed caches provide by default?", Options: []string{"Strict serializability", "Eventual consistency", "Linearizability", "Snapshot isolation"}, CorrectAnswer: 1, Difficulty: model.DifficultyHard, Skill: "System Design", Order: 8, Enabled: true},

		{Stream: "Data Science", Content: "Which library is the de facto standard for dataframes in Python?", Options: []string{"numpy", "pandas", "requests", "flask"}, CorrectAnswer: 1, Difficulty: model.DifficultyEasy, Skill: "Tooling", Order: 1, Enabled: true},
		{Stream: "Data Science", Content: "What does a p-value below 0.05 conventionally indicate?", Options: []string{"Proof of causation", "Statistical significance", "Large effect size", "Normal distribution"}, CorrectAnswer: 1, Difficulty: model.DifficultyMedium, Skill: "Statistics", Order: 2, Enabled: true},
		{Stream: "Data Science", Content: "Which technique reduces overfitting by averaging many decorrelated trees?", Options: []string{"Boosting", "Random forest", "PCA", "K-means"}, CorrectAnswer: 1, Difficulty: model.DifficultyHard, Skill: "Machine Learning", Order: 3, Enabled: true},
	}
	for _, q := range defaults {
		db.Create(&q)
	}
}
