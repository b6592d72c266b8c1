package app

import (
	"career_guide_backend/internal/config"
	"career_guide_backend/internal/controller"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/service"
	"career_guide_backend/pkg/database"
	"career_guide_backend/pkg/logger"
	"career_guide_backend/pkg/monitoring"
	"career_guide_backend/pkg/security"
	"career_guide_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	onboarding *repository.OnboardingRepository
	roadmap    *repository.RoadmapRepository
	quest      *repository.QuestRepository
	streak     *repository.StreakRepository
	assessment *repository.AssessmentRepository
	friendship *repository.FriendshipRepository
	note       *repository.NoteRepository
	motivation *repository.MotivationRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	onboarding *service.OnboardingService
	ai         *service.AIRoadmapService
	roadmap    *service.RoadmapService
	assessment *service.AssessmentService
	skillGap   *service.SkillGapService
	quest      *service.QuestService
	friendship *service.FriendshipService
	note       *service.NoteService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	onboarding *controller.OnboardingController
	roadmap    *controller.RoadmapController
	assessment *controller.AssessmentController
	skillGap   *controller.SkillGapController
	quest      *controller.QuestController
	friendship *controller.FriendshipController
	dashboard  *controller.DashboardController
	note       *controller.NoteController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热加载入口，支持热更的配置在这里下发
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config.AI = cfg.AI
	a.Config.RateLimit = cfg.RateLimit
	if a.services != nil && a.services.ai != nil {
		a.services.ai.UpdateConfig(cfg.AI)
	}
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		onboarding: repository.NewOnboardingRepository(db),
		roadmap:    repository.NewRoadmapRepository(db),
		quest:      repository.NewQuestRepository(db),
		streak:     repository.NewStreakRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		friendship: repository.NewFriendshipRepository(db, rdb),
		note:       repository.NewNoteRepository(db),
		motivation: repository.NewMotivationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.onboarding = service.NewOnboardingService(repos.onboarding)
	s.ai = service.NewAIRoadmapService(cfg.AI)
	s.roadmap = service.NewRoadmapService(repos.roadmap, repos.onboarding, s.ai)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.user)
	s.skillGap = service.NewSkillGapService(repos.assessment, repos.user)
	s.quest = service.NewQuestService(repos.quest, repos.streak, repos.user, rdb)
	s.friendship = service.NewFriendshipService(repos.friendship, repos.user)
	s.note = service.NewNoteService(repos.note)
	s.dashboard = service.NewDashboardService(
		repos.user,
		repos.roadmap,
		repos.streak,
		repos.friendship,
		repos.motivation,
		s.quest,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		onboarding: controller.NewOnboardingController(s.onboarding, s.roadmap),
		roadmap:    controller.NewRoadmapController(s.roadmap),
		assessment: controller.NewAssessmentController(s.assessment),
		skillGap:   controller.NewSkillGapController(s.skillGap),
		quest:      controller.NewQuestController(s.quest),
		friendship: controller.NewFriendshipController(s.friendship),
		dashboard:  controller.NewDashboardController(s.dashboard),
		note:       controller.NewNoteController(s.note),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 夜间清理断掉的连击
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if err := s.quest.SweepStaleStreaks(time.Now()); err != nil {
				logger.Log.Error("streak sweep error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式默认跳过自动迁移，需显式传 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Log.Info("Database migration completed")
	}

	// 仅迁移模式下不再初始化其余组件
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("career-guide", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
