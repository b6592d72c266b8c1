package app

import (
	"career_guide_backend/docs"
	"career_guide_backend/internal/config"
	"career_guide_backend/internal/middleware"
	"career_guide_backend/internal/model"
	"career_guide_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.PUT("/profile/password", c.user.ChangePassword)
	rg.POST("/profile/avatar", c.user.UploadAvatar)
	rg.GET("/users/:id", c.user.GetUser)

	rg.GET("/dashboard", c.dashboard.Get)
	rg.GET("/leaderboard", c.quest.Leaderboard)

	// 入门问卷与路线图
	rg.POST("/onboarding", c.onboarding.Submit)
	rg.GET("/onboarding", c.onboarding.Get)
	rg.GET("/roadmap", c.roadmap.Get)
	rg.POST("/roadmap/regenerate", c.roadmap.Regenerate)
	rg.POST("/roadmap/tasks/complete", c.roadmap.CompleteTask)

	// 技能测评与差距分析
	rg.GET("/assessment/questions", c.assessment.GetQuestions)
	rg.POST("/assessment/submit", c.assessment.Submit)
	rg.GET("/assessment/result", c.assessment.LatestResult)
	rg.GET("/skill-gap/roles", c.skillGap.Roles)
	rg.GET("/skill-gap/analyze", c.skillGap.Analyze)

	// 每日任务与连击
	rg.GET("/quests/today", c.quest.GetToday)
	rg.POST("/quests/:id/complete", c.quest.Complete)
	rg.GET("/streaks", c.quest.GetStreaks)
	rg.POST("/streaks/freeze", c.quest.UseFreeze)

	// 好友
	rg.GET("/friends", c.friendship.GetFriends)
	rg.GET("/friends/search", c.friendship.SearchUsers)
	rg.POST("/friends/requests", c.friendship.SendRequest)
	rg.GET("/friends/requests", c.friendship.GetPendingRequests)
	rg.PUT("/friends/requests/:id", c.friendship.HandleRequest)
	rg.DELETE("/friends/:id", c.friendship.DeleteFriend)

	// 学习笔记
	rg.POST("/notes", c.note.Create)
	rg.GET("/notes", c.note.List)
	rg.PUT("/notes/:id", c.note.Update)
	rg.DELETE("/notes/:id", c.note.Delete)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disable", c.user.DisableUser)
	}
}
