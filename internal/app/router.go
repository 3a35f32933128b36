package app

import (
	"github.com/gin-gonic/gin"
	"github.com/riaz37/portfolio-backend/docs"
	"github.com/riaz37/portfolio-backend/internal/config"
	"github.com/riaz37/portfolio-backend/internal/middleware"
	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/pkg/monitoring"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/curriculum/career-paths", c.curriculum.ListCareerPaths)
		public.GET("/curriculum/career-paths/:id", c.curriculum.GetCareerPath)
		public.GET("/curriculum/learning-paths/:id", c.curriculum.GetLearningPath)

		public.POST("/newsletter/subscribe", c.newsletter.Subscribe)
		public.POST("/newsletter/unsubscribe", c.newsletter.Unsubscribe)

		public.POST("/playground/execute", c.playground.Execute)
		public.GET("/playground/runtimes", c.playground.Runtimes)

		public.GET("/github/stats", c.github.GetStats)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/progress", c.progress.GetProgress)
		authGroup.POST("/progress", c.progress.UpdateProgress)
		authGroup.GET("/progress/career", c.progress.GetCareerProgress)
		authGroup.GET("/progress/streak", c.progress.GetStreak)
		authGroup.GET("/progress/skills", c.progress.GetSkillProgress)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/newsletter/subscribers", c.newsletter.ListSubscribers)
	}
}
