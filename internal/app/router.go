package app

import (
	"omr_backend/docs"
	"omr_backend/internal/config"
	"omr_backend/internal/middleware"
	"omr_backend/internal/model"
	"omr_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由：学生作答与查询无需登录
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/options", c.chapter.GetOptionLetters)
		public.GET("/subjects", c.subject.ListSubjects)
		public.GET("/chapters", c.chapter.ListChapters)
		public.GET("/chapters/:id", c.chapter.GetChapter)
		public.GET("/chapters/by-name/:name", c.chapter.GetChapterByName)

		public.POST("/attempts", c.attempt.SubmitAttempt)
		public.GET("/attempts", c.attempt.ListAttempts)
		public.GET("/attempts/count", c.attempt.GetAttemptCount)
		public.GET("/results/:chapterName", c.attempt.GetResults)

		public.GET("/analytics", c.analytics.GetDashboard)
		public.GET("/analytics/top-performers", c.analytics.GetTopPerformers)
	}

	// 教务路由：章节与科目的增删改、报表导出
	staff := router.Group("/api")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		staff.POST("/subjects", c.subject.CreateSubject)
		staff.DELETE("/subjects/:id", c.subject.DeleteSubject)

		staff.POST("/chapters", c.chapter.CreateChapter)
		staff.PUT("/chapters/:id", c.chapter.UpdateChapter)
		staff.DELETE("/chapters/:id", c.chapter.DeleteChapter)

		staff.GET("/attempts/:id/export", c.export.ExportAttempt)
	}
}
