package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omr_backend/internal/config"
	"omr_backend/internal/controller"
	"omr_backend/internal/repository"
	"omr_backend/internal/service"
	"omr_backend/pkg/database"
	"omr_backend/pkg/logger"
	"omr_backend/pkg/monitoring"
	"omr_backend/pkg/security"
	"omr_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user    *repository.UserRepository
	subject *repository.SubjectRepository
	chapter *repository.ChapterRepository
	attempt *repository.AttemptRepository
}

type services struct {
	auth      *service.AuthService
	subject   *service.SubjectService
	chapter   *service.ChapterService
	attempt   *service.AttemptService
	analytics *service.AnalyticsService
	export    *service.ExportService
}

type controllers struct {
	auth      *controller.AuthController
	subject   *controller.SubjectController
	chapter   *controller.ChapterController
	attempt   *controller.AttemptController
	analytics *controller.AnalyticsController
	export    *controller.ExportController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		subject: repository.NewSubjectRepository(db),
		chapter: repository.NewChapterRepository(db),
		attempt: repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	analytics := service.NewAnalyticsService(
		repos.attempt,
		repos.chapter,
		rdb,
		time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second,
	)
	attempt := service.NewAttemptService(repos.attempt, repos.chapter, analytics, db)
	chapter := service.NewChapterService(repos.chapter, repos.subject, analytics)

	return &services{
		auth:      service.NewAuthService(repos.user, cfg),
		subject:   service.NewSubjectService(repos.subject, analytics),
		chapter:   chapter,
		attempt:   attempt,
		analytics: analytics,
		export:    service.NewExportService(attempt, chapter, cfg),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		subject:   controller.NewSubjectController(s.subject),
		chapter:   controller.NewChapterController(s.chapter),
		attempt:   controller.NewAttemptController(s.attempt),
		analytics: controller.NewAnalyticsController(s.analytics),
		export:    controller.NewExportController(s.export),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// redis 只承担分析缓存，连不上时降级为直查
		logger.Log.Warn("Redis unavailable, analytics cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("omr-grader", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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
