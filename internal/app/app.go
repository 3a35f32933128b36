package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/riaz37/portfolio-backend/internal/config"
	"github.com/riaz37/portfolio-backend/internal/controller"
	"github.com/riaz37/portfolio-backend/internal/repository"
	"github.com/riaz37/portfolio-backend/internal/service"
	"github.com/riaz37/portfolio-backend/pkg/configwatcher"
	"github.com/riaz37/portfolio-backend/pkg/database"
	"github.com/riaz37/portfolio-backend/pkg/logger"
	"github.com/riaz37/portfolio-backend/pkg/monitoring"
	"github.com/riaz37/portfolio-backend/pkg/security"
	"github.com/riaz37/portfolio-backend/pkg/tracing"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config      *config.Config
	Router      *gin.Engine
	DB          *gorm.DB
	Redis       *redis.Client
	rateLimiter *security.RateLimiter
	watcherStop chan struct{}
}

type repositories struct {
	user       *repository.UserRepository
	curriculum *repository.CurriculumRepository
	progress   *repository.ProgressRepository
	streak     *repository.StreakRepository
	subscriber *repository.SubscriberRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	curriculum *service.CurriculumService
	progress   *service.ProgressService
	newsletter *service.NewsletterService
	playground *service.PlaygroundService
	github     *service.GitHubService
}

type controllers struct {
	auth       *controller.AuthController
	curriculum *controller.CurriculumController
	progress   *controller.ProgressController
	newsletter *controller.NewsletterController
	playground *controller.PlaygroundController
	github     *controller.GitHubController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		curriculum: repository.NewCurriculumRepository(db),
		progress:   repository.NewProgressRepository(db),
		streak:     repository.NewStreakRepository(db),
		subscriber: repository.NewSubscriberRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.curriculum = service.NewCurriculumService(repos.curriculum, rdb)

	loc, err := cfg.Progress.Location()
	if err != nil {
		// LoadConfig already validated the zone; this is unreachable in practice.
		logger.Log.Fatal("invalid progress timezone", zap.Error(err))
	}
	s.progress = service.NewProgressService(repos.progress, repos.streak, s.curriculum, loc)

	s.newsletter = service.NewNewsletterService(repos.subscriber)
	s.playground = service.NewPlaygroundService(cfg, rdb)
	s.github = service.NewGitHubService(cfg, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		curriculum: controller.NewCurriculumController(s.curriculum),
		progress:   controller.NewProgressController(s.progress),
		newsletter: controller.NewNewsletterController(s.newsletter),
		playground: controller.NewPlaygroundController(s.playground),
		github:     controller.NewGitHubController(s.github),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	a.rateLimiter = security.NewRateLimiter(maxRequests, window)
	router.Use(a.rateLimiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		watcherStop: make(chan struct{}),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	if err := services.auth.EnsureAdmin(); err != nil {
		logger.Log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("portfolio-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		*app.Config = *newCfg
	}, app.watcherStop)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.watcherStop != nil {
		close(a.watcherStop)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
