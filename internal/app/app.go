package app

import (
	"context"
	"feelio_backend/internal/config"
	"feelio_backend/internal/controller"
	"feelio_backend/internal/middleware"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/service"
	"feelio_backend/internal/util"
	"feelio_backend/pkg/configwatcher"
	"feelio_backend/pkg/database"
	"feelio_backend/pkg/logger"
	"feelio_backend/pkg/monitoring"
	"feelio_backend/pkg/security"
	"feelio_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	limiter         *security.IPRateLimiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	narrative *repository.NarrativeRepository
	response  *repository.ResponseRepository
	badge     *repository.BadgeRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	narrative   *service.NarrativeService
	scoring     *service.ScoringService
	response    *service.ResponseService
	achievement *service.AchievementService
	statistics  *service.StatisticsService
	ai          *service.AIService
	feedback    *service.FeedbackService
	classifier  *service.ClassifierService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	narrative   *controller.NarrativeController
	response    *controller.ResponseController
	achievement *controller.AchievementController
	feedback    *controller.FeedbackController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		narrative: repository.NewNarrativeRepository(db, rdb, time.Duration(cfg.Redis.NarrativeTTL)*time.Second),
		response:  repository.NewResponseRepository(db),
		badge:     repository.NewBadgeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	catalog, err := service.BadgeCatalogFromConfig(cfg.Badges)
	if err != nil {
		return nil, err
	}

	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user)
	s.user = service.NewUserService(repos.user)
	s.narrative = service.NewNarrativeService(repos.narrative, s.storage)
	s.scoring = service.NewScoringService(repos.user, repos.response, repos.badge, catalog)
	s.response = service.NewResponseService(db, repos.response, s.scoring)
	s.achievement = service.NewAchievementService(db, repos.badge, repos.response)
	s.statistics = service.NewStatisticsService(db, repos.user, repos.response)
	s.ai = service.NewAIService(cfg.AI)
	s.feedback = service.NewFeedbackService(s.ai)
	s.classifier = service.NewClassifierService(cfg.Classifier)

	// 外部模型配置支持热更新
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
		s.classifier.UpdateConfig(newCfg.Classifier)
	})

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user),
		narrative:   controller.NewNarrativeController(s.narrative),
		response:    controller.NewResponseController(s.response),
		achievement: controller.NewAchievementController(s.achievement, s.statistics),
		feedback:    controller.NewFeedbackController(s.feedback, s.classifier),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	a.limiter = security.NewIPRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化日志、数据库、缓存并装配路由
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时直接查库
		logger.Log.Warn("Redis unavailable, narrative cache disabled", zap.Error(err))
		rdb = nil
	}

	app, err := Build(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Storage.Type == util.StorageLocal {
		app.Router.Static("/uploads", cfg.Storage.LocalPath)
		app.Router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// Build 用已有的数据库与缓存连接装配应用，并写入徽章目录
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
		DB:        db,
		Redis:     rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		return nil, err
	}
	app.services = services

	if err := services.scoring.SyncCatalog(); err != nil {
		return nil, err
	}

	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	if a.limiter != nil {
		a.limiter.StartJanitor()
		defer a.limiter.Stop()
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		configFile := filepath.Join(a.ConfigDir, "config.yaml")
		if err := configwatcher.WatchConfig(watchCtx, configFile, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
