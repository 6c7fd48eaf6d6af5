package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindtrack/internal/config"
	domainservice "mindtrack/internal/domain/service"
	"mindtrack/internal/handler"
	"mindtrack/internal/infrastructure/cron"
	"mindtrack/internal/infrastructure/kafka"
	"mindtrack/internal/infrastructure/postgres"
	infraredis "mindtrack/internal/infrastructure/redis"
	"mindtrack/internal/logger"
	"mindtrack/internal/middleware"
	"mindtrack/internal/service"
	"mindtrack/internal/transport/grpc"
	"mindtrack/pkg/jwt"
)

// App represents the application
type App struct {
	config        *config.Config
	logger        *zap.Logger
	pgPool        *pgxpool.Pool
	redisClient   *goredis.Client
	kafkaProducer *kafka.Producer
	httpServer    *http.Server
	grpcServer    *grpc.Server
	sweeper       *cron.SessionSweeper
	rateLimiter   *middleware.RateLimiter
}

// New creates a new application
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logging, cfg.Service)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log.Info("configuration loaded", zap.String("environment", cfg.Service.Environment))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := postgres.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("connected to PostgreSQL")

	redisClient, err := infraredis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("connected to Redis")

	a := &App{
		config:      cfg,
		logger:      log,
		pgPool:      pgPool,
		redisClient: redisClient,
	}

	var events domainservice.EventPublisher = service.NopPublisher{}
	if cfg.Kafka.Enabled {
		a.kafkaProducer = kafka.NewProducer(&cfg.Kafka, log)
		events = a.kafkaProducer
		log.Info("kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pgPool)
	sessionRepo := postgres.NewSessionRepository(pgPool)
	habitRepo := postgres.NewHabitRepository(pgPool)
	habitRecordRepo := postgres.NewHabitRecordRepository(pgPool)
	moodRepo := postgres.NewMoodRepository(pgPool)
	goalRepo := postgres.NewGoalRepository(pgPool)
	sessionStorage := infraredis.NewSessionStorage(redisClient)

	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)

	// Services
	authService := service.NewAuthService(userRepo, sessionRepo, sessionStorage, tokenManager, events, log)
	userService := service.NewUserService(userRepo, events, log)
	recordService := service.NewRecordService(habitRepo, habitRecordRepo, moodRepo, goalRepo)
	reportService := service.NewReportService(recordService, cfg.Reports.Location(), cfg.Reports.DashboardDays, log)

	// HTTP
	a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, log)
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	router := handler.NewRouter(
		handler.NewAuthHandler(authService, userService, cfg.HTTP.SecureCookie, log),
		handler.NewUserHandler(userService, log),
		handler.NewRecordHandler(recordService, log),
		handler.NewReportHandler(reportService, log),
		middleware.NewAuthMiddleware(authService, log),
		a.rateLimiter,
		metricsPath,
		log,
	)
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	a.grpcServer = grpc.NewServer(cfg.GRPC, log)
	a.sweeper = cron.NewSessionSweeper(authService, cfg.Scheduler.SessionSweep, log)

	return a, nil
}

// Run starts the application and blocks until SIGINT/SIGTERM or a server failure
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.sweeper.Start(); err != nil {
		return err
	}
	go a.rateLimiter.Cleanup(ctx)

	errCh := make(chan error, 2)

	go func() {
		if err := a.grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		a.logger.Info("starting HTTP server", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case runErr = <-errCh:
		a.logger.Error("server failed, shutting down", zap.Error(runErr))
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	a.grpcServer.SetServing(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	a.grpcServer.Stop()
	a.sweeper.Stop()

	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			a.logger.Error("failed to close Kafka producer", zap.Error(err))
		}
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("failed to close Redis client", zap.Error(err))
	}
	a.pgPool.Close()

	a.logger.Info("server stopped")
	_ = a.logger.Sync()
}
