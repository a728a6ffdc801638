package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"hermes/internal/adapters/config"
	"hermes/internal/adapters/errors/noop"
	"hermes/internal/adapters/errors/sentry"
	"hermes/internal/adapters/postgres"
	"hermes/internal/adapters/redis"
	"hermes/internal/adapters/search"
	"hermes/internal/api"
	"hermes/internal/api/health"
	repo "hermes/internal/repository/postgres"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Connect to PostgreSQL and ensure schema
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	if err := repo.EnsureSchema(context.Background(), pgClient.DB()); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Connect to Redis (optional, used as search result cache)
	var redisClient *redis.Client
	var searchCache search.Cache
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			log.Warnf("Failed to connect to Redis, search caching disabled: %v", err)
		} else {
			defer redisClient.Close()
			searchCache = search.NewRedisCache(redisClient, cfg.Search.CacheTTL)
			log.Info("Redis search cache enabled")
		}
	}

	analysisRepo := repo.NewAnalysisRepository(pgClient.DB())
	searchSvc := search.NewService(cfg.Search, searchCache)
	analysisHandler := api.NewAnalysisHandler(analysisRepo, searchSvc, cfg.AI, cfg.Engine)

	var redisRaw *goredis.Client
	if redisClient != nil {
		redisRaw = redisClient.Client()
	}
	healthHandler := health.New(log, pgClient.DB(), redisRaw, cfg.App.Name, cfg.App.Version)

	server := api.NewServer(api.ServerConfig{
		Port:         cfg.Server.Port,
		ServiceName:  cfg.App.Name,
		Version:      cfg.App.Version,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, analysisHandler, healthHandler, log)

	log.Info("System initialized successfully")

	// Start HTTP server
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infof("Received signal %s, shutting down...", sig)
	case err := <-serverErr:
		if err != nil {
			log.Errorf("HTTP server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}

	if err := errorTracker.Flush(shutdownCtx); err != nil {
		log.Warnf("Failed to flush error tracker: %v", err)
	}

	log.Info("Shutdown complete")
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}
