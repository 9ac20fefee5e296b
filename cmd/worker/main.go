package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"portfolio_site/internal/config"
	"portfolio_site/internal/logging"
	"portfolio_site/internal/services"
	"portfolio_site/internal/tasks"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL not set, the worker reads tasks from the database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := services.InitDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := services.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, cache tasks will only read the database", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	dbContent := services.NewDBContent(db)
	deps := tasks.Deps{
		Files:   services.NewFileContent(cfg.ContentDir),
		Store:   dbContent,
		Content: services.NewContentService(dbContent, cache, time.Duration(cfg.CacheTTL)*time.Second, logger),
		Logger:  logger,
	}

	tasks.DefineTasks(tasks.GlobalRegistry)
	runner := tasks.NewRunner(db, tasks.GlobalRegistry, deps, logger)

	interval := time.Duration(cfg.WorkerIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	logger.Info("Worker started", zap.Duration("interval", interval), zap.Strings("tasks", tasks.GlobalRegistry.Names()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once on start, then on every tick
	for {
		if err := runner.RunDue(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Processing tasks failed", zap.Error(err))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.Info("Shutting down worker")
			return
		}
	}
}
