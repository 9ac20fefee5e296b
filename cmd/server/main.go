package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio_site/internal/config"
	"portfolio_site/internal/handlers"
	"portfolio_site/internal/logging"
	"portfolio_site/internal/services"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Content comes from the database when configured, the JSON files otherwise
	var store services.ContentStore = services.NewFileContent(cfg.ContentDir)
	if cfg.DatabaseURL != "" {
		db, err := services.InitDB(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := services.AutoMigrate(db, logger); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}
		store = services.NewDBContent(db)
	} else {
		logger.Info("DATABASE_URL not set, serving content from files", zap.String("dir", cfg.ContentDir))
	}

	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, caching and rate limiting disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	content := services.NewContentService(store, cache, time.Duration(cfg.CacheTTL)*time.Second, logger)
	if _, _, err := content.Warm(ctx); err != nil {
		logger.Warn("Failed to warm content", zap.Error(err))
	}

	renderer, err := handlers.NewTemplateRenderer(cfg.TemplatesDir)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	relay := services.NewFormRelay(cfg.FormEndpoint, &http.Client{Timeout: 15 * time.Second}, logger)
	if !relay.Enabled() {
		logger.Warn("No form endpoint configured, contact form will show the setup notice")
	}

	e := handlers.NewEcho(handlers.Deps{
		Renderer:   renderer,
		Content:    content,
		Cache:      cache,
		Relay:      relay,
		FormAction: cfg.FormAction(),
		StaticDir:  cfg.StaticDir,
		RateLimit:  cfg.ContactRateLimit,
		RateWindow: time.Duration(cfg.ContactRateWindow) * time.Second,

		TrustedProxies: cfg.TrustedProxies,
		Logger:         logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down server")
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
