package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plantshop/backend/config"
	httpDelivery "github.com/plantshop/backend/internal/delivery/http"
	"github.com/plantshop/backend/internal/domain"
	"github.com/plantshop/backend/internal/infrastructure/cache"
	"github.com/plantshop/backend/internal/infrastructure/metrics"
	"github.com/plantshop/backend/internal/infrastructure/plantapi"
	"github.com/plantshop/backend/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newCache builds the snapshot cache selected by cache.type
func newCache(cfg *config.Config, logger *zap.Logger) (domain.CacheRepository, func(), error) {
	switch cfg.Cache.Type {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		logger.Info("redis ping succeeded", zap.String("addr", cfg.Redis.Addr))

		redisCache := cache.NewRedisCache(client)
		return redisCache, func() { _ = redisCache.Close() }, nil
	default:
		memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
		return memoryCache, memoryCache.Close, nil
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting plantshop backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Initialize infrastructure dependencies
	snapshotCache, closeCache, err := newCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	recorder := metrics.NewRecorder()

	catalogClient := plantapi.NewClient(plantapi.ClientConfig{
		BaseURL:           cfg.Catalog.BaseURL,
		Path:              cfg.Catalog.Path,
		Timeout:           cfg.Catalog.RequestTimeout,
		MaxRetries:        cfg.Catalog.MaxRetries,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
		BreakerFailures:   cfg.Catalog.BreakerFailures,
		BreakerCooldown:   cfg.Catalog.BreakerCooldown,
	}, logger)

	logger.Info("catalog API configured",
		zap.String("base_url", cfg.Catalog.BaseURL),
		zap.String("path", cfg.Catalog.Path),
		zap.Duration("request_timeout", cfg.Catalog.RequestTimeout),
		zap.Duration("refresh_timeout", cfg.Catalog.Timeout),
		zap.Int("max_retries", cfg.Catalog.MaxRetries),
		zap.Int("breaker_failures", cfg.Catalog.BreakerFailures),
	)

	// Initialize usecase layer
	storefront := usecase.NewStorefrontService(catalogClient, snapshotCache, usecase.StorefrontServiceConfig{
		CacheTTL:     cfg.Cache.TTL,
		FetchTimeout: cfg.Catalog.Timeout,
		Display: plantapi.Display{
			PlaceholderImage:       cfg.Display.PlaceholderImage,
			PlaceholderDescription: cfg.Display.PlaceholderDescription,
			CurrencySymbol:         cfg.Display.CurrencySymbol,
		},
		Logger:  logger,
		Metrics: recorder,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The first load runs in the background; until it lands the catalog renders as loading.
	go func() {
		if err := storefront.Refresh(ctx, false); err != nil {
			logger.Warn("initial catalog load failed", zap.Error(err))
		}
	}()

	handler := httpDelivery.NewHandler(storefront, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger, recorder.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
