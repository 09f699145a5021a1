package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/config"
	"github.com/cities-geo-service/internal/pkg/logger"
	redisRepo "github.com/cities-geo-service/internal/repository/redis"
	"github.com/cities-geo-service/internal/worker"
	"github.com/cities-geo-service/internal/worker/audit"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if events are enabled
	if !cfg.Events.Enabled {
		fmt.Println("Search events are disabled in configuration. Set EVENTS_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "cities-audit-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Search Audit Worker")
	log.Info("Configuration loaded",
		zap.String("stream", cfg.Events.Stream),
		zap.String("consumer_group", cfg.Events.ConsumerGroup))

	// 3. Connect to Redis
	redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and workers
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Events.MaxLen, log)
	auditWorker := audit.NewSearchAuditWorker(
		streamRepo,
		cfg.Events.Stream,
		cfg.Events.ConsumerGroup,
		log,
	)

	// 5. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, cfg.Jobs.ShutdownTimeout)
	workerManager.Register(auditWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	stats := auditWorker.Stats()
	log.Info("Worker shutdown complete",
		zap.Int("events", stats.Events),
		zap.Int("cities", stats.Cities),
		zap.Int("malformed", stats.Malformed))
}
