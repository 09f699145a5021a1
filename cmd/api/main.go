package main

// @title Cities Geo Service API
// @version 1.0
// @description Каталог городов: фильтр по тегу и статусу, расстояние между городами,
// @description асинхронный поиск городов в радиусе и выгрузка каталога.

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/cities-geo-service/docs"
	"github.com/cities-geo-service/internal/config"
	httpDelivery "github.com/cities-geo-service/internal/delivery/http"
	"github.com/cities-geo-service/internal/delivery/http/handler"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/logger"
	"github.com/cities-geo-service/internal/repository/catalog"
	"github.com/cities-geo-service/internal/repository/memory"
	"github.com/cities-geo-service/internal/repository/postgres"
	redisRepo "github.com/cities-geo-service/internal/repository/redis"
	"github.com/cities-geo-service/internal/usecase"
	"github.com/cities-geo-service/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "cities-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Cities Geo Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.Duration("search_delay", cfg.Jobs.Delay),
	)

	// 3. Load catalog; any failure is fatal
	var (
		source      repository.CitySource
		closeSource = func() {}
	)
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := postgres.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		// каталог читается один раз, соединение после загрузки не нужно
		closeSource = func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}
		source = postgres.NewCityRepository(db)
	default:
		source = catalog.NewFileSource(cfg.Catalog.Path, log)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	cities, err := catalog.Load(loadCtx, source)
	cancelLoad()
	closeSource()
	if err != nil {
		log.Fatal("Failed to load city catalog", zap.Error(err))
	}
	log.Info("City catalog loaded", zap.Int("cities", cities.Len()))

	// 4. Job store and scheduler
	jobRepo := memory.NewJobRepository(cfg.Jobs.Retention)
	scheduler := worker.NewDelayedScheduler(cfg.Jobs.Workers, cfg.Jobs.QueueSize, log)

	// 5. Optional completion events
	var runnerOpts []usecase.RunnerOption
	if cfg.Events.Enabled {
		redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Events.MaxLen, log)
		runnerOpts = append(runnerOpts,
			usecase.WithEventPublisher(redisRepo.NewSearchEventPublisher(streamRepo, cfg.Events.Stream)))
		log.Info("Search events enabled", zap.String("stream", cfg.Events.Stream))
	}

	// 6. Initialize Use Cases
	cityUC := usecase.NewCityUseCase(cities, log)
	runner := usecase.NewJobRunner(cities, jobRepo, scheduler, log, cfg.Jobs.Delay, runnerOpts...)

	// 7. Initialize HTTP Handlers and Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewCityHandler(cityUC, log),
		handler.NewAreaHandler(runner, log),
		handler.NewHealthHandler(cityUC, runner),
	)

	// 8. Start scheduler pool
	workerManager := worker.NewWorkerManager(log, cfg.Jobs.ShutdownTimeout)
	workerManager.Register(scheduler)
	if err := workerManager.Start(context.Background()); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Serve until signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", zap.Error(err))
		}
		return workerManager.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return
	}

	log.Info("Server stopped successfully")
}
