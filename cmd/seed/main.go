package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/config"
	"github.com/cities-geo-service/internal/pkg/logger"
	"github.com/cities-geo-service/internal/repository/catalog"
	"github.com/cities-geo-service/internal/repository/postgres"
)

// seed переносит JSON каталог в таблицу cities (для CATALOG_SOURCE=postgres)
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	path := flag.String("file", cfg.Catalog.Path, "JSON catalog to import")
	flag.Parse()

	log, err := logger.New(cfg.Log.Level, "cities-seed")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cities, err := catalog.NewFileSource(*path, log).LoadAll(ctx)
	if err != nil {
		log.Fatal("Failed to read catalog file", zap.Error(err))
	}
	// дубликаты guid отсекаются так же, как при старте API
	if _, err := catalog.New(cities); err != nil {
		log.Fatal("Invalid catalog", zap.Error(err))
	}

	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	if err := postgres.NewCityRepository(db).Import(ctx, cities); err != nil {
		log.Error("Failed to import catalog", zap.Error(err))
		return
	}

	log.Info("Catalog imported", zap.String("file", *path), zap.Int("cities", len(cities)))
}
