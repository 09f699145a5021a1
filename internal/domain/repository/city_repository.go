package repository

import (
	"context"

	"github.com/cities-geo-service/internal/domain"
)

// CityCatalog - неизменяемый каталог городов, загружается один раз при старте
type CityCatalog interface {
	FindByID(id string) (domain.City, bool)

	// Filter возвращает города в порядке хранения
	Filter(pred func(domain.City) bool) []domain.City

	All() []domain.City

	// Nearby возвращает надмножество городов в радиусе radiusKm от origin
	// (в порядке хранения); точную проверку расстояния делает вызывающий код
	Nearby(origin domain.Coordinate, radiusKm float64) []domain.City

	Len() int
}

// CitySource - внешний источник данных каталога (файл, база данных)
type CitySource interface {
	LoadAll(ctx context.Context) ([]domain.City, error)
}
