package usecase

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/geo"
	"github.com/cities-geo-service/internal/usecase/dto"
)

const distanceUnit = "km"

// CityUseCase - синхронные запросы к каталогу городов
type CityUseCase struct {
	catalog repository.CityCatalog
	logger  *zap.Logger
}

// NewCityUseCase - создание нового CityUseCase
func NewCityUseCase(catalog repository.CityCatalog, logger *zap.Logger) *CityUseCase {
	return &CityUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

// FilterByTag - города, у которых есть тег и флаг активности совпадает.
// Пустой тег не совпадает ни с одним городом.
func (uc *CityUseCase) FilterByTag(req dto.CitiesByTagRequest) *dto.CitiesResponse {
	active := req.Active()

	cities := uc.catalog.Filter(func(c domain.City) bool {
		return req.Tag != "" && c.HasTag(req.Tag) && c.IsActive == active
	})

	return &dto.CitiesResponse{Cities: cities}
}

// Distance - расстояние между двумя городами, округлённое до сотых
func (uc *CityUseCase) Distance(req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	from, ok := uc.catalog.FindByID(req.From)
	if !ok {
		return nil, errors.ErrCityNotFound
	}
	to, ok := uc.catalog.FindByID(req.To)
	if !ok {
		return nil, errors.ErrCityNotFound
	}

	return &dto.DistanceResponse{
		From:     from,
		To:       to,
		Unit:     distanceUnit,
		Distance: geo.DistanceKm(from.Coordinate(), to.Coordinate()),
	}, nil
}

// rawCatalog - каталог, помнящий исходный документ
type rawCatalog interface {
	Raw() []byte
}

// Export - весь каталог в JSON, в порядке хранения. Каталог из файла
// отдаётся байт в байт; иначе записи сериализуются заново.
func (uc *CityUseCase) Export() ([]byte, error) {
	if rc, ok := uc.catalog.(rawCatalog); ok {
		if raw := rc.Raw(); raw != nil {
			return raw, nil
		}
	}

	data, err := json.Marshal(uc.catalog.All())
	if err != nil {
		uc.logger.Error("Failed to marshal catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}

func (uc *CityUseCase) Count() int {
	return uc.catalog.Len()
}
