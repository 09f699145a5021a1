package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/validator"
)

// FileSource читает каталог из JSON-файла: упорядоченный массив записей City
type FileSource struct {
	path   string
	logger *zap.Logger
	raw    []byte
}

var _ repository.CitySource = (*FileSource)(nil)

func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

func (s *FileSource) LoadAll(ctx context.Context) ([]domain.City, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	cities, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", s.path, err)
	}
	s.raw = data

	s.logger.Info("Catalog file loaded",
		zap.String("path", s.path),
		zap.Int("cities", len(cities)),
	)
	return cities, nil
}

// Raw - содержимое файла в том виде, в каком оно было прочитано LoadAll
func (s *FileSource) Raw() []byte {
	return s.raw
}

// Decode разбирает JSON-массив городов и валидирует каждую запись
func Decode(data []byte) ([]domain.City, error) {
	var cities []domain.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := ValidateCities(cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func ValidateCities(cities []domain.City) error {
	for i := range cities {
		if err := validator.Validate(&cities[i]); err != nil {
			return fmt.Errorf("invalid city #%d (%q): %w", i, cities[i].GUID, err)
		}
	}
	return nil
}

// rawSource - источник, который может отдать исходный документ каталога
type rawSource interface {
	Raw() []byte
}

// Load читает источник и строит каталог. Исходный документ (если источник его
// хранит) сохраняется для выгрузки без пересериализации.
func Load(ctx context.Context, source repository.CitySource) (*Catalog, error) {
	cities, err := source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	c, err := New(cities)
	if err != nil {
		return nil, err
	}
	if rs, ok := source.(rawSource); ok && rs.Raw() != nil {
		c.raw = append([]byte(nil), rs.Raw()...)
	}
	return c, nil
}
