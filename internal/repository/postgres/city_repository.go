package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/validator"
)

// cityRow - строка таблицы cities; attributes хранит поля, которые сервис не интерпретирует
type cityRow struct {
	GUID       string         `db:"guid"`
	Position   int            `db:"position"`
	Latitude   float64        `db:"latitude"`
	Longitude  float64        `db:"longitude"`
	Tags       pq.StringArray `db:"tags"`
	IsActive   bool           `db:"is_active"`
	Attributes string         `db:"attributes"`
}

// CityRepository - каталог городов в PostgreSQL
type CityRepository struct {
	db     *DB
	logger *zap.Logger
}

var _ repository.CitySource = (*CityRepository)(nil)

// NewCityRepository создает новый экземпляр city repository
func NewCityRepository(db *DB) *CityRepository {
	return &CityRepository{
		db:     db,
		logger: db.logger,
	}
}

// LoadAll читает весь каталог в порядке position
func (r *CityRepository) LoadAll(ctx context.Context) ([]domain.City, error) {
	query := `
		SELECT guid, position, latitude, longitude, tags, is_active, attributes::text AS attributes
		FROM cities
		ORDER BY position, guid
	`

	var rows []cityRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("failed to load cities", zap.Error(err))
		return nil, fmt.Errorf("load cities: %w", err)
	}

	cities := make([]domain.City, 0, len(rows))
	for _, row := range rows {
		city, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		if err := validator.Validate(&city); err != nil {
			return nil, fmt.Errorf("invalid city %q: %w", row.GUID, err)
		}
		cities = append(cities, city)
	}

	r.logger.Info("Catalog loaded from database", zap.Int("cities", len(cities)))
	return cities, nil
}

// Import заменяет содержимое таблицы; порядок cities сохраняется в position
func (r *CityRepository) Import(ctx context.Context, cities []domain.City) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cities`); err != nil {
		return fmt.Errorf("clear cities: %w", err)
	}

	query := `
		INSERT INTO cities (guid, position, latitude, longitude, tags, is_active, attributes)
		VALUES (:guid, :position, :latitude, :longitude, :tags, :is_active, CAST(:attributes AS jsonb))
	`
	for i, city := range cities {
		row, err := newCityRow(i, city)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("insert city %q: %w", city.GUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	r.logger.Info("Catalog imported", zap.Int("cities", len(cities)))
	return nil
}

func newCityRow(position int, c domain.City) (cityRow, error) {
	attrs := c.Attributes
	if attrs == nil {
		attrs = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return cityRow{}, fmt.Errorf("marshal attributes of %q: %w", c.GUID, err)
	}

	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return cityRow{
		GUID:       c.GUID,
		Position:   position,
		Latitude:   c.Latitude,
		Longitude:  c.Longitude,
		Tags:       pq.StringArray(tags),
		IsActive:   c.IsActive,
		Attributes: string(raw),
	}, nil
}

func (row cityRow) toDomain() (domain.City, error) {
	city := domain.City{
		GUID:      row.GUID,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		Tags:      []string(row.Tags),
		IsActive:  row.IsActive,
	}
	if city.Tags == nil {
		city.Tags = []string{}
	}

	if row.Attributes != "" {
		var attrs map[string]json.RawMessage
		if err := json.Unmarshal([]byte(row.Attributes), &attrs); err != nil {
			return domain.City{}, fmt.Errorf("decode attributes of %q: %w", row.GUID, err)
		}
		if len(attrs) > 0 {
			city.Attributes = attrs
		}
	}
	return city, nil
}
