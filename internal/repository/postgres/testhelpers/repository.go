package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/repository/postgres"
)

// NewCityRepositoryForTest creates a city repository with test database and logger
func NewCityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) *postgres.CityRepository {
	return postgres.NewCityRepository(postgres.NewDBForTest(db, logger))
}
