package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cities-geo-service/internal/repository/catalog"
	"github.com/cities-geo-service/internal/repository/catalog/catalogtest"
	"github.com/cities-geo-service/internal/repository/postgres"
	"github.com/cities-geo-service/internal/repository/postgres/testhelpers"
)

const migrationsDir = "../../../migrations"

// CityRepositoryTestSuite тестирует загрузку каталога из PostgreSQL
type CityRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   *postgres.CityRepository
	ctx    context.Context
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *CityRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.ctx, s.testDB.DB, migrationsDir)
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewCityRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite выполняется один раз после всех тестов
func (s *CityRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.NoError(testhelpers.RollbackMigrations(s.ctx, s.testDB.DB, migrationsDir))
		s.testDB.Close()
	}
}

// SetupTest очищает таблицу перед каждым тестом
func (s *CityRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *CityRepositoryTestSuite) TestImportAndLoadAll() {
	fixtures := catalogtest.Cities()
	s.Require().NoError(s.repo.Import(s.ctx, fixtures))

	cities, err := s.repo.LoadAll(s.ctx)
	s.Require().NoError(err)

	s.Equal(catalogtest.IDs(fixtures), catalogtest.IDs(cities), "storage order must be preserved")
	s.Equal("Berlin", cities[0].Name())
	s.Equal([]string{"capital", "river"}, cities[0].Tags)
	s.True(cities[0].IsActive)
	s.False(cities[2].IsActive)
	s.Equal([]string{}, cities[8].Tags)
}

func (s *CityRepositoryTestSuite) TestImportReplacesContent() {
	s.Require().NoError(s.repo.Import(s.ctx, catalogtest.Cities()))
	s.Require().NoError(s.repo.Import(s.ctx, catalogtest.Cities()[:2]))

	cities, err := s.repo.LoadAll(s.ctx)
	s.Require().NoError(err)
	s.Len(cities, 2)
}

func (s *CityRepositoryTestSuite) TestLoadIntoCatalog() {
	s.Require().NoError(s.repo.Import(s.ctx, catalogtest.Cities()))

	c, err := catalog.Load(s.ctx, s.repo)
	s.Require().NoError(err)
	s.Equal(len(catalogtest.Cities()), c.Len())

	_, ok := c.FindByID(catalogtest.BerlinID)
	s.True(ok)
}

func (s *CityRepositoryTestSuite) TestLoadAllEmptyGUIDFails() {
	s.Require().NoError(testhelpers.InsertRawCity(s.ctx, s.testDB.DB, "", 0, 1, 2))

	_, err := s.repo.LoadAll(s.ctx)
	s.Error(err)
}

func TestCityRepositorySuite(t *testing.T) {
	suite.Run(t, new(CityRepositoryTestSuite))
}
