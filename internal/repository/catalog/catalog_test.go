package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/pkg/geo"
	"github.com/cities-geo-service/internal/repository/catalog"
	"github.com/cities-geo-service/internal/repository/catalog/catalogtest"
)

func newFixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalogtest.Cities())
	require.NoError(t, err)
	return c
}

func TestCatalog_FindByID(t *testing.T) {
	c := newFixtureCatalog(t)

	city, ok := c.FindByID(catalogtest.HamburgID)
	require.True(t, ok)
	assert.Equal(t, "Hamburg", city.Name())

	_, ok = c.FindByID("missing")
	assert.False(t, ok)

	_, ok = c.FindByID("")
	assert.False(t, ok)
}

func TestCatalog_RejectsDuplicateGUID(t *testing.T) {
	cities := catalogtest.Cities()
	cities = append(cities, domain.City{GUID: catalogtest.BerlinID})

	_, err := catalog.New(cities)
	assert.Error(t, err)
}

func TestCatalog_RejectsCoordinatesOutOfRange(t *testing.T) {
	cities := catalogtest.Cities()
	cities = append(cities, domain.City{GUID: "off-the-map", Latitude: 91, Longitude: 10})

	_, err := catalog.New(cities)
	assert.Error(t, err)
}

func TestCatalog_FilterKeepsStorageOrder(t *testing.T) {
	c := newFixtureCatalog(t)

	rivers := c.Filter(func(city domain.City) bool { return city.HasTag("river") })
	assert.Equal(t, []string{
		catalogtest.BerlinID,
		catalogtest.LeipzigID,
		catalogtest.DresdenID,
		catalogtest.HamburgID,
		catalogtest.PragueID,
	}, catalogtest.IDs(rivers))

	none := c.Filter(func(domain.City) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := newFixtureCatalog(t)

	all := c.All()
	require.Len(t, all, c.Len())
	all[0] = domain.City{GUID: "changed"}

	first := c.All()[0]
	assert.Equal(t, catalogtest.BerlinID, first.GUID)
}

func TestCatalog_NearbyIsSupersetOfRadius(t *testing.T) {
	c := newFixtureCatalog(t)
	berlin, _ := c.FindByID(catalogtest.BerlinID)

	for _, radius := range []float64{0, 50, 126.93, 150, 249.41, 250, 300, 600, 5000, 30000} {
		candidates := catalogtest.IDs(c.Nearby(berlin.Coordinate(), radius))

		for _, city := range c.All() {
			if geo.DistanceKm(berlin.Coordinate(), city.Coordinate()) <= radius {
				assert.Contains(t, candidates, city.GUID, "radius %v", radius)
			}
		}
	}
}

func TestCatalog_NearbyPrunesFarCities(t *testing.T) {
	c := newFixtureCatalog(t)
	berlin, _ := c.FindByID(catalogtest.BerlinID)

	candidates := catalogtest.IDs(c.Nearby(berlin.Coordinate(), 100))

	assert.Contains(t, candidates, catalogtest.BerlinID)
	assert.NotContains(t, candidates, catalogtest.MunichID)
	assert.NotContains(t, candidates, catalogtest.PragueID)
}

func TestCatalog_NearbyFallsBackNearPolesAndAntimeridian(t *testing.T) {
	cities := []domain.City{
		{GUID: "west", Latitude: 10, Longitude: -179.9},
		{GUID: "east", Latitude: 10, Longitude: 179.9},
		{GUID: "pole", Latitude: 89.95, Longitude: 0},
		{GUID: "other-side", Latitude: 89.95, Longitude: 180},
	}
	c, err := catalog.New(cities)
	require.NoError(t, err)

	across := catalogtest.IDs(c.Nearby(domain.Coordinate{Lat: 10, Lon: 179.9}, 50))
	assert.Contains(t, across, "west")

	polar := catalogtest.IDs(c.Nearby(domain.Coordinate{Lat: 89.95, Lon: 0}, 20))
	assert.Contains(t, polar, "other-side")
}
