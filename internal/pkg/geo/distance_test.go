package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/pkg/geo"
)

var (
	berlin  = domain.Coordinate{Lat: 52.52, Lon: 13.405}
	leipzig = domain.Coordinate{Lat: 51.3397, Lon: 12.3731}
	munich  = domain.Coordinate{Lat: 48.1351, Lon: 11.582}
	hamburg = domain.Coordinate{Lat: 53.5511, Lon: 9.9937}
)

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []domain.Coordinate{
		berlin, leipzig, munich, hamburg,
		{Lat: 0, Lon: 0},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: -179.9},
		{Lat: -90, Lon: 180},
	}

	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, geo.DistanceKm(a, b), geo.DistanceKm(b, a), "%v <-> %v", a, b)
			assert.Equal(t, geo.RawDistanceKm(a, b), geo.RawDistanceKm(b, a), "%v <-> %v", a, b)
		}
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	for _, p := range []domain.Coordinate{berlin, {Lat: 0, Lon: 0}, {Lat: -90, Lon: 180}} {
		assert.Equal(t, 0.0, geo.DistanceKm(p, p))
	}
}

func TestDistanceKm_OneDegreeOfLatitude(t *testing.T) {
	d := geo.DistanceKm(domain.Coordinate{Lat: 0, Lon: 0}, domain.Coordinate{Lat: 1, Lon: 0})
	assert.InDelta(t, 111.19, d, 0.5)

	d = geo.DistanceKm(domain.Coordinate{Lat: 45, Lon: 7}, domain.Coordinate{Lat: 46, Lon: 7})
	assert.InDelta(t, 111.19, d, 0.5)
}

func TestDistanceKm_KnownCities(t *testing.T) {
	assert.Equal(t, 149.1, geo.DistanceKm(berlin, leipzig))
	assert.Equal(t, 504.42, geo.DistanceKm(berlin, munich))
	assert.Equal(t, 255.25, geo.DistanceKm(berlin, hamburg))
}

func TestDistanceKm_RoundedToTwoDecimals(t *testing.T) {
	d := geo.DistanceKm(berlin, munich)
	assert.Equal(t, d, math.Round(d*100)/100)
	assert.InDelta(t, geo.RawDistanceKm(berlin, munich), d, 0.005)
}

func TestRawDistanceKm_MonotonicInSeparation(t *testing.T) {
	origin := domain.Coordinate{Lat: 10, Lon: 20}
	prev := 0.0
	for step := 1; step <= 170; step++ {
		d := geo.RawDistanceKm(origin, domain.Coordinate{Lat: 10, Lon: 20 + float64(step)})
		assert.Greater(t, d, prev, "step %d", step)
		prev = d
	}
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, geo.ValidCoordinate(berlin))
	assert.True(t, geo.ValidCoordinate(domain.Coordinate{Lat: -90, Lon: 180}))
	assert.False(t, geo.ValidCoordinate(domain.Coordinate{Lat: 90.1, Lon: 0}))
	assert.False(t, geo.ValidCoordinate(domain.Coordinate{Lat: 0, Lon: -180.5}))
}
