// Package geo computes great-circle distances between catalog coordinates.
package geo

import (
	"math"

	"github.com/umahmood/haversine"

	"github.com/cities-geo-service/internal/domain"
)

// EarthRadiusKm matches the sphere used by the haversine package.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine distance rounded to 2 decimal places.
// The rounded value is what clients see and what radius searches compare against.
func DistanceKm(a, b domain.Coordinate) float64 {
	return Round2(RawDistanceKm(a, b))
}

// RawDistanceKm returns the unrounded haversine distance.
// Inputs are not validated.
func RawDistanceKm(a, b domain.Coordinate) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidCoordinate reports whether c is inside the lat/lon ranges.
func ValidCoordinate(c domain.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// DegreesToRadians converts an angle.
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

// RadiansToDegrees converts an angle.
func RadiansToDegrees(r float64) float64 {
	return r * 180 / math.Pi
}
