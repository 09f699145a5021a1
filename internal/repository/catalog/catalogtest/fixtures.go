// Package catalogtest provides a small, fixed city catalog for tests.
package catalogtest

import (
	"encoding/json"

	"github.com/cities-geo-service/internal/domain"
)

const (
	BerlinID   = "ed354fef-31d3-44a9-b92f-4a3bd7eb0408"
	LeipzigID  = "3b7c3f9e-59a2-4a4b-9d53-0c4f6c2a9a11"
	DresdenID  = "9b0c6e3a-1f5e-4b9a-8f7e-2d1e4b6c7a22"
	HamburgID  = "c2d4e6f8-0a1b-4c3d-8e5f-6a7b8c9d0e33"
	HannoverID = "5f1e2d3c-4b5a-4968-8776-a5b4c3d2e144"
	SzczecinID = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c55"
	MunichID   = "f0e1d2c3-b4a5-4697-8879-6a5b4c3d2e66"
	PragueID   = "0d9c8b7a-6f5e-4d3c-ab2a-190817263577"
	PoznanID   = "7e6d5c4b-3a29-4180-9f7e-6d5c4b3a2988"
	RostockID  = "1a2b3c4d-5e6f-4708-9a1b-2c3d4e5f6a99"
)

// Distances from Berlin, rounded to 2 decimals:
// Leipzig 149.1, Dresden 165.0, Hamburg 255.25, Hannover 249.41, Szczecin 126.93,
// Munich 504.42, Prague 281.13, Poznan 238.8, Rostock 195.18.

// Cities returns the fixture catalog in storage order.
func Cities() []domain.City {
	return []domain.City{
		city(BerlinID, "Berlin", 52.52, 13.405, true, "capital", "river"),
		city(LeipzigID, "Leipzig", 51.3397, 12.3731, true, "river"),
		city(DresdenID, "Dresden", 51.0504, 13.7373, false, "river", "baroque"),
		city(HamburgID, "Hamburg", 53.5511, 9.9937, true, "port", "river"),
		city(HannoverID, "Hannover", 52.3759, 9.732, true, "fair"),
		city(SzczecinID, "Szczecin", 53.4285, 14.5528, false, "port"),
		city(MunichID, "Munich", 48.1351, 11.582, true, "capital"),
		city(PragueID, "Prague", 50.0755, 14.4378, true, "capital", "river"),
		city(PoznanID, "Poznan", 52.4064, 16.9252, true),
		city(RostockID, "Rostock", 54.0924, 12.0991, false, "port"),
	}
}

// WithinRadiusOfBerlin lists the fixture cities at most 250 km from Berlin, in storage order.
func WithinRadiusOfBerlin() []string {
	return []string{LeipzigID, DresdenID, HannoverID, SzczecinID, PoznanID, RostockID}
}

func city(id, name string, lat, lon float64, active bool, tags ...string) domain.City {
	rawName, _ := json.Marshal(name)
	if tags == nil {
		tags = []string{}
	}
	return domain.City{
		GUID:       id,
		Latitude:   lat,
		Longitude:  lon,
		Tags:       tags,
		IsActive:   active,
		Attributes: map[string]json.RawMessage{"name": rawName},
	}
}

// IDs extracts guids preserving order.
func IDs(cities []domain.City) []string {
	ids := make([]string, 0, len(cities))
	for _, c := range cities {
		ids = append(ids, c.GUID)
	}
	return ids
}
