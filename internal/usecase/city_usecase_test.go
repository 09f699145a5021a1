package usecase_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/repository/catalog"
	"github.com/cities-geo-service/internal/repository/catalog/catalogtest"
	"github.com/cities-geo-service/internal/usecase"
	"github.com/cities-geo-service/internal/usecase/dto"
)

func TestCityUseCase_FilterByTag(t *testing.T) {
	uc := usecase.NewCityUseCase(newFixtureCatalog(t), zap.NewNop())

	tests := []struct {
		name string
		req  dto.CitiesByTagRequest
		want []string
	}{
		{
			name: "active river cities",
			req:  dto.CitiesByTagRequest{Tag: "river", IsActive: "true"},
			want: []string{catalogtest.BerlinID, catalogtest.LeipzigID, catalogtest.HamburgID, catalogtest.PragueID},
		},
		{
			name: "inactive river cities",
			req:  dto.CitiesByTagRequest{Tag: "river", IsActive: "false"},
			want: []string{catalogtest.DresdenID},
		},
		{
			name: "missing isActive means inactive",
			req:  dto.CitiesByTagRequest{Tag: "port"},
			want: []string{catalogtest.SzczecinID, catalogtest.RostockID},
		},
		{
			name: "isActive is case sensitive",
			req:  dto.CitiesByTagRequest{Tag: "port", IsActive: "TRUE"},
			want: []string{catalogtest.SzczecinID, catalogtest.RostockID},
		},
		{
			name: "missing tag matches nothing",
			req:  dto.CitiesByTagRequest{IsActive: "true"},
			want: []string{},
		},
		{
			name: "unknown tag",
			req:  dto.CitiesByTagRequest{Tag: "desert", IsActive: "true"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := uc.FilterByTag(tt.req)
			require.NotNil(t, resp.Cities)
			assert.Equal(t, tt.want, catalogtest.IDs(resp.Cities))
		})
	}
}

func TestCityUseCase_Distance(t *testing.T) {
	uc := usecase.NewCityUseCase(newFixtureCatalog(t), zap.NewNop())

	t.Run("known pair", func(t *testing.T) {
		resp, err := uc.Distance(dto.DistanceRequest{From: catalogtest.BerlinID, To: catalogtest.MunichID})
		require.NoError(t, err)
		assert.Equal(t, "km", resp.Unit)
		assert.Equal(t, 504.42, resp.Distance)
		assert.Equal(t, catalogtest.BerlinID, resp.From.GUID)
		assert.Equal(t, catalogtest.MunichID, resp.To.GUID)
	})

	t.Run("same city", func(t *testing.T) {
		resp, err := uc.Distance(dto.DistanceRequest{From: catalogtest.PragueID, To: catalogtest.PragueID})
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.Distance)
	})

	t.Run("unknown city", func(t *testing.T) {
		_, err := uc.Distance(dto.DistanceRequest{From: catalogtest.BerlinID, To: "nowhere"})
		assert.ErrorIs(t, err, errors.ErrCityNotFound)

		_, err = uc.Distance(dto.DistanceRequest{To: catalogtest.BerlinID})
		assert.ErrorIs(t, err, errors.ErrCityNotFound)
	})
}

func TestCityUseCase_Export(t *testing.T) {
	uc := usecase.NewCityUseCase(newFixtureCatalog(t), zap.NewNop())

	data, err := uc.Export()
	require.NoError(t, err)

	var exported []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, len(catalogtest.Cities()))

	assert.Equal(t, catalogtest.BerlinID, exported[0]["guid"])
	assert.Equal(t, "Berlin", exported[0]["name"])
	assert.Equal(t, 10, uc.Count())
}

func TestCityUseCase_ExportFileCatalogVerbatim(t *testing.T) {
	// порядок ключей и запись чисел как в файле, не как после json.Marshal
	const document = `[
  {"name": "Zwickau", "longitude": 12.50, "latitude": 50.7167, "guid": "z", "isActive": true, "tags": ["x"]},
  {"guid": "a", "latitude": 1e1, "longitude": 2, "isActive": false, "tags": []}
]`
	path := filepath.Join(t.TempDir(), "addresses.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	cat, err := catalog.Load(context.Background(), catalog.NewFileSource(path, zap.NewNop()))
	require.NoError(t, err)

	uc := usecase.NewCityUseCase(cat, zap.NewNop())
	data, err := uc.Export()
	require.NoError(t, err)
	assert.Equal(t, document, string(data))
}
