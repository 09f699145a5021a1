package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InsertRawCity вставляет строку в обход репозитория (для проверки валидации при загрузке)
func InsertRawCity(ctx context.Context, db *sqlx.DB, guid string, position int, lat, lon float64) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO cities (guid, position, latitude, longitude) VALUES ($1, $2, $3, $4)`,
		guid, position, lat, lon)
	if err != nil {
		return fmt.Errorf("insert raw city %q: %w", guid, err)
	}
	return nil
}
