package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SeedDestinations вставляет направления и возвращает их id в порядке names
func SeedDestinations(ctx context.Context, db *sqlx.DB, names ...string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var id int64
		if err := db.QueryRowContext(ctx,
			"INSERT INTO destinos (nombre) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
			return nil, fmt.Errorf("seed destination %s: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SeedAirline вставляет авиакомпанию
func SeedAirline(ctx context.Context, db *sqlx.DB, name string) (int64, error) {
	var id int64
	if err := db.QueryRowContext(ctx,
		"INSERT INTO aerolineas (nombre) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("seed airline %s: %w", name, err)
	}
	return id, nil
}

// CountRows считает строки таблицы по tour_id
func CountRows(ctx context.Context, db *sqlx.DB, table string, tourID int64) (int, error) {
	var n int
	err := db.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE tour_id = $1", table), tourID)
	return n, err
}
