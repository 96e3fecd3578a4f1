package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/liftlog/internal/models"
)

// QueryBarbells retrieves the barbell catalog.
func (db *DB) QueryBarbells(ctx context.Context) ([]models.Barbell, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, weight, unit FROM barbells ORDER BY weight ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying barbells: %w", err)
	}
	defer rows.Close()

	var result []models.Barbell
	for rows.Next() {
		var b models.Barbell
		if err := rows.Scan(&b.ID, &b.Name, &b.Weight, &b.Unit); err != nil {
			return nil, fmt.Errorf("scanning barbell: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// GetBarbell retrieves one barbell by ID.
func (db *DB) GetBarbell(ctx context.Context, id uuid.UUID) (models.Barbell, error) {
	var b models.Barbell
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, weight, unit FROM barbells WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Weight, &b.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Barbell{}, ErrBarbellNotFound
		}
		return models.Barbell{}, fmt.Errorf("querying barbell: %w", err)
	}
	return b, nil
}

// QueryPlates retrieves the plate denominations available in one unit,
// heaviest first, the order the plate loader consumes them in.
func (db *DB) QueryPlates(ctx context.Context, unit models.Unit) ([]models.Plate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, weight, unit FROM plates WHERE unit = $1 ORDER BY weight DESC`, unit)
	if err != nil {
		return nil, fmt.Errorf("querying plates: %w", err)
	}
	defer rows.Close()

	var result []models.Plate
	for rows.Next() {
		var p models.Plate
		if err := rows.Scan(&p.ID, &p.Weight, &p.Unit); err != nil {
			return nil, fmt.Errorf("scanning plate: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
