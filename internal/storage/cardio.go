package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/liftlog/internal/models"
)

// CreateCardio inserts a cardio routine.
func (db *DB) CreateCardio(ctx context.Context, title string, minutes, incline, speed float64) (models.CardioEntry, error) {
	c := models.CardioEntry{
		ID:        uuid.New(),
		Title:     title,
		Time:      minutes,
		Incline:   incline,
		Speed:     speed,
		CreatedAt: time.Now(),
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO cardio (id, title, time, incline, speed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Title, c.Time, c.Incline, c.Speed, c.CreatedAt)
	if err != nil {
		return models.CardioEntry{}, fmt.Errorf("inserting cardio entry: %w", err)
	}
	return c, nil
}

// CardioUpdate carries the optional fields a cardio edit may set.
type CardioUpdate struct {
	Title   *string
	Time    *float64
	Incline *float64
	Speed   *float64
}

// UpdateCardio applies a partial edit to a cardio routine.
func (db *DB) UpdateCardio(ctx context.Context, id uuid.UUID, upd CardioUpdate) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE cardio
		 SET title = COALESCE($2, title),
		     time = COALESCE($3, time),
		     incline = COALESCE($4, incline),
		     speed = COALESCE($5, speed)
		 WHERE id = $1`,
		id, upd.Title, upd.Time, upd.Incline, upd.Speed)
	if err != nil {
		return fmt.Errorf("updating cardio entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardioNotFound
	}
	return nil
}

// ToggleCardioDone marks a routine done now, or clears the mark when it
// was already done today. "Today" is the local calendar day of now.
func (db *DB) ToggleCardioDone(ctx context.Context, id uuid.UUID, now time.Time) (models.CardioEntry, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.CardioEntry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var c models.CardioEntry
	err = tx.QueryRow(ctx,
		`SELECT id, title, time, incline, speed, created_at, done_at
		 FROM cardio WHERE id = $1 FOR UPDATE`, id).
		Scan(&c.ID, &c.Title, &c.Time, &c.Incline, &c.Speed, &c.CreatedAt, &c.DoneAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CardioEntry{}, ErrCardioNotFound
		}
		return models.CardioEntry{}, fmt.Errorf("querying cardio entry: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if c.DoneAt != nil && !c.DoneAt.Before(dayStart) {
		c.DoneAt = nil
	} else {
		c.DoneAt = &now
	}

	if _, err := tx.Exec(ctx,
		`UPDATE cardio SET done_at = $2 WHERE id = $1`, id, c.DoneAt); err != nil {
		return models.CardioEntry{}, fmt.Errorf("updating done mark: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.CardioEntry{}, fmt.Errorf("committing: %w", err)
	}
	return c, nil
}

// DeleteCardio removes a cardio routine.
func (db *DB) DeleteCardio(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM cardio WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting cardio entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardioNotFound
	}
	return nil
}

// QueryCardio retrieves all cardio routines, newest first.
func (db *DB) QueryCardio(ctx context.Context) ([]models.CardioEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, title, time, incline, speed, created_at, done_at
		 FROM cardio ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying cardio entries: %w", err)
	}
	defer rows.Close()

	var result []models.CardioEntry
	for rows.Next() {
		var c models.CardioEntry
		if err := rows.Scan(&c.ID, &c.Title, &c.Time, &c.Incline, &c.Speed, &c.CreatedAt, &c.DoneAt); err != nil {
			return nil, fmt.Errorf("scanning cardio entry: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
