package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/meltforce/liftlog/internal/models"
)

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

// StartWorkout opens a new training session. At most one workout may be
// active (end_time IS NULL) at a time; the partial unique index
// one_active_workout makes the check-and-create atomic, so two
// concurrent starts cannot both succeed. Returns ErrWorkoutActive when
// a session is already open.
func (db *DB) StartWorkout(ctx context.Context, startTime time.Time) (models.Workout, error) {
	w := models.Workout{ID: uuid.New(), StartTime: startTime}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, start_time) VALUES ($1, $2)`,
		w.ID, w.StartTime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.Workout{}, ErrWorkoutActive
		}
		return models.Workout{}, fmt.Errorf("inserting workout: %w", err)
	}
	return w, nil
}

// EndWorkout closes the active session. A session with no recorded sets
// leaves no trace: the workout row and any finished markers are
// deleted. Otherwise end_time is stamped and the row becomes immutable
// history. Returns ErrNoActiveWorkout when no session is open.
func (db *DB) EndWorkout(ctx context.Context, endTime time.Time) (models.Workout, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.Workout{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var w models.Workout
	err = tx.QueryRow(ctx,
		`SELECT id, start_time FROM workouts WHERE end_time IS NULL FOR UPDATE`).
		Scan(&w.ID, &w.StartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Workout{}, ErrNoActiveWorkout
		}
		return models.Workout{}, fmt.Errorf("finding active workout: %w", err)
	}

	var setsCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM sets WHERE workout_id = $1`, w.ID).Scan(&setsCount)
	if err != nil {
		return models.Workout{}, fmt.Errorf("counting sets: %w", err)
	}

	if setsCount == 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM finished_exercises WHERE workout_id = $1`, w.ID); err != nil {
			return models.Workout{}, fmt.Errorf("deleting finished markers: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM workouts WHERE id = $1`, w.ID); err != nil {
			return models.Workout{}, fmt.Errorf("deleting empty workout: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx,
			`UPDATE workouts SET end_time = $1 WHERE id = $2`, endTime, w.ID); err != nil {
			return models.Workout{}, fmt.Errorf("closing workout: %w", err)
		}
		w.EndTime = &endTime
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Workout{}, fmt.Errorf("committing: %w", err)
	}
	return w, nil
}

// CurrentWorkout returns the active workout, or nil when idle. The
// lookup runs fresh every call; nothing caches the active session.
func (db *DB) CurrentWorkout(ctx context.Context) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`SELECT id, start_time FROM workouts WHERE end_time IS NULL`).
		Scan(&w.ID, &w.StartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying active workout: %w", err)
	}
	return &w, nil
}

// GetWorkout retrieves a single workout by ID.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`SELECT id, start_time, end_time FROM workouts WHERE id = $1`, id).
		Scan(&w.ID, &w.StartTime, &w.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Workout{}, ErrWorkoutNotFound
		}
		return models.Workout{}, fmt.Errorf("querying workout: %w", err)
	}
	return w, nil
}

// QueryWorkouts retrieves finished workouts, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, start_time, end_time FROM workouts
		 WHERE end_time IS NOT NULL
		 ORDER BY start_time DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// DeleteWorkout removes a historical workout and everything recorded
// against it (sets and finished markers) in one transaction.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM sets WHERE workout_id = $1`, id); err != nil {
		return fmt.Errorf("deleting workout sets: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM finished_exercises WHERE workout_id = $1`, id); err != nil {
		return fmt.Errorf("deleting finished markers: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	return tx.Commit(ctx)
}
