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

// AddSet records a set against the active workout. The active-session
// lookup, the exercise existence check, and the insert run in one
// transaction so a failed precondition never leaves a partial write.
// Returns ErrNoActiveWorkout when idle and ErrExerciseNotFound when the
// exercise id does not resolve. There is no cap on sets per exercise
// per session.
func (db *DB) AddSet(ctx context.Context, exerciseID uuid.UUID, count int, weight float64, unit models.Unit) (models.Set, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.Set{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var workoutID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM workouts WHERE end_time IS NULL`).Scan(&workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Set{}, ErrNoActiveWorkout
		}
		return models.Set{}, fmt.Errorf("finding active workout: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exercises WHERE id = $1)`, exerciseID).Scan(&exists)
	if err != nil {
		return models.Set{}, fmt.Errorf("checking exercise: %w", err)
	}
	if !exists {
		return models.Set{}, ErrExerciseNotFound
	}

	s := models.Set{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
		WorkoutID:  workoutID,
		Count:      count,
		Weight:     weight,
		Unit:       unit,
		CreatedAt:  time.Now(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO sets (id, exercise_id, workout_id, count, weight, unit, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ExerciseID, s.WorkoutID, s.Count, s.Weight, s.Unit, s.CreatedAt)
	if err != nil {
		return models.Set{}, fmt.Errorf("inserting set: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Set{}, fmt.Errorf("committing: %w", err)
	}
	return s, nil
}

// UpdateSet corrects the numeric fields of a set in place. Identity
// fields (exercise, workout, unit) never change. Nil arguments leave
// the field untouched.
func (db *DB) UpdateSet(ctx context.Context, id uuid.UUID, count *int, weight *float64) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE sets
		 SET count = COALESCE($2, count), weight = COALESCE($3, weight)
		 WHERE id = $1`,
		id, count, weight)
	if err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// DeleteSet removes a single set. Nothing else is touched: the
// exercise, workout, and any finished marker stay as they are.
func (db *DB) DeleteSet(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// GetSet retrieves a single set by ID.
func (db *DB) GetSet(ctx context.Context, id uuid.UUID) (models.Set, error) {
	var s models.Set
	err := db.Pool.QueryRow(ctx,
		`SELECT id, exercise_id, workout_id, count, weight, unit, created_at
		 FROM sets WHERE id = $1`, id).
		Scan(&s.ID, &s.ExerciseID, &s.WorkoutID, &s.Count, &s.Weight, &s.Unit, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Set{}, ErrSetNotFound
		}
		return models.Set{}, fmt.Errorf("querying set: %w", err)
	}
	return s, nil
}

// QuerySetsByWorkout retrieves all of a workout's sets in creation order.
func (db *DB) QuerySetsByWorkout(ctx context.Context, workoutID uuid.UUID) ([]models.Set, error) {
	return db.querySets(ctx,
		`SELECT id, exercise_id, workout_id, count, weight, unit, created_at
		 FROM sets WHERE workout_id = $1
		 ORDER BY created_at ASC, id ASC`, workoutID)
}

// QuerySetsByExercise retrieves an exercise's full set history in
// creation order, oldest first. Record math relies on that order for
// its first-wins tie rule.
func (db *DB) QuerySetsByExercise(ctx context.Context, exerciseID uuid.UUID) ([]models.Set, error) {
	return db.querySets(ctx,
		`SELECT id, exercise_id, workout_id, count, weight, unit, created_at
		 FROM sets WHERE exercise_id = $1
		 ORDER BY created_at ASC, id ASC`, exerciseID)
}

// QuerySessionSets retrieves the sets an exercise has in one workout,
// in creation order.
func (db *DB) QuerySessionSets(ctx context.Context, workoutID, exerciseID uuid.UUID) ([]models.Set, error) {
	return db.querySets(ctx,
		`SELECT id, exercise_id, workout_id, count, weight, unit, created_at
		 FROM sets WHERE workout_id = $1 AND exercise_id = $2
		 ORDER BY created_at ASC, id ASC`, workoutID, exerciseID)
}

func (db *DB) querySets(ctx context.Context, query string, args ...any) ([]models.Set, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var result []models.Set
	for rows.Next() {
		var s models.Set
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.WorkoutID, &s.Count, &s.Weight, &s.Unit, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
