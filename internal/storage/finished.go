package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

// ToggleFinished flips the manual done flag for an exercise in a
// workout: present removes it, absent inserts it. Returns the new
// state. The (workout, exercise) pair is unique so a double toggle
// always lands back where it started.
func (db *DB) ToggleFinished(ctx context.Context, workoutID, exerciseID uuid.UUID) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM finished_exercises WHERE workout_id = $1 AND exercise_id = $2`,
		workoutID, exerciseID)
	if err != nil {
		return false, fmt.Errorf("removing finished marker: %w", err)
	}

	finished := false
	if tag.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO finished_exercises (workout_id, exercise_id) VALUES ($1, $2)`,
			workoutID, exerciseID); err != nil {
			return false, fmt.Errorf("inserting finished marker: %w", err)
		}
		finished = true
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing: %w", err)
	}
	return finished, nil
}

// QueryFinished retrieves a workout's finished markers.
func (db *DB) QueryFinished(ctx context.Context, workoutID uuid.UUID) ([]models.FinishedMarker, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT workout_id, exercise_id FROM finished_exercises WHERE workout_id = $1`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying finished markers: %w", err)
	}
	defer rows.Close()

	var result []models.FinishedMarker
	for rows.Next() {
		var m models.FinishedMarker
		if err := rows.Scan(&m.WorkoutID, &m.ExerciseID); err != nil {
			return nil, fmt.Errorf("scanning finished marker: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
