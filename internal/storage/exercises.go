package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/liftlog/internal/models"
)

// CreateExercise inserts a catalog entry. Returns ErrGroupNotFound when
// the group id does not resolve.
func (db *DB) CreateExercise(ctx context.Context, name string, groupID uuid.UUID) (models.Exercise, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exercise_groups WHERE id = $1)`, groupID).Scan(&exists)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("checking group: %w", err)
	}
	if !exists {
		return models.Exercise{}, ErrGroupNotFound
	}

	e := models.Exercise{ID: uuid.New(), GroupID: groupID, Name: name}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, group_id, name) VALUES ($1, $2, $3)`,
		e.ID, e.GroupID, e.Name)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	return e, nil
}

// ExerciseUpdate carries the optional fields an exercise edit may set.
// Nil pointers leave the stored value untouched.
type ExerciseUpdate struct {
	Name      *string
	Notes     *string
	SetsGoal  *int
	BarbellID *uuid.UUID
}

// UpdateExercise applies a partial edit. Empty notes (after trimming)
// are stored as NULL rather than as an empty string.
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, upd ExerciseUpdate) error {
	if upd.Notes != nil {
		trimmed := strings.TrimSpace(*upd.Notes)
		if trimmed == "" {
			upd.Notes = nil
			// Explicitly clear instead of leaving as-is.
			tag, err := db.Pool.Exec(ctx,
				`UPDATE exercises SET notes = NULL WHERE id = $1`, id)
			if err != nil {
				return fmt.Errorf("clearing notes: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return ErrExerciseNotFound
			}
		} else {
			upd.Notes = &trimmed
		}
	}

	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises
		 SET name = COALESCE($2, name),
		     notes = COALESCE($3, notes),
		     sets_goal = COALESCE($4, sets_goal),
		     barbell_id = COALESCE($5, barbell_id)
		 WHERE id = $1`,
		id, upd.Name, upd.Notes, upd.SetsGoal, upd.BarbellID)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// GetExercise retrieves a catalog entry by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, group_id, name, notes, sets_goal, barbell_id
		 FROM exercises WHERE id = $1`, id).
		Scan(&e.ID, &e.GroupID, &e.Name, &e.Notes, &e.SetsGoal, &e.BarbellID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Exercise{}, ErrExerciseNotFound
		}
		return models.Exercise{}, fmt.Errorf("querying exercise: %w", err)
	}
	return e, nil
}

// QueryExercises retrieves the whole exercise catalog, name order.
func (db *DB) QueryExercises(ctx context.Context) ([]models.Exercise, error) {
	return db.queryExercises(ctx,
		`SELECT id, group_id, name, notes, sets_goal, barbell_id
		 FROM exercises ORDER BY name ASC`)
}

// QueryExercisesByGroup retrieves one group's exercises, name order.
func (db *DB) QueryExercisesByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Exercise, error) {
	return db.queryExercises(ctx,
		`SELECT id, group_id, name, notes, sets_goal, barbell_id
		 FROM exercises WHERE group_id = $1 ORDER BY name ASC`, groupID)
}

// DeleteExercise removes a catalog entry together with its whole set
// history and any finished markers, in one transaction. The groups and
// workouts those sets pointed at are left alone.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM sets WHERE exercise_id = $1`, id); err != nil {
		return fmt.Errorf("deleting exercise sets: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM finished_exercises WHERE exercise_id = $1`, id); err != nil {
		return fmt.Errorf("deleting finished markers: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return tx.Commit(ctx)
}

func (db *DB) queryExercises(ctx context.Context, query string, args ...any) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Name, &e.Notes, &e.SetsGoal, &e.BarbellID); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
