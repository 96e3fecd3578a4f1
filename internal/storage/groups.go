package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/liftlog/internal/models"
)

// CreateGroup inserts a muscle group.
func (db *DB) CreateGroup(ctx context.Context, name string) (models.ExerciseGroup, error) {
	g := models.ExerciseGroup{ID: uuid.New(), Name: name}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercise_groups (id, name) VALUES ($1, $2)`, g.ID, g.Name)
	if err != nil {
		return models.ExerciseGroup{}, fmt.Errorf("inserting group: %w", err)
	}
	return g, nil
}

// GetGroup retrieves a muscle group by ID.
func (db *DB) GetGroup(ctx context.Context, id uuid.UUID) (models.ExerciseGroup, error) {
	var g models.ExerciseGroup
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM exercise_groups WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ExerciseGroup{}, ErrGroupNotFound
		}
		return models.ExerciseGroup{}, fmt.Errorf("querying group: %w", err)
	}
	return g, nil
}

// QueryGroups retrieves all muscle groups, name order.
func (db *DB) QueryGroups(ctx context.Context) ([]models.ExerciseGroup, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM exercise_groups ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseGroup
	for rows.Next() {
		var g models.ExerciseGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// RenameGroup updates a group's name.
func (db *DB) RenameGroup(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercise_groups SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("renaming group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// DeleteGroup removes a muscle group. Deletion is refused while any
// exercise still references the group; the exercises must go first.
func (db *DB) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var inUse bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exercises WHERE group_id = $1)`, id).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("checking group usage: %w", err)
	}
	if inUse {
		return ErrGroupHasExercises
	}

	tag, err := tx.Exec(ctx, `DELETE FROM exercise_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}

	return tx.Commit(ctx)
}
