package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/liftlog/internal/models"
)

// SessionSnapshot is everything the progress aggregator reads about the
// active session, taken in a single repeatable-read transaction so the
// sets, markers, and catalog are mutually consistent.
type SessionSnapshot struct {
	Workout   *models.Workout
	Exercises map[uuid.UUID]models.Exercise
	Groups    map[uuid.UUID]models.ExerciseGroup
	Sets      []models.Set
	Markers   []models.FinishedMarker
}

// SnapshotSession reads the active workout together with its sets,
// finished markers, and the catalog. Workout is nil when idle; the
// catalog maps are populated either way.
func (db *DB) SnapshotSession(ctx context.Context) (SessionSnapshot, error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	snap := SessionSnapshot{
		Exercises: make(map[uuid.UUID]models.Exercise),
		Groups:    make(map[uuid.UUID]models.ExerciseGroup),
	}

	var w models.Workout
	err = tx.QueryRow(ctx,
		`SELECT id, start_time FROM workouts WHERE end_time IS NULL`).
		Scan(&w.ID, &w.StartTime)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Idle; still return the catalog.
	case err != nil:
		return SessionSnapshot{}, fmt.Errorf("querying active workout: %w", err)
	default:
		snap.Workout = &w
	}

	exRows, err := tx.Query(ctx,
		`SELECT id, group_id, name, notes, sets_goal, barbell_id FROM exercises`)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("querying exercises: %w", err)
	}
	defer exRows.Close()
	for exRows.Next() {
		var e models.Exercise
		if err := exRows.Scan(&e.ID, &e.GroupID, &e.Name, &e.Notes, &e.SetsGoal, &e.BarbellID); err != nil {
			return SessionSnapshot{}, fmt.Errorf("scanning exercise: %w", err)
		}
		snap.Exercises[e.ID] = e
	}
	if err := exRows.Err(); err != nil {
		return SessionSnapshot{}, err
	}

	grRows, err := tx.Query(ctx, `SELECT id, name FROM exercise_groups`)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("querying groups: %w", err)
	}
	defer grRows.Close()
	for grRows.Next() {
		var g models.ExerciseGroup
		if err := grRows.Scan(&g.ID, &g.Name); err != nil {
			return SessionSnapshot{}, fmt.Errorf("scanning group: %w", err)
		}
		snap.Groups[g.ID] = g
	}
	if err := grRows.Err(); err != nil {
		return SessionSnapshot{}, err
	}

	if snap.Workout == nil {
		return snap, tx.Commit(ctx)
	}

	setRows, err := tx.Query(ctx,
		`SELECT id, exercise_id, workout_id, count, weight, unit, created_at
		 FROM sets WHERE workout_id = $1
		 ORDER BY created_at ASC, id ASC`, snap.Workout.ID)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("querying session sets: %w", err)
	}
	defer setRows.Close()
	for setRows.Next() {
		var s models.Set
		if err := setRows.Scan(&s.ID, &s.ExerciseID, &s.WorkoutID, &s.Count, &s.Weight, &s.Unit, &s.CreatedAt); err != nil {
			return SessionSnapshot{}, fmt.Errorf("scanning set: %w", err)
		}
		snap.Sets = append(snap.Sets, s)
	}
	if err := setRows.Err(); err != nil {
		return SessionSnapshot{}, err
	}

	mkRows, err := tx.Query(ctx,
		`SELECT workout_id, exercise_id FROM finished_exercises WHERE workout_id = $1`,
		snap.Workout.ID)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("querying finished markers: %w", err)
	}
	defer mkRows.Close()
	for mkRows.Next() {
		var m models.FinishedMarker
		if err := mkRows.Scan(&m.WorkoutID, &m.ExerciseID); err != nil {
			return SessionSnapshot{}, fmt.Errorf("scanning finished marker: %w", err)
		}
		snap.Markers = append(snap.Markers, m)
	}
	if err := mkRows.Err(); err != nil {
		return SessionSnapshot{}, err
	}

	return snap, tx.Commit(ctx)
}
