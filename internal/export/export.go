// Package export writes a portable SQLite snapshot of the workout
// history for backup or offline analysis.
package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/meltforce/liftlog/internal/storage"
)

// Stats reports how many rows each table received.
type Stats struct {
	Groups    int
	Exercises int
	Workouts  int
	Sets      int
}

const schema = `
CREATE TABLE IF NOT EXISTS exercise_groups (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS exercises (
	id        TEXT PRIMARY KEY,
	group_id  TEXT NOT NULL,
	name      TEXT NOT NULL,
	notes     TEXT,
	sets_goal INTEGER
);
CREATE TABLE IF NOT EXISTS workouts (
	id         TEXT PRIMARY KEY,
	start_time TIMESTAMP NOT NULL,
	end_time   TIMESTAMP
);
CREATE TABLE IF NOT EXISTS sets (
	id          TEXT PRIMARY KEY,
	exercise_id TEXT NOT NULL,
	workout_id  TEXT NOT NULL,
	count       INTEGER NOT NULL,
	weight      REAL NOT NULL,
	unit        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
`

// Snapshot copies the catalog and full workout history from the store
// into a SQLite file at path. An existing file is extended; rows with
// matching IDs are replaced.
func Snapshot(ctx context.Context, db *storage.DB, path string) (Stats, error) {
	out, err := sql.Open("sqlite", path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening snapshot db: %w", err)
	}
	defer out.Close()

	if _, err := out.ExecContext(ctx, schema); err != nil {
		return Stats{}, fmt.Errorf("creating snapshot schema: %w", err)
	}

	tx, err := out.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	var stats Stats

	groups, err := db.QueryGroups(ctx)
	if err != nil {
		return Stats{}, err
	}
	for _, g := range groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO exercise_groups (id, name) VALUES (?, ?)`,
			g.ID.String(), g.Name); err != nil {
			return Stats{}, fmt.Errorf("writing group: %w", err)
		}
		stats.Groups++
	}

	exercises, err := db.QueryExercises(ctx)
	if err != nil {
		return Stats{}, err
	}
	for _, e := range exercises {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO exercises (id, group_id, name, notes, sets_goal) VALUES (?, ?, ?, ?, ?)`,
			e.ID.String(), e.GroupID.String(), e.Name, e.Notes, e.SetsGoal); err != nil {
			return Stats{}, fmt.Errorf("writing exercise: %w", err)
		}
		stats.Exercises++

		sets, err := db.QuerySetsByExercise(ctx, e.ID)
		if err != nil {
			return Stats{}, err
		}
		for _, s := range sets {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO sets (id, exercise_id, workout_id, count, weight, unit, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.ID.String(), s.ExerciseID.String(), s.WorkoutID.String(),
				s.Count, s.Weight, string(s.Unit), s.CreatedAt); err != nil {
				return Stats{}, fmt.Errorf("writing set: %w", err)
			}
			stats.Sets++
		}
	}

	workouts, err := db.QueryWorkouts(ctx, 1<<30)
	if err != nil {
		return Stats{}, err
	}
	for _, w := range workouts {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO workouts (id, start_time, end_time) VALUES (?, ?, ?)`,
			w.ID.String(), w.StartTime, w.EndTime); err != nil {
			return Stats{}, fmt.Errorf("writing workout: %w", err)
		}
		stats.Workouts++
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("committing snapshot: %w", err)
	}
	return stats, nil
}
