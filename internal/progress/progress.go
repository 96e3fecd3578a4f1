// Package progress assembles the live view of the active session: per
// exercise set counts and finished flags, grouped by muscle group.
package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

// ExerciseProgress is one exercise touched during the active session,
// either by recording a set or by marking it finished.
type ExerciseProgress struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	Name       string    `json:"name"`
	SetsCount  int       `json:"sets_count"`
	Finished   bool      `json:"finished"`
}

// GroupProgress is one muscle group with its touched exercises.
type GroupProgress struct {
	GroupID   uuid.UUID          `json:"group_id"`
	GroupName string             `json:"group_name"`
	Exercises []ExerciseProgress `json:"exercises"`
}

// Tree is the full progress view for the active session.
type Tree struct {
	WorkoutID      uuid.UUID       `json:"workout_id"`
	StartedAt      time.Time       `json:"started_at"`
	TotalExercises int             `json:"total_exercises"`
	Groups         []GroupProgress `json:"groups"`
}

// Build assembles the progress tree for an active workout. Returns nil
// when workout is nil (no session running, no partial tree).
//
// An exercise appears when it has at least one set in the session or a
// finished marker; the marker alone counts, with a zero set count.
// Completion comes from the marker only — sets goal on the exercise is
// informational and does not flip the flag. Exercises the session never
// touched are absent; listing the whole catalog is the caller's job.
//
// Group order is first-seen over sets then markers, so it follows the
// order sets were recorded in when the caller passes them in creation
// order. Within a group, exercises keep the same first-seen order.
func Build(
	workout *models.Workout,
	exercises map[uuid.UUID]models.Exercise,
	groups map[uuid.UUID]models.ExerciseGroup,
	sets []models.Set,
	markers []models.FinishedMarker,
) *Tree {
	if workout == nil {
		return nil
	}

	setCounts := make(map[uuid.UUID]int)
	var touched []uuid.UUID
	for _, s := range sets {
		if _, seen := setCounts[s.ExerciseID]; !seen {
			touched = append(touched, s.ExerciseID)
		}
		setCounts[s.ExerciseID]++
	}

	finished := make(map[uuid.UUID]bool, len(markers))
	for _, m := range markers {
		finished[m.ExerciseID] = true
		if _, seen := setCounts[m.ExerciseID]; !seen {
			setCounts[m.ExerciseID] = 0
			touched = append(touched, m.ExerciseID)
		}
	}

	tree := &Tree{WorkoutID: workout.ID, StartedAt: workout.StartTime}
	groupIndex := make(map[uuid.UUID]int)

	for _, exID := range touched {
		ex, ok := exercises[exID]
		if !ok {
			// Set or marker for an exercise deleted mid-session; skip.
			continue
		}

		idx, ok := groupIndex[ex.GroupID]
		if !ok {
			idx = len(tree.Groups)
			groupIndex[ex.GroupID] = idx
			tree.Groups = append(tree.Groups, GroupProgress{
				GroupID:   ex.GroupID,
				GroupName: groups[ex.GroupID].Name,
			})
		}

		tree.Groups[idx].Exercises = append(tree.Groups[idx].Exercises, ExerciseProgress{
			ExerciseID: exID,
			Name:       ex.Name,
			SetsCount:  setCounts[exID],
			Finished:   finished[exID],
		})
		tree.TotalExercises++
	}

	return tree
}
