// Package records derives personal records from recorded set history.
//
// All comparisons happen in the unit each set was recorded in; mixed-unit
// histories are not normalized, the caller converts for display.
package records

import (
	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

// Summary holds the records for one exercise.
type Summary struct {
	// BestSet is the set with the highest count*weight volume.
	BestSet models.Set `json:"best_set"`
	// MaxWeight is the set with the single heaviest weight, regardless
	// of reps. Not necessarily the same set as BestSet.
	MaxWeight models.Set `json:"max_weight"`
	SetsCount int        `json:"sets_count"`
}

// Summarize computes the records over an exercise's set history. The
// second return is false when there is no history. Ties keep the first
// set in input order, so callers should pass sets in creation order.
func Summarize(sets []models.Set) (Summary, bool) {
	if len(sets) == 0 {
		return Summary{}, false
	}

	s := Summary{BestSet: sets[0], MaxWeight: sets[0], SetsCount: len(sets)}
	for _, set := range sets[1:] {
		if set.Volume() > s.BestSet.Volume() {
			s.BestSet = set
		}
		if set.Weight > s.MaxWeight.Weight {
			s.MaxWeight = set
		}
	}
	return s, true
}

// ExerciseSummary is one exercise's records within a single workout.
type ExerciseSummary struct {
	ExerciseID   uuid.UUID `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Summary
}

// SummarizeWorkout partitions one workout's sets by exercise and
// computes per-exercise records for that session. Order is stable:
// exercises appear in the order their first set appears in the input.
// nameOf resolves exercise display names and may be nil.
func SummarizeWorkout(sets []models.Set, nameOf func(uuid.UUID) string) []ExerciseSummary {
	byExercise := make(map[uuid.UUID][]models.Set)
	var order []uuid.UUID
	for _, s := range sets {
		if _, seen := byExercise[s.ExerciseID]; !seen {
			order = append(order, s.ExerciseID)
		}
		byExercise[s.ExerciseID] = append(byExercise[s.ExerciseID], s)
	}

	result := make([]ExerciseSummary, 0, len(order))
	for _, id := range order {
		summary, _ := Summarize(byExercise[id])
		es := ExerciseSummary{ExerciseID: id, Summary: summary}
		if nameOf != nil {
			es.ExerciseName = nameOf(id)
		}
		result = append(result, es)
	}
	return result
}
