package records

import (
	"testing"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

func set(exercise uuid.UUID, count int, weight float64) models.Set {
	return models.Set{
		ID:         uuid.New(),
		ExerciseID: exercise,
		Count:      count,
		Weight:     weight,
		Unit:       models.UnitKg,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, ok := Summarize(nil); ok {
		t.Fatal("expected no record for empty history")
	}
}

// Best-by-volume and max-weight are tracked independently: a heavy
// single can hold the weight record while a lighter set of five holds
// the volume record.
func TestSummarizeDivergingRecords(t *testing.T) {
	ex := uuid.New()
	sets := []models.Set{
		set(ex, 3, 100), // volume 300
		set(ex, 5, 80),  // volume 400
		set(ex, 1, 120), // volume 120, heaviest
	}

	s, ok := Summarize(sets)
	if !ok {
		t.Fatal("expected a record")
	}
	if s.BestSet.Count != 5 || s.BestSet.Weight != 80 {
		t.Errorf("best set = %dx%v, want 5x80", s.BestSet.Count, s.BestSet.Weight)
	}
	if s.MaxWeight.Weight != 120 {
		t.Errorf("max weight = %v, want 120", s.MaxWeight.Weight)
	}
	if s.SetsCount != 3 {
		t.Errorf("sets count = %d, want 3", s.SetsCount)
	}
}

func TestSummarizeTiesKeepFirst(t *testing.T) {
	ex := uuid.New()
	first := set(ex, 4, 100)
	sets := []models.Set{
		first,
		set(ex, 8, 50),  // same volume 400
		set(ex, 2, 100), // same max weight
	}

	s, _ := Summarize(sets)
	if s.BestSet.ID != first.ID {
		t.Errorf("volume tie should keep first set, got %dx%v", s.BestSet.Count, s.BestSet.Weight)
	}
	if s.MaxWeight.ID != first.ID {
		t.Errorf("weight tie should keep first set, got %dx%v", s.MaxWeight.Count, s.MaxWeight.Weight)
	}
}

func TestSummarizeSingleSet(t *testing.T) {
	s, ok := Summarize([]models.Set{set(uuid.New(), 10, 60)})
	if !ok {
		t.Fatal("expected a record")
	}
	if s.BestSet.Weight != 60 || s.MaxWeight.Weight != 60 || s.SetsCount != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestSummarizeWorkout(t *testing.T) {
	bench := uuid.New()
	squat := uuid.New()
	names := map[uuid.UUID]string{bench: "Bench Press", squat: "Squat"}

	sets := []models.Set{
		set(bench, 5, 80),
		set(squat, 5, 120),
		set(bench, 3, 90),
		set(squat, 1, 150),
	}

	got := SummarizeWorkout(sets, func(id uuid.UUID) string { return names[id] })
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	// First-set order: bench before squat.
	if got[0].ExerciseID != bench || got[1].ExerciseID != squat {
		t.Fatalf("exercise order = %v, %v; want bench, squat", got[0].ExerciseName, got[1].ExerciseName)
	}
	if got[0].ExerciseName != "Bench Press" {
		t.Errorf("name = %q, want Bench Press", got[0].ExerciseName)
	}
	if got[0].SetsCount != 2 || got[1].SetsCount != 2 {
		t.Errorf("sets counts = %d, %d; want 2, 2", got[0].SetsCount, got[1].SetsCount)
	}
	if got[0].BestSet.Weight != 80 { // 5x80=400 beats 3x90=270
		t.Errorf("bench best set weight = %v, want 80", got[0].BestSet.Weight)
	}
	if got[0].MaxWeight.Weight != 90 {
		t.Errorf("bench max weight = %v, want 90", got[0].MaxWeight.Weight)
	}
	if got[1].BestSet.Weight != 120 || got[1].MaxWeight.Weight != 150 {
		t.Errorf("squat records = %v/%v, want 120/150", got[1].BestSet.Weight, got[1].MaxWeight.Weight)
	}
}

func TestSummarizeWorkoutEmpty(t *testing.T) {
	if got := SummarizeWorkout(nil, nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
