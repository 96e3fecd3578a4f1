package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
)

type fixture struct {
	workout   models.Workout
	chest     models.ExerciseGroup
	legs      models.ExerciseGroup
	bench     models.Exercise
	fly       models.Exercise
	squat     models.Exercise
	exercises map[uuid.UUID]models.Exercise
	groups    map[uuid.UUID]models.ExerciseGroup
}

func newFixture() fixture {
	f := fixture{
		workout: models.Workout{ID: uuid.New(), StartTime: time.Now()},
		chest:   models.ExerciseGroup{ID: uuid.New(), Name: "Chest"},
		legs:    models.ExerciseGroup{ID: uuid.New(), Name: "Legs"},
	}
	f.bench = models.Exercise{ID: uuid.New(), GroupID: f.chest.ID, Name: "Bench Press"}
	f.fly = models.Exercise{ID: uuid.New(), GroupID: f.chest.ID, Name: "Cable Fly"}
	f.squat = models.Exercise{ID: uuid.New(), GroupID: f.legs.ID, Name: "Squat"}
	f.exercises = map[uuid.UUID]models.Exercise{
		f.bench.ID: f.bench,
		f.fly.ID:   f.fly,
		f.squat.ID: f.squat,
	}
	f.groups = map[uuid.UUID]models.ExerciseGroup{
		f.chest.ID: f.chest,
		f.legs.ID:  f.legs,
	}
	return f
}

func sessionSet(workout, exercise uuid.UUID) models.Set {
	return models.Set{
		ID:         uuid.New(),
		WorkoutID:  workout,
		ExerciseID: exercise,
		Count:      5,
		Weight:     60,
		Unit:       models.UnitKg,
	}
}

func TestBuildNoActiveWorkout(t *testing.T) {
	f := newFixture()
	if tree := Build(nil, f.exercises, f.groups, nil, nil); tree != nil {
		t.Fatalf("expected nil tree without an active workout, got %+v", tree)
	}
}

func TestBuildCountsAndGrouping(t *testing.T) {
	f := newFixture()
	sets := []models.Set{
		sessionSet(f.workout.ID, f.bench.ID),
		sessionSet(f.workout.ID, f.squat.ID),
		sessionSet(f.workout.ID, f.bench.ID),
		sessionSet(f.workout.ID, f.bench.ID),
	}
	markers := []models.FinishedMarker{
		{WorkoutID: f.workout.ID, ExerciseID: f.bench.ID},
	}

	tree := Build(&f.workout, f.exercises, f.groups, sets, markers)
	if tree == nil {
		t.Fatal("expected a tree")
	}
	if !tree.StartedAt.Equal(f.workout.StartTime) {
		t.Errorf("started at = %v, want %v", tree.StartedAt, f.workout.StartTime)
	}
	if tree.TotalExercises != 2 {
		t.Errorf("total exercises = %d, want 2", tree.TotalExercises)
	}
	if len(tree.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(tree.Groups))
	}

	// First set was a bench set, so Chest comes first.
	chest := tree.Groups[0]
	if chest.GroupName != "Chest" {
		t.Fatalf("first group = %q, want Chest", chest.GroupName)
	}
	if len(chest.Exercises) != 1 {
		t.Fatalf("chest exercises = %d, want 1", len(chest.Exercises))
	}
	bench := chest.Exercises[0]
	if bench.SetsCount != 3 {
		t.Errorf("bench sets = %d, want 3", bench.SetsCount)
	}
	if !bench.Finished {
		t.Error("bench should be finished via marker")
	}

	squat := tree.Groups[1].Exercises[0]
	if squat.SetsCount != 1 || squat.Finished {
		t.Errorf("squat = %+v, want 1 set, unfinished", squat)
	}
}

// A marker with no sets still lists the exercise: the user skipped it
// but explicitly closed it out.
func TestBuildMarkerWithoutSets(t *testing.T) {
	f := newFixture()
	markers := []models.FinishedMarker{
		{WorkoutID: f.workout.ID, ExerciseID: f.fly.ID},
	}

	tree := Build(&f.workout, f.exercises, f.groups, nil, markers)
	if tree.TotalExercises != 1 {
		t.Fatalf("total exercises = %d, want 1", tree.TotalExercises)
	}
	fly := tree.Groups[0].Exercises[0]
	if fly.ExerciseID != f.fly.ID || fly.SetsCount != 0 || !fly.Finished {
		t.Errorf("fly = %+v, want 0 sets and finished", fly)
	}
}

// Sets goal on the exercise never flips the flag; only the marker does.
func TestBuildGoalDoesNotFinish(t *testing.T) {
	f := newFixture()
	goal := 2
	ex := f.bench
	ex.SetsGoal = &goal
	f.exercises[ex.ID] = ex

	sets := []models.Set{
		sessionSet(f.workout.ID, ex.ID),
		sessionSet(f.workout.ID, ex.ID),
		sessionSet(f.workout.ID, ex.ID),
	}

	tree := Build(&f.workout, f.exercises, f.groups, sets, nil)
	if got := tree.Groups[0].Exercises[0]; got.Finished {
		t.Errorf("goal met but no marker: finished = true, want false")
	}
}

func TestBuildUntouchedExercisesAbsent(t *testing.T) {
	f := newFixture()
	sets := []models.Set{sessionSet(f.workout.ID, f.squat.ID)}

	tree := Build(&f.workout, f.exercises, f.groups, sets, nil)
	if tree.TotalExercises != 1 || len(tree.Groups) != 1 {
		t.Fatalf("tree = %+v, want only squat listed", tree)
	}
	if tree.Groups[0].GroupName != "Legs" {
		t.Errorf("group = %q, want Legs", tree.Groups[0].GroupName)
	}
}

func TestBuildSkipsDeletedExercise(t *testing.T) {
	f := newFixture()
	ghost := uuid.New() // not in the catalog
	sets := []models.Set{
		sessionSet(f.workout.ID, ghost),
		sessionSet(f.workout.ID, f.bench.ID),
	}

	tree := Build(&f.workout, f.exercises, f.groups, sets, nil)
	if tree.TotalExercises != 1 {
		t.Errorf("total exercises = %d, want 1 (ghost skipped)", tree.TotalExercises)
	}
}

func TestBuildEmptySession(t *testing.T) {
	f := newFixture()
	tree := Build(&f.workout, f.exercises, f.groups, nil, nil)
	if tree == nil {
		t.Fatal("active session with no activity still yields a tree")
	}
	if tree.TotalExercises != 0 || len(tree.Groups) != 0 {
		t.Errorf("tree = %+v, want empty", tree)
	}
}
