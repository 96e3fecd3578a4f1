package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is the unit of measure a weight was recorded in. Weights are
// never converted at rest; every row keeps the unit it was entered with.
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	return u == UnitKg || u == UnitLbs
}

// Workout is one training session. EndTime is nil while the session is
// active; at most one active workout exists at any time.
type Workout struct {
	ID        uuid.UUID  `json:"id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// Active reports whether the workout is still open.
func (w Workout) Active() bool {
	return w.EndTime == nil
}

// ExerciseGroup is a muscle group the catalog organizes exercises under.
type ExerciseGroup struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Exercise is a catalog entry. SetsGoal, when set, is the number of
// sets the user aims for per session. BarbellID links the barbell used
// for plate math.
type Exercise struct {
	ID        uuid.UUID  `json:"id"`
	GroupID   uuid.UUID  `json:"group_id"`
	Name      string     `json:"name"`
	Notes     *string    `json:"notes,omitempty"`
	SetsGoal  *int       `json:"sets_goal,omitempty"`
	BarbellID *uuid.UUID `json:"barbell_id,omitempty"`
}

// Set is one recorded repetition-set. It always points at exactly one
// exercise and one workout; only Count and Weight may be corrected
// after creation.
type Set struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	WorkoutID  uuid.UUID `json:"workout_id"`
	Count      int       `json:"count"`
	Weight     float64   `json:"weight"`
	Unit       Unit      `json:"unit"`
	CreatedAt  time.Time `json:"created_at"`
}

// Volume is the set's count x weight, in the set's own unit.
func (s Set) Volume() float64 {
	return float64(s.Count) * s.Weight
}

// FinishedMarker records that the user manually marked an exercise
// done for a session. Unique per (workout, exercise) pair.
type FinishedMarker struct {
	WorkoutID  uuid.UUID `json:"workout_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
}

// Barbell is an equipment catalog entry consumed by plate math.
type Barbell struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Weight float64   `json:"weight"`
	Unit   Unit      `json:"unit"`
}

// Plate is one available plate denomination.
type Plate struct {
	ID     uuid.UUID `json:"id"`
	Weight float64   `json:"weight"`
	Unit   Unit      `json:"unit"`
}

// Template is a named, ordered list of exercises used to seed a session.
type Template struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Exercises []uuid.UUID `json:"exercises"`
}

// CardioEntry is one treadmill/cardio routine. DoneAt records the last
// time the routine was completed.
type CardioEntry struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Time      float64    `json:"time"`
	Incline   float64    `json:"incline"`
	Speed     float64    `json:"speed"`
	CreatedAt time.Time  `json:"created_at"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
}
