package storage

import "errors"

// Domain precondition failures. These are user-triggered (pressing
// start twice, referencing a deleted row) and never retried; handlers
// map them to HTTP status codes with errors.Is.
var (
	ErrWorkoutActive     = errors.New("a workout is already in progress")
	ErrNoActiveWorkout   = errors.New("no active workout")
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrSetNotFound       = errors.New("set not found")
	ErrGroupNotFound     = errors.New("exercise group not found")
	ErrGroupHasExercises = errors.New("exercise group still has exercises")
	ErrBarbellNotFound   = errors.New("barbell not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrCardioNotFound    = errors.New("cardio entry not found")
)
