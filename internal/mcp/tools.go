package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/plates"
	"github.com/meltforce/liftlog/internal/progress"
	"github.com/meltforce/liftlog/internal/records"
	"github.com/meltforce/liftlog/internal/storage"
)

// --- Tool definitions ---

var toolStartWorkout = mcp.NewTool("start_workout",
	mcp.WithDescription("Start a new training session. Fails if a session is already in progress."),
)

var toolEndWorkout = mcp.NewTool("end_workout",
	mcp.WithDescription("End the active training session. A session with no recorded sets is discarded without trace; otherwise it is closed and kept as history."),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Live progress of the active session: exercises touched so far grouped by muscle group, with per-exercise set counts and finished flags."),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Record one set (reps x weight) for an exercise in the active session."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID")),
	mcp.WithNumber("count", mcp.Required(), mcp.Description("Repetitions performed")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithString("unit", mcp.Description("Unit the weight was entered in. Defaults to kg."), mcp.Enum("kg", "lbs")),
)

var toolToggleFinished = mcp.NewTool("toggle_finished",
	mcp.WithDescription("Flip the manual done flag for an exercise in the active session."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolListCatalog = mcp.NewTool("list_catalog",
	mcp.WithDescription("List all muscle groups with their exercises."),
)

var toolGetExerciseSummary = mcp.NewTool("get_exercise_summary",
	mcp.WithDescription("All-time records for one exercise: best set by count*weight volume and the heaviest single weight. The two can come from different sets."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolGetWorkoutSummary = mcp.NewTool("get_workout_summary",
	mcp.WithDescription("Per-exercise records within one past workout: best set, max weight, and sets count for every exercise touched in that session."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolPlateMath = mcp.NewTool("plate_math",
	mcp.WithDescription("Which plates to load on each side of the bar for a target total weight. Greedy by descending denomination; may under-fill, never overshoots."),
	mcp.WithNumber("target", mcp.Required(), mcp.Description("Target total bar weight")),
	mcp.WithString("unit", mcp.Required(), mcp.Description("Unit of the target and plates"), mcp.Enum("kg", "lbs")),
	mcp.WithNumber("bar_weight", mcp.Description("Bar weight. Defaults to 20 kg / 45 lbs.")),
)

// --- Tool handlers ---

func (h *handlers) startWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workout, err := h.db.StartWorkout(ctx, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrWorkoutActive) {
			return mcp.NewToolResultError("a workout is already in progress"), nil
		}
		h.log.Error("mcp start_workout", "error", err)
		return mcp.NewToolResultError("start failed: " + err.Error()), nil
	}
	return toolResultJSON(workout)
}

func (h *handlers) endWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workout, err := h.db.EndWorkout(ctx, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNoActiveWorkout) {
			return mcp.NewToolResultError("no workout is in progress"), nil
		}
		h.log.Error("mcp end_workout", "error", err)
		return mcp.NewToolResultError("end failed: " + err.Error()), nil
	}
	return toolResultJSON(map[string]any{
		"workout": workout,
		"kept":    workout.EndTime != nil,
	})
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.db.SnapshotSession(ctx)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	tree := progress.Build(snap.Workout, snap.Exercises, snap.Groups, snap.Sets, snap.Markers)
	if tree == nil {
		return mcp.NewToolResultText("no workout is in progress"), nil
	}
	return toolResultJSON(tree)
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := requireUUID(req, "exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, err := req.RequireInt("count")
	if err != nil || count <= 0 {
		return mcp.NewToolResultError("count must be a positive integer"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil || weight < 0 {
		return mcp.NewToolResultError("weight must be a non-negative number"), nil
	}
	unit := models.Unit(req.GetString("unit", string(models.UnitKg)))
	if !unit.Valid() {
		return mcp.NewToolResultError("unit must be kg or lbs"), nil
	}

	set, err := h.db.AddSet(ctx, exerciseID, count, weight, unit)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoActiveWorkout):
			return mcp.NewToolResultError("no workout is in progress; start one first"), nil
		case errors.Is(err, storage.ErrExerciseNotFound):
			return mcp.NewToolResultError("exercise not found"), nil
		}
		h.log.Error("mcp log_set", "error", err)
		return mcp.NewToolResultError("logging failed: " + err.Error()), nil
	}
	return toolResultJSON(set)
}

func (h *handlers) toggleFinished(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := requireUUID(req, "exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	workout, err := h.db.CurrentWorkout(ctx)
	if err != nil {
		h.log.Error("mcp toggle_finished", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if workout == nil {
		return mcp.NewToolResultError("no workout is in progress"), nil
	}

	finished, err := h.db.ToggleFinished(ctx, workout.ID, exerciseID)
	if err != nil {
		h.log.Error("mcp toggle_finished", "error", err)
		return mcp.NewToolResultError("toggle failed: " + err.Error()), nil
	}
	return toolResultJSON(map[string]any{"exercise_id": exerciseID, "finished": finished})
}

func (h *handlers) listCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := h.db.QueryGroups(ctx)
	if err != nil {
		h.log.Error("mcp list_catalog", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	exercises, err := h.db.QueryExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_catalog", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	type groupEntry struct {
		models.ExerciseGroup
		Exercises []models.Exercise `json:"exercises"`
	}
	byGroup := make(map[uuid.UUID][]models.Exercise)
	for _, e := range exercises {
		byGroup[e.GroupID] = append(byGroup[e.GroupID], e)
	}
	result := make([]groupEntry, 0, len(groups))
	for _, g := range groups {
		result = append(result, groupEntry{ExerciseGroup: g, Exercises: byGroup[g.ID]})
	}
	return toolResultJSON(result)
}

func (h *handlers) getExerciseSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := requireUUID(req, "exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sets, err := h.db.QuerySetsByExercise(ctx, exerciseID)
	if err != nil {
		h.log.Error("mcp get_exercise_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	summary, hasRecord := records.Summarize(sets)
	if !hasRecord {
		return mcp.NewToolResultText("no sets recorded for this exercise"), nil
	}
	return toolResultJSON(summary)
}

func (h *handlers) getWorkoutSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID, err := requireUUID(req, "workout_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := h.db.GetWorkout(ctx, workoutID); err != nil {
		if errors.Is(err, storage.ErrWorkoutNotFound) {
			return mcp.NewToolResultError("workout not found"), nil
		}
		h.log.Error("mcp get_workout_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	sets, err := h.db.QuerySetsByWorkout(ctx, workoutID)
	if err != nil {
		h.log.Error("mcp get_workout_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	exercises, err := h.db.QueryExercises(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	names := make(map[uuid.UUID]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}

	summary := records.SummarizeWorkout(sets, func(id uuid.UUID) string { return names[id] })
	return toolResultJSON(summary)
}

func (h *handlers) plateMath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireFloat("target")
	if err != nil {
		return mcp.NewToolResultError("target parameter is required"), nil
	}
	unit := models.Unit(req.GetString("unit", ""))
	if !unit.Valid() {
		return mcp.NewToolResultError("unit must be kg or lbs"), nil
	}
	bar := req.GetFloat("bar_weight", 0)
	if bar == 0 {
		bar = 20
		if unit == models.UnitLbs {
			bar = 45
		}
	}

	available, err := h.db.QueryPlates(ctx, unit)
	if err != nil {
		h.log.Error("mcp plate_math", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	weights := make([]float64, len(available))
	for i, p := range available {
		weights[i] = p.Weight
	}

	perSide := plates.PerSide(target, bar, weights)
	return toolResultJSON(map[string]any{
		"target":     target,
		"bar_weight": bar,
		"unit":       unit,
		"per_side":   perSide,
		"total":      plates.Total(bar, perSide),
	})
}

// --- helpers ---

func requireUUID(req mcp.CallToolRequest, key string) (uuid.UUID, error) {
	s, err := req.RequireString(key)
	if err != nil {
		return uuid.Nil, errors.New(key + " parameter is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New(key + " is not a valid UUID")
	}
	return id, nil
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
