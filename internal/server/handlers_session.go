package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/progress"
	"github.com/meltforce/liftlog/internal/records"
	"github.com/meltforce/liftlog/internal/storage"
)

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.db.StartWorkout(r.Context(), time.Now())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) handleEndWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.db.EndWorkout(r.Context(), time.Now())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	// A deleted empty session comes back with no end time; tell the
	// client whether anything was kept.
	writeJSON(w, http.StatusOK, map[string]any{
		"workout": workout,
		"kept":    workout.EndTime != nil,
	})
}

func (s *Server) handleCurrentWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.db.CurrentWorkout(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workout": workout, "active": workout != nil})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	workouts, err := s.db.QueryWorkouts(r.Context(), limit)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	workout, err := s.db.GetWorkout(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleWorkoutSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := s.db.GetWorkout(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}

	sets, err := s.db.QuerySetsByWorkout(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	exercises, err := s.db.QueryExercises(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	names := make(map[uuid.UUID]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}

	summary := records.SummarizeWorkout(sets, func(id uuid.UUID) string { return names[id] })
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteWorkout(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	snap, err := s.db.SnapshotSession(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	tree := progress.Build(snap.Workout, snap.Exercises, snap.Groups, snap.Sets, snap.Markers)
	writeJSON(w, http.StatusOK, map[string]any{"progress": tree, "active": tree != nil})
}

type addSetRequest struct {
	ExerciseID uuid.UUID   `json:"exercise_id"`
	Count      int         `json:"count"`
	Weight     float64     `json:"weight"`
	Unit       models.Unit `json:"unit"`
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var req addSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Count <= 0 || req.Weight < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "count must be positive and weight non-negative"})
		return
	}
	if !req.Unit.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lbs"})
		return
	}

	set, err := s.db.AddSet(r.Context(), req.ExerciseID, req.Count, req.Weight, req.Unit)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

type updateSetRequest struct {
	Count  *int     `json:"count,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req updateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Count != nil && *req.Count <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "count must be positive"})
		return
	}
	if req.Weight != nil && *req.Weight < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be non-negative"})
		return
	}

	if err := s.db.UpdateSet(r.Context(), id, req.Count, req.Weight); err != nil {
		s.writeStorageError(w, err)
		return
	}
	set, err := s.db.GetSet(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteSet(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleFinished flips the manual done flag for an exercise in
// the active session.
func (s *Server) handleToggleFinished(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := s.db.GetExercise(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}

	workout, err := s.db.CurrentWorkout(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if workout == nil {
		s.writeStorageError(w, storage.ErrNoActiveWorkout)
		return
	}

	finished, err := s.db.ToggleFinished(r.Context(), workout.ID, id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercise_id": id, "finished": finished})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}
