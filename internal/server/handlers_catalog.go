package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/records"
	"github.com/meltforce/liftlog/internal/storage"
)

func (s *Server) handleQueryGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.db.QueryGroups(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

type groupRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	group, err := s.db.CreateGroup(r.Context(), req.Name)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if err := s.db.RenameGroup(r.Context(), id, req.Name); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteGroup(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQueryExercises(w http.ResponseWriter, r *http.Request) {
	if groupStr := r.URL.Query().Get("group"); groupStr != "" {
		groupID, err := uuid.Parse(groupStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid group ID"})
			return
		}
		exercises, err := s.db.QueryExercisesByGroup(r.Context(), groupID)
		if err != nil {
			s.writeStorageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, exercises)
		return
	}

	exercises, err := s.db.QueryExercises(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

type createExerciseRequest struct {
	Name    string    `json:"name"`
	GroupID uuid.UUID `json:"group_id"`
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	exercise, err := s.db.CreateExercise(r.Context(), req.Name, req.GroupID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

type updateExerciseRequest struct {
	Name      *string    `json:"name,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	SetsGoal  *int       `json:"sets_goal,omitempty"`
	BarbellID *uuid.UUID `json:"barbell_id,omitempty"`
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req updateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	err := s.db.UpdateExercise(r.Context(), id, storage.ExerciseUpdate{
		Name:      req.Name,
		Notes:     req.Notes,
		SetsGoal:  req.SetsGoal,
		BarbellID: req.BarbellID,
	})
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteExercise(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExerciseSets(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := s.db.GetExercise(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	sets, err := s.db.QuerySetsByExercise(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

// handleExerciseSummary returns the all-time records for an exercise:
// best set by volume and heaviest single weight.
func (s *Server) handleExerciseSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := s.db.GetExercise(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	sets, err := s.db.QuerySetsByExercise(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	summary, hasRecord := records.Summarize(sets)
	if !hasRecord {
		writeJSON(w, http.StatusOK, map[string]any{"has_record": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"has_record": true, "summary": summary})
}

type templateRequest struct {
	Name      *string     `json:"name,omitempty"`
	Exercises []uuid.UUID `json:"exercises,omitempty"`
}

func (s *Server) handleQueryTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.db.QueryTemplates(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == nil || *req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	template, err := s.db.CreateTemplate(r.Context(), *req.Name, req.Exercises)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	template, err := s.db.GetTemplate(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.db.UpdateTemplate(r.Context(), id, req.Name, req.Exercises); err != nil {
		s.writeStorageError(w, err)
		return
	}
	template, err := s.db.GetTemplate(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteTemplate(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
