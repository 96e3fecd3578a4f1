package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/liftlog/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// disables the auth middleware on mutating routes (dev mode, or when a
// tsnet listener handles access).
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// MountMCP attaches an MCP transport handler at /mcp, outside the
// /api/v1 key middleware. MCP clients bring their own session handling.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		// Session lifecycle
		r.Post("/workouts/start", s.handleStartWorkout)
		r.Post("/workouts/end", s.handleEndWorkout)
		r.Get("/workouts/current", s.handleCurrentWorkout)
		r.Get("/workouts", s.handleQueryWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Get("/workouts/{id}/summary", s.handleWorkoutSummary)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)

		// Live session
		r.Get("/progress", s.handleProgress)
		r.Post("/sets", s.handleAddSet)
		r.Patch("/sets/{id}", s.handleUpdateSet)
		r.Delete("/sets/{id}", s.handleDeleteSet)

		// Catalog
		r.Get("/groups", s.handleQueryGroups)
		r.Post("/groups", s.handleCreateGroup)
		r.Patch("/groups/{id}", s.handleRenameGroup)
		r.Delete("/groups/{id}", s.handleDeleteGroup)

		r.Get("/exercises", s.handleQueryExercises)
		r.Post("/exercises", s.handleCreateExercise)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Patch("/exercises/{id}", s.handleUpdateExercise)
		r.Delete("/exercises/{id}", s.handleDeleteExercise)
		r.Get("/exercises/{id}/sets", s.handleExerciseSets)
		r.Get("/exercises/{id}/summary", s.handleExerciseSummary)
		r.Post("/exercises/{id}/finished", s.handleToggleFinished)

		// Templates
		r.Get("/templates", s.handleQueryTemplates)
		r.Post("/templates", s.handleCreateTemplate)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Patch("/templates/{id}", s.handleUpdateTemplate)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)

		// Cardio
		r.Get("/cardio", s.handleQueryCardio)
		r.Post("/cardio", s.handleCreateCardio)
		r.Patch("/cardio/{id}", s.handleUpdateCardio)
		r.Post("/cardio/{id}/done", s.handleToggleCardioDone)
		r.Delete("/cardio/{id}", s.handleDeleteCardio)

		// Equipment and helpers
		r.Get("/barbells", s.handleQueryBarbells)
		r.Get("/plates", s.handleQueryPlates)
		r.Get("/plate-math", s.handlePlateMath)
		r.Get("/convert", s.handleConvert)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStorageError maps domain sentinels to HTTP statuses. Precondition
// conflicts (double start, idle end) get 409, unresolved references 404.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrWorkoutActive),
		errors.Is(err, storage.ErrNoActiveWorkout),
		errors.Is(err, storage.ErrGroupHasExercises):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrWorkoutNotFound),
		errors.Is(err, storage.ErrExerciseNotFound),
		errors.Is(err, storage.ErrSetNotFound),
		errors.Is(err, storage.ErrGroupNotFound),
		errors.Is(err, storage.ErrBarbellNotFound),
		errors.Is(err, storage.ErrTemplateNotFound),
		errors.Is(err, storage.ErrCardioNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.log.Error("storage error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
