package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/plates"
	"github.com/meltforce/liftlog/internal/storage"
)

// Olympic bar defaults used when no barbell is picked.
const (
	defaultBarKg  = 20
	defaultBarLbs = 45
)

func (s *Server) handleQueryBarbells(w http.ResponseWriter, r *http.Request) {
	barbells, err := s.db.QueryBarbells(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, barbells)
}

func (s *Server) handleQueryPlates(w http.ResponseWriter, r *http.Request) {
	unit := models.Unit(r.URL.Query().Get("unit"))
	if !unit.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lbs"})
		return
	}
	result, err := s.db.QueryPlates(r.Context(), unit)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePlateMath answers "what do I put on the bar for this weight".
// The bar weight comes from an explicit barbell, or the Olympic default
// for the unit. The greedy selection may under-fill; the response
// carries the achievable total so the client can show the gap.
func (s *Server) handlePlateMath(w http.ResponseWriter, r *http.Request) {
	target, err := strconv.ParseFloat(r.URL.Query().Get("target"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target parameter required"})
		return
	}
	unit := models.Unit(r.URL.Query().Get("unit"))
	if !unit.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lbs"})
		return
	}

	bar := float64(defaultBarKg)
	if unit == models.UnitLbs {
		bar = defaultBarLbs
	}
	if barbellStr := r.URL.Query().Get("barbell_id"); barbellStr != "" {
		barbellID, err := uuid.Parse(barbellStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid barbell ID"})
			return
		}
		barbell, err := s.db.GetBarbell(r.Context(), barbellID)
		if err != nil {
			s.writeStorageError(w, err)
			return
		}
		bar = barbell.Weight
	}

	available, err := s.db.QueryPlates(r.Context(), unit)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	weights := make([]float64, len(available))
	for i, p := range available {
		weights[i] = p.Weight
	}

	perSide := plates.PerSide(target, bar, weights)
	writeJSON(w, http.StatusOK, map[string]any{
		"target":     target,
		"bar_weight": bar,
		"unit":       unit,
		"per_side":   perSide,
		"total":      plates.Total(bar, perSide),
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value parameter required"})
		return
	}
	from := models.Unit(r.URL.Query().Get("from"))
	if !from.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from must be kg or lbs"})
		return
	}

	var converted float64
	var to models.Unit
	if from == models.UnitKg {
		converted, to = models.KgToLbs(value), models.UnitLbs
	} else {
		converted, to = models.LbsToKg(value), models.UnitKg
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"value": value, "from": from, "converted": converted, "to": to,
	})
}

func (s *Server) handleQueryCardio(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.QueryCardio(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type cardioRequest struct {
	Title   *string  `json:"title,omitempty"`
	Time    *float64 `json:"time,omitempty"`
	Incline *float64 `json:"incline,omitempty"`
	Speed   *float64 `json:"speed,omitempty"`
}

func (s *Server) handleCreateCardio(w http.ResponseWriter, r *http.Request) {
	var req cardioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == nil || *req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	var minutes, incline, speed float64
	if req.Time != nil {
		minutes = *req.Time
	}
	if req.Incline != nil {
		incline = *req.Incline
	}
	if req.Speed != nil {
		speed = *req.Speed
	}
	entry, err := s.db.CreateCardio(r.Context(), *req.Title, minutes, incline, speed)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateCardio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req cardioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	err := s.db.UpdateCardio(r.Context(), id, storage.CardioUpdate{
		Title:   req.Title,
		Time:    req.Time,
		Incline: req.Incline,
		Speed:   req.Speed,
	})
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleCardioDone(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	entry, err := s.db.ToggleCardioDone(r.Context(), id, time.Now())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteCardio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteCardio(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
