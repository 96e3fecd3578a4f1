package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meltforce/liftlog/internal/storage"
)

// TestWriteStorageError verifies the sentinel-to-status mapping:
// precondition conflicts are 409, dangling references 404, everything
// else 500.
func TestWriteStorageError(t *testing.T) {
	s := &Server{log: slog.Default()}

	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrWorkoutActive, http.StatusConflict},
		{storage.ErrNoActiveWorkout, http.StatusConflict},
		{storage.ErrGroupHasExercises, http.StatusConflict},
		{storage.ErrWorkoutNotFound, http.StatusNotFound},
		{storage.ErrExerciseNotFound, http.StatusNotFound},
		{storage.ErrSetNotFound, http.StatusNotFound},
		{storage.ErrTemplateNotFound, http.StatusNotFound},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.writeStorageError(rec, tt.err)
		if rec.Code != tt.want {
			t.Errorf("writeStorageError(%v) status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

// TestHandleConvert verifies the kg/lbs conversion endpoint.
func TestHandleConvert(t *testing.T) {
	s := &Server{log: slog.Default()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert?value=100&from=kg", nil)
	rec := httptest.NewRecorder()
	s.handleConvert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Converted float64 `json:"converted"`
		To        string  `json:"to"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if math.Abs(resp.Converted-220.462) > 1e-3 {
		t.Errorf("converted = %v, want 220.462", resp.Converted)
	}
	if resp.To != "lbs" {
		t.Errorf("to = %q, want lbs", resp.To)
	}
}

// TestHandleConvertBadUnit verifies unknown units are rejected.
func TestHandleConvertBadUnit(t *testing.T) {
	s := &Server{log: slog.Default()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert?value=10&from=stone", nil)
	rec := httptest.NewRecorder()
	s.handleConvert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleConvertMissingValue verifies a missing value is rejected.
func TestHandleConvertMissingValue(t *testing.T) {
	s := &Server{log: slog.Default()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/convert?from=kg", nil)
	rec := httptest.NewRecorder()
	s.handleConvert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
