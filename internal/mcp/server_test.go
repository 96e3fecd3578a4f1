package mcp

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// TestRequireUUIDValid verifies a well-formed UUID argument is parsed.
func TestRequireUUIDValid(t *testing.T) {
	want := uuid.New()
	req := callRequest(map[string]any{"exercise_id": want.String()})

	got, err := requireUUID(req, "exercise_id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("requireUUID = %v, want %v", got, want)
	}
}

// TestRequireUUIDMissing verifies a missing argument is reported by name.
func TestRequireUUIDMissing(t *testing.T) {
	req := callRequest(map[string]any{})

	if _, err := requireUUID(req, "exercise_id"); err == nil {
		t.Error("expected error for missing argument")
	}
}

// TestRequireUUIDMalformed verifies garbage input is rejected.
func TestRequireUUIDMalformed(t *testing.T) {
	req := callRequest(map[string]any{"exercise_id": "bench-press"})

	if _, err := requireUUID(req, "exercise_id"); err == nil {
		t.Error("expected error for malformed UUID")
	}
}

// TestNewRegistersTools verifies server construction with a nil store
// does not panic; handlers only touch the store when invoked.
func TestNewRegistersTools(t *testing.T) {
	s := New(nil, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s == nil {
		t.Fatal("New returned nil")
	}
}
