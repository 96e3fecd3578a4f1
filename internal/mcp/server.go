// Package mcp exposes the workout engine to MCP clients: session
// control, set logging, live progress, records, and plate math.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/liftlog/internal/storage"
)

// New creates an MCP server with all tools registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("LiftLog workout tracker. Start and end training sessions, log sets against exercises, check live session progress, and query personal records. Weights keep the unit they were recorded in."),
	)

	h := &handlers{db: db, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolStartWorkout, Handler: h.startWorkout},
		server.ServerTool{Tool: toolEndWorkout, Handler: h.endWorkout},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
		server.ServerTool{Tool: toolToggleFinished, Handler: h.toggleFinished},
		server.ServerTool{Tool: toolListCatalog, Handler: h.listCatalog},
		server.ServerTool{Tool: toolGetExerciseSummary, Handler: h.getExerciseSummary},
		server.ServerTool{Tool: toolGetWorkoutSummary, Handler: h.getWorkoutSummary},
		server.ServerTool{Tool: toolPlateMath, Handler: h.plateMath},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}
