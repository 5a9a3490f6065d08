package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("ArmTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("ArmTrack exercise analysis server. Query user progress, analyzed sessions, rep counts, posture scores, badges, and the leaderboard."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetUserProgress, Handler: h.getUserProgress},
		server.ServerTool{Tool: toolGetLeaderboard, Handler: h.getLeaderboard},
		server.ServerTool{Tool: toolGetAnalysis, Handler: h.getAnalysis},
		server.ServerTool{Tool: toolListUserAnalyses, Handler: h.listUserAnalyses},
		server.ServerTool{Tool: toolGetGlobalStats, Handler: h.getGlobalStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resLeaderboard, Handler: h.leaderboardResource},
		server.ServerResource{Resource: resGlobalStats, Handler: h.globalStatsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resLeaderboard = mcp.NewResource(
	"armtrack://leaderboard",
	"Leaderboard",
	mcp.WithResourceDescription("Top users ranked by average performance, with totals and earned badge counts"),
	mcp.WithMIMEType("application/json"),
)

var resGlobalStats = mcp.NewResource(
	"armtrack://stats",
	"Global Statistics",
	mcp.WithResourceDescription("Deployment-wide totals: users, analyzed sessions, reps, and score aggregates"),
	mcp.WithMIMEType("application/json"),
)
