package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetUserProgress = mcp.NewTool("get_user_progress",
	mcp.WithDescription("Get a user's training progress: lifetime totals, weighted average performance, improvement trend (first vs last sessions), recent session scores, and earned badge count."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID (UUID)")),
)

var toolGetLeaderboard = mcp.NewTool("get_leaderboard",
	mcp.WithDescription("Get the top users ranked by average performance. Only users with at least one analyzed video appear."),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 10, max 100)")),
)

var toolGetAnalysis = mcp.NewTool("get_analysis",
	mcp.WithDescription("Get a single analyzed session: rep count, posture scores, performance level, badges, and per-frame results when stored."),
	mcp.WithString("analysis_id", mcp.Required(), mcp.Description("Analysis ID (UUID)")),
)

var toolListUserAnalyses = mcp.NewTool("list_user_analyses",
	mcp.WithDescription("List a user's analyzed sessions, newest first. Returns session summaries without per-frame results."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID (UUID)")),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return (default 50)")),
)

var toolGetGlobalStats = mcp.NewTool("get_global_stats",
	mcp.WithDescription("Get deployment-wide totals: user counts, analyzed sessions, total reps, and score aggregates."),
)

// --- Tool handlers ---

func (h *handlers) getUserProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := requireUUID(req, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	progress, err := h.ds.GetUserProgress(ctx, userID)
	if err != nil {
		h.log.Error("mcp get_user_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return toolJSON(progress)
}

func (h *handlers) getLeaderboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)

	entries, err := h.ds.Leaderboard(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_leaderboard", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return toolJSON(entries)
}

func (h *handlers) getAnalysis(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireUUID(req, "analysis_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := h.ds.GetAnalysis(ctx, id)
	if err != nil {
		h.log.Error("mcp get_analysis", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return toolJSON(rec)
}

func (h *handlers) listUserAnalyses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := requireUUID(req, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", 50)

	list, err := h.ds.ListUserAnalyses(ctx, userID, limit)
	if err != nil {
		h.log.Error("mcp list_user_analyses", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return toolJSON(list)
}

func (h *handlers) getGlobalStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetGlobalStats(ctx)
	if err != nil {
		h.log.Error("mcp get_global_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return toolJSON(stats)
}

func requireUUID(req mcp.CallToolRequest, param string) (uuid.UUID, error) {
	raw, err := req.RequireString(param)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
