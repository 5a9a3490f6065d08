package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/armtrack/armtrack/internal/models"
	"github.com/armtrack/armtrack/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetUserProgress(ctx context.Context, userID uuid.UUID) (*storage.UserProgress, error)
	Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
	ListUserAnalyses(ctx context.Context, userID uuid.UUID, limit int) ([]*models.AnalysisRecord, error)
	GetGlobalStats(ctx context.Context) (*storage.GlobalStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
