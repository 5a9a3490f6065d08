package storage

import (
	"context"
	"fmt"
	"time"
)

// GlobalStats holds aggregate statistics across all users and analyses.
type GlobalStats struct {
	TotalUsers     int64      `json:"total_users"`
	ActiveUsers    int64      `json:"active_users"`
	TotalAnalyses  int64      `json:"total_analyses"`
	TotalReps      int64      `json:"total_reps"`
	AverageScore   float64    `json:"average_score"`
	BestScore      float64    `json:"best_score"`
	LatestAnalysis *time.Time `json:"latest_analysis,omitempty"`
}

// GetGlobalStats returns deployment-wide totals. ActiveUsers counts users
// with at least one analyzed video; AverageScore averages over analyses, not
// users.
func (db *DB) GetGlobalStats(ctx context.Context) (*GlobalStats, error) {
	stats := &GlobalStats{}

	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE total_videos > 0)
		FROM users`).Scan(&stats.TotalUsers, &stats.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_reps), 0),
			COALESCE(AVG(average_score), 0), COALESCE(MAX(max_score), 0),
			MAX(created_at)
		FROM analyses`).Scan(&stats.TotalAnalyses, &stats.TotalReps,
		&stats.AverageScore, &stats.BestScore, &stats.LatestAnalysis)
	if err != nil {
		return nil, fmt.Errorf("aggregating analyses: %w", err)
	}

	return stats, nil
}
