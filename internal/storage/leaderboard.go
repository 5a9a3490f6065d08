package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LeaderboardEntry is one ranked row. Only users with at least one analyzed
// video appear on the leaderboard.
type LeaderboardEntry struct {
	Rank               int        `json:"rank"`
	UserID             uuid.UUID  `json:"user_id"`
	Username           string     `json:"username"`
	AveragePerformance float64    `json:"average_performance"`
	TotalVideos        int        `json:"total_videos"`
	TotalReps          int        `json:"total_reps"`
	BadgesEarned       int        `json:"badges_earned"`
	LastActivity       *time.Time `json:"last_activity,omitempty"`
}

// Leaderboard returns the top users by average performance, descending.
// BadgesEarned counts earned badges across each user's analyses, deduplicated
// by badge name.
func (db *DB) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT u.id, u.username, u.average_performance, u.total_videos, u.total_reps, u.last_activity,
			(SELECT COUNT(DISTINCT b->>'name')
			 FROM analyses a, jsonb_array_elements(a.badges) b
			 WHERE a.user_id = u.id AND (b->>'earned')::boolean)
		FROM users u
		WHERE u.total_videos > 0
		ORDER BY u.average_performance DESC, u.total_reps DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.AveragePerformance,
			&e.TotalVideos, &e.TotalReps, &e.LastActivity, &e.BadgesEarned); err != nil {
			return nil, fmt.Errorf("scanning leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UserRank returns a user's 1-based position among users with at least one
// analyzed video, and the size of that field. A user with no videos has no
// rank and gets (0, total).
func (db *DB) UserRank(ctx context.Context, userID uuid.UUID) (rank, total int, err error) {
	err = db.Pool.QueryRow(ctx, `
		SELECT
			CASE WHEN me.total_videos > 0 THEN
				(SELECT COUNT(*) + 1 FROM users o
				 WHERE o.total_videos > 0 AND o.average_performance > me.average_performance)
			ELSE 0 END,
			(SELECT COUNT(*) FROM users WHERE total_videos > 0)
		FROM users me WHERE me.id = $1`, userID).Scan(&rank, &total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("querying user rank: %w", err)
	}
	return rank, total, nil
}

// UserBadgeCount counts the distinct badge names a user has earned across all
// analyses.
func (db *DB) UserBadgeCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT b->>'name')
		FROM analyses a, jsonb_array_elements(a.badges) b
		WHERE a.user_id = $1 AND (b->>'earned')::boolean`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting badges: %w", err)
	}
	return count, nil
}
