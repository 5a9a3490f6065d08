package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/armtrack/armtrack/internal/analysis"
	"github.com/armtrack/armtrack/internal/models"
)

// UserProgress is a user's record plus trends derived from the stored
// analysis history.
type UserProgress struct {
	User              *models.User `json:"user"`
	Improvement       float64      `json:"improvement"`
	RecentPerformance []float64    `json:"recent_performance"`
	BadgesEarned      int          `json:"badges_earned"`
}

// GetUserProgress composes a user's progress view: lifetime totals, the
// improvement trend over the full score history, the last 10 session scores
// in chronological order, and the distinct earned badge count.
func (db *DB) GetUserProgress(ctx context.Context, userID uuid.UUID) (*UserProgress, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := db.ScoreHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading score history: %w", err)
	}

	badges, err := db.UserBadgeCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting earned badges: %w", err)
	}

	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	if recent == nil {
		recent = []float64{}
	}

	return &UserProgress{
		User:              user,
		Improvement:       analysis.Improvement(history),
		RecentPerformance: recent,
		BadgesEarned:      badges,
	}, nil
}
