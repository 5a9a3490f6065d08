package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account with its lifetime training totals. The
// average_performance column is a running weighted mean over all of the
// user's analyzed videos.
type User struct {
	ID                 uuid.UUID  `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	TotalVideos        int        `json:"total_videos"`
	TotalReps          int        `json:"total_reps"`
	AveragePerformance float64    `json:"average_performance"`
	LastActivity       *time.Time `json:"last_activity,omitempty"`
}
