package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/armtrack/armtrack/internal/analysis"
	"github.com/armtrack/armtrack/internal/scoring"
)

// AnalysisRecord is a stored analysis session: the submission metadata, the
// session summary, and optionally the per-frame results.
type AnalysisRecord struct {
	ID              uuid.UUID             `json:"analysis_id"`
	UserID          uuid.UUID             `json:"user_id"`
	VideoName       string                `json:"video_name,omitempty"`
	CreatedAt       time.Time             `json:"timestamp"`
	FPS             float64               `json:"fps"`
	DurationSec     float64               `json:"duration_sec"`
	TotalFrames     int                   `json:"total_frames"`
	ProcessedFrames int                   `json:"processed_frames"`
	Summary         analysis.Summary      `json:"summary"`
	Frames          []scoring.FrameResult `json:"frame_results,omitempty"`
}
