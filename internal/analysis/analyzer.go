package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/armtrack/armtrack/internal/pose"
	"github.com/armtrack/armtrack/internal/scoring"
	"github.com/google/uuid"
)

// Request is one landmark-frame stream submitted for analysis. Frames are the
// flattened 132-value keypoint sets in temporal order, as produced by the
// landmark provider.
type Request struct {
	UserID    string      `json:"user_id,omitempty"`
	VideoName string      `json:"video_name,omitempty"`
	FPS       float64     `json:"fps"`
	Frames    [][]float64 `json:"frames"`
}

// Result is a complete analyzed session: the per-frame stream plus its
// summary.
type Result struct {
	AnalysisID      string                `json:"analysis_id"`
	UserID          string                `json:"user_id"`
	VideoName       string                `json:"video_name,omitempty"`
	CreatedAt       time.Time             `json:"timestamp"`
	FPS             float64               `json:"fps"`
	Duration        float64               `json:"duration"`
	TotalFrames     int                   `json:"total_frames"`
	ProcessedFrames int                   `json:"processed_frames"`
	Frames          []scoring.FrameResult `json:"frame_results"`
	Summary         Summary               `json:"summary"`
}

// Analyzer runs the scoring engine over submitted frame streams. It holds no
// per-session state; each Run owns a private Scorer, so a single Analyzer can
// serve concurrent sessions.
type Analyzer struct {
	cfg scoring.Config
	log *slog.Logger
}

// NewAnalyzer creates an Analyzer using the given scoring constants.
func NewAnalyzer(cfg scoring.Config, log *slog.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log}
}

// Run scores every frame of the request in order and summarizes the session.
// Frames with no detected pose (all-zero keypoints) are skipped without
// touching the scorer state; a frame with the wrong number of values fails the
// whole request.
//
// Cancelling the context stops frame processing; the frames scored so far are
// still folded into a valid partial summary.
func (a *Analyzer) Run(ctx context.Context, req *Request) (*Result, error) {
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}

	result := &Result{
		AnalysisID:  uuid.NewString(),
		UserID:      userID,
		VideoName:   req.VideoName,
		CreatedAt:   time.Now().UTC(),
		FPS:         req.FPS,
		TotalFrames: len(req.Frames),
	}
	if req.FPS > 0 {
		result.Duration = float64(len(req.Frames)) / req.FPS
	}

	scorer := scoring.NewScorer(a.cfg)

	for i, flat := range req.Frames {
		if ctx.Err() != nil {
			a.log.Warn("analysis cancelled, summarizing partial stream",
				"analysis_id", result.AnalysisID, "frames_scored", len(result.Frames))
			break
		}

		kp, err := pose.KeypointsFromFlat(flat)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if kp.Missing() {
			continue
		}

		timestamp := 0.0
		if req.FPS > 0 {
			timestamp = float64(i) / req.FPS
		}

		result.Frames = append(result.Frames, scorer.ScoreFrame(kp, i, timestamp))
		result.ProcessedFrames++
	}

	result.Summary = Summarize(result.Frames, result.Duration)

	a.log.Info("analysis complete",
		"analysis_id", result.AnalysisID,
		"user_id", userID,
		"frames", result.TotalFrames,
		"processed", result.ProcessedFrames,
		"reps", result.Summary.TotalReps,
		"avg_score", result.Summary.AverageScore,
	)

	return result, nil
}
