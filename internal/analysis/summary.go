// Package analysis folds per-frame scoring results into session-level
// summaries, badges and cross-session progress figures.
package analysis

import (
	"math"

	"github.com/armtrack/armtrack/internal/scoring"
	"gonum.org/v1/gonum/stat"
)

// Performance level labels, assigned from the session's average score.
const (
	LevelExcellent = "Excellent"
	LevelGood      = "Good"
	LevelModerate  = "Moderate"
	LevelNeedsWork = "Needs Improvement"
	LevelNoData    = "No Data"
)

// Summary is the aggregate outcome of one analyzed session. Field names are a
// persisted contract consumed by user-progress and leaderboard storage.
type Summary struct {
	TotalReps        int     `json:"total_reps"`
	AverageScore     float64 `json:"average_score"`
	MaxScore         float64 `json:"max_score"`
	MinScore         float64 `json:"min_score"`
	AverageAngle     float64 `json:"average_angle"`
	PerformanceLevel string  `json:"performance_level"`
	Badges           []Badge `json:"badges"`
	Improvement      float64 `json:"improvement"`
	Consistency      float64 `json:"consistency"`
	FormQuality      float64 `json:"form_quality"`
	ScoreStdDev      float64 `json:"score_std"`
	AngleStdDev      float64 `json:"angle_std"`
	RepsPerMinute    float64 `json:"reps_per_minute"`
}

// Summarize folds an ordered frame-result stream into a Summary. The stream
// may be partial; calling it mid-session yields a valid summary over the
// frames seen so far. An empty stream returns the all-zero "No Data" summary
// with an empty badge list, never an error.
//
// durationSeconds is the wall-clock span of the session (video duration), used
// for the reps-per-minute rate; non-positive durations yield a rate of zero.
func Summarize(frames []scoring.FrameResult, durationSeconds float64) Summary {
	if len(frames) == 0 {
		return Summary{
			PerformanceLevel: LevelNoData,
			Badges:           []Badge{},
		}
	}

	scores := make([]float64, len(frames))
	angles := make([]float64, len(frames))
	totalReps := 0
	for i, f := range frames {
		scores[i] = f.Score
		angles[i] = f.Angle
		if f.RepCount > totalReps {
			totalReps = f.RepCount
		}
	}

	avgScore := stat.Mean(scores, nil)
	avgAngle := stat.Mean(angles, nil)
	scoreStd := stat.PopStdDev(scores, nil)
	angleStd := stat.PopStdDev(angles, nil)

	consistency := math.Max(0, 100-scoreStd*2)
	formQuality := math.Max(0, 100-angleStd/10)

	repsPerMinute := 0.0
	if durationSeconds > 0 {
		repsPerMinute = float64(totalReps) / durationSeconds * 60
	}

	return Summary{
		TotalReps:        totalReps,
		AverageScore:     avgScore,
		MaxScore:         maxOf(scores),
		MinScore:         minOf(scores),
		AverageAngle:     avgAngle,
		PerformanceLevel: performanceLevel(avgScore),
		Badges:           AssignBadges(avgScore, totalReps, consistency, formQuality),
		Improvement:      0, // cross-session; computed by the progress query
		Consistency:      consistency,
		FormQuality:      formQuality,
		ScoreStdDev:      scoreStd,
		AngleStdDev:      angleStd,
		RepsPerMinute:    repsPerMinute,
	}
}

func performanceLevel(avgScore float64) string {
	switch {
	case avgScore >= 80:
		return LevelExcellent
	case avgScore >= 60:
		return LevelGood
	case avgScore >= 40:
		return LevelModerate
	default:
		return LevelNeedsWork
	}
}

// Improvement compares the mean average-score of a user's first five sessions
// against their last five, as a percent change. Fewer than two historical
// points, or a zero first-window mean, yields zero. History must be in
// chronological order.
func Improvement(history []float64) float64 {
	if len(history) < 2 {
		return 0
	}
	first := history[:min(5, len(history))]
	last := history[max(0, len(history)-5):]

	firstAvg := stat.Mean(first, nil)
	lastAvg := stat.Mean(last, nil)
	if firstAvg == 0 {
		return 0
	}
	return (lastAvg - firstAvg) / firstAvg * 100
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
