// Package scoring turns a per-frame elbow-angle stream into posture scores and
// a repetition count. All decisions run on a smoothed angle to suppress
// detector jitter; a rep is confirmed only by a full extended → bent →
// extended traversal.
package scoring

// Config holds the tuning constants for one scoring session. The defaults are
// fixed, not calibrated per user; they are parameters only so tests can vary
// the smoothing window.
type Config struct {
	// SmoothingWindow is the number of recent raw angles averaged before any
	// state or score decision.
	SmoothingWindow int
	// MinAngle is the "fully bent" threshold in degrees: smoothed angles at or
	// below it count as the bottom of a rep.
	MinAngle float64
	// MaxAngle is the "fully extended" threshold in degrees: smoothed angles
	// at or above it count as the top of a rep.
	MaxAngle float64
}

// DefaultConfig returns the shipped constants: a 5-sample window and
// 45°/135° bend/extend thresholds.
func DefaultConfig() Config {
	return Config{
		SmoothingWindow: 5,
		MinAngle:        45,
		MaxAngle:        135,
	}
}

// Smoother maintains a bounded FIFO of recent angle samples and reports their
// arithmetic mean.
type Smoother struct {
	window  int
	history []float64
}

// NewSmoother creates a Smoother holding at most window samples. A window
// below 1 is treated as 1.
func NewSmoother(window int) *Smoother {
	if window < 1 {
		window = 1
	}
	return &Smoother{window: window}
}

// Push appends a raw sample, evicting the oldest if the window is full, and
// returns the mean of the retained samples.
func (s *Smoother) Push(angle float64) float64 {
	s.history = append(s.history, angle)
	if len(s.history) > s.window {
		s.history = s.history[1:]
	}
	var sum float64
	for _, a := range s.history {
		sum += a
	}
	return sum / float64(len(s.history))
}

// Len returns the number of samples currently held.
func (s *Smoother) Len() int { return len(s.history) }

// Reset discards all held samples.
func (s *Smoother) Reset() { s.history = s.history[:0] }

// PostureScore maps a smoothed elbow angle (degrees) to a 0–100 score. The
// mapping is piecewise linear with a deliberate jump at 90°: a bent arm
// (<90°) always lands in [80,100], an extended one in [0,20], so "bent enough"
// outscores "not bent enough" regardless of magnitude.
func PostureScore(angle float64) float64 {
	if angle < 90 {
		score := 100 - (angle/90)*20
		return clamp(score, 80, 100)
	}
	score := 20 - ((angle-90)/90)*20
	return clamp(score, 0, 20)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
