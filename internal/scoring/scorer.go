package scoring

import "github.com/armtrack/armtrack/internal/pose"

// FrameResult is the per-frame output of the scoring engine. Immutable once
// created; appended to the session's result stream.
type FrameResult struct {
	FrameIndex int      `json:"frame_idx"`
	Timestamp  float64  `json:"timestamp"`
	Angle      float64  `json:"angle"`
	LeftAngle  float64  `json:"left_angle"`
	RightAngle float64  `json:"right_angle"`
	Score      float64  `json:"score"`
	RepCount   int      `json:"rep_count"`
	RepState   RepState `json:"rep_state"`
}

// Scorer is the per-session scoring state: the smoothing window and the rep
// state machine. Exactly one Scorer exists per analyzed stream; it is owned by
// the caller and never shared across sessions, so concurrent sessions need no
// locking.
type Scorer struct {
	cfg      Config
	smoother *Smoother
	counter  *RepCounter
}

// NewScorer creates a Scorer for one session. A zero-valued window or
// thresholds are replaced with the defaults.
func NewScorer(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.SmoothingWindow == 0 {
		cfg.SmoothingWindow = def.SmoothingWindow
	}
	if cfg.MinAngle == 0 {
		cfg.MinAngle = def.MinAngle
	}
	if cfg.MaxAngle == 0 {
		cfg.MaxAngle = def.MaxAngle
	}
	return &Scorer{
		cfg:      cfg,
		smoother: NewSmoother(cfg.SmoothingWindow),
		counter:  NewRepCounter(cfg.MinAngle, cfg.MaxAngle),
	}
}

// ScoreFrame processes one frame's keypoints in order: compute both elbow
// angles, push their average into the smoother, advance the rep state machine
// on the smoothed angle, then score it. Frames must be fed in temporal order.
func (s *Scorer) ScoreFrame(kp pose.Keypoints, frameIdx int, timestamp float64) FrameResult {
	left := pose.ElbowAngle(kp, pose.LeftArm)
	right := pose.ElbowAngle(kp, pose.RightArm)

	smoothed := s.smoother.Push((left + right) / 2)
	repCount := s.counter.Observe(smoothed)

	return FrameResult{
		FrameIndex: frameIdx,
		Timestamp:  timestamp,
		Angle:      smoothed,
		LeftAngle:  left,
		RightAngle: right,
		Score:      PostureScore(smoothed),
		RepCount:   repCount,
		RepState:   s.counter.State(),
	}
}

// ObserveAngle runs one pre-computed raw average angle through the smoothing
// and counting pipeline without keypoint extraction. Used by replay tooling
// and tests that feed synthetic angle sequences.
func (s *Scorer) ObserveAngle(angle float64) (smoothed float64, repCount int) {
	smoothed = s.smoother.Push(angle)
	repCount = s.counter.Observe(smoothed)
	return smoothed, repCount
}

// RepCount returns the cumulative rep count.
func (s *Scorer) RepCount() int { return s.counter.Count() }

// State returns the current rep cycle phase.
func (s *Scorer) State() RepState { return s.counter.State() }

// Reset clears all session state: rep count to zero, state to rest, angle
// history emptied. Takes effect before the next scored frame.
func (s *Scorer) Reset() {
	s.smoother.Reset()
	s.counter.Reset()
}
