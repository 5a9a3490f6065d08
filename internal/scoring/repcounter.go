package scoring

import "fmt"

// RepState is the phase of the rep-counting cycle. The string labels are a
// persisted contract shared with stored frame results and the frontend.
type RepState int

const (
	StateRest RepState = iota
	StateGoingDown
	StateGoingUp
)

// String returns the canonical label for the state.
func (s RepState) String() string {
	switch s {
	case StateGoingDown:
		return "going_down"
	case StateGoingUp:
		return "going_up"
	default:
		return "rest"
	}
}

// MarshalText implements encoding.TextMarshaler so states serialize as their
// canonical labels.
func (s RepState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting exactly the
// canonical labels. Stored frame results decode through this.
func (s *RepState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "rest":
		*s = StateRest
	case "going_down":
		*s = StateGoingDown
	case "going_up":
		*s = StateGoingUp
	default:
		return fmt.Errorf("unknown rep state %q", text)
	}
	return nil
}

// position is the discretized joint position derived from a smoothed angle.
type position int

const (
	positionMiddle position = iota
	positionFullyBent
	positionFullyExtended
)

// RepCounter advances a three-state cycle over smoothed angle samples and
// counts completed reps. Requiring the full extended → bent → extended
// traversal rejects oscillation around a single threshold as spurious reps.
type RepCounter struct {
	minAngle float64
	maxAngle float64
	state    RepState
	count    int
	primed   bool
}

// NewRepCounter creates a counter with the given bent/extended thresholds.
func NewRepCounter(minAngle, maxAngle float64) *RepCounter {
	return &RepCounter{minAngle: minAngle, maxAngle: maxAngle}
}

// Observe advances the state machine with one smoothed angle sample and
// returns the cumulative rep count. The very first sample only records a
// baseline and triggers no transition.
func (rc *RepCounter) Observe(angle float64) int {
	if !rc.primed {
		rc.primed = true
		return rc.count
	}

	pos := rc.classify(angle)
	switch rc.state {
	case StateRest:
		switch pos {
		case positionFullyExtended:
			rc.state = StateGoingDown
		case positionFullyBent:
			// Already at the bottom of a bend; the rep completes when the
			// angle returns to the extended band.
			rc.state = StateGoingUp
		}
	case StateGoingDown:
		if pos == positionFullyBent {
			rc.state = StateGoingUp
		}
	case StateGoingUp:
		if pos == positionFullyExtended {
			rc.count++
			rc.state = StateRest
		}
	}

	return rc.count
}

func (rc *RepCounter) classify(angle float64) position {
	switch {
	case angle <= rc.minAngle:
		return positionFullyBent
	case angle >= rc.maxAngle:
		return positionFullyExtended
	default:
		return positionMiddle
	}
}

// Count returns the cumulative rep count.
func (rc *RepCounter) Count() int { return rc.count }

// State returns the current cycle phase.
func (rc *RepCounter) State() RepState { return rc.state }

// Reset returns the counter to its initial values: zero reps, rest state,
// waiting for a fresh baseline sample.
func (rc *RepCounter) Reset() {
	rc.count = 0
	rc.state = StateRest
	rc.primed = false
}
