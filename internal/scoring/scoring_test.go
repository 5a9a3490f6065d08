package scoring

import (
	"encoding/json"
	"math"
	"testing"
)

// TestPostureScoreAnchors verifies the fixed points of the piecewise mapping,
// including the deliberate jump at 90°.
func TestPostureScoreAnchors(t *testing.T) {
	cases := []struct {
		angle float64
		want  float64
	}{
		{0, 100},
		{45, 90},
		{90, 20},
		{135, 10},
		{180, 0},
	}
	for _, tc := range cases {
		got := PostureScore(tc.angle)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("PostureScore(%v) = %v, want %v", tc.angle, got, tc.want)
		}
	}

	// Just below 90° the score approaches 80 from above; at 90° it drops to 20.
	below := PostureScore(89.999)
	if below < 80 || below > 80.001 {
		t.Errorf("PostureScore(89.999) = %v, want ~80", below)
	}
}

// TestPostureScoreBands verifies bent angles always land in [80,100] and
// extended ones in [0,20], and that the score decreases monotonically within
// each band.
func TestPostureScoreBands(t *testing.T) {
	prev := math.Inf(1)
	for a := 0.0; a < 90; a += 0.5 {
		s := PostureScore(a)
		if s < 80 || s > 100 {
			t.Fatalf("PostureScore(%v) = %v, outside [80,100]", a, s)
		}
		if s > prev {
			t.Fatalf("PostureScore not decreasing at %v: %v > %v", a, s, prev)
		}
		prev = s
	}

	prev = math.Inf(1)
	for a := 90.0; a <= 180; a += 0.5 {
		s := PostureScore(a)
		if s < 0 || s > 20 {
			t.Fatalf("PostureScore(%v) = %v, outside [0,20]", a, s)
		}
		if s > prev {
			t.Fatalf("PostureScore not decreasing at %v: %v > %v", a, s, prev)
		}
		prev = s
	}
}

// TestSmootherConstantInput verifies a constant input emerges unchanged once
// the window is saturated (and before, since the mean of equal values is the
// value).
func TestSmootherConstantInput(t *testing.T) {
	s := NewSmoother(5)
	for i := 0; i < 8; i++ {
		if got := s.Push(73.5); got != 73.5 {
			t.Fatalf("sample %d: smoothed = %v, want 73.5", i, got)
		}
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

// TestSmootherOutlierDamping verifies a single outlier amid identical values
// moves the output by exactly 1/5 of the delta with the default window.
func TestSmootherOutlierDamping(t *testing.T) {
	s := NewSmoother(5)
	for i := 0; i < 4; i++ {
		s.Push(100)
	}
	got := s.Push(150) // delta of 50
	want := 110.0      // 100 + 50/5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("smoothed after outlier = %v, want %v", got, want)
	}
}

// TestSmootherEviction verifies the oldest sample is dropped once the window
// is exceeded.
func TestSmootherEviction(t *testing.T) {
	s := NewSmoother(3)
	s.Push(10)
	s.Push(20)
	s.Push(30)
	got := s.Push(40) // 10 evicted; mean of 20,30,40
	if got != 30 {
		t.Errorf("smoothed after eviction = %v, want 30", got)
	}
}

// TestRepCounterSequences drives the state machine with smoothed-angle
// sequences and checks the resulting count and state. The first sample of a
// fresh counter is baseline only.
func TestRepCounterSequences(t *testing.T) {
	cases := []struct {
		name      string
		angles    []float64
		wantCount int
		wantState RepState
	}{
		{
			name:      "extended hold never counts",
			angles:    []float64{180, 180, 180},
			wantCount: 0,
			wantState: StateGoingDown,
		},
		{
			name:      "single full rep",
			angles:    []float64{180, 0, 180},
			wantCount: 1,
			wantState: StateRest,
		},
		{
			name:      "two full reps",
			angles:    []float64{180, 0, 180, 0, 180},
			wantCount: 2,
			wantState: StateRest,
		},
		{
			name:      "incomplete rep without return to extended",
			angles:    []float64{180, 0},
			wantCount: 0,
			wantState: StateGoingUp,
		},
		{
			name:      "middle band oscillation is inert",
			angles:    []float64{100, 95, 105, 100},
			wantCount: 0,
			wantState: StateRest,
		},
		{
			name:      "oscillation around extended threshold alone never counts",
			angles:    []float64{180, 140, 130, 140, 130, 140},
			wantCount: 0,
			wantState: StateGoingDown,
		},
		{
			name:      "gradual traversal",
			angles:    []float64{180, 170, 120, 60, 40, 60, 120, 170},
			wantCount: 1,
			wantState: StateRest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rc := NewRepCounter(45, 135)
			for _, a := range tc.angles {
				rc.Observe(a)
			}
			if rc.Count() != tc.wantCount {
				t.Errorf("count = %d, want %d", rc.Count(), tc.wantCount)
			}
			if rc.State() != tc.wantState {
				t.Errorf("state = %s, want %s", rc.State(), tc.wantState)
			}
		})
	}
}

// TestRepCounterFirstSampleBaseline verifies the very first sample records a
// baseline without advancing the cycle, regardless of its band.
func TestRepCounterFirstSampleBaseline(t *testing.T) {
	for _, first := range []float64{0, 90, 180} {
		rc := NewRepCounter(45, 135)
		rc.Observe(first)
		if rc.Count() != 0 || rc.State() != StateRest {
			t.Errorf("after baseline %v: count=%d state=%s, want 0/rest", first, rc.Count(), rc.State())
		}
	}
}

// TestRepStateLabels verifies the persisted state labels.
func TestRepStateLabels(t *testing.T) {
	cases := []struct {
		state RepState
		want  string
	}{
		{StateRest, "rest"},
		{StateGoingDown, "going_down"},
		{StateGoingUp, "going_up"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("state label = %q, want %q", got, tc.want)
		}
		text, err := tc.state.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		if string(text) != tc.want {
			t.Errorf("marshaled label = %q, want %q", text, tc.want)
		}
	}
}

// TestRepStateJSONRoundTrip verifies a stored frame result decodes back to the
// same state, as the frames column and the REST response both require.
func TestRepStateJSONRoundTrip(t *testing.T) {
	for _, state := range []RepState{StateRest, StateGoingDown, StateGoingUp} {
		in := FrameResult{FrameIndex: 7, Angle: 90, Score: 75, RepState: state}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal %s: %v", state, err)
		}
		var out FrameResult
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal %s: %v", state, err)
		}
		if out.RepState != state {
			t.Errorf("round trip = %s, want %s", out.RepState, state)
		}
	}
}

// TestRepStateUnmarshalUnknown verifies unknown labels are rejected rather
// than coerced to rest.
func TestRepStateUnmarshalUnknown(t *testing.T) {
	var s RepState
	if err := s.UnmarshalText([]byte("flexing")); err == nil {
		t.Error("expected error for unknown rep state label")
	}
}

// TestScorerReset verifies reset restores the initial state: a partial rep
// before the reset must not combine with a full rep after it.
func TestScorerReset(t *testing.T) {
	s := NewScorer(Config{SmoothingWindow: 1})

	// Partial rep: extended then bent, never back up.
	s.ObserveAngle(180)
	s.ObserveAngle(0)
	if s.RepCount() != 0 {
		t.Fatalf("partial rep counted: %d", s.RepCount())
	}

	s.Reset()
	if s.RepCount() != 0 || s.State() != StateRest {
		t.Fatalf("after reset: count=%d state=%s, want 0/rest", s.RepCount(), s.State())
	}

	// A full rep after the reset counts exactly once.
	for _, a := range []float64{180, 0, 180} {
		s.ObserveAngle(a)
	}
	if s.RepCount() != 1 {
		t.Errorf("rep count after reset + full rep = %d, want exactly 1", s.RepCount())
	}
	if s.State() != StateRest {
		t.Errorf("state = %s, want rest", s.State())
	}
}

// TestScorerSmoothingWindowConfigurable verifies the window size parameter is
// honored: with a window of 2 the smoothed angle is the mean of the last two
// raw samples.
func TestScorerSmoothingWindowConfigurable(t *testing.T) {
	s := NewScorer(Config{SmoothingWindow: 2, MinAngle: 45, MaxAngle: 135})
	s.ObserveAngle(100)
	smoothed, _ := s.ObserveAngle(140)
	if smoothed != 120 {
		t.Errorf("smoothed = %v, want 120", smoothed)
	}
}

// TestScorerDefaults verifies a zero config picks up the shipped constants.
func TestScorerDefaults(t *testing.T) {
	s := NewScorer(Config{})
	if s.cfg.SmoothingWindow != 5 || s.cfg.MinAngle != 45 || s.cfg.MaxAngle != 135 {
		t.Errorf("defaults = %+v, want window 5, thresholds 45/135", s.cfg)
	}
}
