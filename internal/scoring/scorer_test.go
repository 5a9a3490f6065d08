package scoring

import (
	"math"
	"testing"

	"github.com/armtrack/armtrack/internal/pose"
)

// testFrame builds a keypoint set with both elbows at the given angle and all
// landmarks fully visible.
func testFrame(angleDeg float64) pose.Keypoints {
	var kp pose.Keypoints
	for i := range kp {
		kp[i].Visibility = 1.0
	}

	rad := angleDeg * math.Pi / 180
	wristX := 0.4 + 0.15*math.Sin(rad)
	wristY := 0.5 - 0.15*math.Cos(rad)

	kp[pose.LeftShoulder] = pose.Landmark{X: 0.4, Y: 0.3, Visibility: 1}
	kp[pose.LeftElbow] = pose.Landmark{X: 0.4, Y: 0.5, Visibility: 1}
	kp[pose.LeftWrist] = pose.Landmark{X: wristX, Y: wristY, Visibility: 1}
	kp[pose.RightShoulder] = pose.Landmark{X: 0.6, Y: 0.3, Visibility: 1}
	kp[pose.RightElbow] = pose.Landmark{X: 0.6, Y: 0.5, Visibility: 1}
	kp[pose.RightWrist] = pose.Landmark{X: 1 - wristX, Y: wristY, Visibility: 1}

	return kp
}

// TestScoreFramePipeline verifies one frame runs the full push → smooth →
// count → score order and reports both per-arm angles.
func TestScoreFramePipeline(t *testing.T) {
	s := NewScorer(Config{SmoothingWindow: 1})

	fr := s.ScoreFrame(testFrame(40), 3, 0.1)

	if fr.FrameIndex != 3 || fr.Timestamp != 0.1 {
		t.Errorf("frame metadata = (%d, %v), want (3, 0.1)", fr.FrameIndex, fr.Timestamp)
	}
	if math.Abs(fr.LeftAngle-40) > 1e-6 || math.Abs(fr.RightAngle-40) > 1e-6 {
		t.Errorf("per-arm angles = (%v, %v), want 40", fr.LeftAngle, fr.RightAngle)
	}
	if math.Abs(fr.Angle-40) > 1e-6 {
		t.Errorf("smoothed angle = %v, want 40", fr.Angle)
	}
	wantScore := PostureScore(fr.Angle)
	if fr.Score != wantScore {
		t.Errorf("score = %v, want %v", fr.Score, wantScore)
	}
	if fr.RepState != StateRest || fr.RepCount != 0 {
		t.Errorf("first frame: state=%s count=%d, want rest/0", fr.RepState, fr.RepCount)
	}
}

// TestScoreFrameRepCycle verifies a full bend-and-extend frame sequence counts
// a rep through the keypoint path, not just the raw-angle path.
func TestScoreFrameRepCycle(t *testing.T) {
	s := NewScorer(Config{SmoothingWindow: 1})

	var last FrameResult
	for i, a := range []float64{180, 90, 20, 90, 180} {
		last = s.ScoreFrame(testFrame(a), i, float64(i)/30)
	}
	if last.RepCount != 1 {
		t.Errorf("rep count = %d, want 1", last.RepCount)
	}
	if last.RepState != StateRest {
		t.Errorf("final state = %s, want rest", last.RepState)
	}
}

// TestScoreFrameLowVisibility verifies low-confidence joints push the neutral
// extended angle through the pipeline: both arms read 180 and the score is 0.
func TestScoreFrameLowVisibility(t *testing.T) {
	s := NewScorer(Config{SmoothingWindow: 1})

	kp := testFrame(30)
	kp[pose.LeftElbow].Visibility = 0.2
	kp[pose.RightWrist].Visibility = 0.1

	fr := s.ScoreFrame(kp, 0, 0)
	if fr.LeftAngle != 180 || fr.RightAngle != 180 {
		t.Errorf("per-arm angles = (%v, %v), want 180/180", fr.LeftAngle, fr.RightAngle)
	}
	if fr.Score != 0 {
		t.Errorf("score = %v, want 0", fr.Score)
	}
}

// TestScoreFrameAveragesArms verifies the smoothed angle derives from the mean
// of the two arm angles when they differ.
func TestScoreFrameAveragesArms(t *testing.T) {
	s := NewScorer(Config{SmoothingWindow: 1})

	kp := testFrame(60)
	// Knock out the right arm so it reads the neutral 180.
	kp[pose.RightElbow].Visibility = 0

	fr := s.ScoreFrame(kp, 0, 0)
	want := (60.0 + 180.0) / 2
	if math.Abs(fr.Angle-want) > 1e-6 {
		t.Errorf("smoothed angle = %v, want %v", fr.Angle, want)
	}
}
