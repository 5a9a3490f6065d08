package pose

import (
	"math"
	"testing"
)

// armKeypoints builds a keypoint set whose left and right elbows both form the
// given interior angle. The shoulder sits directly above the elbow; the wrist
// is placed on a forearm of fixed length rotated by the requested angle.
func armKeypoints(angleDeg float64) Keypoints {
	var kp Keypoints
	for i := range kp {
		kp[i].Visibility = 1.0
	}

	rad := angleDeg * math.Pi / 180
	wristX := 0.4 + 0.15*math.Sin(rad)
	wristY := 0.5 - 0.15*math.Cos(rad)

	kp[LeftShoulder] = Landmark{X: 0.4, Y: 0.3, Visibility: 1}
	kp[LeftElbow] = Landmark{X: 0.4, Y: 0.5, Visibility: 1}
	kp[LeftWrist] = Landmark{X: wristX, Y: wristY, Visibility: 1}

	kp[RightShoulder] = Landmark{X: 0.6, Y: 0.3, Visibility: 1}
	kp[RightElbow] = Landmark{X: 0.6, Y: 0.5, Visibility: 1}
	kp[RightWrist] = Landmark{X: 1 - wristX, Y: wristY, Visibility: 1}

	return kp
}

// TestElbowAngleGeometry verifies the interior angle is recovered from
// synthetic landmark positions across the full range, on both arms.
func TestElbowAngleGeometry(t *testing.T) {
	for _, want := range []float64{0, 30, 45, 90, 135, 160, 180} {
		kp := armKeypoints(want)
		for _, arm := range []Arm{LeftArm, RightArm} {
			got := ElbowAngle(kp, arm)
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("ElbowAngle(arm=%d) for %v° pose = %v, want %v", arm, want, got, want)
			}
		}
	}
}

// TestElbowAngleLowVisibility verifies that any joint below the 0.5 visibility
// floor yields the neutral 180° default instead of a geometric angle.
func TestElbowAngleLowVisibility(t *testing.T) {
	for _, idx := range []int{LeftShoulder, LeftElbow, LeftWrist} {
		kp := armKeypoints(40)
		kp[idx].Visibility = 0.4

		if got := ElbowAngle(kp, LeftArm); got != 180 {
			t.Errorf("ElbowAngle with landmark %d at visibility 0.4 = %v, want 180", idx, got)
		}
	}
}

// TestElbowAngleDegenerateVectors verifies that a wrist or shoulder coincident
// with the elbow returns the neutral 180° default rather than NaN.
func TestElbowAngleDegenerateVectors(t *testing.T) {
	kp := armKeypoints(90)
	kp[LeftWrist] = kp[LeftElbow]
	kp[LeftWrist].Visibility = 1

	if got := ElbowAngle(kp, LeftArm); got != 180 {
		t.Errorf("ElbowAngle with zero-length forearm vector = %v, want 180", got)
	}

	kp = armKeypoints(90)
	kp[LeftShoulder] = kp[LeftElbow]
	kp[LeftShoulder].Visibility = 1

	if got := ElbowAngle(kp, LeftArm); got != 180 {
		t.Errorf("ElbowAngle with zero-length upper-arm vector = %v, want 180", got)
	}
}

// TestElbowAngleRange verifies the result stays in [0,180] for arbitrary
// well-formed input.
func TestElbowAngleRange(t *testing.T) {
	for deg := 0.0; deg <= 180; deg += 7.5 {
		got := ElbowAngle(armKeypoints(deg), LeftArm)
		if got < 0 || got > 180 {
			t.Errorf("ElbowAngle for %v° pose = %v, out of [0,180]", deg, got)
		}
	}
}

// TestKeypointsFromFlat verifies the documented 132-value flattened shape is
// accepted and every other length rejected.
func TestKeypointsFromFlat(t *testing.T) {
	flat := make([]float64, FlatLen)
	flat[LeftShoulder*4] = 0.4
	flat[LeftShoulder*4+1] = 0.3
	flat[LeftShoulder*4+3] = 0.9

	kp, err := KeypointsFromFlat(flat)
	if err != nil {
		t.Fatalf("KeypointsFromFlat(132 values): %v", err)
	}
	want := Landmark{X: 0.4, Y: 0.3, Visibility: 0.9}
	if kp[LeftShoulder] != want {
		t.Errorf("left shoulder = %+v, want %+v", kp[LeftShoulder], want)
	}

	for _, n := range []int{0, 33, 131, 133, 264} {
		if _, err := KeypointsFromFlat(make([]float64, n)); err == nil {
			t.Errorf("KeypointsFromFlat(%d values): expected error", n)
		}
	}
}

// TestKeypointsMissing verifies the all-zero set is recognized as an
// undetected pose and any nonzero entry defeats it.
func TestKeypointsMissing(t *testing.T) {
	var kp Keypoints
	if !kp.Missing() {
		t.Error("zero keypoints: Missing() = false, want true")
	}

	kp[Nose].Visibility = 0.1
	if kp.Missing() {
		t.Error("keypoints with one visible landmark: Missing() = true, want false")
	}
}
