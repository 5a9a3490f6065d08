package pose

import "math"

// Arm selects which elbow an angle computation applies to.
type Arm int

const (
	LeftArm Arm = iota
	RightArm
)

// minJointVisibility is the confidence below which a joint is treated as not
// seen. Low-confidence frames return the fully-extended neutral angle so they
// bias toward "no rep in progress" instead of corrupting the counter.
const minJointVisibility = 0.5

// extendedAngle is the neutral default for unusable input: a fully straight arm.
const extendedAngle = 180.0

// ElbowAngle returns the interior elbow angle in degrees [0,180] for the given
// arm, computed from the 2D projections of shoulder, elbow and wrist. If any of
// the three joints has visibility below 0.5, or either joint vector is
// degenerate, it returns 180.
func ElbowAngle(kp Keypoints, arm Arm) float64 {
	shoulderIdx, elbowIdx, wristIdx := LeftShoulder, LeftElbow, LeftWrist
	if arm == RightArm {
		shoulderIdx, elbowIdx, wristIdx = RightShoulder, RightElbow, RightWrist
	}

	shoulder := kp[shoulderIdx]
	elbow := kp[elbowIdx]
	wrist := kp[wristIdx]

	if shoulder.Visibility < minJointVisibility ||
		elbow.Visibility < minJointVisibility ||
		wrist.Visibility < minJointVisibility {
		return extendedAngle
	}

	// Vectors from the elbow to each neighboring joint, x/y only.
	v1x, v1y := shoulder.X-elbow.X, shoulder.Y-elbow.Y
	v2x, v2y := wrist.X-elbow.X, wrist.Y-elbow.Y

	n1 := math.Hypot(v1x, v1y)
	n2 := math.Hypot(v2x, v2y)
	if n1 == 0 || n2 == 0 {
		return extendedAngle
	}

	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}
