// Package pose defines the landmark types produced by a MediaPipe-style body
// pose detector and the joint geometry derived from them.
package pose

import "fmt"

// Body landmark indices following the MediaPipe 33-point pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark is a single estimated body-joint position in normalized
// image-relative coordinates with a detector confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Keypoints is one frame's full landmark set. A frame with no detected pose is
// represented as the zero value (all positions and visibilities zero), never
// as an absent set.
type Keypoints [NumLandmarks]Landmark

// FlatLen is the length of the flattened keypoint representation accepted by
// KeypointsFromFlat: 33 landmarks times (x, y, z, visibility).
const FlatLen = NumLandmarks * 4

// KeypointsFromFlat builds a Keypoints set from the flattened row-major
// [x0,y0,z0,v0, x1,y1,z1,v1, ...] form emitted by detector pipelines. Any
// other length is a contract violation by the landmark provider.
func KeypointsFromFlat(values []float64) (Keypoints, error) {
	var kp Keypoints
	if len(values) != FlatLen {
		return kp, fmt.Errorf("keypoints: expected %d values (33 landmarks x 4), got %d", FlatLen, len(values))
	}
	for i := 0; i < NumLandmarks; i++ {
		kp[i] = Landmark{
			X:          values[i*4],
			Y:          values[i*4+1],
			Z:          values[i*4+2],
			Visibility: values[i*4+3],
		}
	}
	return kp, nil
}

// Missing reports whether the set represents an undetected pose (every
// landmark zero). Such frames are skipped for scoring.
func (kp Keypoints) Missing() bool {
	for i := range kp {
		if kp[i] != (Landmark{}) {
			return false
		}
	}
	return true
}
