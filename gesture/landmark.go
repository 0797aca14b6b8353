package gesture

import (
	"github.com/chewxy/math32"

	"github.com/muhvarriel/neural-particles/constants"
)

// Landmark is one tracked hand point in camera-normalized space: x and y in
// [0,1] relative to the frame, z a relative depth
type Landmark struct {
	X, Y, Z float32
}

// HandSample is the ordered landmark list for one tracked hand in one
// inference cycle. Index layout follows the inference runtime: 0 wrist,
// 4 thumb tip, 8 index fingertip. The extractor reads nothing else
type HandSample []Landmark

// Valid reports whether the sample is usable: exactly the expected landmark
// count and finite coordinates at the indices the extractor consumes.
// Anything else is treated as tracking absence, never as an error
func (s HandSample) Valid() bool {
	if len(s) != constants.HandLandmarkCount {
		return false
	}
	for _, idx := range [...]int{constants.LandmarkWrist, constants.LandmarkThumbTip, constants.LandmarkIndexTip} {
		lm := s[idx]
		if math32.IsNaN(lm.X) || math32.IsNaN(lm.Y) || math32.IsInf(lm.X, 0) || math32.IsInf(lm.Y, 0) {
			return false
		}
	}
	return true
}

// Wrist returns the wrist landmark
func (s HandSample) Wrist() Landmark { return s[constants.LandmarkWrist] }

// PinchDistance is the planar distance between thumb tip and index fingertip.
// Depth is ignored: the normalization constants were tuned against 2D distance
func (s HandSample) PinchDistance() float32 {
	thumb := s[constants.LandmarkThumbTip]
	index := s[constants.LandmarkIndexTip]
	dx := thumb.X - index.X
	dy := thumb.Y - index.Y
	return math32.Sqrt(dx*dx + dy*dy)
}
