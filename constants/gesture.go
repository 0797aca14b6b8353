package constants

import "time"

// Pinch openness normalization
// raw = (dist(thumbTip, indexTip) - PinchDistanceMin) * PinchDistanceScale,
// clamped to [0, PinchOpennessMax]
const (
	PinchDistanceMin   = 0.02
	PinchDistanceScale = 7.0
	PinchOpennessMax   = 1.5

	// PinchOpennessNeutral is the rest value the signal relaxes toward when
	// no hand is in frame
	PinchOpennessNeutral = 1.0
)

// Exponential smoothing weights, applied once per inference cycle
const (
	// PinchSmoothingActive is the blend weight while a hand is tracked
	// (fast attack)
	PinchSmoothingActive = 0.2

	// PinchSmoothingRelax drifts openness back to neutral when tracking is
	// lost. Slower than the attack on purpose: a gentle settle, not a snap
	PinchSmoothingRelax = 0.05

	// HandXSmoothing is the blend weight for the horizontal position signal
	HandXSmoothing = 0.1
)

// Swipe detection. The repository this derives from shipped several disagreeing
// tunings; this set is the one used everywhere here
const (
	// SwipeThreshold is the minimum per-cycle horizontal delta that counts as
	// a swipe
	SwipeThreshold = 0.06

	// SwipeCooldown is the debounce window: at most one navigation event per
	// window, regardless of how long the motion keeps exceeding the threshold
	SwipeCooldown = 800 * time.Millisecond
)
