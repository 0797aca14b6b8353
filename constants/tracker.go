package constants

// Landmark model. Hand samples are fixed-size ordered landmark lists; the core
// reads only the wrist and the thumb/index fingertips
const (
	HandLandmarkCount = 21

	LandmarkWrist    = 0
	LandmarkThumbTip = 4
	LandmarkIndexTip = 8
)

// Oracle configuration pushed to the inference client on connect
const (
	TrackerMaxHands = 1

	// Model complexity tiers as the inference runtime understands them
	TrackerModelLite = 0
	TrackerModelFull = 1

	TrackerDetectionConfidence = 0.5
	TrackerTrackingConfidence  = 0.5
)

// DefaultTrackerAddr is where the websocket landmark server listens
const DefaultTrackerAddr = "localhost:8787"
