// Package track is the capture/inference boundary. The hand-landmark model
// itself is an external oracle (a browser-side inference client, or the
// synthetic generator); this package only carries its output into the gesture
// extractor at the oracle's own cadence, fully decoupled from the render tick.
package track

import (
	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/gesture"
)

// Sink receives one inference cycle's result. A nil sample means no hand this
// cycle. Called from the source's own goroutine
type Sink func(gesture.HandSample)

// Source is a landmark producer with explicit lifecycle. Stop must be safe to
// call regardless of whether Start succeeded; results still in flight when
// Stop is called are discarded downstream, not forcibly aborted
type Source interface {
	Start() error
	Stop()
}

// OracleConfig is the configuration the core hands to the inference oracle.
// Static per session; pushed to the websocket client on connect
type OracleConfig struct {
	MaxHands            int     `json:"maxHands"`
	ModelComplexity     int     `json:"modelComplexity"`
	DetectionConfidence float64 `json:"detectionConfidence"`
	TrackingConfidence  float64 `json:"trackingConfidence"`
}

// DefaultOracleConfig tracks a single hand with the full model
func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		MaxHands:            constants.TrackerMaxHands,
		ModelComplexity:     constants.TrackerModelFull,
		DetectionConfidence: constants.TrackerDetectionConfidence,
		TrackingConfidence:  constants.TrackerTrackingConfidence,
	}
}

// LiteOracleConfig selects the low-complexity model for constrained devices
func LiteOracleConfig() OracleConfig {
	cfg := DefaultOracleConfig()
	cfg.ModelComplexity = constants.TrackerModelLite
	return cfg
}
