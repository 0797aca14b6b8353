package constants

import "time"

// Loop & Engine Timing
const (
	// FrameUpdateInterval is the render tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// InferenceInterval is the cadence of the synthetic hand source (~30 Hz),
	// matching the cadence of a real camera/inference client
	InferenceInterval = 33 * time.Millisecond

	// StatusPollInterval is how often UI chrome re-reads the tracking status.
	// Status text does not need frame-rate updates
	StatusPollInterval = 200 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the navigation event ring buffer
	EventQueueSize = 64

	// EventBufferMask is the bitmask for fast modulo operations (64 - 1)
	EventBufferMask = 63
)

// Particle count tiers. The tier is resolved once at startup from the display
// context; the core only ever sees the resolved number
const (
	ParticleCountFull    = 8000
	ParticleCountCompact = 4000
)
