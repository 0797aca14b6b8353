package gesture

import (
	"math"
	"sync/atomic"

	"github.com/muhvarriel/neural-particles/constants"
)

// SignalChannel is the shared record bridging the inference tick and the
// render tick.
//
// Thread-Safety:
//   - Single writer (the Extractor, on the inference goroutine)
//   - Readers take a Snapshot once per frame
//   - Each field is an independent atomic; writes are last-value-wins with no
//     atomicity across fields. A render tick interleaving with a write sees at
//     worst one field from the previous cycle, which is tolerable jitter for
//     an analog control signal. No locks, so the render tick can never stall
//     behind inference latency
//
// Invariant: every field always holds a bounded, valid value, including before
// the first hand has ever been seen
type SignalChannel struct {
	handDetected atomic.Bool
	pinch        atomic.Uint32 // float32 bits, [0, PinchOpennessMax]
	handX        atomic.Uint32 // float32 bits, [0, 1]
	handY        atomic.Uint32 // float32 bits, [0, 1]
}

// Snapshot is one frame's read of the channel
type Snapshot struct {
	HandDetected  bool
	PinchOpenness float32
	HandX         float32
	HandY         float32
}

// NewSignalChannel returns a channel holding the safe defaults: no hand,
// neutral openness, centered position
func NewSignalChannel() *SignalChannel {
	c := &SignalChannel{}
	c.pinch.Store(math.Float32bits(constants.PinchOpennessNeutral))
	c.handX.Store(math.Float32bits(0.5))
	c.handY.Store(math.Float32bits(0.5))
	return c
}

// Snapshot reads every field once. Called at the top of each render frame
func (c *SignalChannel) Snapshot() Snapshot {
	return Snapshot{
		HandDetected:  c.handDetected.Load(),
		PinchOpenness: math.Float32frombits(c.pinch.Load()),
		HandX:         math.Float32frombits(c.handX.Load()),
		HandY:         math.Float32frombits(c.handY.Load()),
	}
}

// HandDetected reports the instantaneous tracking status. Polled by UI chrome
// at a coarse interval; not smoothed
func (c *SignalChannel) HandDetected() bool {
	return c.handDetected.Load()
}

// PinchOpenness returns the current smoothed openness signal
func (c *SignalChannel) PinchOpenness() float32 {
	return math.Float32frombits(c.pinch.Load())
}

// HandX returns the current smoothed horizontal position signal
func (c *SignalChannel) HandX() float32 {
	return math.Float32frombits(c.handX.Load())
}

// Bounds are enforced at write time so readers never need to clamp

func (c *SignalChannel) setDetected(v bool) {
	c.handDetected.Store(v)
}

func (c *SignalChannel) setPinch(v float32) {
	c.pinch.Store(math.Float32bits(clamp(v, 0, constants.PinchOpennessMax)))
}

func (c *SignalChannel) setHandX(v float32) {
	c.handX.Store(math.Float32bits(clamp(v, 0, 1)))
}

func (c *SignalChannel) setHandY(v float32) {
	c.handY.Store(math.Float32bits(clamp(v, 0, 1)))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
