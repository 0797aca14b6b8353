package gesture

import (
	"sync/atomic"
	"time"

	"github.com/muhvarriel/neural-particles/constants"
)

// Direction is a shape-navigation signal derived from a swipe
type Direction int

const (
	DirNext Direction = iota
	DirPrev
)

// NavFunc receives at most one navigation event per inference cycle
type NavFunc func(Direction)

// Extractor turns raw hand samples into the smoothed signals and discrete
// events the simulation consumes. It is the sole writer of its SignalChannel.
//
// All state lives on the inference goroutine; Process is never called
// concurrently with itself. Close is the teardown guard: results of in-flight
// inference arriving after Close are dropped before touching shared state
type Extractor struct {
	channel *SignalChannel
	nav     NavFunc

	// Swipe state. lastX is the previous cycle's inverted wrist x; a swipe
	// cannot straddle a tracking gap, so absence clears it
	lastX     float32
	hasLastX  bool
	lastSwipe time.Time

	closed atomic.Bool

	// Injectable clock for debounce tests
	now func() time.Time
}

// NewExtractor creates an extractor writing to channel. nav may be nil if no
// consumer cares about swipe navigation
func NewExtractor(channel *SignalChannel, nav NavFunc) *Extractor {
	return &Extractor{
		channel: channel,
		nav:     nav,
		now:     time.Now,
	}
}

// Close marks the extractor stopped. Subsequent Process calls are no-ops, so a
// late inference callback cannot write into a torn-down session
func (e *Extractor) Close() {
	e.closed.Store(true)
}

// Process consumes one inference cycle's result. A nil, short, or
// non-finite sample takes the absence path: openness relaxes toward neutral,
// handX freezes, swipe state resets. Never returns an error; malformed input
// degrades, it does not propagate
func (e *Extractor) Process(sample HandSample) {
	if e.closed.Load() {
		return
	}
	if !sample.Valid() {
		e.processAbsent()
		return
	}

	e.channel.setDetected(true)

	// Pinch openness: normalized fingertip distance, fast-attack smoothing
	raw := (sample.PinchDistance() - constants.PinchDistanceMin) * constants.PinchDistanceScale
	raw = clamp(raw, 0, constants.PinchOpennessMax)
	pinch := e.channel.PinchOpenness()
	e.channel.setPinch(pinch + (raw-pinch)*constants.PinchSmoothingActive)

	// Horizontal position: inverted so motion matches the user's mirror sense
	x := clamp(1-sample.Wrist().X, 0, 1)
	smoothed := e.channel.HandX()
	e.channel.setHandX(smoothed + (x-smoothed)*constants.HandXSmoothing)
	e.channel.setHandY(clamp(sample.Wrist().Y, 0, 1))

	e.detectSwipe(x)
}

// detectSwipe fires at most one edge-triggered navigation event per cooldown
// window. Debounce, not rate limit: one event per qualifying crossing
func (e *Extractor) detectSwipe(x float32) {
	defer func() { e.lastX, e.hasLastX = x, true }()

	if !e.hasLastX || e.nav == nil {
		return
	}
	now := e.now()
	if now.Sub(e.lastSwipe) < constants.SwipeCooldown {
		return
	}

	delta := x - e.lastX
	switch {
	case delta > constants.SwipeThreshold:
		e.lastSwipe = now
		e.nav(DirNext)
	case delta < -constants.SwipeThreshold:
		e.lastSwipe = now
		e.nav(DirPrev)
	}
}

// processAbsent handles a cycle with no usable hand
func (e *Extractor) processAbsent() {
	e.channel.setDetected(false)
	e.hasLastX = false

	// Drift openness back to rest rather than snapping; handX stays frozen
	// at its last value
	pinch := e.channel.PinchOpenness()
	e.channel.setPinch(pinch + (constants.PinchOpennessNeutral-pinch)*constants.PinchSmoothingRelax)
}
