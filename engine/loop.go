package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/events"
	"github.com/muhvarriel/neural-particles/gesture"
	"github.com/muhvarriel/neural-particles/shape"
	"github.com/muhvarriel/neural-particles/sim"
)

// Loop drives the render tick: dispatch pending navigation events, snapshot
// the signal channel, step the simulation, present the frame. It owns the
// current shape identity.
//
// Runs on its own goroutine at FrameUpdateInterval. The inference tick is a
// separate goroutine that only shares the SignalChannel (atomics) and the
// event queue (lock-free); the loop never waits on it
type Loop struct {
	sim     *sim.Engine
	channel *gesture.SignalChannel
	queue   *events.Queue
	router  *events.Router[*Loop]
	clock   TimeProvider

	present func(positions []float32, status string)

	// OnShapeChange fires on the loop goroutine after the morph target
	// switches; used for UI cues (audio blip). May be nil
	OnShapeChange func(shape.Identity)

	interval time.Duration
	lastTick time.Time

	// Status readout state, refreshed at StatusPollInterval, not per frame
	statusText string
	lastPoll   time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	frameCount atomic.Uint64
}

// NewLoop wires the render loop. present receives the particle position
// buffer and the status line each frame; color access goes through the
// simulation engine the caller already holds
func NewLoop(engine *sim.Engine, channel *gesture.SignalChannel, queue *events.Queue, present func([]float32, string)) *Loop {
	l := &Loop{
		sim:      engine,
		channel:  channel,
		queue:    queue,
		clock:    NewMonotonicTimeProvider(),
		present:  present,
		interval: constants.FrameUpdateInterval,
		stopChan: make(chan struct{}),
	}
	l.router = events.NewRouter[*Loop](queue)
	l.router.Register(l)
	return l
}

// SetClock replaces the loop's time source. Must be called before Start;
// tests drive ticks against a mock provider instead of sleeping
func (l *Loop) SetClock(clock TimeProvider) {
	l.clock = clock
}

// Start launches the loop goroutine. Idempotent-hostile by design: a Loop is
// started once per session
func (l *Loop) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	now := l.clock.Now()
	l.lastTick = now
	l.lastPoll = now.Add(-constants.StatusPollInterval) // first frame builds status
	l.wg.Add(1)
	go l.run()
}

// Stop halts ticking and waits for the in-flight frame to finish. Safe to
// call more than once
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
	l.wg.Wait()
	l.running.Store(false)
}

// FrameCount returns the number of completed frames
func (l *Loop) FrameCount() uint64 {
	return l.frameCount.Load()
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

// tick executes one full frame. Must stay well inside the frame budget; the
// heavy part is the O(N) simulation kernel, which allocates nothing
func (l *Loop) tick() {
	now := l.clock.Now()
	dt := float32(now.Sub(l.lastTick).Seconds())
	l.lastTick = now

	// Clamp pathological gaps (debugger stop, terminal freeze) so the cloud
	// settles instead of teleporting
	if dt > 0.1 {
		dt = 0.1
	}

	l.router.DispatchAll(l)

	snap := l.channel.Snapshot()
	l.sim.Step(dt, snap)

	if now.Sub(l.lastPoll) >= constants.StatusPollInterval {
		l.lastPoll = now
		l.statusText = l.buildStatus(snap.HandDetected)
	}

	l.present(l.sim.Positions(), l.statusText)
	l.frameCount.Add(1)
}

// HandleEvent applies navigation events on the loop goroutine, so shape state
// never needs a lock
func (l *Loop) HandleEvent(_ *Loop, ev events.Event) {
	current := l.sim.ActiveShape()
	next := current
	switch ev.Type {
	case events.TypeShapeNext:
		next = current.Next()
	case events.TypeShapePrev:
		next = current.Prev()
	case events.TypeShapeSelect:
		next = ev.Shape
	}
	if next == current {
		return
	}
	l.sim.SetShape(next)
	if l.OnShapeChange != nil {
		l.OnShapeChange(next)
	}
}

// EventTypes declares the navigation events the loop consumes
func (l *Loop) EventTypes() []events.Type {
	return []events.Type{events.TypeShapeNext, events.TypeShapePrev, events.TypeShapeSelect}
}

func (l *Loop) buildStatus(detected bool) string {
	tracking := "no hand"
	if detected {
		tracking = "tracking"
	}
	return fmt.Sprintf(" %s | %s | 1-4 select, arrows cycle, q quit", l.sim.ActiveShape(), tracking)
}
