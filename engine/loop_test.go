package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/goleak"

	"github.com/muhvarriel/neural-particles/events"
	"github.com/muhvarriel/neural-particles/gesture"
	"github.com/muhvarriel/neural-particles/shape"
	"github.com/muhvarriel/neural-particles/sim"
)

func testLoop(present func([]float32, string)) *Loop {
	cfg := sim.DefaultConfig()
	cfg.Count = 64
	engine := sim.NewEngine(cfg, shape.Sphere)
	if present == nil {
		present = func([]float32, string) {}
	}
	return NewLoop(engine, gesture.NewSignalChannel(), events.NewQueue(), present)
}

func TestLoopStartStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := testLoop(nil)
	l.Start()
	time.Sleep(120 * time.Millisecond)
	l.Stop()
	l.Stop() // safe to call twice

	if l.FrameCount() == 0 {
		t.Error("expected at least one frame in 120ms")
	}
}

func TestLoopPresentsFrames(t *testing.T) {
	defer goleak.VerifyNone(t)

	var frames atomic.Uint64
	l := testLoop(func(pos []float32, _ string) {
		if len(pos) != 3*64 {
			t.Errorf("expected 192-float buffer, got %d", len(pos))
		}
		frames.Add(1)
	})
	l.Start()
	time.Sleep(200 * time.Millisecond)
	l.Stop()

	got := frames.Load()
	if got < 5 {
		t.Errorf("expected several frames over 200ms at ~60Hz, got %d", got)
	}
}

func TestLoopAppliesNavigationEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	queue := events.NewQueue()
	cfg := sim.DefaultConfig()
	cfg.Count = 32
	engine := sim.NewEngine(cfg, shape.Sphere)
	l := NewLoop(engine, gesture.NewSignalChannel(), queue, func([]float32, string) {})

	var changes []shape.Identity
	applied := make(chan struct{}, 8)
	l.OnShapeChange = func(id shape.Identity) {
		changes = append(changes, id)
		applied <- struct{}{}
	}

	l.Start()
	queue.Push(events.Event{Type: events.TypeShapeNext})

	select {
	case <-applied:
	case <-time.After(time.Second):
		t.Fatal("navigation event not applied within 1s")
	}
	l.Stop()

	if len(changes) == 0 || changes[0] != shape.Sphere.Next() {
		t.Fatalf("expected shape change to %v, got %v", shape.Sphere.Next(), changes)
	}
	if engine.ActiveShape() != shape.Sphere.Next() {
		t.Errorf("engine shape not updated: %v", engine.ActiveShape())
	}
}

func TestLoopTicksAgainstMockClock(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Count = 16
	cfg.NoiseAmplitude = 0
	cfg.RotationSpeed = 0
	engine := sim.NewEngine(cfg, shape.Sphere)

	var presented int
	var lastStatus string
	l := NewLoop(engine, gesture.NewSignalChannel(), events.NewQueue(), func(_ []float32, status string) {
		presented++
		lastStatus = status
	})

	mock := NewMockTimeProvider(time.Unix(100, 0))
	l.SetClock(mock)
	l.lastTick = mock.Now()
	l.lastPoll = mock.Now().Add(-time.Second)

	mock.Advance(16 * time.Millisecond)
	l.tick()

	if presented != 1 {
		t.Fatalf("expected one presented frame, got %d", presented)
	}
	if l.FrameCount() != 1 {
		t.Errorf("expected frame count 1, got %d", l.FrameCount())
	}
	if lastStatus == "" {
		t.Error("expected status readout rebuilt on an elapsed poll interval")
	}
}

func TestLoopClampsPathologicalFrameGaps(t *testing.T) {
	// Channel defaults give openness 1.0, so the sphere targets sit at
	// radius 6*ExpansionFactor(1.0). A 10s stall must be clamped to 0.1s of
	// simulation: one tick moves radius by the 0.1s blend weight, no further
	cfg := sim.DefaultConfig()
	cfg.Count = 16
	cfg.NoiseAmplitude = 0
	cfg.RotationSpeed = 0
	engine := sim.NewEngine(cfg, shape.Sphere)

	l := NewLoop(engine, gesture.NewSignalChannel(), events.NewQueue(), func([]float32, string) {})
	mock := NewMockTimeProvider(time.Unix(100, 0))
	l.SetClock(mock)
	l.lastTick = mock.Now()
	l.lastPoll = mock.Now()

	mock.Advance(10 * time.Second)
	l.tick()

	lerpW := cfg.BaseLerpSpeed * 0.1
	want := 6 * (1 + (sim.ExpansionFactor(1.0)-1)*lerpW)
	pos := engine.Positions()
	r := math32.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	if math32.Abs(r-want) > 1e-2 {
		t.Errorf("expected clamped radius %v after stall, got %v", want, r)
	}
}

func TestLoopSelectSameShapeIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := testLoop(nil)
	fired := false
	l.OnShapeChange = func(shape.Identity) { fired = true }

	// Dispatch directly on this goroutine; the loop is not running
	l.HandleEvent(l, events.Event{Type: events.TypeShapeSelect, Shape: shape.Sphere})
	if fired {
		t.Error("selecting the already-active shape must not fire OnShapeChange")
	}
}
