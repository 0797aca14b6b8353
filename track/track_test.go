package track

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/gesture"
)

func TestSampleFromFrame(t *testing.T) {
	frame := &landmarkFrame{}
	for i := 0; i < constants.HandLandmarkCount; i++ {
		frame.Landmarks = append(frame.Landmarks, [3]float32{float32(i) / 21, 0.5, 0})
	}

	sample := sampleFromFrame(frame)
	if len(sample) != constants.HandLandmarkCount {
		t.Fatalf("expected %d landmarks, got %d", constants.HandLandmarkCount, len(sample))
	}
	if !sample.Valid() {
		t.Error("expected a well-formed frame to produce a valid sample")
	}
	if sample.Wrist().X != 0 {
		t.Errorf("expected wrist at index 0, got %v", sample.Wrist())
	}
}

func TestSampleFromFrameShortListIsAbsence(t *testing.T) {
	frame := &landmarkFrame{Landmarks: [][3]float32{{0.5, 0.5, 0}}}
	if sample := sampleFromFrame(frame); sample != nil {
		t.Errorf("expected nil sample for short landmark list, got %d landmarks", len(sample))
	}
	if sample := sampleFromFrame(&landmarkFrame{}); sample != nil {
		t.Error("expected nil sample for empty frame")
	}
}

func TestSampleFromFrameIgnoresExtraHands(t *testing.T) {
	// A client flattening two hands sends 42 landmarks; only the first hand
	// may be consulted
	frame := &landmarkFrame{}
	for i := 0; i < 2*constants.HandLandmarkCount; i++ {
		x := float32(0.2)
		if i >= constants.HandLandmarkCount {
			x = 0.9 // second hand, must not leak through
		}
		frame.Landmarks = append(frame.Landmarks, [3]float32{x, 0.5, 0})
	}

	sample := sampleFromFrame(frame)
	if len(sample) != constants.HandLandmarkCount {
		t.Fatalf("expected exactly one hand, got %d landmarks", len(sample))
	}
	if sample.Wrist().X != 0.2 {
		t.Errorf("expected first hand's wrist, got %v", sample.Wrist().X)
	}
}

func TestFrameDecodeTolerance(t *testing.T) {
	// Wire-shaped payloads: decode errors must degrade to absence upstream,
	// so the only contract here is that valid JSON round-trips and junk fails
	// without panicking
	var frame landmarkFrame
	if err := json.Unmarshal([]byte(`{"landmarks":[[0.1,0.2,0.3]]}`), &frame); err != nil {
		t.Fatalf("valid frame failed to decode: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"landmarks":"garbage"}`), &frame); err == nil {
		t.Error("expected decode error for malformed landmarks")
	}
}

func TestSynthSourceLifecycle(t *testing.T) {
	got := make(chan gesture.HandSample, 256)
	src := NewSynthSource(func(s gesture.HandSample) {
		select {
		case got <- s:
		default:
		}
	})

	if err := src.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case sample := <-got:
		if sample != nil && !sample.Valid() {
			t.Error("synthetic sample failed validation")
		}
	case <-time.After(time.Second):
		t.Fatal("no synthetic sample within 1s")
	}

	src.Stop()
	src.Stop() // idempotent
}

func TestDeliverDropsReplacedConnection(t *testing.T) {
	var delivered []gesture.HandSample
	s := NewWSServer("127.0.0.1:0", DefaultOracleConfig(), func(sample gesture.HandSample) {
		delivered = append(delivered, sample)
	}, nil, nil)

	oldConn := &websocket.Conn{}
	newConn := &websocket.Conn{}
	s.active = newConn

	// The replaced connection's read loop still runs for a moment; neither
	// its samples nor its disconnect absence may reach the sink
	s.deliver(oldConn, make(gesture.HandSample, constants.HandLandmarkCount))
	s.deliver(oldConn, nil)
	if len(delivered) != 0 {
		t.Fatalf("expected no delivery from a replaced connection, got %d", len(delivered))
	}

	s.deliver(newConn, make(gesture.HandSample, constants.HandLandmarkCount))
	if len(delivered) != 1 {
		t.Fatalf("expected delivery from the active connection, got %d", len(delivered))
	}

	s.stopped.Store(true)
	s.deliver(newConn, nil)
	if len(delivered) != 1 {
		t.Error("expected no delivery after stop")
	}
}

// TestDeliverSerializesSink plays a client handover window: two read loops
// delivering at once. The sink must never observe concurrent entry, since the
// extractor behind it is a single-writer state machine
func TestDeliverSerializesSink(t *testing.T) {
	var inside atomic.Int32
	var overlapped atomic.Bool
	s := NewWSServer("127.0.0.1:0", DefaultOracleConfig(), func(gesture.HandSample) {
		if inside.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(time.Microsecond)
		inside.Add(-1)
	}, nil, nil)

	conn := &websocket.Conn{}
	s.active = conn

	var wg sync.WaitGroup
	wg.Add(2)
	for g := 0; g < 2; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.deliver(conn, nil)
			}
		}()
	}
	wg.Wait()

	if overlapped.Load() {
		t.Error("sink entered concurrently; delivery must be serialized")
	}
}

func TestDefaultOracleConfig(t *testing.T) {
	cfg := DefaultOracleConfig()
	if cfg.MaxHands != 1 {
		t.Errorf("expected single-hand tracking, got maxHands=%d", cfg.MaxHands)
	}
	if cfg.DetectionConfidence != 0.5 || cfg.TrackingConfidence != 0.5 {
		t.Errorf("expected 0.5 confidence defaults, got %v/%v", cfg.DetectionConfidence, cfg.TrackingConfidence)
	}
	if lite := LiteOracleConfig(); lite.ModelComplexity != constants.TrackerModelLite {
		t.Errorf("expected lite model tier, got %d", lite.ModelComplexity)
	}
}
