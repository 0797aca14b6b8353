package track

import (
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/gesture"
)

// SynthSource fabricates plausible hand motion so the visualization runs end
// to end with no camera: a slow horizontal sweep (wide enough to trip the
// swipe detector), a pinch cycle, and periodic tracking dropouts that
// exercise the idle palette and relaxation path
type SynthSource struct {
	sink     Sink
	interval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSynthSource creates a synthetic source ticking at the standard inference
// cadence
func NewSynthSource(sink Sink) *SynthSource {
	return &SynthSource{
		sink:     sink,
		interval: constants.InferenceInterval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the generator goroutine
func (s *SynthSource) Start() error {
	s.wg.Add(1)
	go s.run()
	return nil
}

// Stop halts the generator and waits for it to exit
func (s *SynthSource) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *SynthSource) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.sink(s.sampleAt(now.Sub(start)))
		}
	}
}

// sampleAt builds the fabricated hand for elapsed session time t. Every 9s
// window holds a ~1.5s dropout
func (s *SynthSource) sampleAt(elapsed time.Duration) gesture.HandSample {
	t := float32(elapsed.Seconds())

	if math32.Mod(t, 9) > 7.5 {
		return nil // simulated tracking loss
	}

	// Wrist sweeps the frame slowly; the sweep rate near the center is fast
	// enough to cross the swipe threshold at inference cadence
	wristX := 0.5 + 0.4*math32.Sin(t*0.9)
	wristY := 0.5 + 0.1*math32.Sin(t*0.35)

	// Pinch opens and closes on its own cycle
	pinchDist := 0.1 + 0.09*math32.Sin(t*0.6)

	sample := make(gesture.HandSample, constants.HandLandmarkCount)
	for i := range sample {
		sample[i] = gesture.Landmark{X: wristX, Y: wristY}
	}
	sample[constants.LandmarkThumbTip] = gesture.Landmark{X: wristX - pinchDist/2, Y: wristY - 0.05}
	sample[constants.LandmarkIndexTip] = gesture.Landmark{X: wristX + pinchDist/2, Y: wristY - 0.05}
	return sample
}
