package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/engine"
	"github.com/muhvarriel/neural-particles/events"
	"github.com/muhvarriel/neural-particles/gesture"
	"github.com/muhvarriel/neural-particles/render"
	"github.com/muhvarriel/neural-particles/shape"
	"github.com/muhvarriel/neural-particles/sim"
	"github.com/muhvarriel/neural-particles/track"
)

var (
	sourceFlag  = flag.String("source", "synth", "Landmark source: synth (fabricated hand) or ws (browser inference client)")
	addrFlag    = flag.String("addr", constants.DefaultTrackerAddr, "Listen address for the ws landmark source")
	liteFlag    = flag.Bool("lite", false, "Request the low-complexity inference model")
	compactFlag = flag.Bool("compact", false, "Force the compact particle tier")
	logFlag     = flag.String("log", "neural-particles.log", "Log file path (terminal is owned by the renderer)")
)

func main() {
	flag.Parse()

	logger := newLogger(*logFlag)
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before the stack trace prints
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nCRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	// Device tiering happens here, outside the core: the engine only sees
	// resolved numbers
	cfg := sim.DefaultConfig()
	if w, _ := screen.Size(); *compactFlag || w < 100 {
		cfg = sim.CompactConfig()
	}
	logger.Info("session start",
		zap.Int("particles", cfg.Count),
		zap.String("source", *sourceFlag))

	channel := gesture.NewSignalChannel()
	queue := events.NewQueue()
	simEngine := sim.NewEngine(cfg, shape.Sphere)
	view := render.NewView(screen)

	extractor := gesture.NewExtractor(channel, func(dir gesture.Direction) {
		switch dir {
		case gesture.DirNext:
			queue.Push(events.Event{Type: events.TypeShapeNext})
		case gesture.DirPrev:
			queue.Push(events.Event{Type: events.TypeShapePrev})
		}
	})

	loop := engine.NewLoop(simEngine, channel, queue, func(positions []float32, status string) {
		view.Frame(positions, simEngine.Colors(), status)
	})

	audioReady := initAudio(logger)
	if audioReady {
		loop.OnShapeChange = func(id shape.Identity) {
			playNavCue(id)
			logger.Debug("shape change", zap.Stringer("shape", id))
		}
	}

	source := buildSource(extractor, logger)
	if err := source.Start(); err != nil {
		// Fatal to the gesture path only; particles keep animating on the
		// channel's safe defaults
		logger.Error("landmark source failed to start", zap.Error(err))
	}

	loop.Start()
	pollInput(screen, queue, view)

	// Teardown ordering: mark the extractor closed first so in-flight
	// inference results are silently discarded, then stop the producers,
	// then the render loop
	extractor.Close()
	source.Stop()
	loop.Stop()

	logger.Info("session end", zap.Uint64("frames", loop.FrameCount()))
}

// buildSource resolves the landmark source from flags
func buildSource(extractor *gesture.Extractor, logger *zap.Logger) track.Source {
	if *sourceFlag == "ws" {
		oracle := track.DefaultOracleConfig()
		if *liteFlag {
			oracle = track.LiteOracleConfig()
		}
		return track.NewWSServer(*addrFlag, oracle, extractor.Process, func(err error) {
			logger.Error("inference oracle unavailable, continuing without hand control", zap.Error(err))
		}, logger)
	}
	return track.NewSynthSource(extractor.Process)
}

// pollInput blocks on terminal events until quit. Runs on the main goroutine;
// the render loop has its own
func pollInput(screen tcell.Screen, queue *events.Queue, view *render.View) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			view.RequestResize()
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyLeft:
				queue.Push(events.Event{Type: events.TypeShapePrev})
			case tcell.KeyRight:
				queue.Push(events.Event{Type: events.TypeShapeNext})
			case tcell.KeyRune:
				switch r := ev.Rune(); r {
				case 'q':
					return
				case 'h':
					queue.Push(events.Event{Type: events.TypeShapePrev})
				case 'l':
					queue.Push(events.Event{Type: events.TypeShapeNext})
				case '1', '2', '3', '4':
					queue.Push(events.Event{
						Type:  events.TypeShapeSelect,
						Shape: shape.Identity(r - '1'),
					})
				}
			}
		}
	}
}

// newLogger builds a file-backed logger; the terminal belongs to tcell
func newLogger(path string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func initAudio(logger *zap.Logger) bool {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the visualization runs without sound
		logger.Warn("audio initialization failed", zap.Error(err))
		return false
	}
	return true
}

// playNavCue plays a short blip, pitched per formation so cycling is audible
func playNavCue(id shape.Identity) {
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, 520+float64(id)*110)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(60*time.Millisecond), sine))
}
