package track

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/gesture"
)

// landmarkFrame is one inference cycle's wire message from the client.
// An empty landmark list means no hand was detected this cycle
type landmarkFrame struct {
	Landmarks [][3]float32 `json:"landmarks"`
}

// configMessage is pushed to the client on connect so the browser configures
// its inference runtime the way the core expects
type configMessage struct {
	Type string `json:"type"`
	OracleConfig
}

// WSServer receives landmark frames from a browser inference client over a
// websocket. One client is served at a time; a second connection replaces the
// first (same camera, refreshed page).
//
// The read loop runs on its own goroutine at the client's cadence (~30 Hz) and
// never touches the render tick. After Stop, frames still in flight are
// dropped before reaching the sink
type WSServer struct {
	addr    string
	sink    Sink
	cfg     OracleConfig
	log     *zap.Logger
	onError func(error)

	upgrader websocket.Upgrader
	srv      *http.Server
	stopped  atomic.Bool
	wg       sync.WaitGroup

	mu     sync.Mutex
	active *websocket.Conn
}

// NewWSServer creates a landmark server. onError receives oracle-path failures
// (bind failure, serve failure); the caller keeps rendering on safe defaults
// either way. logger may be nil
func NewWSServer(addr string, cfg OracleConfig, sink Sink, onError func(error), logger *zap.Logger) *WSServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSServer{
		addr:    addr,
		sink:    sink,
		cfg:     cfg,
		log:     logger,
		onError: onError,
		upgrader: websocket.Upgrader{
			// Local tool: the page is served from disk or localhost
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start begins listening. Non-blocking; serve errors surface through onError
func (s *WSServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/landmarks", s.handleClient)

	s.srv = &http.Server{Addr: s.addr, Handler: mux}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed && !s.stopped.Load() {
			s.log.Error("landmark server failed", zap.Error(err))
			if s.onError != nil {
				s.onError(fmt.Errorf("landmark server: %w", err))
			}
		}
	}()

	s.log.Info("landmark server listening", zap.String("addr", s.addr))
	return nil
}

// Stop closes the server and the active client. Cleanup failures are
// swallowed: nothing here may prevent teardown of the render loop
func (s *WSServer) Stop() {
	s.stopped.Store(true)
	s.mu.Lock()
	if s.active != nil {
		_ = s.active.Close()
		s.active = nil
	}
	s.mu.Unlock()
	if s.srv != nil {
		if err := s.srv.Close(); err != nil {
			s.log.Warn("landmark server close", zap.Error(err))
		}
	}
	s.wg.Wait()
}

func (s *WSServer) handleClient(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.active != nil {
		_ = s.active.Close()
	}
	s.active = conn
	s.mu.Unlock()

	if err := conn.WriteJSON(configMessage{Type: "config", OracleConfig: s.cfg}); err != nil {
		s.log.Warn("config push failed", zap.Error(err))
		_ = conn.Close()
		return
	}
	s.log.Info("inference client connected", zap.String("remote", conn.RemoteAddr().String()))

	s.readLoop(conn)
}

// readLoop consumes frames until the connection dies. Malformed frames are
// tracking absences, never errors
func (s *WSServer) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !s.stopped.Load() {
				s.log.Info("inference client disconnected", zap.Error(err))
				// The consumer sees a clean tracking loss, not a stuck signal
				s.deliver(conn, nil)
			}
			return
		}

		var frame landmarkFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.log.Debug("malformed landmark frame", zap.Error(err))
			s.deliver(conn, nil)
			continue
		}
		s.deliver(conn, sampleFromFrame(&frame))
	}
}

// deliver forwards a cycle result to the sink, serialized under mu so the
// extractor keeps its single-writer discipline even across client handover:
// a replaced connection's dying read loop still runs for a moment, and its
// late results (including the disconnect absence) are dropped here. The
// stopped check is the teardown guard for in-flight inference
func (s *WSServer) deliver(conn *websocket.Conn, sample gesture.HandSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() || conn != s.active {
		return
	}
	s.sink(sample)
}

// sampleFromFrame converts a wire frame to a hand sample. Only the first
// detected hand is consulted: clients sending flattened multi-hand lists get
// everything past the first hand ignored. Anything short of one full hand is
// absence
func sampleFromFrame(f *landmarkFrame) gesture.HandSample {
	if len(f.Landmarks) < constants.HandLandmarkCount {
		return nil
	}
	sample := make(gesture.HandSample, constants.HandLandmarkCount)
	for i := 0; i < constants.HandLandmarkCount; i++ {
		lm := f.Landmarks[i]
		sample[i] = gesture.Landmark{X: lm[0], Y: lm[1], Z: lm[2]}
	}
	return sample
}
