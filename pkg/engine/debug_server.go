package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const streamBuffer = 16

// DebugServer exposes an App's tree and frame stats over HTTP.
//
// Handlers never touch the live tree. They read the [TreeSnapshot] and
// [FrameBuffer] the App publishes after each dispatch.
type DebugServer struct {
	app      *App
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// RuntimeSample captures a snapshot of runtime memory and GC stats.
type RuntimeSample struct {
	Timestamp    int64  `json:"ts"`
	Goroutines   int    `json:"goroutines"`
	HeapAlloc    uint64 `json:"heapAlloc"`
	HeapInuse    uint64 `json:"heapInuse"`
	HeapSys      uint64 `json:"heapSys"`
	NumGC        uint32 `json:"numGC"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
}

// NewDebugServer returns a debug server for app and enables snapshot
// publishing on it. gatherer backs /metrics; nil disables the endpoint.
func NewDebugServer(app *App, gatherer prometheus.Gatherer) *DebugServer {
	app.EnableSnapshots()
	return &DebugServer{
		app:      app,
		gatherer: gatherer,
		logger:   app.logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tooling only
			},
		},
	}
}

// Handler returns the router serving every debug endpoint.
func (s *DebugServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Get("/tree", s.handleTree)
	r.Get("/frames", s.handleFrames)
	r.Get("/frames/stream", s.handleFrameStream)
	r.Get("/runtime", s.handleRuntime)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Start listens on addr and serves in the background. It returns the bound
// address, which is useful when addr asks for an ephemeral port.
func (s *DebugServer) Start(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen: %w", err)
	}
	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			s.logger.Error("debug server stopped", slog.Any("err", err))
		}
	}()

	s.logger.Info("debug server listening", slog.String("addr", listener.Addr().String()))
	return listener.Addr().String(), nil
}

// Stop shuts the server down, waiting up to two seconds for open requests.
func (s *DebugServer) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		s.logger.Warn("debug server shutdown", slog.Any("err", err))
	}
}

func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *DebugServer) handleTree(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	if snap == nil {
		http.Error(w, "no tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (s *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	samples := s.app.Frames().Samples()
	if value := r.URL.Query().Get("limit"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 && limit < len(samples) {
			samples = samples[len(samples)-limit:]
		}
	}
	if samples == nil {
		samples = []FrameStats{}
	}
	writeJSON(w, struct {
		Frames []FrameStats `json:"frames"`
	}{samples})
}

// handleFrameStream upgrades to a websocket and pushes every new frame as a
// JSON text message, starting with the most recent one.
func (s *DebugServer) handleFrameStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	frames, cancel := s.app.Frames().Subscribe(streamBuffer)
	defer cancel()

	// Reads only detect the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if last, ok := s.app.Frames().Last(); ok {
		if err := conn.WriteJSON(last); err != nil {
			return
		}
	}
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}

func (s *DebugServer) handleRuntime(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	writeJSON(w, RuntimeSample{
		Timestamp:    time.Now().UnixMilli(),
		Goroutines:   runtime.NumGoroutine(),
		HeapAlloc:    mem.HeapAlloc,
		HeapInuse:    mem.HeapInuse,
		HeapSys:      mem.HeapSys,
		NumGC:        mem.NumGC,
		PauseTotalNs: mem.PauseTotalNs,
	})
}

// writeJSON encodes to a buffer first so encoding errors become a 500.
func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
