package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/platform"
)

// waitForServer polls the health endpoint until ready or timeout.
func waitForServer(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://%s/health", addr)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

// waitForServerDown polls until the server stops responding or timeout.
func waitForServerDown(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://%s/health", addr)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err != nil {
			return nil // connection refused
		}
		resp.Body.Close()
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server still running after %v", timeout)
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestDebugServer_StartStop(t *testing.T) {
	s := NewDebugServer(New(counter), nil)
	addr, err := s.Start("127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start debug server: %v", err)
	}
	defer s.Stop()

	if err := waitForServer(addr, 2*time.Second); err != nil {
		t.Fatalf("server not ready: %v", err)
	}
	if again, err := s.Start("127.0.0.1:0"); err != nil || again != addr {
		t.Errorf("second Start = %q, %v; want %q", again, err, addr)
	}

	var health map[string]string
	if code := getJSON(t, "http://"+addr+"/health", &health); code != http.StatusOK {
		t.Fatalf("health status = %d", code)
	}
	if health["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", health["status"])
	}

	s.Stop()
	if err := waitForServerDown(addr, 2*time.Second); err != nil {
		t.Errorf("server did not stop: %v", err)
	}
}

func TestDebugServer_TreeBeforeConnect(t *testing.T) {
	srv := httptest.NewServer(NewDebugServer(New(counter), nil).Handler())
	defer srv.Close()

	if code := getJSON(t, srv.URL+"/tree", nil); code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 before the first frame, got %d", code)
	}
}

func TestDebugServer_Tree(t *testing.T) {
	app := New(counter)
	srv := httptest.NewServer(NewDebugServer(app, nil).Handler())
	defer srv.Close()
	app.Connect(platform.NewHeadless(windowSize))

	var snap TreeSnapshot
	if code := getJSON(t, srv.URL+"/tree", &snap); code != http.StatusOK {
		t.Fatalf("tree status = %d", code)
	}
	if snap.Seq != 1 || len(snap.Nodes) != 1 {
		t.Fatalf("snapshot seq %d with %d roots", snap.Seq, len(snap.Nodes))
	}
	root := snap.Nodes[0]
	if root.Type != "*widgets.flexObject" || len(root.Children) != 2 {
		t.Errorf("root = %s with %d children", root.Type, len(root.Children))
	}
	if len(snap.States) != 1 || snap.States[0].Type != "int" || snap.States[0].Value != "0" {
		t.Errorf("states = %+v", snap.States)
	}
}

func TestDebugServer_Frames(t *testing.T) {
	app := New(counter)
	srv := httptest.NewServer(NewDebugServer(app, nil).Handler())
	defer srv.Close()
	app.Connect(platform.NewHeadless(windowSize))
	app.HandleEvent(event.PointerMove{Pointer: event.At(graphics.Offset{X: 1, Y: 1})})
	app.HandleEvent(event.Timer{})

	var resp struct {
		Frames []FrameStats `json:"frames"`
	}
	getJSON(t, srv.URL+"/frames", &resp)
	if len(resp.Frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(resp.Frames))
	}
	getJSON(t, srv.URL+"/frames?limit=1", &resp)
	if len(resp.Frames) != 1 || resp.Frames[0].Trigger != "Timer" {
		t.Errorf("limited frames = %+v", resp.Frames)
	}
}

func TestDebugServer_FrameStream(t *testing.T) {
	app := New(counter)
	srv := httptest.NewServer(NewDebugServer(app, nil).Handler())
	defer srv.Close()
	app.Connect(platform.NewHeadless(windowSize))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/frames/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first FrameStats
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read first frame: %v", err)
	}
	if first.Trigger != "connect" {
		t.Errorf("first frame trigger = %q, want connect", first.Trigger)
	}

	// The subscription exists once the first frame has been sent.
	app.HandleEvent(event.Timer{Token: 7})
	var next FrameStats
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read streamed frame: %v", err)
	}
	if next.Trigger != "Timer" || next.Seq != first.Seq+1 {
		t.Errorf("streamed frame = %+v", next)
	}
}

func TestDebugServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := New(counter, WithMetrics(reg))
	srv := httptest.NewServer(NewDebugServer(app, reg).Handler())
	defer srv.Close()
	app.Connect(platform.NewHeadless(windowSize))

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, name := range []string{"weft_frames_total 1", "weft_build_passes_total 1", "weft_tree_nodes 4"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}

func TestDebugServer_NoMetricsWithoutGatherer(t *testing.T) {
	srv := httptest.NewServer(NewDebugServer(New(counter), nil).Handler())
	defer srv.Close()
	if code := getJSON(t, srv.URL+"/metrics", nil); code != http.StatusNotFound {
		t.Errorf("/metrics status = %d, want 404", code)
	}
}

func TestDebugServer_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(NewDebugServer(New(counter), nil).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/health", "application/json", nil)
	if err != nil {
		t.Fatalf("failed to POST health endpoint: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", resp.StatusCode)
	}
}

func TestDebugServer_Runtime(t *testing.T) {
	srv := httptest.NewServer(NewDebugServer(New(counter), nil).Handler())
	defer srv.Close()

	var sample RuntimeSample
	if code := getJSON(t, srv.URL+"/runtime", &sample); code != http.StatusOK {
		t.Fatalf("runtime status = %d", code)
	}
	if sample.Goroutines == 0 || sample.HeapSys == 0 {
		t.Errorf("runtime sample = %+v", sample)
	}
}
