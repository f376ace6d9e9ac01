package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/weft/pkg/core"
)

// updateEnv names the environment variable that rewrites golden files.
const updateEnv = "WEFT_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Snapshot captures the tree shape and the last painted frame.
type Snapshot struct {
	Tree       []Node      `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// Node is one node of a snapshot. Source positions and ids are left out so
// that golden files survive unrelated edits.
type Node struct {
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	Offset      [2]float64 `json:"offset"`
	Size        [2]float64 `json:"size"`
	Focus       bool       `json:"focus,omitempty"`
	Hot         bool       `json:"hot,omitempty"`
	States      []string   `json:"states,omitempty"`
	Children    []Node     `json:"children,omitempty"`
}

// CaptureSnapshot records the current tree and display list.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return &Snapshot{
		Tree:       captureNodes(t.app.Tree().Snapshot()),
		DisplayOps: t.DisplayOps(),
	}
}

func captureNodes(nodes []core.NodeSnapshot) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		node := Node{
			Type:        n.Type,
			Description: n.Description,
			Offset:      [2]float64{round2(n.X), round2(n.Y)},
			Size:        [2]float64{round2(n.Width), round2(n.Height)},
			Focus:       n.Focus,
			Hot:         n.Hot,
			Children:    captureNodes(n.Children),
		}
		for _, s := range n.States {
			node.States = append(node.States, s.Type+"="+s.Value)
		}
		out = append(out, node)
	}
	return out
}

// MatchesFile compares the snapshot against the golden file at path.
// When WEFT_UPDATE_SNAPSHOTS=1 the file is written instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(updateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("snapshot update failed: %v", err)
		}
		return
	}

	want, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file %s does not exist; run with %s=1 to create it", path, updateEnv)
			return
		}
		t.Fatalf("loading snapshot %s: %v", path, err)
		return
	}
	if diff := want.Diff(s); diff != "" {
		t.Errorf("snapshot mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// UpdateFile writes the snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff of the two snapshots' JSON forms, or "" when
// they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, errA := marshalSnapshot(s)
	b, errB := marshalSnapshot(other)
	if errA != nil || errB != nil {
		return fmt.Sprintf("marshal error: %v %v", errA, errB)
	}
	return cmp.Diff(strings.Split(string(a), "\n"), strings.Split(string(b), "\n"))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
