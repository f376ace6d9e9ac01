package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/weft/pkg/testing/internal/testbed"
)

// fakeT records failures instead of stopping the test.
type fakeT struct {
	failed []string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.failed = append(f.failed, fmt.Sprintf(format, args...))
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.failed = append(f.failed, fmt.Sprintf(format, args...))
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden", "counter.json")
	tester := NewTesterWithT(t, testbed.Counter("inc"))

	t.Setenv(updateEnv, "1")
	tester.CaptureSnapshot().MatchesFile(t, path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("golden file not written: %v", err)
	}

	t.Setenv(updateEnv, "")
	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.failed) != 0 {
		t.Fatalf("unchanged tree did not match: %v", ft.failed)
	}

	if err := tester.Click(ByDescription("inc")); err != nil {
		t.Fatal(err)
	}
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.failed) != 1 || !strings.Contains(ft.failed[0], "snapshot mismatch") {
		t.Errorf("changed tree failures = %v", ft.failed)
	}
}

func TestSnapshotMissingFile(t *testing.T) {
	tester := NewTesterWithT(t, testbed.Counter("inc"))
	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "missing.json"))
	if len(ft.failed) != 1 || !strings.Contains(ft.failed[0], updateEnv) {
		t.Errorf("failures = %v", ft.failed)
	}
}

func TestCaptureSnapshotShape(t *testing.T) {
	tester := NewTesterWithT(t, testbed.Counter("inc"))
	snap := tester.CaptureSnapshot()

	if len(snap.Tree) != 1 {
		t.Fatalf("snapshot has %d roots, want 1", len(snap.Tree))
	}
	root := snap.Tree[0]
	if root.Type != "*widgets.flexObject" || len(root.Children) != 2 {
		t.Fatalf("unexpected root %+v", root)
	}
	label := root.Children[0]
	if label.Description != "0" || label.Size != [2]float64{11, 13} {
		t.Errorf("count label = %+v", label)
	}
	if len(snap.DisplayOps) == 0 || snap.DisplayOps[0].Op != "clear" {
		t.Errorf("display ops should start with clear, got %v", snap.DisplayOps)
	}
}
