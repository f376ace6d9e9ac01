package widgets_test

import (
	"fmt"
	"testing"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	weftest "github.com/go-drift/weft/pkg/testing"
)

// windowSize is small enough that alignment offsets are easy to reason about.
var windowSize = graphics.Size{Width: 200, Height: 100}

func newTester(t *testing.T, build func(cx *core.Cx)) *weftest.Tester {
	t.Helper()
	tester := weftest.NewTesterWithSize(windowSize, build)
	t.Cleanup(tester.Close)
	if errs := tester.Errors(); len(errs) != 0 {
		t.Fatalf("connect reported errors: %v", errs)
	}
	return tester
}

// bounds returns the window rect of the first node finder matches.
func bounds(t *testing.T, tester *weftest.Tester, finder weftest.Finder) graphics.Rect {
	t.Helper()
	result := tester.Find(finder)
	if !result.Exists() {
		t.Fatalf("no node for %s in tree:\n%s", finder.Description(), tester.Dump())
	}
	return result.First().Bounds
}

// opIndex returns the index of the first display op named op whose params
// contain every key and value in match, or -1.
func opIndex(ops []weftest.DisplayOp, op string, match map[string]any) int {
	for i, o := range ops {
		if o.Op != op {
			continue
		}
		ok := true
		for k, v := range match {
			if o.Params[k] != v {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// opColor formats c the way display ops do.
func opColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}
