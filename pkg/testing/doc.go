// Package testing drives a weft description headlessly for tests.
//
// A [Tester] owns an [engine.App] connected to a [platform.Headless] window.
// Tests send input with helpers such as [Tester.Click] and [Tester.Key],
// locate nodes with finders, and compare the painted output or tree shape
// against golden files.
//
// Since this package name collides with the standard library testing
// package, import it with an alias:
//
//	import weftest "github.com/go-drift/weft/pkg/testing"
//
// A typical test:
//
//	func TestCounter(t *testing.T) {
//	    tester := weftest.NewTesterWithT(t, counter)
//	    if err := tester.Click(weftest.ByDescription("inc")); err != nil {
//	        t.Fatal(err)
//	    }
//	    if !tester.Find(weftest.ByText("1")).Exists() {
//	        t.Errorf("count did not advance:\n%s", tester.Dump())
//	    }
//	}
//
// Golden files are rewritten instead of compared when WEFT_UPDATE_SNAPSHOTS
// is set to 1.
package testing
