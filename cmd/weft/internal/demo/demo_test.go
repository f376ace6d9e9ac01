package demo

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	weftest "github.com/go-drift/weft/pkg/testing"
)

func newTester(t *testing.T, build func(cx *core.Cx)) *weftest.Tester {
	t.Helper()
	tester := weftest.NewTesterWithSize(graphics.Size{Width: 320, Height: 240}, build)
	t.Cleanup(tester.Close)
	if errs := tester.Errors(); len(errs) > 0 {
		t.Fatalf("connect reported errors: %v", errs)
	}
	return tester
}

func click(t *testing.T, tester *weftest.Tester, label string) {
	t.Helper()
	if err := ClickButton(tester.App(), label); err != nil {
		t.Fatalf("ClickButton(%q): %v\n%s", label, err, tester.Dump())
	}
}

func exists(tester *weftest.Tester, text string) bool {
	return tester.Find(weftest.ByText(text)).Exists()
}

func TestNames(t *testing.T) {
	if diff := cmp.Diff([]string{"counter", "focus", "todo"}, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	d, err := Lookup("todo")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if d.Name != "todo" || d.Build == nil {
		t.Errorf("Lookup(todo) = %+v", d)
	}

	_, err = Lookup("paint")
	if err == nil || !strings.Contains(err.Error(), "counter, focus, todo") {
		t.Errorf("Lookup(paint) error = %v, want the available names", err)
	}
}

func TestCounter(t *testing.T) {
	tester := newTester(t, Counter)
	if !exists(tester, "count: 0") {
		t.Fatalf("initial count missing:\n%s", tester.Dump())
	}

	// reset is disabled at zero.
	click(t, tester, "reset")
	click(t, tester, "inc")
	click(t, tester, "inc")
	if !exists(tester, "count: 2") {
		t.Fatalf("count after two clicks:\n%s", tester.Dump())
	}

	click(t, tester, "reset")
	if !exists(tester, "count: 0") {
		t.Errorf("count after reset:\n%s", tester.Dump())
	}
}

func TestClickButtonMissing(t *testing.T) {
	tester := newTester(t, Counter)
	err := ClickButton(tester.App(), "dec")
	if err == nil || !strings.Contains(err.Error(), `"dec"`) {
		t.Errorf("ClickButton(dec) error = %v", err)
	}
}

func TestTodo(t *testing.T) {
	tester := newTester(t, Todo)
	if !exists(tester, "0 left") {
		t.Fatalf("empty list summary missing:\n%s", tester.Dump())
	}

	click(t, tester, "add")
	click(t, tester, "add")
	if !exists(tester, "item 1") || !exists(tester, "item 2") || !exists(tester, "2 left") {
		t.Fatalf("after two adds:\n%s", tester.Dump())
	}

	// The first "done" button belongs to item 1.
	click(t, tester, "done")
	if !exists(tester, "1 left") || !exists(tester, "undo") {
		t.Fatalf("after toggling item 1:\n%s", tester.Dump())
	}

	click(t, tester, "clear")
	if exists(tester, "item 1") {
		t.Errorf("item 1 survived clear:\n%s", tester.Dump())
	}
	if !exists(tester, "item 2") || !exists(tester, "1 left") {
		t.Errorf("after clear:\n%s", tester.Dump())
	}
}

func TestReduceTodo(t *testing.T) {
	var s todoList
	for _, msg := range []todoMsg{{kind: "add"}, {kind: "add"}, {kind: "add"}, {kind: "toggle", id: 2}, {kind: "clear"}, {kind: "add"}} {
		reduceTodo(&s, msg)
	}
	want := todoList{Next: 4, Items: []todoItem{{ID: 1}, {ID: 3}, {ID: 4}}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestFocus(t *testing.T) {
	tester := newTester(t, Focus)
	if !exists(tester, "click a field") {
		t.Fatalf("prompt missing:\n%s", tester.Dump())
	}

	if err := tester.Click(weftest.ByText("name")); err != nil {
		t.Fatal(err)
	}
	tester.Key("Tab", 0)
	if !tester.Key("x", 0) {
		t.Fatalf("key press was not handled:\n%s", tester.Dump())
	}
	if !exists(tester, "email: x") {
		t.Errorf("typed key not reported:\n%s", tester.Dump())
	}
}

func TestFocusTooltip(t *testing.T) {
	tester := newTester(t, Focus)
	if err := tester.Hover(weftest.ByText("notes")); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, op := range tester.DisplayOps() {
		if op.Op == "drawText" && op.Params["text"] == "edit notes" {
			found = true
		}
	}
	if !found {
		t.Errorf("tooltip text not painted: %v", tester.DisplayOps())
	}
}
