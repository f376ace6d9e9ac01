package widgets_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
	weftest "github.com/go-drift/weft/pkg/testing"
	"github.com/go-drift/weft/pkg/theme"
	"github.com/go-drift/weft/pkg/widgets"
)

type focusFixture struct {
	disabled map[int]bool
	keys     []string
}

func (f *focusFixture) build(cx *core.Cx) {
	widgets.Column(cx, widgets.FlexProps{Spacing: 2}, func(cx *core.Cx) {
		for i := 1; i <= 3; i++ {
			props := widgets.FocusableProps{Key: i, Disabled: f.disabled[i]}
			if k, ok := widgets.Focusable(cx, props, func(cx *core.Cx) {
				widgets.Label(cx, widgets.LabelProps{Text: "field", Key: i})
			}); ok {
				f.keys = append(f.keys, k.Key)
			}
		}
	})
}

func focusedKey(tester *weftest.Tester) any {
	if f := tester.Focused(); f != nil {
		return f.Key().Pos.Local
	}
	return nil
}

func TestFocusableChain(t *testing.T) {
	f := &focusFixture{disabled: map[int]bool{3: true}}
	tester := newTester(t, f.build)

	if err := tester.Click(weftest.ByKey(1)); err != nil {
		t.Fatal(err)
	}
	steps := []struct {
		key  string
		mods event.Modifiers
		want any
	}{
		{"Tab", 0, 2},
		{"Tab", 0, 1}, // wraps past the disabled third field
		{"Tab", event.ModShift, 2},
		{"Escape", 0, nil},
	}
	if got := focusedKey(tester); got != 1 {
		t.Fatalf("focus after click = %v, want 1", got)
	}
	for _, s := range steps {
		tester.Key(s.key, s.mods)
		if got := focusedKey(tester); got != s.want {
			t.Errorf("after %s (mods %d) focus = %v, want %v", s.key, s.mods, got, s.want)
		}
	}
}

func TestFocusableReturnsKeys(t *testing.T) {
	f := &focusFixture{}
	tester := newTester(t, f.build)

	tester.Key("a", 0) // nobody focused
	if err := tester.Click(weftest.ByKey(2)); err != nil {
		t.Fatal(err)
	}
	tester.Key("x", 0)
	tester.Key("y", 0)
	if diff := cmp.Diff([]string{"x", "y"}, f.keys); diff != "" {
		t.Errorf("returned keys (-want +got):\n%s", diff)
	}
}

func TestFocusRingFollowsFocus(t *testing.T) {
	f := &focusFixture{}
	tester := newTester(t, f.build)
	ring := map[string]any{"color": opColor(theme.Current().FocusThemeOf().RingColor), "style": "stroke"}

	if opIndex(tester.DisplayOps(), "drawRect", ring) >= 0 {
		t.Fatal("focus ring painted without focus")
	}
	if err := tester.Click(weftest.ByKey(1)); err != nil {
		t.Fatal(err)
	}
	if opIndex(tester.DisplayOps(), "drawRect", ring) < 0 {
		t.Errorf("focus ring missing after click: %v", tester.DisplayOps())
	}
}

func TestDisablingFocusedFieldDropsItFromChain(t *testing.T) {
	f := &focusFixture{disabled: map[int]bool{}}
	tester := newTester(t, f.build)

	if err := tester.Click(weftest.ByKey(2)); err != nil {
		t.Fatal(err)
	}
	f.disabled[1] = true
	tester.Pump()
	tester.Key("Tab", 0)
	tester.Key("Tab", 0)
	if got := focusedKey(tester); got != 2 {
		t.Errorf("focus after two Tabs around a shrunken chain = %v, want 2", got)
	}
}

func TestNestedFocusableInnerTakesFocus(t *testing.T) {
	tester := newTester(t, func(cx *core.Cx) {
		widgets.Focusable(cx, widgets.FocusableProps{Key: "outer"}, func(cx *core.Cx) {
			widgets.Padding(cx, widgets.PaddingProps{Padding: layout.EdgeInsetsAll(20)}, func(cx *core.Cx) {
				widgets.Focusable(cx, widgets.FocusableProps{Key: "inner"}, func(cx *core.Cx) {
					widgets.Text(cx, "field")
				})
			})
		})
	})

	steps := []struct {
		name  string
		click func() error
		want  any
	}{
		{"inner", func() error { return tester.Click(weftest.ByKey("inner")) }, "inner"},
		{"inner again", func() error { return tester.Click(weftest.ByKey("inner")) }, "inner"},
		{"outer padding", func() error { tester.ClickAt(graphics.Offset{X: 5, Y: 5}); return nil }, "outer"},
		{"inner from outer", func() error { return tester.Click(weftest.ByKey("inner")) }, "inner"},
	}
	for _, s := range steps {
		if err := s.click(); err != nil {
			t.Fatal(err)
		}
		if got := focusedKey(tester); got != s.want {
			t.Errorf("after clicking %s focus = %v, want %v", s.name, got, s.want)
		}
	}
}
