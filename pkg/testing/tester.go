package testing

import (
	"fmt"
	"sync"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/engine"
	"github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/platform"
	"github.com/go-drift/weft/pkg/widgets"
)

const (
	DefaultTestWidth  = 400
	DefaultTestHeight = 300
)

// Cleanuper is satisfied by *testing.T and *testing.B.
type Cleanuper interface {
	Cleanup(func())
}

// Tester runs a description against a headless window.
//
// The window is connected on construction, so the first frame has already
// been built, laid out and painted when NewTester returns.
type Tester struct {
	app    *engine.App
	window *platform.Headless

	mu   sync.Mutex
	errs []*errors.WeftError
}

// NewTester connects build to a headless window of the default size.
// Errors the engine reports are collected on the tester; call [Tester.Close]
// to restore the default error handler.
func NewTester(build func(cx *core.Cx), opts ...engine.Option) *Tester {
	return NewTesterWithSize(graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}, build, opts...)
}

// NewTesterWithSize is like [NewTester] with an explicit window size.
func NewTesterWithSize(size graphics.Size, build func(cx *core.Cx), opts ...engine.Option) *Tester {
	t := &Tester{
		app:    engine.New(build, opts...),
		window: platform.NewHeadless(size),
	}
	errors.SetHandler(t)
	t.app.Connect(t.window)
	return t
}

// NewTesterWithT creates a tester whose error handler is restored when the
// test finishes.
func NewTesterWithT(c Cleanuper, build func(cx *core.Cx), opts ...engine.Option) *Tester {
	t := NewTester(build, opts...)
	c.Cleanup(t.Close)
	return t
}

// Close restores the default error handler.
func (t *Tester) Close() {
	errors.SetHandler(nil)
}

// HandleError records err.
func (t *Tester) HandleError(err *errors.WeftError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs = append(t.errs, err)
}

// HandlePanic records a recovered panic as an error of kind
// [errors.KindPanic].
func (t *Tester) HandlePanic(err *errors.PanicError) {
	t.HandleError(&errors.WeftError{Op: err.Op, Kind: errors.KindPanic, Err: err})
}

// Errors returns the errors reported since the tester was created.
func (t *Tester) Errors() []*errors.WeftError {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*errors.WeftError(nil), t.errs...)
}

// App returns the engine under test.
func (t *Tester) App() *engine.App { return t.app }

// Window returns the headless window.
func (t *Tester) Window() *platform.Headless { return t.window }

// Send delivers ev and reports whether a node handled it.
func (t *Tester) Send(ev event.Event) bool {
	return t.app.HandleEvent(ev)
}

// Pump runs a timer-driven pass, which rebuilds the description even when
// nothing was invalidated. Callbacks queued with [engine.App.Dispatch] run
// first.
func (t *Tester) Pump() {
	t.app.Frame()
	t.app.HandleEvent(event.Timer{})
}

// SetSize resizes the window and relays the tree out.
func (t *Tester) SetSize(size graphics.Size) {
	t.window.Resize(size)
	t.app.HandleEvent(event.WindowSize{Size: size})
}

// ClickAt presses and releases the left button at p in window coordinates.
func (t *Tester) ClickAt(p graphics.Offset) {
	t.app.HandleEvent(event.PointerDown{Pointer: event.At(p)})
	t.app.HandleEvent(event.PointerUp{Pointer: event.At(p)})
}

// Click clicks the center of the first node matched by finder.
func (t *Tester) Click(finder Finder) error {
	el, err := t.first("Click", finder)
	if err != nil {
		return err
	}
	t.ClickAt(el.Center())
	return nil
}

// HoverAt moves the pointer to p.
func (t *Tester) HoverAt(p graphics.Offset) {
	t.app.HandleEvent(event.PointerMove{Pointer: event.At(p)})
}

// Hover moves the pointer over the center of the first node matched by finder.
func (t *Tester) Hover(finder Finder) error {
	el, err := t.first("Hover", finder)
	if err != nil {
		return err
	}
	t.HoverAt(el.Center())
	return nil
}

// Drag presses at from, moves to to and releases there.
func (t *Tester) Drag(from, to graphics.Offset) {
	t.app.HandleEvent(event.PointerDown{Pointer: event.At(from)})
	move := event.At(to)
	move.Button = event.ButtonNone
	t.app.HandleEvent(event.PointerMove{Pointer: move})
	t.app.HandleEvent(event.PointerUp{Pointer: event.At(to)})
}

// Key presses and releases the named key with mods held.
func (t *Tester) Key(name string, mods event.Modifiers) bool {
	handled := t.app.HandleEvent(event.KeyDown{Key: name, Mods: mods})
	t.app.HandleEvent(event.KeyUp{Key: name, Mods: mods})
	return handled
}

// Focused returns the node holding focus, or nil.
func (t *Tester) Focused() *core.Child {
	id := t.app.Focus()
	if id == 0 {
		return nil
	}
	return t.app.Tree().Find(id)
}

// Texts returns the text of every label in paint order.
func (t *Tester) Texts() []string {
	var out []string
	for _, el := range t.Find(ByType[*widgets.LabelObject]()).All() {
		out = append(out, el.Child.Object().(*widgets.LabelObject).Text())
	}
	return out
}

// Dump renders the tree as indented text, for failure messages.
func (t *Tester) Dump() string {
	return t.app.Tree().Dump()
}

// DisplayOps serializes the most recently presented frame.
func (t *Tester) DisplayOps() []DisplayOp {
	return serializeDisplayList(t.window.LastFrame())
}

func (t *Tester) first(op string, finder Finder) (Element, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return Element{}, fmt.Errorf("%s: finder matched no nodes: %s", op, finder.Description())
	}
	return result.First(), nil
}
