package core

import (
	"sort"

	"github.com/go-drift/weft/pkg/errors"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// Tree is the retained tree for one window. The first structural node built
// at the top level is the root.
type Tree struct {
	children Children
	counter  ChildCounter
	scope    ChildState
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Build runs one build pass of fn over the tree and reports whether any
// [Build] call returned an action during the pass.
func (t *Tree) Build(state *ContextState, fn func(cx *Cx)) bool {
	state.actionConsumed = false
	state.stats.Passes++
	cx := newCx(&t.children, state, &t.counter, &t.scope)
	fn(cx)
	cx.finish()
	return state.actionConsumed
}

// TakeBuildState returns the layout and paint requests raised by build
// passes since the last call, and clears them.
func (t *Tree) TakeBuildState() ChildState {
	s := ChildState{
		needsLayout: t.scope.needsLayout,
		needsPaint:  t.scope.needsPaint,
	}
	s.invalid.Union(&t.scope.invalid)
	t.scope.reset()
	return s
}

// HasRoot reports whether a root node exists.
func (t *Tree) HasRoot() bool {
	return len(t.children.nodes) > 0
}

// Root returns the root node. It panics with [errors.MissingRootError] when
// the tree was never built.
func (t *Tree) Root() *Child {
	return t.root("root")
}

func (t *Tree) root(op string) *Child {
	if len(t.children.nodes) == 0 {
		panic(&errors.MissingRootError{Op: op})
	}
	return t.children.nodes[0]
}

// Children returns the top-level scope.
func (t *Tree) Children() *Children {
	return &t.children
}

func (t *Tree) windowState(size graphics.Size) *ChildState {
	s := newChildState(0, size)
	return &s
}

// Event dispatches ev to the root and returns the merged window-level state
// together with whether the event was handled.
func (t *Tree) Event(state *ContextState, size graphics.Size, ev event.Event) (*ChildState, bool) {
	root := t.root("event")
	window := t.windowState(size)
	ctx := &EventCtx{nodeCtx: nodeCtx{state: state, child: window}}
	root.Event(ctx, ev)
	return window, ctx.handled
}

// Lifecycle delivers ev to the root and returns the merged window-level state.
func (t *Tree) Lifecycle(state *ContextState, size graphics.Size, ev Lifecycle) *ChildState {
	root := t.root("lifecycle")
	window := t.windowState(size)
	root.Lifecycle(&LifecycleCtx{nodeCtx: nodeCtx{state: state, child: window}}, ev)
	return window
}

// Layout lays the root out with tight constraints for size.
func (t *Tree) Layout(state *ContextState, size graphics.Size) *ChildState {
	root := t.root("layout")
	window := t.windowState(size)
	t.scope.size = size
	ctx := &LayoutCtx{nodeCtx: nodeCtx{state: state, child: window}}
	root.Layout(ctx, layout.Tight(size))
	root.SetOrigin(ctx, graphics.Offset{})
	return window
}

// Paint paints the root, then every deferred overlay in ascending z order.
func (t *Tree) Paint(state *ContextState, canvas graphics.Canvas) {
	root := t.root("paint")
	var ops []zOp
	window := t.windowState(canvas.Size())
	ctx := &PaintCtx{nodeCtx: nodeCtx{state: state, child: window}, canvas: canvas, zOps: &ops}
	root.Paint(ctx)

	for round := 0; len(ops) > 0 && round < maxZRounds; round++ {
		sort.SliceStable(ops, func(i, j int) bool { return ops[i].z < ops[j].z })
		var nested []zOp
		for _, op := range ops {
			canvas.Save()
			canvas.Translate(op.transform.X, op.transform.Y)
			op.paint(&PaintCtx{
				nodeCtx:   nodeCtx{state: state, child: op.owner},
				canvas:    canvas,
				transform: op.transform,
				zOps:      &nested,
			})
			canvas.Restore()
		}
		ops = nested
	}
}

// maxZRounds bounds how deeply deferred paint callbacks may defer again.
const maxZRounds = 8

// ClearFocusPath clears the focus flag along the path that led to the
// previous focus holder. The engine calls it when that holder was pruned,
// since no routed notification can reach a node that no longer exists.
func (t *Tree) ClearFocusPath() {
	clearFocusPath(&t.children)
}

func clearFocusPath(c *Children) {
	for _, n := range c.nodes {
		if n.state.hasFocus {
			n.state.hasFocus = false
			clearFocusPath(&n.children)
		}
	}
}

// FocusChain returns the focusable nodes in tree order.
func (t *Tree) FocusChain() []ChildID {
	var chain []ChildID
	var walk func(c *Children)
	walk = func(c *Children) {
		for _, n := range c.nodes {
			if n.state.focusable {
				chain = append(chain, n.state.id)
			}
			walk(&n.children)
		}
	}
	walk(&t.children)
	return chain
}

// Find returns the node with the given id, or nil.
func (t *Tree) Find(id ChildID) *Child {
	var found *Child
	var walk func(c *Children) bool
	walk = func(c *Children) bool {
		for _, n := range c.nodes {
			if n.state.id == id {
				found = n
				return true
			}
			if n.state.children.MayContain(id) && walk(&n.children) {
				return true
			}
		}
		return false
	}
	walk(&t.children)
	return found
}
