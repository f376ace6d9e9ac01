package core

import (
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/platform"
)

// BuildStats counts reconciler work. Values accumulate until reset.
type BuildStats struct {
	Passes          int `json:"passes"`
	NodesCreated    int `json:"nodes_created"`
	NodesUpdated    int `json:"nodes_updated"`
	NodesPruned     int `json:"nodes_pruned"`
	StatesCreated   int `json:"states_created"`
	StatesPruned    int `json:"states_pruned"`
	ActionsConsumed int `json:"actions_consumed"`
}

// ContextState is shared by every context created during one dispatch.
type ContextState struct {
	window platform.Window
	text   graphics.TextMeasurer
	focus  ChildID

	actionConsumed bool
	stats          BuildStats
}

// NewContextState returns state for one dispatch against window with the
// given node focused. A nil window is allowed for tree-only use; text layout
// then falls back to [graphics.BasicMeasurer].
func NewContextState(window platform.Window, focus ChildID) *ContextState {
	s := &ContextState{window: window, focus: focus}
	if window != nil {
		s.text = window.Text()
	}
	if s.text == nil {
		s.text = graphics.NewBasicMeasurer()
	}
	return s
}

// Window returns the window, which may be nil.
func (s *ContextState) Window() platform.Window { return s.window }

// Focus returns the focused node id.
func (s *ContextState) Focus() ChildID { return s.focus }

// SetFocus updates the focused node id.
func (s *ContextState) SetFocus(id ChildID) { s.focus = id }

// Stats returns the accumulated build counters.
func (s *ContextState) Stats() BuildStats { return s.stats }

// ResetStats clears the build counters.
func (s *ContextState) ResetStats() { s.stats = BuildStats{} }

// nodeCtx carries what every context knows about the node it was created for.
type nodeCtx struct {
	state *ContextState
	child *ChildState
}

// ID returns the id of the node this context belongs to.
func (c *nodeCtx) ID() ChildID { return c.child.id }

// Size returns the node's size from the last layout.
func (c *nodeCtx) Size() graphics.Size { return c.child.size }

// IsHot reports whether the pointer is over the node.
func (c *nodeCtx) IsHot() bool { return c.child.isHot }

// IsActive reports whether the node holds the pointer.
func (c *nodeCtx) IsActive() bool { return c.child.isActive }

// HasFocus reports whether the node or a descendant is focused.
func (c *nodeCtx) HasFocus() bool { return c.child.hasFocus }

// IsFocused reports whether the node itself is focused.
func (c *nodeCtx) IsFocused() bool { return c.state.focus == c.child.id }

// Text returns the text measurer.
func (c *nodeCtx) Text() graphics.TextMeasurer { return c.state.text }

// RequestPaint marks the whole node for repaint.
func (c *nodeCtx) RequestPaint() {
	c.RequestPaintRect(c.child.size.ToRect())
}

// RequestPaintRect marks rect, in node coordinates, for repaint.
func (c *nodeCtx) RequestPaintRect(rect graphics.Rect) {
	c.child.invalid.Add(rect)
	c.child.needsPaint = true
}

// RequestLayout asks for a layout pass before the next paint.
func (c *nodeCtx) RequestLayout() {
	c.child.needsLayout = true
	c.child.needsPaint = true
}

// UpdateCtx is passed to [Object.Update].
type UpdateCtx struct {
	nodeCtx
}

// SetFocusable adds the node to, or removes it from, the focus chain.
func (c *UpdateCtx) SetFocusable(focusable bool) {
	c.child.focusable = focusable
}

// SubmitAction stores an action for the enclosing [Build] call to return.
func (c *UpdateCtx) SubmitAction(action any) {
	submitAction(c.child, action)
}

// EventCtx is passed to [RenderObject.Event].
type EventCtx struct {
	nodeCtx
	handled bool
}

// SetHandled marks the event as handled.
func (c *EventCtx) SetHandled() { c.handled = true }

// IsHandled reports whether a node already handled the event.
func (c *EventCtx) IsHandled() bool { return c.handled }

// SetActive captures or releases the pointer.
func (c *EventCtx) SetActive(active bool) {
	c.child.isActive = active
	c.child.hasActive = c.child.hasActive || active
}

// RequestFocus asks for focus to move to this node.
func (c *EventCtx) RequestFocus() {
	c.child.requestFocus = &FocusChange{Kind: FocusTo, Target: c.child.id}
}

// ResignFocus gives up focus if this node holds it.
func (c *EventCtx) ResignFocus() {
	if c.IsFocused() {
		c.child.requestFocus = &FocusChange{Kind: FocusResign}
	}
}

// FocusNext moves focus forward along the focus chain.
func (c *EventCtx) FocusNext() {
	c.child.requestFocus = &FocusChange{Kind: FocusNext}
}

// FocusPrevious moves focus backward along the focus chain.
func (c *EventCtx) FocusPrevious() {
	c.child.requestFocus = &FocusChange{Kind: FocusPrevious}
}

// SetCursor requests cursor while this node is hot or active, unless a
// descendant asks for another one.
func (c *EventCtx) SetCursor(cursor platform.Cursor) {
	c.child.cursorChange = cursorChange{kind: cursorSet, cursor: cursor}
}

// OverrideCursor requests cursor regardless of what descendants ask for.
func (c *EventCtx) OverrideCursor(cursor platform.Cursor) {
	c.child.cursorChange = cursorChange{kind: cursorOverride, cursor: cursor}
}

// ClearCursor withdraws a cursor request.
func (c *EventCtx) ClearCursor() {
	c.child.cursorChange = cursorChange{}
}

// SubmitAction stores an action for the next build pass. A node holds a
// single action; submitting again before it is consumed replaces it.
func (c *EventCtx) SubmitAction(action any) {
	submitAction(c.child, action)
}

func submitAction(child *ChildState, action any) {
	child.action = action
	child.hasAction = true
	child.needsPass = true
}

// LifecycleCtx is passed to [RenderObject.Lifecycle].
type LifecycleCtx struct {
	nodeCtx
}

// RegisterForFocus adds the node to the focus chain. Call it when handling
// [WidgetAdded].
func (c *LifecycleCtx) RegisterForFocus() {
	c.child.focusable = true
}

// LayoutCtx is passed to [RenderObject.Layout].
type LayoutCtx struct {
	nodeCtx
}

// PaintCtx is passed to [RenderObject.Paint].
type PaintCtx struct {
	nodeCtx
	canvas    graphics.Canvas
	transform graphics.Offset
	zOps      *[]zOp
}

type zOp struct {
	z         int
	transform graphics.Offset
	paint     func(ctx *PaintCtx)
	owner     *ChildState
}

// Canvas returns the canvas to draw on, translated to the node's origin.
func (c *PaintCtx) Canvas() graphics.Canvas { return c.canvas }

// Transform returns the node's origin in window coordinates.
func (c *PaintCtx) Transform() graphics.Offset { return c.transform }

// PaintWithZIndex defers fn until the main tree has been painted. Deferred
// callbacks run in ascending z order, ties in submission order, with the
// canvas translated to this node's origin. A deferred callback may defer
// again; those run in a later round, after every callback of the current one.
func (c *PaintCtx) PaintWithZIndex(z int, fn func(ctx *PaintCtx)) {
	*c.zOps = append(*c.zOps, zOp{z: z, transform: c.transform, paint: fn, owner: c.child})
}
