package core

import (
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/platform"
)

// FocusKind selects what a [FocusChange] asks for.
type FocusKind int

const (
	// FocusTo moves focus to a specific node.
	FocusTo FocusKind = iota
	// FocusResign clears focus.
	FocusResign
	// FocusNext moves focus to the next node in the focus chain.
	FocusNext
	// FocusPrevious moves focus to the previous node in the focus chain.
	FocusPrevious
)

// FocusChange is a pending focus request, resolved by the driver once per event.
type FocusChange struct {
	Kind   FocusKind
	Target ChildID
}

type cursorKind int

const (
	cursorDefault cursorKind = iota
	cursorSet
	cursorOverride
)

type cursorChange struct {
	kind   cursorKind
	cursor platform.Cursor
}

// ChildState is the transient per-node bookkeeping maintained by the tree.
type ChildState struct {
	id     ChildID
	size   graphics.Size
	origin graphics.Offset

	invalid graphics.Region

	isHot     bool
	isActive  bool
	hasActive bool
	hasFocus  bool
	focusable bool

	cursorChange cursorChange
	cursor       *platform.Cursor

	requestFocus *FocusChange

	action    any
	hasAction bool

	children Bloom

	isNew       bool
	needsLayout bool
	needsPaint  bool
	needsPass   bool
}

func newChildState(id ChildID, size graphics.Size) ChildState {
	return ChildState{id: id, size: size}
}

// ID returns the node's id.
func (s *ChildState) ID() ChildID { return s.id }

// Size returns the size computed by the last layout.
func (s *ChildState) Size() graphics.Size { return s.size }

// Origin returns the offset from the parent's origin.
func (s *ChildState) Origin() graphics.Offset { return s.origin }

// Invalid returns the region needing repaint, in this node's coordinates.
func (s *ChildState) Invalid() *graphics.Region { return &s.invalid }

// NeedsLayout reports whether this node or a descendant asked for layout.
func (s *ChildState) NeedsLayout() bool { return s.needsLayout }

// NeedsPaint reports whether this node or a descendant asked for repaint.
func (s *ChildState) NeedsPaint() bool { return s.needsPaint }

// NeedsPass reports whether an action is waiting to be consumed by a build pass.
func (s *ChildState) NeedsPass() bool { return s.needsPass }

// HasActive reports whether this node or a descendant is active.
func (s *ChildState) HasActive() bool { return s.hasActive }

// HasFocus reports whether this node or a descendant holds focus.
func (s *ChildState) HasFocus() bool { return s.hasFocus }

// Descendants returns the membership filter of descendant ids.
func (s *ChildState) Descendants() Bloom { return s.children }

// Cursor returns the cursor requested by the hot or active path, if any.
func (s *ChildState) Cursor() (platform.Cursor, bool) {
	if s.cursor == nil {
		return platform.CursorArrow, false
	}
	return *s.cursor, true
}

// TakeFocusRequest returns and clears the pending focus request.
func (s *ChildState) TakeFocusRequest() (FocusChange, bool) {
	if s.requestFocus == nil {
		return FocusChange{}, false
	}
	req := *s.requestFocus
	s.requestFocus = nil
	return req, true
}

func (s *ChildState) rect() graphics.Rect {
	return graphics.RectFromOriginSize(s.origin, s.size)
}

// resolveCursor applies this node's own cursor request on top of whatever its
// descendants requested. An override always wins; a plain set only fills in
// when no descendant asked for a cursor.
func (s *ChildState) resolveCursor() {
	switch s.cursorChange.kind {
	case cursorOverride:
		c := s.cursorChange.cursor
		s.cursor = &c
	case cursorSet:
		if s.cursor == nil {
			c := s.cursorChange.cursor
			s.cursor = &c
		}
	}
}

// mergeUp folds a child's state into s after the child handled a call.
func (s *ChildState) mergeUp(child *ChildState) {
	s.invalid.AddTranslatedClipped(&child.invalid, child.origin, s.size.ToRect())
	child.invalid.Clear()

	s.needsLayout = s.needsLayout || child.needsLayout
	s.needsPaint = s.needsPaint || child.needsPaint
	s.needsPass = s.needsPass || child.needsPass
	s.hasActive = s.hasActive || child.hasActive
	s.hasFocus = s.hasFocus || child.hasFocus

	if child.requestFocus != nil {
		s.requestFocus = child.requestFocus
		child.requestFocus = nil
	}

	child.resolveCursor()
	if s.cursor == nil && (child.isHot || child.hasActive) {
		s.cursor = child.cursor
	}
	child.cursor = nil
}

// mergeBuild folds the flags a node raised while being built into its scope.
func (s *ChildState) mergeBuild(child *ChildState) {
	s.invalid.AddTranslatedClipped(&child.invalid, child.origin, s.size.ToRect())
	child.invalid.Clear()
	s.needsLayout = s.needsLayout || child.needsLayout
	s.needsPaint = s.needsPaint || child.needsPaint
}

// reset clears the flags carried from one dispatch to the next.
func (s *ChildState) reset() {
	s.invalid.Clear()
	s.needsLayout = false
	s.needsPaint = false
	s.needsPass = false
	s.requestFocus = nil
	s.cursor = nil
}
