package core

import "github.com/go-drift/weft/pkg/graphics"

// Lifecycle is an informational notification delivered to render objects.
type Lifecycle interface {
	isLifecycle()
}

// WidgetAdded is delivered once, before a node's first layout.
type WidgetAdded struct{}

// HotChanged is delivered when the pointer enters or leaves the node.
type HotChanged struct {
	Hot bool
}

// FocusChanged is delivered to the node gaining or losing focus.
type FocusChanged struct {
	Focused bool
}

// SizeChanged is delivered when layout produced a different size.
type SizeChanged struct {
	Size graphics.Size
}

// RouteFocusChanged travels from the root toward the old and new focus
// holders. [Child.Lifecycle] turns it into [FocusChanged] at the targets and
// only descends into subtrees that may contain either id.
type RouteFocusChanged struct {
	Old, New ChildID
}

func (WidgetAdded) isLifecycle()       {}
func (HotChanged) isLifecycle()        {}
func (FocusChanged) isLifecycle()      {}
func (SizeChanged) isLifecycle()       {}
func (RouteFocusChanged) isLifecycle() {}
