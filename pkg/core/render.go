package core

import (
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// RenderObject is the behavior of a structural node.
//
// Containers are responsible for their children: Event and Lifecycle forward
// to the children that should see the notification, Layout lays out and
// positions every child it will paint, and Paint paints them. The helpers on
// [Children] cover the common cases.
type RenderObject interface {
	Event(ctx *EventCtx, ev event.Event, children *Children)
	Lifecycle(ctx *LifecycleCtx, ev Lifecycle, children *Children)
	Layout(ctx *LayoutCtx, bc layout.Constraints, children *Children) graphics.Size
	Paint(ctx *PaintCtx, children *Children)
}

// Object is a render object configured by props of type P.
//
// Update runs on every build pass that matches an existing node. It must be
// idempotent: receiving the same props twice must not request layout or
// paint.
type Object[P any] interface {
	RenderObject
	Update(ctx *UpdateCtx, props P)
}

// Describer is implemented by render objects that want a short description
// in tree dumps, such as the text of a label.
type Describer interface {
	Describe() string
}
