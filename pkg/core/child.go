package core

import (
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// Event routes ev to the node and reports whether it was handled.
// Pointer positions in ev are in the parent's coordinates.
//
// Pointer events reach a node only while it is hot or holds the pointer; a
// node that just stopped being hot receives [event.PointerLeave] instead so
// its own descendants can cool down. Key events follow the focus path.
func (c *Child) Event(ctx *EventCtx, ev event.Event) bool {
	inner := ev
	recurse := true
	switch e := ev.(type) {
	case event.PointerDown, event.PointerUp, event.PointerMove, event.Wheel:
		p, _ := event.PointerOf(e)
		wasHot := c.state.isHot
		hot := c.state.rect().Contains(p.Pos)
		c.setHot(ctx.state, hot)
		captured := c.state.isActive || c.state.hasActive
		recurse = wasHot || hot || captured
		if hot || captured {
			inner = event.Translate(ev, c.state.origin)
		} else {
			inner = event.PointerLeave{}
		}
	case event.PointerLeave:
		wasHot := c.state.isHot
		c.setHot(ctx.state, false)
		recurse = wasHot || c.state.hasActive
	case event.KeyDown, event.KeyUp:
		recurse = c.state.hasFocus
	}
	if !recurse {
		return false
	}

	cctx := &EventCtx{nodeCtx: nodeCtx{state: ctx.state, child: &c.state}}
	c.state.hasActive = false
	c.state.cursor = nil
	c.object.Event(cctx, inner, &c.children)
	c.state.hasActive = c.state.hasActive || c.state.isActive

	ctx.child.mergeUp(&c.state)
	ctx.handled = ctx.handled || cctx.handled
	return cctx.handled
}

func (c *Child) setHot(state *ContextState, hot bool) {
	if c.state.isHot == hot {
		return
	}
	c.state.isHot = hot
	c.object.Lifecycle(c.lifecycleCtx(state), HotChanged{Hot: hot}, &c.children)
}

func (c *Child) lifecycleCtx(state *ContextState) *LifecycleCtx {
	return &LifecycleCtx{nodeCtx: nodeCtx{state: state, child: &c.state}}
}

// Lifecycle delivers a notification to the node.
//
// [RouteFocusChanged] is routed: the old and new focus holders receive
// [FocusChanged], and the notification only continues into the node's
// children when its descendant filter may contain either id. Every other
// notification is delivered to this node only.
func (c *Child) Lifecycle(ctx *LifecycleCtx, ev Lifecycle) {
	lc := c.lifecycleCtx(ctx.state)
	route, ok := ev.(RouteFocusChanged)
	if !ok {
		c.object.Lifecycle(lc, ev, &c.children)
		ctx.child.mergeUp(&c.state)
		return
	}

	id := c.state.id
	isOld := route.Old != 0 && route.Old == id
	isNew := route.New != 0 && route.New == id
	below := (route.Old != 0 && c.state.children.MayContain(route.Old)) ||
		(route.New != 0 && c.state.children.MayContain(route.New))
	if !isOld && !isNew && !below {
		return
	}

	c.state.hasFocus = isNew
	if isOld {
		c.object.Lifecycle(lc, FocusChanged{Focused: false}, &c.children)
	}
	if isNew {
		c.object.Lifecycle(lc, FocusChanged{Focused: true}, &c.children)
	}
	if below {
		c.object.Lifecycle(lc, route, &c.children)
	}
	ctx.child.mergeUp(&c.state)
}

// Layout computes the node's size under bc and returns it. The caller
// positions the node afterwards with [Child.SetOrigin].
func (c *Child) Layout(ctx *LayoutCtx, bc layout.Constraints) graphics.Size {
	if c.state.isNew {
		c.state.isNew = false
		c.object.Lifecycle(c.lifecycleCtx(ctx.state), WidgetAdded{}, &c.children)
	}

	c.state.needsLayout = false
	lc := &LayoutCtx{nodeCtx: nodeCtx{state: ctx.state, child: &c.state}}
	size := c.object.Layout(lc, bc, &c.children)
	if !size.Equal(c.state.size) {
		c.state.size = size
		c.object.Lifecycle(c.lifecycleCtx(ctx.state), SizeChanged{Size: size}, &c.children)
	}
	ctx.child.mergeUp(&c.state)
	return size
}

// SetOrigin positions the node relative to its parent.
func (c *Child) SetOrigin(ctx *LayoutCtx, origin graphics.Offset) {
	if origin == c.state.origin {
		return
	}
	ctx.child.invalid.Add(c.state.rect())
	c.state.origin = origin
	ctx.child.invalid.Add(c.state.rect())
	ctx.child.needsPaint = true
}

// Size returns the size from the last layout.
func (c *Child) Size() graphics.Size { return c.state.size }

// Origin returns the offset set by the parent.
func (c *Child) Origin() graphics.Offset { return c.state.origin }

// Paint draws the node translated to its origin.
func (c *Child) Paint(ctx *PaintCtx) {
	canvas := ctx.canvas
	canvas.Save()
	canvas.Translate(c.state.origin.X, c.state.origin.Y)
	pc := &PaintCtx{
		nodeCtx:   nodeCtx{state: ctx.state, child: &c.state},
		canvas:    canvas,
		transform: ctx.transform.Add(c.state.origin),
		zOps:      ctx.zOps,
	}
	c.object.Paint(pc, &c.children)
	canvas.Restore()
	c.state.needsPaint = false
	c.state.invalid.Clear()
}

// Event forwards ev to every child in order.
func (c *Children) Event(ctx *EventCtx, ev event.Event) {
	for _, n := range c.nodes {
		n.Event(ctx, ev)
	}
}

// Lifecycle forwards routed notifications to every child. Notifications
// addressed to the container itself are not forwarded.
func (c *Children) Lifecycle(ctx *LifecycleCtx, ev Lifecycle) {
	if _, ok := ev.(RouteFocusChanged); !ok {
		return
	}
	for _, n := range c.nodes {
		n.Lifecycle(ctx, ev)
	}
}

// Paint paints every child in order.
func (c *Children) Paint(ctx *PaintCtx) {
	for _, n := range c.nodes {
		n.Paint(ctx)
	}
}
