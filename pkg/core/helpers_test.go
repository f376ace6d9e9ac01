package core

import (
	"fmt"

	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/key"
	"github.com/go-drift/weft/pkg/layout"
	"github.com/go-drift/weft/pkg/platform"
)

// recorder collects what test objects observed.
type recorder struct {
	created []string
	updates []string
	events  []string
	cycles  []string
	paints  []string
}

type boxProps struct {
	name      string
	size      graphics.Size
	emit      any
	cursor    platform.Cursor
	setCursor bool
	override  bool
	z         int
	nestZ     int
	focusable bool
	submitOn  bool
}

// box stacks its children vertically and records every call it receives.
type box struct {
	props boxProps
	rec   *recorder
}

func (b *box) Update(ctx *UpdateCtx, p boxProps) {
	b.rec.updates = append(b.rec.updates, p.name)
	if p != b.props {
		b.props = p
		ctx.RequestLayout()
	}
	if p.emit != nil {
		ctx.SubmitAction(p.emit)
	}
}

func (b *box) Event(ctx *EventCtx, ev event.Event, children *Children) {
	if p, ok := event.PointerOf(ev); ok {
		b.rec.events = append(b.rec.events, fmt.Sprintf("%s %T %.0f,%.0f", b.props.name, ev, p.Pos.X, p.Pos.Y))
	} else {
		b.rec.events = append(b.rec.events, fmt.Sprintf("%s %T", b.props.name, ev))
	}
	switch ev.(type) {
	case event.PointerMove:
		switch {
		case b.props.override:
			ctx.OverrideCursor(b.props.cursor)
		case b.props.setCursor:
			ctx.SetCursor(b.props.cursor)
		}
	case event.PointerDown:
		if b.props.submitOn {
			ctx.SubmitAction(b.props.name)
			ctx.RequestFocus()
			ctx.SetHandled()
		}
	}
	children.Event(ctx, ev)
}

func (b *box) Lifecycle(ctx *LifecycleCtx, ev Lifecycle, children *Children) {
	if _, ok := ev.(RouteFocusChanged); ok {
		b.rec.cycles = append(b.rec.cycles, fmt.Sprintf("%s %T", b.props.name, ev))
	} else {
		b.rec.cycles = append(b.rec.cycles, fmt.Sprintf("%s %#v", b.props.name, ev))
	}
	if _, ok := ev.(WidgetAdded); ok && b.props.focusable {
		ctx.RegisterForFocus()
	}
	children.Lifecycle(ctx, ev)
}

func (b *box) Layout(ctx *LayoutCtx, bc layout.Constraints, children *Children) graphics.Size {
	y := 0.0
	width := b.props.size.Width
	for _, child := range children.All() {
		size := child.Layout(ctx, bc.Loosen())
		child.SetOrigin(ctx, graphics.Offset{X: 0, Y: y})
		y += size.Height
		if size.Width > width {
			width = size.Width
		}
	}
	height := b.props.size.Height
	if y > height {
		height = y
	}
	return bc.Constrain(graphics.Size{Width: width, Height: height})
}

func (b *box) Paint(ctx *PaintCtx, children *Children) {
	b.rec.paints = append(b.rec.paints, b.props.name)
	ctx.Canvas().DrawRect(ctx.Size().ToRect(), graphics.Fill(graphics.ColorBlack))
	if b.props.z != 0 {
		name := b.props.name
		ctx.PaintWithZIndex(b.props.z, func(ctx *PaintCtx) {
			b.rec.paints = append(b.rec.paints, fmt.Sprintf("%s@z%d", name, b.props.z))
			if b.props.nestZ != 0 {
				ctx.PaintWithZIndex(b.props.nestZ, func(ctx *PaintCtx) {
					b.rec.paints = append(b.rec.paints, fmt.Sprintf("%s@z%d", name, b.props.nestZ))
				})
			}
		})
	}
	children.Paint(ctx)
}

func (b *box) Describe() string { return b.props.name }

// other is a second structural type used to provoke identity collisions.
type other struct{ box }

func buildBox(cx *Cx, pos key.Position, rec *recorder, p boxProps, content func(cx *Cx)) (any, bool) {
	return Build(cx, pos, p, func(p boxProps) *box {
		rec.created = append(rec.created, p.name)
		return &box{props: p, rec: rec}
	}, content)
}

func buildOther(cx *Cx, pos key.Position, rec *recorder, p boxProps) (any, bool) {
	return Build(cx, pos, p, func(p boxProps) *other {
		rec.created = append(rec.created, p.name)
		return &other{box{props: p, rec: rec}}
	}, nil)
}

func down(x, y float64) event.PointerDown {
	return event.PointerDown{Pointer: event.At(graphics.Offset{X: x, Y: y})}
}

func move(x, y float64) event.PointerMove {
	return event.PointerMove{Pointer: event.At(graphics.Offset{X: x, Y: y})}
}

func named(name string) key.Position { return key.Named(name) }

// childIDs returns the ids of the root's direct children.
func childIDs(t *Tree) []ChildID {
	var ids []ChildID
	for _, c := range t.Root().Children().All() {
		ids = append(ids, c.ID())
	}
	return ids
}

// drawLog is a canvas that records the order of draw calls.
type drawLog struct {
	ops   []string
	size  graphics.Size
	depth int
}

func (d *drawLog) Save()                    { d.depth++; d.ops = append(d.ops, "save") }
func (d *drawLog) Restore()                 { d.depth--; d.ops = append(d.ops, "restore") }
func (d *drawLog) Translate(dx, dy float64) { d.ops = append(d.ops, fmt.Sprintf("translate %.0f,%.0f", dx, dy)) }
func (d *drawLog) ClipRect(graphics.Rect)   { d.ops = append(d.ops, "clip") }
func (d *drawLog) Clear(graphics.Color)     { d.ops = append(d.ops, "clear") }
func (d *drawLog) DrawRect(r graphics.Rect, _ graphics.Paint) {
	d.ops = append(d.ops, fmt.Sprintf("rect %.0fx%.0f", r.Width(), r.Height()))
}
func (d *drawLog) DrawRRect(graphics.RRect, graphics.Paint)        { d.ops = append(d.ops, "rrect") }
func (d *drawLog) DrawText(*graphics.TextLayout, graphics.Offset) { d.ops = append(d.ops, "text") }
func (d *drawLog) Size() graphics.Size                            { return d.size }
