package testbed

import (
	"fmt"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/key"
	"github.com/go-drift/weft/pkg/layout"
)

// BoxProps configures a [Box].
type BoxProps struct {
	Width  float64
	Height float64
	Color  graphics.Color
	Key    any
}

// Box places a fixed-size colored rectangle that counts the pointer presses
// it receives.
func Box(cx *core.Cx, props BoxProps) {
	core.Build(cx, key.Caller(1).With(props.Key), props, func(p BoxProps) *BoxObject {
		return &BoxObject{props: p}
	}, nil)
}

// BoxObject is the render object behind [Box].
type BoxObject struct {
	props BoxProps
	// Presses counts PointerDown events inside the box.
	Presses int
}

func (b *BoxObject) Update(ctx *core.UpdateCtx, props BoxProps) {
	if props == b.props {
		return
	}
	b.props = props
	ctx.RequestLayout()
}

func (b *BoxObject) Event(ctx *core.EventCtx, ev event.Event, children *core.Children) {
	if _, ok := ev.(event.PointerDown); ok && ctx.IsHot() {
		b.Presses++
		ctx.SetHandled()
	}
}

func (b *BoxObject) Lifecycle(ctx *core.LifecycleCtx, ev core.Lifecycle, children *core.Children) {
	if _, ok := ev.(core.HotChanged); ok {
		ctx.RequestPaint()
	}
}

func (b *BoxObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	return bc.Constrain(graphics.Size{Width: b.props.Width, Height: b.props.Height})
}

func (b *BoxObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	ctx.Canvas().DrawRect(ctx.Size().ToRect(), graphics.Fill(b.props.Color))
}

func (b *BoxObject) Describe() string {
	return fmt.Sprintf("box %gx%g", b.props.Width, b.props.Height)
}
