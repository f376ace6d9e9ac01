package widgets

import (
	"math"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
	"github.com/go-drift/weft/pkg/theme"
)

// tooltipGap is the vertical distance between the children and the bubble.
const tooltipGap = 4.0

// TooltipProps configures a [Tooltip].
type TooltipProps struct {
	Text string
	Key  any
}

// Tooltip shows a text bubble below its children while the pointer is over
// them. The bubble is painted after the rest of the tree so it is never
// covered by later siblings.
func Tooltip(cx *core.Cx, props TooltipProps, content func(cx *core.Cx)) {
	core.Build(cx, callerPos(props.Key), props, func(p TooltipProps) *tooltipObject {
		return &tooltipObject{text: p.Text}
	}, content)
}

type tooltipObject struct {
	passive
	text   string
	layout *graphics.TextLayout
}

func (t *tooltipObject) Update(ctx *core.UpdateCtx, props TooltipProps) {
	if props.Text != t.text {
		t.text = props.Text
		ctx.RequestLayout()
	}
}

func (t *tooltipObject) Lifecycle(ctx *core.LifecycleCtx, ev core.Lifecycle, children *core.Children) {
	if _, ok := ev.(core.HotChanged); ok {
		ctx.RequestPaint()
	}
	children.Lifecycle(ctx, ev)
}

func (t *tooltipObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	style := theme.Current().TooltipThemeOf()
	t.layout = ctx.Text().LayoutText(t.text, style.TextStyle, math.Inf(1))
	return bc.Constrain(layoutStacked(ctx, bc, children, graphics.Offset{}))
}

func (t *tooltipObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	children.Paint(ctx)
	if !ctx.IsHot() || t.layout == nil || t.text == "" {
		return
	}
	style := theme.Current().TooltipThemeOf()
	text := t.layout
	top := ctx.Size().Height + tooltipGap
	ctx.PaintWithZIndex(style.ZIndex, func(ctx *core.PaintCtx) {
		bubble := graphics.RectFromLTWH(0, top,
			text.Size.Width+style.Padding.Horizontal(),
			text.Size.Height+style.Padding.Vertical())
		canvas := ctx.Canvas()
		canvas.DrawRRect(graphics.RRectFromRectAndRadius(bubble, style.BorderRadius), graphics.Fill(style.BackgroundColor))
		canvas.DrawText(text, graphics.Offset{X: style.Padding.Left, Y: top + style.Padding.Top})
	})
}

func (t *tooltipObject) Describe() string { return t.text }
