package widgets

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// QuadProps configures a [Quad].
type QuadProps struct {
	Color graphics.Color
	Key   any
}

// Quad fills all the space it is given with a solid color.
func Quad(cx *core.Cx, props QuadProps) {
	core.Build(cx, callerPos(props.Key), props, func(p QuadProps) *quadObject {
		return &quadObject{color: p.Color}
	}, nil)
}

type quadObject struct {
	passive
	color graphics.Color
}

func (q *quadObject) Update(ctx *core.UpdateCtx, props QuadProps) {
	if props.Color != q.color {
		q.color = props.Color
		ctx.RequestPaint()
	}
}

func (q *quadObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	if !bc.HasBoundedWidth() || !bc.HasBoundedHeight() {
		return bc.MinSize()
	}
	return bc.MaxSize()
}

func (q *quadObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	ctx.Canvas().DrawRect(ctx.Size().ToRect(), graphics.Fill(q.color))
}

func (q *quadObject) Describe() string { return q.color.String() }
