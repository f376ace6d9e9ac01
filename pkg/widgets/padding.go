package widgets

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// PaddingProps configures a [Padding].
//
// Use [layout.EdgeInsets] helpers to create padding values:
//
//	widgets.PaddingProps{Padding: layout.EdgeInsetsAll(16)}
//	widgets.PaddingProps{Padding: layout.EdgeInsetsSymmetric(24, 12)}
type PaddingProps struct {
	Padding layout.EdgeInsets
	Key     any
}

// Padding adds empty space around its children.
//
// The children are constrained to the remaining space after padding is
// applied. With no children, Padding lays out as an empty box of the padding
// size.
func Padding(cx *core.Cx, props PaddingProps, content func(cx *core.Cx)) {
	core.Build(cx, callerPos(props.Key), props, newPadding, content)
}

type paddingObject struct {
	passive
	padding layout.EdgeInsets
}

func newPadding(props PaddingProps) *paddingObject {
	return &paddingObject{padding: props.Padding}
}

func (p *paddingObject) Update(ctx *core.UpdateCtx, props PaddingProps) {
	if props.Padding != p.padding {
		p.padding = props.Padding
		ctx.RequestLayout()
	}
}

func (p *paddingObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	child := layoutStacked(ctx, bc.Deflate(p.padding), children, p.padding.TopLeft())
	return bc.Constrain(p.padding.Inflate(child))
}

func (p *paddingObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	children.Paint(ctx)
}
