package widgets

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/key"
	"github.com/go-drift/weft/pkg/layout"
)

// SizedBoxProps configures a [SizedBox]. A zero dimension is left to the
// children and the incoming constraints.
type SizedBoxProps struct {
	Width  float64
	Height float64
	Key    any
}

// SizedBox forces its size in the dimensions that are set. content may be nil.
func SizedBox(cx *core.Cx, props SizedBoxProps, content func(cx *core.Cx)) {
	sizedBox(cx, callerPos(props.Key), props, content)
}

// VSpace places a fixed-height vertical spacer.
func VSpace(cx *core.Cx, height float64) {
	sizedBox(cx, callerPos(nil), SizedBoxProps{Height: height}, nil)
}

// HSpace places a fixed-width horizontal spacer.
func HSpace(cx *core.Cx, width float64) {
	sizedBox(cx, callerPos(nil), SizedBoxProps{Width: width}, nil)
}

func sizedBox(cx *core.Cx, pos key.Position, props SizedBoxProps, content func(cx *core.Cx)) {
	props.Key = nil
	core.Build(cx, pos, props, newSizedBox, content)
}

type sizedBoxObject struct {
	passive
	width, height float64
}

func newSizedBox(props SizedBoxProps) *sizedBoxObject {
	return &sizedBoxObject{width: props.Width, height: props.Height}
}

func (s *sizedBoxObject) Update(ctx *core.UpdateCtx, props SizedBoxProps) {
	if props.Width != s.width || props.Height != s.height {
		s.width, s.height = props.Width, props.Height
		ctx.RequestLayout()
	}
}

func (s *sizedBoxObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	constrained := bc.Constrain(graphics.Size{Width: s.width, Height: s.height})

	childConstraints := bc
	if s.width > 0 {
		childConstraints.MinWidth = constrained.Width
		childConstraints.MaxWidth = constrained.Width
	}
	if s.height > 0 {
		childConstraints.MinHeight = constrained.Height
		childConstraints.MaxHeight = constrained.Height
	}
	if children.Len() == 0 {
		return constrained
	}

	size := layoutStacked(ctx, childConstraints, children, graphics.Offset{})
	if s.width > 0 {
		size.Width = constrained.Width
	}
	if s.height > 0 {
		size.Height = constrained.Height
	}
	return bc.Constrain(size)
}

func (s *sizedBoxObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	children.Paint(ctx)
}
