package widgets

import (
	"math"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
)

// labelPadding is the horizontal space between the edges and the text.
const labelPadding = 2.0

// LineBreaking controls text that is wider than the label.
type LineBreaking int

const (
	// LineBreakingOverflow lets lines run past the label's bounds.
	LineBreakingOverflow LineBreaking = iota
	// LineBreakingWordWrap breaks lines at word boundaries.
	LineBreakingWordWrap
	// LineBreakingClip truncates lines to the label's width.
	LineBreakingClip
)

// LabelProps configures a [Label].
type LabelProps struct {
	Text string
	// Style defaults to the theme's body style for unset fields.
	Style        graphics.TextStyle
	LineBreaking LineBreaking
	Key          any
}

// Label displays a run of text.
func Label(cx *core.Cx, props LabelProps) {
	core.Build(cx, callerPos(props.Key), props, newLabel, nil)
}

// Text displays text with the default style.
func Text(cx *core.Cx, text string) {
	core.Build(cx, callerPos(nil), LabelProps{Text: text}, newLabel, nil)
}

// LabelObject is the render object behind [Label].
type LabelObject struct {
	passive
	props  LabelProps
	layout *graphics.TextLayout
}

func newLabel(props LabelProps) *LabelObject {
	return &LabelObject{props: props}
}

// Text returns the displayed text.
func (l *LabelObject) Text() string { return l.props.Text }

func (l *LabelObject) Update(ctx *core.UpdateCtx, props LabelProps) {
	if props == l.props {
		return
	}
	l.props = props
	l.layout = nil
	ctx.RequestLayout()
}

func (l *LabelObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	width := math.Inf(1)
	if l.props.LineBreaking == LineBreakingWordWrap && bc.HasBoundedWidth() {
		width = max(bc.MaxWidth-2*labelPadding, 0)
	}
	l.layout = ctx.Text().LayoutText(l.props.Text, resolveTextStyle(l.props.Style), width)
	return bc.Constrain(graphics.Size{
		Width:  l.layout.Size.Width + 2*labelPadding,
		Height: l.layout.Size.Height,
	})
}

func (l *LabelObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	if l.layout == nil {
		return
	}
	canvas := ctx.Canvas()
	if l.props.LineBreaking == LineBreakingClip {
		canvas.Save()
		defer canvas.Restore()
		canvas.ClipRect(ctx.Size().ToRect())
	}
	canvas.DrawText(l.layout, graphics.Offset{X: labelPadding})
}

// Describe returns the label text.
func (l *LabelObject) Describe() string { return l.props.Text }
