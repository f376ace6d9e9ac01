package widgets

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
	"github.com/go-drift/weft/pkg/platform"
	"github.com/go-drift/weft/pkg/theme"
)

// ButtonProps configures a [Button].
type ButtonProps struct {
	// Label is the text displayed on the button. It is ignored by
	// [ButtonWith], whose content supplies the children instead.
	Label    string
	Disabled bool
	// Theme overrides the current theme's button styling.
	Theme *theme.ButtonThemeData
	Key   any
}

// ButtonAction is submitted by a button.
type ButtonAction int

const (
	// Clicked is submitted when the pointer is pressed and released over
	// the button.
	Clicked ButtonAction = iota
)

// Button places a labeled button and reports whether it was clicked.
//
// A click is reported on the build pass after the pointer was released over
// the button, so the caller can react to it in the same frame.
func Button(cx *core.Cx, props ButtonProps) bool {
	fg := buttonTheme(props).ForegroundColor
	if props.Disabled {
		fg = fg.WithAlpha(0.5)
	}
	label := LabelProps{Text: props.Label, Style: graphics.TextStyle{Color: fg}}
	_, clicked := core.Build(cx, callerPos(props.Key), props, newButton, func(cx *core.Cx) {
		Label(cx, label)
	})
	return clicked
}

// ButtonWith places a button whose children are described by content.
func ButtonWith(cx *core.Cx, props ButtonProps, content func(cx *core.Cx)) bool {
	_, clicked := core.Build(cx, callerPos(props.Key), props, newButton, content)
	return clicked
}

// ButtonObject is the render object behind [Button].
type ButtonObject struct {
	props ButtonProps
	style theme.ButtonThemeData
}

func newButton(props ButtonProps) *ButtonObject {
	return &ButtonObject{props: props}
}

func (b *ButtonObject) Update(ctx *core.UpdateCtx, props ButtonProps) {
	if props != b.props {
		b.props = props
		ctx.RequestLayout()
	}
}

func (b *ButtonObject) Event(ctx *core.EventCtx, ev event.Event, children *core.Children) {
	if !b.props.Disabled {
		switch e := ev.(type) {
		case event.PointerDown:
			if e.Button == event.ButtonLeft {
				ctx.SetActive(true)
				ctx.RequestPaint()
			}
		case event.PointerUp:
			if ctx.IsActive() && e.Button == event.ButtonLeft {
				ctx.SetActive(false)
				if ctx.IsHot() {
					ctx.SubmitAction(Clicked)
					ctx.SetHandled()
				}
				ctx.RequestPaint()
			}
		case event.PointerMove:
			if ctx.IsHot() {
				ctx.SetCursor(platform.CursorPointer)
			} else {
				ctx.ClearCursor()
			}
		}
	}
	children.Event(ctx, ev)
}

func (b *ButtonObject) Lifecycle(ctx *core.LifecycleCtx, ev core.Lifecycle, children *core.Children) {
	if _, ok := ev.(core.HotChanged); ok {
		ctx.RequestPaint()
	}
	children.Lifecycle(ctx, ev)
}

func buttonTheme(props ButtonProps) theme.ButtonThemeData {
	if props.Theme != nil {
		return *props.Theme
	}
	return theme.Current().ButtonThemeOf()
}

func (b *ButtonObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	b.style = buttonTheme(b.props)
	inset := b.style.Padding
	inset.Left += b.style.BorderRadius
	inset.Right += b.style.BorderRadius
	inset.Top += b.style.BorderRadius
	inset.Bottom += b.style.BorderRadius

	inner := bc.Loosen().Deflate(inset)
	var content graphics.Size
	for _, child := range children.All() {
		s := child.Layout(ctx, inner)
		content.Width = max(content.Width, s.Width)
		content.Height = max(content.Height, s.Height)
	}
	size := bc.Constrain(graphics.Size{
		Width:  content.Width + inset.Horizontal(),
		Height: max(content.Height+inset.Vertical(), b.style.MinHeight),
	})
	origin := graphics.Offset{
		X: (size.Width - content.Width) / 2,
		Y: (size.Height - content.Height) / 2,
	}
	for _, child := range children.All() {
		child.SetOrigin(ctx, origin)
	}
	return size
}

func (b *ButtonObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	s := b.style.Style(ctx.IsHot(), ctx.IsActive(), b.props.Disabled)
	half := s.BorderWidth / 2
	rect := ctx.Size().ToRect().Inflate(-half)
	rrect := graphics.RRectFromRectAndRadius(rect, s.Radius)

	canvas := ctx.Canvas()
	canvas.DrawRRect(rrect, graphics.Fill(s.Background))
	if s.BorderWidth > 0 {
		canvas.DrawRRect(rrect, graphics.Stroke(s.BorderColor, s.BorderWidth))
	}
	children.Paint(ctx)
}

func (b *ButtonObject) Describe() string { return b.props.Label }
