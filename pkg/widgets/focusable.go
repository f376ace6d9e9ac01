package widgets

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/layout"
	"github.com/go-drift/weft/pkg/theme"
)

// FocusableProps configures a [Focusable].
type FocusableProps struct {
	// Disabled removes the node from the focus chain.
	Disabled bool
	Key      any
}

// Focusable joins the focus chain and draws a focus ring around its children
// while it holds focus. Clicking it takes focus; Tab and Shift+Tab move focus
// along the chain. Other key presses received while focused are returned.
func Focusable(cx *core.Cx, props FocusableProps, content func(cx *core.Cx)) (event.KeyDown, bool) {
	action, ok := core.Build(cx, callerPos(props.Key), props, func(p FocusableProps) *focusableObject {
		return &focusableObject{disabled: p.Disabled}
	}, content)
	if !ok {
		return event.KeyDown{}, false
	}
	k, ok := action.(event.KeyDown)
	return k, ok
}

type focusableObject struct {
	disabled bool
}

func (f *focusableObject) Update(ctx *core.UpdateCtx, props FocusableProps) {
	if props.Disabled != f.disabled {
		f.disabled = props.Disabled
		ctx.SetFocusable(!f.disabled)
		if f.disabled && ctx.IsFocused() {
			ctx.RequestPaint()
		}
	}
}

func (f *focusableObject) Event(ctx *core.EventCtx, ev event.Event, children *core.Children) {
	children.Event(ctx, ev)
	if f.disabled || ctx.IsHandled() {
		return
	}
	switch e := ev.(type) {
	case event.PointerDown:
		// The innermost focusable under the pointer takes focus; handling
		// the press keeps enclosing focusables from claiming it too.
		if !ctx.IsFocused() {
			ctx.RequestFocus()
		}
		ctx.SetHandled()
	case event.KeyDown:
		if !ctx.IsFocused() {
			return
		}
		switch {
		case e.Key == "Tab" && e.Mods&event.ModShift != 0:
			ctx.FocusPrevious()
		case e.Key == "Tab":
			ctx.FocusNext()
		case e.Key == "Escape":
			ctx.ResignFocus()
		default:
			ctx.SubmitAction(e)
		}
		ctx.SetHandled()
	}
}

func (f *focusableObject) Lifecycle(ctx *core.LifecycleCtx, ev core.Lifecycle, children *core.Children) {
	switch ev.(type) {
	case core.WidgetAdded:
		if !f.disabled {
			ctx.RegisterForFocus()
		}
	case core.FocusChanged:
		ctx.RequestPaint()
	}
	children.Lifecycle(ctx, ev)
}

func (f *focusableObject) Layout(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children) graphics.Size {
	return bc.Constrain(layoutStacked(ctx, bc, children, graphics.Offset{}))
}

func (f *focusableObject) Paint(ctx *core.PaintCtx, children *core.Children) {
	children.Paint(ctx)
	if !ctx.IsFocused() {
		return
	}
	ring := theme.Current().FocusThemeOf()
	rect := ctx.Size().ToRect().Inflate(-ring.RingWidth / 2)
	ctx.Canvas().DrawRect(rect, graphics.Stroke(ring.RingColor, ring.RingWidth))
}
