package widgets

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/event"
	"github.com/go-drift/weft/pkg/graphics"
	"github.com/go-drift/weft/pkg/key"
	"github.com/go-drift/weft/pkg/layout"
	"github.com/go-drift/weft/pkg/theme"
)

// callerPos returns the position of the code that called the exported
// widget function, discriminated by local.
func callerPos(local any) key.Position {
	return key.Caller(2).With(local)
}

// layoutStacked lays every child out under bc at offset and returns the
// largest child size.
func layoutStacked(ctx *core.LayoutCtx, bc layout.Constraints, children *core.Children, offset graphics.Offset) graphics.Size {
	var size graphics.Size
	for _, child := range children.All() {
		s := child.Layout(ctx, bc)
		child.SetOrigin(ctx, offset)
		size.Width = max(size.Width, s.Width)
		size.Height = max(size.Height, s.Height)
	}
	return size
}

// resolveTextStyle fills unset fields of style from the current theme.
func resolveTextStyle(style graphics.TextStyle) graphics.TextStyle {
	body := theme.Current().TextTheme.Body
	if style.Color == graphics.ColorTransparent {
		style.Color = body.Color
	}
	if style.FontSize <= 0 {
		style.FontSize = body.FontSize
	}
	return style
}

// passive is embedded by objects that ignore events and lifecycle.
type passive struct{}

func (passive) Event(ctx *core.EventCtx, ev event.Event, children *core.Children) {
	children.Event(ctx, ev)
}

func (passive) Lifecycle(ctx *core.LifecycleCtx, ev core.Lifecycle, children *core.Children) {
	children.Lifecycle(ctx, ev)
}
