package layout

import "github.com/go-drift/weft/pkg/graphics"

// EdgeInsets represents padding on each side of a box.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll returns equal insets on every side.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// EdgeInsetsSymmetric returns insets with equal horizontal and vertical values.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns Left + Right.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// TopLeft returns the offset of the content box.
func (e EdgeInsets) TopLeft() graphics.Offset {
	return graphics.Offset{X: e.Left, Y: e.Top}
}

// Inflate grows size by the insets.
func (e EdgeInsets) Inflate(size graphics.Size) graphics.Size {
	return graphics.Size{Width: size.Width + e.Horizontal(), Height: size.Height + e.Vertical()}
}
