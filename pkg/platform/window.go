// Package platform defines the narrow surface the engine needs from a host
// window system, plus a headless implementation for tests and tooling.
package platform

import "github.com/go-drift/weft/pkg/graphics"

// Cursor is a mouse cursor shape.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorIBeam
	CursorPointer
	CursorCrosshair
	CursorNotAllowed
	CursorResizeLeftRight
	CursorResizeUpDown
)

func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorIBeam:
		return "ibeam"
	case CursorPointer:
		return "pointer"
	case CursorCrosshair:
		return "crosshair"
	case CursorNotAllowed:
		return "not_allowed"
	case CursorResizeLeftRight:
		return "resize_left_right"
	case CursorResizeUpDown:
		return "resize_up_down"
	default:
		return "unknown"
	}
}

// Window is the host window as seen by the engine.
// All methods are called from the UI goroutine.
type Window interface {
	// Size returns the logical size of the client area.
	Size() graphics.Size
	// Text returns the text measurer for this window.
	Text() graphics.TextMeasurer
	// BeginPaint returns the canvas for the next frame.
	BeginPaint() graphics.Canvas
	// Present displays the frame painted since BeginPaint. damage bounds the
	// area that changed.
	Present(damage graphics.Rect)
	// InvalidateRect requests a repaint of rect.
	InvalidateRect(rect graphics.Rect)
	// SetCursor changes the mouse cursor.
	SetCursor(c Cursor)
	// Close asks the host to close the window.
	Close()
}
