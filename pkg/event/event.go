// Package event defines the input events delivered from the platform into the
// retained tree.
package event

import "github.com/go-drift/weft/pkg/graphics"

// Event is delivered to render objects during event dispatch.
type Event interface {
	isEvent()
}

// Button identifies a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// Buttons is the set of buttons currently held.
type Buttons uint8

// Has reports whether b is in the set.
func (s Buttons) Has(b Button) bool {
	return b != ButtonNone && s&(1<<uint(b)) != 0
}

// With returns the set including b.
func (s Buttons) With(b Button) Buttons {
	if b == ButtonNone {
		return s
	}
	return s | 1<<uint(b)
}

// Modifiers is a bit set of keyboard modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Pointer carries the data shared by every pointer event.
// Pos is in the receiving node's local coordinates; WindowPos never changes
// as the event descends.
type Pointer struct {
	Pos        graphics.Offset
	WindowPos  graphics.Offset
	Button     Button
	Buttons    Buttons
	Mods       Modifiers
	Count      int
	WheelDelta graphics.Offset
}

// PointerDown is sent when a button is pressed.
type PointerDown struct{ Pointer }

// PointerUp is sent when a button is released.
type PointerUp struct{ Pointer }

// PointerMove is sent when the pointer moves.
type PointerMove struct{ Pointer }

// Wheel is sent for scroll-wheel input.
type Wheel struct{ Pointer }

// PointerLeave is synthesized for children that lose hot state because the
// pointer moved outside them. It is never produced by the platform.
type PointerLeave struct{}

// KeyDown is sent when a key is pressed.
type KeyDown struct {
	Key    string
	Mods   Modifiers
	Repeat bool
}

// KeyUp is sent when a key is released.
type KeyUp struct {
	Key  string
	Mods Modifiers
}

// WindowSize is sent when the window is resized.
type WindowSize struct {
	Size graphics.Size
}

// WindowCloseRequested is sent when the user asks to close the window.
type WindowCloseRequested struct{}

// Timer is sent when a platform timer fires.
type Timer struct {
	Token uint64
}

// FocusLost is sent when the window loses keyboard focus.
type FocusLost struct{}

func (PointerDown) isEvent()          {}
func (PointerUp) isEvent()            {}
func (PointerMove) isEvent()          {}
func (Wheel) isEvent()                {}
func (PointerLeave) isEvent()         {}
func (KeyDown) isEvent()              {}
func (KeyUp) isEvent()                {}
func (WindowSize) isEvent()           {}
func (WindowCloseRequested) isEvent() {}
func (Timer) isEvent()                {}
func (FocusLost) isEvent()            {}

// PointerOf returns the pointer data of ev, if it is a pointer event.
func PointerOf(ev Event) (Pointer, bool) {
	switch e := ev.(type) {
	case PointerDown:
		return e.Pointer, true
	case PointerUp:
		return e.Pointer, true
	case PointerMove:
		return e.Pointer, true
	case Wheel:
		return e.Pointer, true
	}
	return Pointer{}, false
}

// Translate returns ev with its local position shifted by -origin.
// Non-pointer events are returned unchanged.
func Translate(ev Event, origin graphics.Offset) Event {
	switch e := ev.(type) {
	case PointerDown:
		e.Pos = e.Pos.Sub(origin)
		return e
	case PointerUp:
		e.Pos = e.Pos.Sub(origin)
		return e
	case PointerMove:
		e.Pos = e.Pos.Sub(origin)
		return e
	case Wheel:
		e.Pos = e.Pos.Sub(origin)
		return e
	}
	return ev
}

// At builds a pointer positioned at p in window coordinates.
func At(p graphics.Offset) Pointer {
	return Pointer{Pos: p, WindowPos: p, Button: ButtonLeft, Buttons: Buttons(0).With(ButtonLeft), Count: 1}
}
