package platform

import (
	"sync"

	"github.com/go-drift/weft/pkg/graphics"
)

// Headless is an offscreen [Window]. Frames are recorded into display lists
// that can be replayed onto any canvas.
type Headless struct {
	mu sync.Mutex

	size     graphics.Size
	measurer graphics.TextMeasurer
	recorder graphics.PictureRecorder

	frames      int
	last        *graphics.DisplayList
	damage      graphics.Rect
	invalidated graphics.Region
	cursor      Cursor
	closed      bool
}

var _ Window = (*Headless)(nil)

// NewHeadless returns a headless window of the given size using the basic
// bitmap text measurer.
func NewHeadless(size graphics.Size) *Headless {
	return &Headless{size: size, measurer: graphics.NewBasicMeasurer()}
}

// Resize changes the reported window size.
func (w *Headless) Resize(size graphics.Size) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = size
}

func (w *Headless) Size() graphics.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Headless) Text() graphics.TextMeasurer {
	return w.measurer
}

func (w *Headless) BeginPaint() graphics.Canvas {
	return w.recorder.BeginRecording(w.Size())
}

func (w *Headless) Present(damage graphics.Rect) {
	list := w.recorder.EndRecording()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = list
	w.damage = damage
	w.frames++
	w.invalidated.Clear()
}

func (w *Headless) InvalidateRect(rect graphics.Rect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.invalidated.Add(rect)
}

func (w *Headless) SetCursor(c Cursor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cursor = c
}

func (w *Headless) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// LastFrame returns the most recently presented display list, or nil.
func (w *Headless) LastFrame() *graphics.DisplayList {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// LastDamage returns the damage rect passed to the last Present.
func (w *Headless) LastDamage() graphics.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.damage
}

// Frames returns the number of presented frames.
func (w *Headless) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Invalidated returns the bounds of the area invalidated since the last Present.
func (w *Headless) Invalidated() graphics.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.invalidated.Bounds()
}

// Cursor returns the cursor most recently set.
func (w *Headless) Cursor() Cursor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// Closed reports whether Close was called.
func (w *Headless) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
