package graphics

import (
	"image/color"
	"testing"
)

func TestRectIntersectAndUnion(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(5, 5, 10, 10)

	if got, want := a.Intersect(b), (Rect{Left: 5, Top: 5, Right: 10, Bottom: 10}); got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
	if got, want := a.Union(b), (Rect{Right: 15, Bottom: 15}); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Intersect(RectFromLTWH(20, 20, 1, 1)); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %+v, want %+v", got, b)
	}
}

func TestRegionTranslatedClipped(t *testing.T) {
	var child Region
	child.Add(RectFromLTWH(0, 0, 20, 20))
	child.Add(Rect{})

	var parent Region
	parent.AddTranslatedClipped(&child, Offset{X: 10, Y: 10}, RectFromLTWH(0, 0, 25, 25))

	rects := parent.Rects()
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	if want := (Rect{Left: 10, Top: 10, Right: 25, Bottom: 25}); rects[0] != want {
		t.Errorf("rect = %+v, want %+v", rects[0], want)
	}

	parent.Clear()
	if !parent.IsEmpty() {
		t.Error("expected empty region after Clear")
	}
}

func TestBasicMeasurer(t *testing.T) {
	m := NewBasicMeasurer()

	layout := m.LayoutText("hello", TextStyle{}, 0)
	if layout.Size.Width != 35 || layout.Size.Height != 13 {
		t.Errorf("size = %+v, want 35x13", layout.Size)
	}

	scaled := m.LayoutText("hello", TextStyle{FontSize: 26}, 0)
	if scaled.Size.Width != 70 || scaled.Size.Height != 26 {
		t.Errorf("scaled size = %+v, want 70x26", scaled.Size)
	}

	wrapped := m.LayoutText("aaa bbb", TextStyle{}, 30)
	if len(wrapped.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(wrapped.Lines), wrapped.Lines)
	}
	if wrapped.Lines[0].Text != "aaa" || wrapped.Lines[1].Text != "bbb" {
		t.Errorf("lines = %+v", wrapped.Lines)
	}
}

func TestRecorderReplay(t *testing.T) {
	var rec PictureRecorder
	c := rec.BeginRecording(Size{Width: 8, Height: 8})
	c.Save()
	c.Translate(1, 1)
	c.DrawRect(RectFromLTWH(2, 2, 2, 2), Fill(RGB(255, 0, 0)))
	c.Restore()
	list := rec.EndRecording()

	if list.Len() != 4 {
		t.Fatalf("expected 4 ops, got %d", list.Len())
	}

	img := NewImageCanvas(8, 8)
	list.Paint(img)

	if got := img.Image().RGBAAt(3, 3); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (3,3) = %v, want red", got)
	}
	if got := img.Image().RGBAAt(1, 1); got.A != 0 {
		t.Errorf("pixel (1,1) = %v, want transparent", got)
	}
}

func TestImageCanvasClip(t *testing.T) {
	img := NewImageCanvas(10, 10)
	img.Save()
	img.ClipRect(RectFromLTWH(0, 0, 5, 5))
	img.DrawRect(RectFromLTWH(0, 0, 10, 10), Fill(ColorWhite))
	img.Restore()

	if got := img.Image().RGBAAt(4, 4); got.A != 255 {
		t.Errorf("inside clip alpha = %d, want 255", got.A)
	}
	if got := img.Image().RGBAAt(6, 6); got.A != 0 {
		t.Errorf("outside clip alpha = %d, want 0", got.A)
	}
}
