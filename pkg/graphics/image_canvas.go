package graphics

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageCanvas rasterizes drawing commands into an in-memory RGBA image.
// Rounded corners are approximated per pixel and text is drawn with the
// layout's face at its native size.
type ImageCanvas struct {
	img   *image.RGBA
	state canvasState
	stack []canvasState
}

type canvasState struct {
	origin Offset
	clip   image.Rectangle
}

// NewImageCanvas allocates a canvas of the given pixel size.
func NewImageCanvas(width, height int) *ImageCanvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &ImageCanvas{img: img, state: canvasState{clip: img.Bounds()}}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

func (c *ImageCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *ImageCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *ImageCanvas) Translate(dx, dy float64) {
	c.state.origin = c.state.origin.Add(Offset{X: dx, Y: dy})
}

func (c *ImageCanvas) ClipRect(rect Rect) {
	c.state.clip = c.state.clip.Intersect(c.device(rect))
}

func (c *ImageCanvas) Clear(color Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *ImageCanvas) DrawRect(rect Rect, paint Paint) {
	if paint.Style == PaintStyleStroke {
		w := math.Max(paint.StrokeWidth, 1)
		c.fill(Rect{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Top + w}, paint.Color)
		c.fill(Rect{Left: rect.Left, Top: rect.Bottom - w, Right: rect.Right, Bottom: rect.Bottom}, paint.Color)
		c.fill(Rect{Left: rect.Left, Top: rect.Top, Right: rect.Left + w, Bottom: rect.Bottom}, paint.Color)
		c.fill(Rect{Left: rect.Right - w, Top: rect.Top, Right: rect.Right, Bottom: rect.Bottom}, paint.Color)
		return
	}
	c.fill(rect, paint.Color)
}

func (c *ImageCanvas) DrawRRect(rrect RRect, paint Paint) {
	if rrect.Radius <= 0 || paint.Style == PaintStyleStroke {
		c.DrawRect(rrect.Rect, paint)
		return
	}
	bounds := c.device(rrect.Rect).Intersect(c.state.clip)
	src := image.NewUniform(paint.Color.NRGBA())
	r := rrect.Radius
	local := rrect.Rect.Translate(c.state.origin.X, c.state.origin.Y)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			cx := math.Max(local.Left+r, math.Min(px, local.Right-r))
			cy := math.Max(local.Top+r, math.Min(py, local.Bottom-r))
			if math.Hypot(px-cx, py-cy) > r {
				continue
			}
			draw.Draw(c.img, image.Rect(x, y, x+1, y+1), src, image.Point{}, draw.Over)
		}
	}
}

func (c *ImageCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.Face == nil {
		return
	}
	dst, ok := c.img.SubImage(c.state.clip).(*image.RGBA)
	if !ok {
		return
	}
	d := font.Drawer{Dst: dst, Src: image.NewUniform(layout.Style.Color.NRGBA()), Face: layout.Face}
	native := float64(layout.Face.Metrics().Height.Round())
	for i, line := range layout.Lines {
		x := c.state.origin.X + position.X
		y := c.state.origin.Y + position.Y + float64(i)*native + float64(layout.Face.Metrics().Ascent.Round())
		d.Dot = fixed.P(int(math.Round(x)), int(math.Round(y)))
		d.DrawString(line.Text)
	}
}

func (c *ImageCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *ImageCanvas) fill(rect Rect, color Color) {
	target := c.device(rect).Intersect(c.state.clip)
	if target.Empty() {
		return
	}
	draw.Draw(c.img, target, image.NewUniform(color.NRGBA()), image.Point{}, draw.Over)
}

func (c *ImageCanvas) device(rect Rect) image.Rectangle {
	r := rect.Translate(c.state.origin.X, c.state.origin.Y)
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}
