package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/weft/pkg/graphics"
)

// DisplayOp is one serialized canvas call.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingCanvas implements graphics.Canvas and records every call as a
// DisplayOp with rounded, JSON-friendly parameters.
type serializingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

func (c *serializingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *serializingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *serializingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: params("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *serializingCanvas) ClipRect(rect graphics.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: params("rect", serializeRect(rect)),
	})
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: params("color", serializeColor(color)),
	})
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRect",
		Params: serializePaint(paint, "rect", serializeRect(rect)),
	})
}

func (c *serializingCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRRect",
		Params: serializePaint(paint, "rect", serializeRect(rrect.Rect), "radius", round2(rrect.Radius)),
	})
}

func (c *serializingCanvas) DrawText(layout *graphics.TextLayout, position graphics.Offset) {
	p := params("x", round2(position.X), "y", round2(position.Y))
	if layout != nil {
		p["text"] = layout.Text
		p["color"] = serializeColor(layout.Style.Color)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawText", Params: p})
}

func (c *serializingCanvas) Size() graphics.Size {
	return c.size
}

// serializeDisplayList replays dl through a serializing canvas. A nil list
// yields no ops.
func serializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	if dl == nil {
		return nil
	}
	canvas := &serializingCanvas{size: dl.Size()}
	dl.Paint(canvas)
	return canvas.ops
}

func serializeRect(r graphics.Rect) map[string]any {
	return params(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializePaint(paint graphics.Paint, kvs ...any) map[string]any {
	m := params(kvs...)
	m["color"] = serializeColor(paint.Color)
	if paint.Style == graphics.PaintStyleStroke {
		m["style"] = paint.Style.String()
		m["strokeWidth"] = round2(paint.StrokeWidth)
	}
	return m
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds f to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// params builds a map from alternating key-value pairs. encoding/json sorts
// map keys, which keeps golden files stable.
func params(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
