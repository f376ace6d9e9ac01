package graphics

// DisplayList is a recorded frame that can be replayed onto any [Canvas].
// It is not modified after [PictureRecorder.EndRecording] returns it.
type DisplayList struct {
	ops  []drawOp
	size Size
}

// Paint replays the recorded calls onto canvas in order.
func (d *DisplayList) Paint(canvas Canvas) {
	for i := range d.ops {
		d.ops[i].replay(canvas)
	}
}

// Size is the canvas size the list was recorded at.
func (d *DisplayList) Size() Size { return d.size }

// Len returns the number of recorded calls.
func (d *DisplayList) Len() int { return len(d.ops) }

// PictureRecorder turns canvas calls into a [DisplayList]. The zero value is
// ready to use and the recorder may be reused for successive frames.
type PictureRecorder struct {
	ops       []drawOp
	size      Size
	recording bool
}

// BeginRecording discards anything recorded so far and returns a canvas of
// the given size whose calls are captured.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.size = size
	r.recording = true
	return recorder{r}
}

// EndRecording stops capturing and returns a copy of the recorded calls.
// Without a preceding BeginRecording it returns an empty list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	list := &DisplayList{size: r.size}
	if r.recording {
		list.ops = append([]drawOp(nil), r.ops...)
		r.recording = false
	}
	return list
}

type opKind uint8

const (
	opSave opKind = iota
	opRestore
	opTranslate
	opClip
	opClear
	opRect
	opRRect
	opText
)

// drawOp is one recorded call. Only the fields its kind uses are set.
type drawOp struct {
	kind   opKind
	rect   Rect
	radius float64
	paint  Paint
	color  Color
	at     Offset
	text   *TextLayout
}

func (op *drawOp) replay(c Canvas) {
	switch op.kind {
	case opSave:
		c.Save()
	case opRestore:
		c.Restore()
	case opTranslate:
		c.Translate(op.at.X, op.at.Y)
	case opClip:
		c.ClipRect(op.rect)
	case opClear:
		c.Clear(op.color)
	case opRect:
		c.DrawRect(op.rect, op.paint)
	case opRRect:
		c.DrawRRect(RRect{Rect: op.rect, Radius: op.radius}, op.paint)
	case opText:
		c.DrawText(op.text, op.at)
	}
}

// recorder is the Canvas handed out by BeginRecording.
type recorder struct{ r *PictureRecorder }

func (c recorder) push(op drawOp) {
	if c.r.recording {
		c.r.ops = append(c.r.ops, op)
	}
}

func (c recorder) Save()                    { c.push(drawOp{kind: opSave}) }
func (c recorder) Restore()                 { c.push(drawOp{kind: opRestore}) }
func (c recorder) Translate(dx, dy float64) { c.push(drawOp{kind: opTranslate, at: Offset{X: dx, Y: dy}}) }
func (c recorder) ClipRect(rect Rect)       { c.push(drawOp{kind: opClip, rect: rect}) }
func (c recorder) Clear(color Color)        { c.push(drawOp{kind: opClear, color: color}) }
func (c recorder) Size() Size               { return c.r.size }

func (c recorder) DrawRect(rect Rect, paint Paint) {
	c.push(drawOp{kind: opRect, rect: rect, paint: paint})
}

func (c recorder) DrawRRect(rrect RRect, paint Paint) {
	c.push(drawOp{kind: opRRect, rect: rrect.Rect, radius: rrect.Radius, paint: paint})
}

func (c recorder) DrawText(layout *TextLayout, position Offset) {
	c.push(drawOp{kind: opText, text: layout, at: position})
}
