package graphics

// Canvas is the drawing surface render objects paint onto. Implementations
// include the recorder behind [PictureRecorder] and [ImageCanvas].
//
// Coordinates are logical pixels relative to the current origin.
type Canvas interface {
	// Save and Restore bracket changes to the origin and clip.
	Save()
	Restore()

	Translate(dx, dy float64)
	// ClipRect intersects the clip with rect.
	ClipRect(rect Rect)

	// Clear fills the whole surface, ignoring origin and clip.
	Clear(color Color)
	DrawRect(rect Rect, paint Paint)
	DrawRRect(rrect RRect, paint Paint)
	// DrawText draws layout with its top-left corner at position.
	DrawText(layout *TextLayout, position Offset)

	Size() Size
}
