package graphics

// Region is a set of rectangles that need repainting.
// The zero value is an empty region.
type Region struct {
	rects []Rect
}

// Add includes rect in the region. Empty rects are ignored.
func (r *Region) Add(rect Rect) {
	if rect.IsEmpty() {
		return
	}
	r.rects = append(r.rects, rect)
}

// Union adds every rect of other to r.
func (r *Region) Union(other *Region) {
	for _, rect := range other.rects {
		r.Add(rect)
	}
}

// AddTranslatedClipped adds every rect of other shifted by offset and clipped to clip.
func (r *Region) AddTranslatedClipped(other *Region, offset Offset, clip Rect) {
	for _, rect := range other.rects {
		r.Add(rect.Translate(offset.X, offset.Y).Intersect(clip))
	}
}

// Rects returns the rectangles making up the region.
func (r *Region) Rects() []Rect {
	return r.rects
}

// Bounds returns the smallest rect containing the whole region.
func (r *Region) Bounds() Rect {
	var bounds Rect
	for _, rect := range r.rects {
		bounds = bounds.Union(rect)
	}
	return bounds
}

// IsEmpty reports whether the region covers no area.
func (r *Region) IsEmpty() bool {
	return len(r.rects) == 0
}

// Clear empties the region, keeping its storage.
func (r *Region) Clear() {
	r.rects = r.rects[:0]
}
