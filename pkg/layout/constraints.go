// Package layout provides box constraints and insets used when sizing nodes.
package layout

import (
	"math"

	"github.com/go-drift/weft/pkg/graphics"
)

// Constraints bound the size a node may choose during layout.
// Max values may be math.Inf(1) for unbounded axes.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that only admit the given size.
func Tight(size graphics.Size) Constraints {
	return Constraints{MinWidth: size.Width, MaxWidth: size.Width, MinHeight: size.Height, MaxHeight: size.Height}
}

// Loose returns constraints from zero up to the given size.
func Loose(size graphics.Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Unbounded returns constraints with no maximum on either axis.
func Unbounded() Constraints {
	return Constraints{MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
}

// MinSize returns the minimum admissible size.
func (c Constraints) MinSize() graphics.Size {
	return graphics.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// MaxSize returns the maximum admissible size.
func (c Constraints) MaxSize() graphics.Size {
	return graphics.Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// IsTight reports whether only one size satisfies c.
func (c Constraints) IsTight() bool {
	return c.MinWidth >= c.MaxWidth && c.MinHeight >= c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// Constrain clamps size into the admissible range.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// Loosen drops the minimums.
func (c Constraints) Loosen() Constraints {
	return Constraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Shrink reduces both bounds by diff, never going below zero.
func (c Constraints) Shrink(diff graphics.Size) Constraints {
	return Constraints{
		MinWidth:  math.Max(0, c.MinWidth-diff.Width),
		MaxWidth:  math.Max(0, c.MaxWidth-diff.Width),
		MinHeight: math.Max(0, c.MinHeight-diff.Height),
		MaxHeight: math.Max(0, c.MaxHeight-diff.Height),
	}
}

// Deflate shrinks the constraints by the total insets.
func (c Constraints) Deflate(insets EdgeInsets) Constraints {
	return c.Shrink(graphics.Size{Width: insets.Horizontal(), Height: insets.Vertical()})
}

// Enforce returns c narrowed so that it also satisfies other.
func (c Constraints) Enforce(other Constraints) Constraints {
	return Constraints{
		MinWidth:  clamp(c.MinWidth, other.MinWidth, other.MaxWidth),
		MaxWidth:  clamp(c.MaxWidth, other.MinWidth, other.MaxWidth),
		MinHeight: clamp(c.MinHeight, other.MinHeight, other.MaxHeight),
		MaxHeight: clamp(c.MaxHeight, other.MinHeight, other.MaxHeight),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
