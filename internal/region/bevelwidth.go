package region

import "math"

// BevelWidth selects how far the bevel extends into a region: either a
// fixed pixel radius, or the full region ("fully beveled", no flat
// interior). The tagged form replaces the legacy magic-float sentinels.
type BevelWidth struct {
	full  bool
	width float64
}

// FixedBevel returns a bevel that stops w pixels in from the boundary.
func FixedBevel(w float64) BevelWidth {
	return BevelWidth{width: w}
}

// FullBevel returns a bevel that spans the entire region.
func FullBevel() BevelWidth {
	return BevelWidth{full: true}
}

// DefaultBevelWidth is a 10-pixel fixed bevel.
func DefaultBevelWidth() BevelWidth {
	return BevelWidth{width: 10}
}

// IsFull reports whether the bevel covers the whole region.
func (b BevelWidth) IsFull() bool {
	return b.full
}

// Width returns the fixed radius. Only meaningful when !IsFull().
func (b BevelWidth) Width() float64 {
	return b.width
}

// Radius returns the distance-field propagation limit for a region with
// the given bounds: the fixed width, or the bounds diagonal so that
// propagation reaches every pixel of a fully beveled region.
func (b BevelWidth) Radius(bounds Rect) float64 {
	if b.full {
		return math.Hypot(float64(bounds.W), float64(bounds.H)) + 1
	}
	return b.width
}
