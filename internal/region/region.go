package region

import (
	"fmt"
	"math"

	"sprite-bevelgen/internal/pixel"
)

// Rect is a bounding box in source-buffer coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the source-space coordinate lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Index returns the local flat index for a source-space coordinate.
// Coordinates outside the rect are a contract violation; the resulting
// index panics on slice access.
func (r Rect) Index(x, y int) int {
	return (y-r.Y)*r.W + (x - r.X)
}

// Area returns the pixel count of the rect.
func (r Rect) Area() int {
	return r.W * r.H
}

// Region is one connected component of same-colored, non-blocker pixels
// plus any blocker pixels absorbed into it. All per-pixel slices are
// local to Bounds, length Bounds.W*Bounds.H, row-major.
type Region struct {
	// Color is the defining RGB of the component. For synthetic
	// whole-mask regions it is informational only.
	Color pixel.Pixel

	// Bounds is the tight bounding box in source-buffer coordinates.
	Bounds Rect

	// RegionMask is true where the pixel belongs to the region
	// (colored member or absorbed blocker).
	RegionMask []bool

	// BlackMask is true where the pixel is a blocker. Subset of RegionMask.
	BlackMask []bool

	// EdgeMask is true where the pixel is a valid boundary source for
	// the distance field. Populated by distfield.Compute.
	EdgeMask []bool

	// Distance holds the propagated distance to the nearest edge.
	// +Inf marks unreached pixels. Populated by distfield.Compute.
	Distance []float64

	// Normals holds the encoded tangent-space normal map.
	// Populated by normalmap.Generate.
	Normals []pixel.Pixel

	// BevelWidth is the per-region propagation radius.
	BevelWidth BevelWidth
}

// New allocates a region with empty masks, an all-Inf distance field,
// and the default bevel width.
func New(color pixel.Pixel, bounds Rect) *Region {
	n := bounds.Area()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	return &Region{
		Color:      color,
		Bounds:     bounds,
		RegionMask: make([]bool, n),
		BlackMask:  make([]bool, n),
		EdgeMask:   make([]bool, n),
		Distance:   dist,
		Normals:    make([]pixel.Pixel, n),
		BevelWidth: DefaultBevelWidth(),
	}
}

// Validate checks the structural invariants: slice lengths match the
// bounds area, BlackMask ⊆ RegionMask, EdgeMask ⊆ RegionMask∖BlackMask,
// and non-member pixels have infinite distance.
func (r *Region) Validate() error {
	n := r.Bounds.Area()
	if len(r.RegionMask) != n || len(r.BlackMask) != n ||
		len(r.EdgeMask) != n || len(r.Distance) != n || len(r.Normals) != n {
		return fmt.Errorf("region: slice lengths do not match bounds area %d", n)
	}
	for i := 0; i < n; i++ {
		if r.BlackMask[i] && !r.RegionMask[i] {
			return fmt.Errorf("region: blocker outside region mask at local index %d", i)
		}
		if r.EdgeMask[i] && (!r.RegionMask[i] || r.BlackMask[i]) {
			return fmt.Errorf("region: edge outside colored region mask at local index %d", i)
		}
		if !r.RegionMask[i] && !math.IsInf(r.Distance[i], 1) {
			return fmt.Errorf("region: finite distance outside region mask at local index %d", i)
		}
	}
	return nil
}

// Map is an ordered list of regions discovered from one composited
// source texture layer. LayerOrder establishes back-to-front stacking
// when multiple maps contribute to one frame.
type Map struct {
	Name       string
	LayerOrder int
	Width      int
	Height     int
	Regions    []*Region
}
