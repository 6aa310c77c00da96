// Package pipeline sequences region discovery, distance field, normal
// generation, and smoothing over layers and parts, and merges part
// outputs into one normal map.
package pipeline

import (
	"sprite-bevelgen/internal/diag"
	"sprite-bevelgen/internal/distfield"
	"sprite-bevelgen/internal/normalmap"
	"sprite-bevelgen/internal/pixel"
	"sprite-bevelgen/internal/region"
	"sprite-bevelgen/internal/smooth"
)

// Options are the per-invocation tuning parameters.
type Options struct {
	BevelWidth    region.BevelWidth
	Smoothness    float64 // Gaussian blur radius; 0 disables smoothing
	EdgeInset     float64 // pushes the bevel face inward
	BevelStrength float64 // gradient scale before normalization
	InnerEdge     bool    // run the secondary inner-edge fade
}

// DefaultOptions returns a 10-pixel bevel with unit strength and no
// smoothing.
func DefaultOptions() Options {
	return Options{
		BevelWidth:    region.DefaultBevelWidth(),
		BevelStrength: 1,
	}
}

// ProcessRegion runs the distance field, normal generation, and
// smoothing stages on one region in place and returns the edge pixel
// count. The region's arrays are independently owned, so distinct
// regions may be processed concurrently.
func ProcessRegion(r *region.Region, src *pixel.Buffer, opts Options) int {
	r.BevelWidth = opts.BevelWidth
	maxDist := opts.BevelWidth.Radius(r.Bounds)
	edges := distfield.Compute(r, src, maxDist, opts.EdgeInset)
	normalmap.Generate(r, opts.BevelStrength)
	smooth.Normals(r, opts.BevelWidth, opts.Smoothness)
	if opts.InnerEdge {
		smooth.InnerEdge(r, opts.BevelWidth, opts.Smoothness)
	}
	return edges
}

// DiscoverMap runs region discovery over one composited layer.
func DiscoverMap(name string, layerOrder int, src *pixel.Buffer, sink diag.Sink) *region.Map {
	regions := region.Discover(src)
	sink.RegionsDiscovered(name, src.Width, src.Height, len(regions))
	return &region.Map{
		Name:       name,
		LayerOrder: layerOrder,
		Width:      src.Width,
		Height:     src.Height,
		Regions:    regions,
	}
}

// ProcessMap runs the full pipeline on every region of a map.
func ProcessMap(m *region.Map, src *pixel.Buffer, opts Options, sink diag.Sink) {
	for i, r := range m.Regions {
		edges := ProcessRegion(r, src, opts)
		sink.RegionStats(m.Name, i, maskCount(r.RegionMask), edges)
	}
}

// Flatten composites a processed map's region normal maps into one
// canvas-sized buffer, in region order.
func Flatten(m *region.Map) *pixel.Buffer {
	out := pixel.NewFilled(m.Width, m.Height, pixel.NoContribution)
	for _, r := range m.Regions {
		blit(out, r)
	}
	return out
}

// blit copies a region's contributing normal pixels (alpha > 0) into
// the destination at the region's bounds.
func blit(dst *pixel.Buffer, r *region.Region) {
	for ly := 0; ly < r.Bounds.H; ly++ {
		for lx := 0; lx < r.Bounds.W; lx++ {
			p := r.Normals[ly*r.Bounds.W+lx]
			if p.A != 0 {
				dst.Set(r.Bounds.X+lx, r.Bounds.Y+ly, p)
			}
		}
	}
}

func maskCount(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}
