package pipeline

import (
	"fmt"

	"sprite-bevelgen/internal/diag"
	"sprite-bevelgen/internal/pixel"
	"sprite-bevelgen/internal/region"
)

// Part is one whole-alpha-mask processing unit. Unlike per-color
// regions, a part spans every opaque pixel of its buffer regardless of
// color, and its blockers come from an auxiliary buffer instead of the
// black-pixel convention.
type Part struct {
	Name     string
	Priority int // declaration order; lower wins in Merge
	Pixels   *pixel.Buffer
	Blockers *pixel.Buffer // optional, same dimensions; alpha>0 marks blockers
	Options  Options
}

// BuildRegion constructs the synthetic region for a part: a tight
// bounding box over alpha>0 pixels, a region mask of "alpha>0", and a
// black mask taken from the blocker buffer. Returns nil when the part
// has no opaque pixels. Panics if the blocker buffer dimensions differ
// from the pixel buffer; that is a caller contract violation.
func BuildRegion(p *Part) *region.Region {
	src := p.Pixels
	if p.Blockers != nil &&
		(p.Blockers.Width != src.Width || p.Blockers.Height != src.Height) {
		panic(fmt.Sprintf("pipeline: part %q blocker buffer %dx%d does not match pixels %dx%d",
			p.Name, p.Blockers.Width, p.Blockers.Height, src.Width, src.Height))
	}

	minX, minY := src.Width, src.Height
	maxX, maxY := -1, -1
	var color pixel.Pixel
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if src.At(x, y).Transparent() {
				continue
			}
			if maxX < 0 {
				color = src.At(x, y)
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return nil
	}

	bounds := region.Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
	r := region.New(color, bounds)
	for ly := 0; ly < bounds.H; ly++ {
		for lx := 0; lx < bounds.W; lx++ {
			sx, sy := bounds.X+lx, bounds.Y+ly
			if src.At(sx, sy).Transparent() {
				continue
			}
			li := ly*bounds.W + lx
			r.RegionMask[li] = true
			if p.Blockers != nil && !p.Blockers.At(sx, sy).Transparent() {
				r.BlackMask[li] = true
			}
		}
	}
	return r
}

// ProcessPart runs the full pipeline on a part and returns its
// canvas-sized normal map. Non-contributing pixels carry alpha 0.
func ProcessPart(p *Part, sink diag.Sink) *pixel.Buffer {
	out := pixel.NewFilled(p.Pixels.Width, p.Pixels.Height, pixel.NoContribution)
	r := BuildRegion(p)
	if r == nil {
		sink.PartProcessed(p.Name, 0, 0)
		return out
	}
	edges := ProcessRegion(r, p.Pixels, p.Options)
	blit(out, r)
	sink.PartProcessed(p.Name, maskCount(r.RegionMask), edges)
	return out
}

// Merge composites part outputs into one normal map by alpha-test
// overwrite. outputs must be ordered by declared priority, winning part
// first. Iteration runs in reverse so lower-priority parts are applied
// first and higher-priority parts overwrite them. All outputs must
// share the given dimensions.
func Merge(w, h int, outputs []*pixel.Buffer) *pixel.Buffer {
	dst := pixel.NewFilled(w, h, pixel.NoContribution)
	for i := len(outputs) - 1; i >= 0; i-- {
		src := outputs[i]
		if src.Width != w || src.Height != h {
			panic(fmt.Sprintf("pipeline: merge output %d is %dx%d, want %dx%d",
				i, src.Width, src.Height, w, h))
		}
		for j, p := range src.Pix {
			if p.A != 0 {
				dst.Pix[j] = p
			}
		}
	}
	return dst
}
