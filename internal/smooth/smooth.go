// Package smooth applies an edge-aware, bevel-confined Gaussian blur to
// a region's normal map.
package smooth

import (
	"math"

	"sprite-bevelgen/internal/mathutil"
	"sprite-bevelgen/internal/normalmap"
	"sprite-bevelgen/internal/region"
)

var flat = mathutil.Vec3{0, 0, 1}

// Normals blurs the region's normal map inside the bevel zone
// (distance < bevel width) with a separable Gaussian of the given
// radius. Pixels outside the zone are left byte-identical, so the hard
// step at the bevel boundary survives. A fully beveled region has no
// flat interior: the zone widens to the whole region and a pre-pass
// fades the bevel peak toward flat first, which keeps the apex from
// blurring into a sharp cone. radius <= 0 is a no-op.
func Normals(r *region.Region, bw region.BevelWidth, radius float64) {
	if radius <= 0 || len(r.Normals) == 0 || len(r.Distance) == 0 {
		return
	}
	b := r.Bounds
	n := b.Area()

	vecs := make([]mathutil.Vec3, n)
	for i := range vecs {
		if r.RegionMask[i] {
			vecs[i] = normalmap.Decode(r.Normals[i])
		}
	}

	mask := make([]bool, n)
	if bw.IsFull() {
		copy(mask, r.RegionMask)
		flattenPeak(r, vecs, radius)
	} else {
		w := bw.Width()
		for i := 0; i < n; i++ {
			// +Inf fails the comparison, excluding unreached pixels.
			mask[i] = r.RegionMask[i] && r.Distance[i] < w
		}
	}

	// Kernel radius ceil(2.5σ) covers ≈99% of the Gaussian mass.
	kr := int(math.Ceil(2.5 * radius))
	weights := gaussianWeights(radius, kr)

	// Horizontal pass. Samples outside the mask contribute nothing;
	// the per-pixel weight sum renormalizes what remains.
	tmp := make([]mathutil.Vec3, n)
	copy(tmp, vecs)
	for ly := 0; ly < b.H; ly++ {
		for lx := 0; lx < b.W; lx++ {
			li := ly*b.W + lx
			if !mask[li] {
				continue
			}
			var acc mathutil.Vec3
			wsum := 0.0
			for k := -kr; k <= kr; k++ {
				sx := lx + k
				if sx < 0 || sx >= b.W {
					continue
				}
				si := ly*b.W + sx
				if !mask[si] {
					continue
				}
				wgt := weights[k+kr]
				acc = acc.Add(vecs[si].Scale(wgt))
				wsum += wgt
			}
			if wsum > 0 {
				tmp[li] = acc.Scale(1 / wsum)
			}
		}
	}

	// Vertical pass over the horizontal result.
	out := make([]mathutil.Vec3, n)
	copy(out, tmp)
	for ly := 0; ly < b.H; ly++ {
		for lx := 0; lx < b.W; lx++ {
			li := ly*b.W + lx
			if !mask[li] {
				continue
			}
			var acc mathutil.Vec3
			wsum := 0.0
			for k := -kr; k <= kr; k++ {
				sy := ly + k
				if sy < 0 || sy >= b.H {
					continue
				}
				si := sy*b.W + lx
				if !mask[si] {
					continue
				}
				wgt := weights[k+kr]
				acc = acc.Add(tmp[si].Scale(wgt))
				wsum += wgt
			}
			if wsum > 0 {
				out[li] = acc.Scale(1 / wsum)
			}
		}
	}

	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		nn := out[i].Normalize()
		if nn == (mathutil.Vec3{}) {
			// Degenerate blend; keep the original bytes.
			continue
		}
		r.Normals[i] = normalmap.Encode(nn, r.Normals[i].A)
	}
}

// InnerEdge fades normals toward flat as distance approaches the bevel
// width from below, softening the transition into the flat interior.
// Normals deep in the bevel are untouched. Only meaningful for fixed
// bevel widths; a fully beveled region has no flat interior to fade
// into. radius <= 0 is a no-op.
func InnerEdge(r *region.Region, bw region.BevelWidth, radius float64) {
	if bw.IsFull() || radius <= 0 || len(r.Normals) == 0 || len(r.Distance) == 0 {
		return
	}
	w := bw.Width()
	band := math.Max(1, radius)
	for i, d := range r.Distance {
		if !r.RegionMask[i] || math.IsInf(d, 1) || d >= w || d <= w-band {
			continue
		}
		// t runs 1 deep in the bevel down to 0 at the boundary.
		t := mathutil.Smoothstep((w - d) / band)
		n := normalmap.Decode(r.Normals[i])
		r.Normals[i] = normalmap.Encode(flat.Lerp(n, t).Normalize(), r.Normals[i].A)
	}
}

// flattenPeak fades decoded normals toward flat near the distance-field
// maximum of a fully beveled region.
func flattenPeak(r *region.Region, vecs []mathutil.Vec3, radius float64) {
	dmax := 0.0
	for i, d := range r.Distance {
		if r.RegionMask[i] && !math.IsInf(d, 1) && d > dmax {
			dmax = d
		}
	}
	if dmax <= 0 {
		return
	}
	fade := math.Max(1, 2.5*radius)
	for i, d := range r.Distance {
		if !r.RegionMask[i] || math.IsInf(d, 1) || d <= dmax-fade {
			continue
		}
		// t is 0 at the peak itself, 1 at the fade boundary.
		t := mathutil.Smoothstep((dmax - d) / fade)
		vecs[i] = flat.Lerp(vecs[i], t).Normalize()
	}
}

func gaussianWeights(sigma float64, kr int) []float64 {
	w := make([]float64, 2*kr+1)
	sum := 0.0
	for k := -kr; k <= kr; k++ {
		v := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		w[k+kr] = v
		sum += v
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}
