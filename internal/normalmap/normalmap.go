// Package normalmap derives tangent-space normals from a region's
// distance field and handles their RGBA8 encoding.
package normalmap

import (
	"math"

	"sprite-bevelgen/internal/mathutil"
	"sprite-bevelgen/internal/pixel"
	"sprite-bevelgen/internal/region"
)

// Encode maps a unit normal to tangent-space bytes: each component in
// [-1, 1] becomes round((c*0.5+0.5)*255).
func Encode(n mathutil.Vec3, alpha uint8) pixel.Pixel {
	return pixel.Pixel{
		R: encodeChannel(n[0]),
		G: encodeChannel(n[1]),
		B: encodeChannel(n[2]),
		A: alpha,
	}
}

func encodeChannel(c float64) uint8 {
	v := math.Round((c*0.5 + 0.5) * 255)
	return uint8(mathutil.Clamp(v, 0, 255))
}

// Decode is the inverse of Encode up to 8-bit quantization. The result
// is not re-normalized.
func Decode(p pixel.Pixel) mathutil.Vec3 {
	return mathutil.Vec3{
		float64(p.R)/255*2 - 1,
		float64(p.G)/255*2 - 1,
		float64(p.B)/255*2 - 1,
	}
}

// Generate differentiates the region's distance field and writes the
// encoded normal map into r.Normals. The gradient uses central
// differences, falling back to one-sided differences at the bounds
// border; an unreachable (+Inf) neighbor counts as equal to the center
// value so it contributes no slope. Distance increasing inward becomes
// height decreasing outward, so the normal is normalize(-dx, -dy, 1)
// with the 2D gradient scaled by bevelStrength. Pixels outside the
// region get a flat normal with alpha 0; unreached pixels inside the
// region get an opaque flat normal.
func Generate(r *region.Region, bevelStrength float64) {
	b := r.Bounds

	// sample returns the field value at a local coordinate, or ok=false
	// outside the bounds. Unreached pixels read as the center value.
	sample := func(lx, ly int, center float64) (float64, bool) {
		if lx < 0 || lx >= b.W || ly < 0 || ly >= b.H {
			return 0, false
		}
		v := r.Distance[ly*b.W+lx]
		if math.IsInf(v, 1) {
			return center, true
		}
		return v, true
	}

	for ly := 0; ly < b.H; ly++ {
		for lx := 0; lx < b.W; lx++ {
			li := ly*b.W + lx
			if !r.RegionMask[li] {
				r.Normals[li] = pixel.NoContribution
				continue
			}
			d := r.Distance[li]
			if math.IsInf(d, 1) {
				r.Normals[li] = pixel.FlatNormal
				continue
			}

			var dx, dy float64
			l, lok := sample(lx-1, ly, d)
			rt, rok := sample(lx+1, ly, d)
			switch {
			case lok && rok:
				dx = (rt - l) / 2
			case rok:
				dx = rt - d
			case lok:
				dx = d - l
			}
			u, uok := sample(lx, ly-1, d)
			dn, dok := sample(lx, ly+1, d)
			switch {
			case uok && dok:
				dy = (dn - u) / 2
			case dok:
				dy = dn - d
			case uok:
				dy = d - u
			}

			n := mathutil.Vec3{-dx * bevelStrength, -dy * bevelStrength, 1}.Normalize()
			r.Normals[li] = Encode(n, 255)
		}
	}
}
