// Package distfield computes a bounded approximate-Euclidean distance
// field from every region pixel to the region's nearest boundary pixel.
package distfield

import (
	"math"

	"sprite-bevelgen/internal/pixel"
	"sprite-bevelgen/internal/region"
)

// Fixed neighbor orders keep traversal, and therefore nearest-edge tie
// breaking, deterministic.
var (
	dx4 = [4]int{0, -1, 1, 0}
	dy4 = [4]int{-1, 0, 0, 1}

	// 8-connected propagation; diagonals give a smoother field.
	dx8 = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy8 = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// Compute fills r.Distance with edgeInset plus the Euclidean distance
// from each region pixel to its nearest boundary pixel, capped at
// maxDistance; pixels beyond the cap (or in a region with no boundary)
// keep the +Inf sentinel. It also populates r.EdgeMask and returns the
// number of edge pixels found.
//
// Phase 1 scans every colored region pixel against its 4 orthogonal
// neighbors in source space: out-of-bounds, transparent, or a
// different-colored non-blocker neighbor makes the pixel an edge.
// Blocker neighbors are interior features, never boundaries.
//
// Phase 2 is a multi-source relaxation, not a single-pass wavefront:
// each pixel tracks the coordinate of the edge pixel yielding its
// shortest path, tentative distances are true Euclidean distances to
// that edge, and a pixel is re-enqueued whenever a strictly shorter
// path is found. Distances only decrease, so the queue drains.
// Eligibility checks region membership only: absorbed blocker pixels
// suppress edge seeding but do not stop propagation.
func Compute(r *region.Region, src *pixel.Buffer, maxDistance, edgeInset float64) int {
	b := r.Bounds
	n := b.Area()
	for i := 0; i < n; i++ {
		r.Distance[i] = math.Inf(1)
		r.EdgeMask[i] = false
	}

	// nearest[i] is the local index of the edge pixel behind the
	// current shortest path to i; -1 until reached.
	nearest := make([]int32, n)
	for i := range nearest {
		nearest[i] = -1
	}

	queue := make([]int32, 0, n/4+8)

	edges := 0
	for ly := 0; ly < b.H; ly++ {
		for lx := 0; lx < b.W; lx++ {
			li := ly*b.W + lx
			if !r.RegionMask[li] || r.BlackMask[li] {
				continue
			}
			sx, sy := b.X+lx, b.Y+ly
			center := src.At(sx, sy)
			isEdge := false
			for d := 0; d < 4; d++ {
				nx, ny := sx+dx4[d], sy+dy4[d]
				if !src.InBounds(nx, ny) {
					isEdge = true
					break
				}
				q := src.At(nx, ny)
				if q.Transparent() || (!q.Blocker() && !q.SameRGB(center)) {
					isEdge = true
					break
				}
			}
			if isEdge {
				r.EdgeMask[li] = true
				r.Distance[li] = edgeInset
				nearest[li] = int32(li)
				queue = append(queue, int32(li))
				edges++
			}
		}
	}

	for len(queue) > 0 {
		ci := int(queue[0])
		queue = queue[1:]
		ne := nearest[ci]
		ex, ey := int(ne)%b.W, int(ne)/b.W
		cx, cy := ci%b.W, ci/b.W
		for d := 0; d < 8; d++ {
			nx, ny := cx+dx8[d], cy+dy8[d]
			if nx < 0 || nx >= b.W || ny < 0 || ny >= b.H {
				continue
			}
			ni := ny*b.W + nx
			if !r.RegionMask[ni] {
				continue
			}
			ddx, ddy := float64(nx-ex), float64(ny-ey)
			tentative := edgeInset + math.Sqrt(ddx*ddx+ddy*ddy)
			if tentative < maxDistance && tentative < r.Distance[ni] {
				r.Distance[ni] = tentative
				nearest[ni] = ne
				queue = append(queue, int32(ni))
			}
		}
	}

	return edges
}
