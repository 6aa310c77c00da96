package region

import "sprite-bevelgen/internal/pixel"

// minColoredPixels drops single-pixel noise components.
const minColoredPixels = 2

// 4-connected neighborhood, fixed order for deterministic traversal.
var (
	dx4 = [4]int{0, -1, 1, 0}
	dy4 = [4]int{-1, 0, 0, 1}
)

// Discover flood-fills buf into connected same-color regions. Blocker
// pixels never seed a fill; they are absorbed into whichever colored
// region reaches them first, and membership propagates out of a blocker
// only into other blockers or pixels matching the seed color, so a
// blocker never fuses two differently colored islands. Components with
// fewer than two colored pixels are discarded as noise. Regions are
// returned in row-major discovery order.
func Discover(buf *pixel.Buffer) []*Region {
	w, h := buf.Width, buf.Height
	if w <= 0 || h <= 0 {
		return nil
	}

	visited := make([]bool, w*h)
	queue := make([]int, 0, 1024)
	members := make([]int, 0, 1024)

	var regions []*Region

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] {
				continue
			}
			p := buf.Pix[idx]
			if p.Transparent() || p.Blocker() {
				continue
			}

			// BFS from this colored seed.
			seed := p
			queue = queue[:0]
			members = members[:0]
			queue = append(queue, idx)
			visited[idx] = true
			minX, minY, maxX, maxY := x, y, x, y
			colored := 0

			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				members = append(members, cur)
				cx, cy := cur%w, cur/w
				if !buf.Pix[cur].Blocker() {
					colored++
				}
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}
				for d := 0; d < 4; d++ {
					nx, ny := cx+dx4[d], cy+dy4[d]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if visited[ni] {
						continue
					}
					q := buf.Pix[ni]
					if q.Transparent() {
						continue
					}
					if q.Blocker() || q.SameRGB(seed) {
						visited[ni] = true
						queue = append(queue, ni)
					}
				}
			}

			if colored < minColoredPixels {
				continue
			}

			bounds := Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
			r := New(seed, bounds)
			for _, mi := range members {
				li := bounds.Index(mi%w, mi/w)
				r.RegionMask[li] = true
				if buf.Pix[mi].Blocker() {
					r.BlackMask[li] = true
				}
			}
			regions = append(regions, r)
		}
	}

	return regions
}
