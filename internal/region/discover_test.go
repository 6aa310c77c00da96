package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprite-bevelgen/internal/pixel"
)

// grid parses a character map: '.' is transparent, '#' is an opaque
// black blocker, and any letter is an opaque color unique to that
// letter.
func grid(rows ...string) *pixel.Buffer {
	h := len(rows)
	w := len(rows[0])
	b := pixel.NewBuffer(w, h)
	for y, row := range rows {
		for x := 0; x < w; x++ {
			switch c := row[x]; c {
			case '.':
				// transparent
			case '#':
				b.Set(x, y, pixel.Pixel{A: 255})
			default:
				b.Set(x, y, pixel.Pixel{R: uint8(c), G: uint8(c) / 2, B: 30, A: 255})
			}
		}
	}
	return b
}

func TestDiscoverTwoDisjointBlobs(t *testing.T) {
	buf := grid(
		"aa...aa",
		"aa...aa",
	)

	regions := Discover(buf)
	require.Len(t, regions, 2)

	assert.Equal(t, Rect{X: 0, Y: 0, W: 2, H: 2}, regions[0].Bounds)
	assert.Equal(t, Rect{X: 5, Y: 0, W: 2, H: 2}, regions[1].Bounds)
	for _, r := range regions {
		assert.NoError(t, r.Validate())
		for _, m := range r.RegionMask {
			assert.True(t, m)
		}
	}
}

func TestDiscoverBlockerBridgesSameColor(t *testing.T) {
	buf := grid(
		"aa#aa",
	)

	regions := Discover(buf)
	require.Len(t, regions, 1)

	r := regions[0]
	assert.Equal(t, Rect{X: 0, Y: 0, W: 5, H: 1}, r.Bounds)
	assert.NoError(t, r.Validate())

	// The blocker is absorbed but flagged.
	assert.True(t, r.RegionMask[2])
	assert.True(t, r.BlackMask[2])
	assert.False(t, r.BlackMask[0])
}

func TestDiscoverBlockerNeverFusesColors(t *testing.T) {
	buf := grid(
		"aa#bb",
	)

	regions := Discover(buf)
	require.Len(t, regions, 2)

	// First region absorbed the blocker; the second did not.
	assert.Equal(t, Rect{X: 0, Y: 0, W: 3, H: 1}, regions[0].Bounds)
	assert.Equal(t, Rect{X: 3, Y: 0, W: 2, H: 1}, regions[1].Bounds)
	assert.True(t, regions[0].BlackMask[2])
}

func TestDiscoverDropsNoiseComponents(t *testing.T) {
	buf := grid(
		"a..bb",
	)

	regions := Discover(buf)
	require.Len(t, regions, 1)
	assert.Equal(t, Rect{X: 3, Y: 0, W: 2, H: 1}, regions[0].Bounds)
}

func TestDiscoverBlockersNeverSeed(t *testing.T) {
	buf := grid(
		"##.",
		"##.",
	)

	assert.Empty(t, Discover(buf))
}

func TestDiscoverEmptyBuffer(t *testing.T) {
	assert.Empty(t, Discover(pixel.NewBuffer(0, 0)))
	assert.Empty(t, Discover(pixel.NewBuffer(4, 4)))
}

func TestDiscoverDiagonalIsNotConnected(t *testing.T) {
	buf := grid(
		"aa.",
		"aa.",
		"..a", // diagonal touch only
	)

	regions := Discover(buf)
	// The single diagonal pixel is its own component and is dropped as
	// noise.
	require.Len(t, regions, 1)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 2, H: 2}, regions[0].Bounds)
}

func TestDiscoverOrderIsRowMajor(t *testing.T) {
	buf := grid(
		"..bb",
		"aa..",
	)

	regions := Discover(buf)
	require.Len(t, regions, 2)
	assert.Equal(t, Rect{X: 2, Y: 0, W: 2, H: 1}, regions[0].Bounds)
	assert.Equal(t, Rect{X: 0, Y: 1, W: 2, H: 1}, regions[1].Bounds)
}
