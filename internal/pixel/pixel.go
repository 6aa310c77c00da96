package pixel

// Pixel is one RGBA8 pixel (value type, stack-allocated).
type Pixel struct {
	R, G, B, A uint8
}

// Transparent reports whether the pixel is exterior (alpha 0).
func (p Pixel) Transparent() bool {
	return p.A == 0
}

// Blocker reports whether the pixel is a propagation blocker:
// pure black with any opacity. Callers must not use opaque black
// for legitimate sprite content.
func (p Pixel) Blocker() bool {
	return p.A > 0 && p.R == 0 && p.G == 0 && p.B == 0
}

// SameRGB reports whether two pixels have identical color channels,
// ignoring alpha.
func (p Pixel) SameRGB(q Pixel) bool {
	return p.R == q.R && p.G == q.G && p.B == q.B
}

// FlatNormal is the encoded tangent-space (0, 0, 1) normal.
var FlatNormal = Pixel{R: 128, G: 128, B: 255, A: 255}

// NoContribution is a flat normal with alpha 0, marking pixels that no
// region wrote. Compositing treats alpha 0 as "skip".
var NoContribution = Pixel{R: 128, G: 128, B: 255, A: 0}
