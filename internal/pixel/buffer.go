package pixel

import "image"

// Buffer holds a row-major RGBA8 pixel buffer as a flat slice for cache
// locality. The buffer is caller-owned plain memory; it never wraps a
// host texture object.
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel // len = Width*Height
}

// NewBuffer allocates a zeroed (fully transparent) buffer.
func NewBuffer(w, h int) *Buffer {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]Pixel, w*h),
	}
}

// NewFilled allocates a buffer with every pixel set to fill.
func NewFilled(w, h int, fill Pixel) *Buffer {
	b := NewBuffer(w, h)
	for i := range b.Pix {
		b.Pix[i] = fill
	}
	return b
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Index returns the flat index of (x, y). Out-of-range coordinates are a
// contract violation and panic via the slice bounds check on access.
func (b *Buffer) Index(x, y int) int {
	return y*b.Width + x
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) Pixel {
	return b.Pix[y*b.Width+x]
}

// Set writes the pixel at (x, y).
func (b *Buffer) Set(x, y int, p Pixel) {
	b.Pix[y*b.Width+x] = p
}

// FromNRGBA copies an NRGBA image into a new Buffer.
func FromNRGBA(img *image.NRGBA) *Buffer {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	b := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(r.Min.X+x, r.Min.Y+y)
			b.Pix[y*w+x] = Pixel{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
		}
	}
	return b
}

// ToNRGBA copies the buffer into a freshly allocated NRGBA image.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := b.Pix[y*b.Width+x]
			i := y*img.Stride + x*4
			img.Pix[i] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = p.A
		}
	}
	return img
}
