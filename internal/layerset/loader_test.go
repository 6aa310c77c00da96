package layerset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/pixel"
)

func writePNG(t *testing.T, dir, name string, w, h int, fill color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImagePNG(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "layer.png", 3, 2, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	buf, err := LoadImage(filepath.Join(dir, "layer.png"))
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Width)
	assert.Equal(t, 2, buf.Height)
	assert.Equal(t, pixel.Pixel{R: 40, G: 50, B: 60, A: 255}, buf.At(2, 1))
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = LoadImage(garbage)
	assert.Error(t, err)
}

func TestLoadFrame(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "body.png", 4, 4, color.NRGBA{R: 90, G: 10, B: 10, A: 255})
	writePNG(t, dir, "body_block.png", 4, 4, color.NRGBA{})

	f := Frame{
		Name: "idle_0",
		Parts: []PartDef{
			{Name: "body", Image: "body.png", BlockerImage: "body_block.png"},
			{Name: "glow", Image: "body.png"},
		},
	}

	parts, err := LoadFrame(dir, f, pipeline.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, "body", parts[0].Name)
	assert.Equal(t, 0, parts[0].Priority)
	assert.NotNil(t, parts[0].Blockers)
	assert.Equal(t, 1, parts[1].Priority)
	assert.Nil(t, parts[1].Blockers)
}

func TestLoadFrameBlockerMismatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "body.png", 4, 4, color.NRGBA{R: 90, A: 255})
	writePNG(t, dir, "block.png", 5, 4, color.NRGBA{})

	f := Frame{
		Name:  "f",
		Parts: []PartDef{{Name: "body", Image: "body.png", BlockerImage: "block.png"}},
	}

	_, err := LoadFrame(dir, f, pipeline.DefaultOptions())
	assert.ErrorContains(t, err, "blocker image")
}
