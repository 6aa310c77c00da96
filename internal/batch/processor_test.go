package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprite-bevelgen/internal/diag"
	"sprite-bevelgen/internal/layerset"
	"sprite-bevelgen/internal/pipeline"
)

func writeSprite(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 60, B: 60, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRunGeneratesWebP(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	writeSprite(t, dir, "body.png")

	frames := []layerset.Frame{
		{Name: "idle_0", Parts: []layerset.PartDef{{Name: "body", Image: "body.png"}}},
		{Name: "idle_1", Parts: []layerset.PartDef{{Name: "body", Image: "body.png"}}},
	}

	rec := &diag.Recorder{}
	results := Run(Config{
		BaseDir:   dir,
		OutputDir: outDir,
		Defaults:  pipeline.DefaultOptions(),
		Workers:   2,
		Sink:      rec,
	}, frames)

	require.Len(t, results, 2)
	for i, r := range results {
		assert.True(t, r.Success, "frame %d: %s", i, r.Error)
		assert.Equal(t, 1, r.Parts)
		_, err := os.Stat(filepath.Join(outDir, r.Image))
		assert.NoError(t, err)
	}
	assert.Len(t, rec.Parts, 2)
}

func TestRunReportsMissingImage(t *testing.T) {
	dir := t.TempDir()
	frames := []layerset.Frame{
		{Name: "broken", Parts: []layerset.PartDef{{Name: "body", Image: "missing.png"}}},
		{Name: "empty"},
	}

	results := Run(Config{BaseDir: dir, OutputDir: dir, Workers: 1}, frames)

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "missing.png")
	assert.False(t, results[1].Success)
	assert.Equal(t, "no parts", results[1].Error)
}

func TestRunReportsPartDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir, "body.png")

	// A second, differently sized part image.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 200, B: 10, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 200, B: 10, A: 255})
	f, err := os.Create(filepath.Join(dir, "small.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	f.Close()

	frames := []layerset.Frame{{
		Name: "f",
		Parts: []layerset.PartDef{
			{Name: "body", Image: "body.png"},
			{Name: "small", Image: "small.png"},
		},
	}}

	results := Run(Config{BaseDir: dir, OutputDir: dir, Workers: 1}, frames)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "4x4")
}

func TestWriteManifestListsSuccessesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{Frame: "a", Parts: 2, Image: "a.webp", Success: true},
		{Frame: "b", Error: "boom"},
	}

	require.NoError(t, WriteManifest(path, results))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, ManifestEntry{Frame: "a", Parts: 2, Image: "a.webp"}, entries[0])
}
