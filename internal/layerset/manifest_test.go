package layerset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/region"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frames.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseManifest(t *testing.T) {
	path := writeManifest(t, `{
		"frames": [
			{
				"name": "idle_0",
				"parts": [
					{"name": "body", "image": "body.png", "bevel_width": 6, "smoothness": 1.5},
					{"name": "trim", "image": "trim.png", "blocker_image": "trim_block.png", "bevel_width": "full"}
				]
			}
		]
	}`)

	m, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, m.Frames, 1)

	f := m.Frames[0]
	assert.Equal(t, "idle_0", f.Name)
	require.Len(t, f.Parts, 2)

	def := pipeline.DefaultOptions()
	body := f.Parts[0].Options(def)
	assert.Equal(t, region.FixedBevel(6), body.BevelWidth)
	assert.Equal(t, 1.5, body.Smoothness)
	assert.Equal(t, 1.0, body.BevelStrength) // inherited default

	trim := f.Parts[1].Options(def)
	assert.True(t, trim.BevelWidth.IsFull())
	assert.Equal(t, "trim_block.png", f.Parts[1].BlockerImage)
}

func TestParseOmittedFieldsInherit(t *testing.T) {
	path := writeManifest(t, `{
		"frames": [{"name": "f", "parts": [{"name": "p", "image": "p.png"}]}]
	}`)

	m, err := Parse(path)
	require.NoError(t, err)

	def := pipeline.DefaultOptions()
	def.Smoothness = 2.5
	def.BevelWidth = region.FixedBevel(7)

	opts := m.Frames[0].Parts[0].Options(def)
	assert.Equal(t, def, opts)
}

func TestParseRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unnamed frame", `{"frames": [{"parts": []}]}`},
		{"part without image", `{"frames": [{"name": "f", "parts": [{"name": "p"}]}]}`},
		{"negative bevel width", `{"frames": [{"name": "f", "parts": [{"name": "p", "image": "p.png", "bevel_width": -2}]}]}`},
		{"bad bevel string", `{"frames": [{"name": "f", "parts": [{"name": "p", "image": "p.png", "bevel_width": "wide"}]}]}`},
		{"not json", `frames:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeManifest(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
