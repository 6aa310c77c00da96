// Package layerset loads the frame manifest and the image files it
// references into pixel buffers for the pipeline.
package layerset

import (
	"encoding/json"
	"fmt"
	"os"

	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/region"
)

// Manifest describes the frames to process. Within a frame, parts are
// listed in priority order: the first-declared part wins where merged
// outputs overlap.
type Manifest struct {
	Frames []Frame `json:"frames"`
}

// Frame is one output normal map built from one or more parts.
type Frame struct {
	Name  string    `json:"name"`
	Parts []PartDef `json:"parts"`
}

// PartDef describes one part of a frame. Omitted tuning fields fall
// back to the run-wide defaults.
type PartDef struct {
	Name          string        `json:"name"`
	Image         string        `json:"image"`
	BlockerImage  string        `json:"blocker_image,omitempty"`
	BevelWidth    BevelWidthDef `json:"bevel_width,omitempty"`
	Smoothness    float64       `json:"smoothness,omitempty"`
	EdgeInset     float64       `json:"edge_inset,omitempty"`
	BevelStrength float64       `json:"bevel_strength,omitempty"`
	InnerEdge     bool          `json:"inner_edge,omitempty"`
}

// Options resolves the part's tuning parameters against run-wide
// defaults. Zero-valued numeric fields inherit the default.
func (p PartDef) Options(def pipeline.Options) pipeline.Options {
	opts := def
	opts.BevelWidth = p.BevelWidth.Resolve(def.BevelWidth)
	if p.Smoothness > 0 {
		opts.Smoothness = p.Smoothness
	}
	if p.EdgeInset > 0 {
		opts.EdgeInset = p.EdgeInset
	}
	if p.BevelStrength > 0 {
		opts.BevelStrength = p.BevelStrength
	}
	if p.InnerEdge {
		opts.InnerEdge = true
	}
	return opts
}

// BevelWidthDef decodes a manifest bevel width: a positive number of
// pixels, or the string "full" for a fully beveled part.
type BevelWidthDef struct {
	set   bool
	full  bool
	width float64
}

func (b *BevelWidthDef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "full" {
			return fmt.Errorf("layerset: bevel_width string must be \"full\", got %q", s)
		}
		b.set, b.full = true, true
		return nil
	}
	var w float64
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("layerset: bevel_width must be a number or \"full\"")
	}
	if w <= 0 {
		return fmt.Errorf("layerset: bevel_width must be positive, got %v", w)
	}
	b.set, b.width = true, w
	return nil
}

// Resolve returns the decoded bevel width, or def when the field was
// omitted from the manifest.
func (b BevelWidthDef) Resolve(def region.BevelWidth) region.BevelWidth {
	if !b.set {
		return def
	}
	if b.full {
		return region.FullBevel()
	}
	return region.FixedBevel(b.width)
}

// Parse reads a JSON manifest file.
func Parse(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("layerset: read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("layerset: parse %s: %w", path, err)
	}

	for i, f := range m.Frames {
		if f.Name == "" {
			return Manifest{}, fmt.Errorf("layerset: frame %d has no name", i)
		}
		for j, p := range f.Parts {
			if p.Image == "" {
				return Manifest{}, fmt.Errorf("layerset: frame %q part %d has no image", f.Name, j)
			}
		}
	}

	return m, nil
}
