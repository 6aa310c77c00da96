package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/region"
)

// Config holds all configurable paths and pipeline settings.
type Config struct {
	// Paths
	Manifest  string `json:"manifest"`
	OutputDir string `json:"output_dir"`

	// Pipeline settings
	BevelWidth    float64 `json:"bevel_width"`
	FullBevel     bool    `json:"full_bevel"`
	Smoothness    float64 `json:"smoothness"`
	EdgeInset     float64 `json:"edge_inset"`
	BevelStrength float64 `json:"bevel_strength"`
	InnerEdge     bool    `json:"inner_edge"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Manifest  string
	OutputDir string
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Output defaults to a sibling of the manifest.
	if c.OutputDir == "" && c.Manifest != "" {
		c.OutputDir = filepath.Join(filepath.Dir(c.Manifest), "normal-maps")
	}

	if c.BevelWidth <= 0 {
		c.BevelWidth = 10
	}
	if c.BevelStrength <= 0 {
		c.BevelStrength = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Options converts the resolved settings to pipeline defaults.
func (c *Config) Options() pipeline.Options {
	bw := region.FixedBevel(c.BevelWidth)
	if c.FullBevel {
		bw = region.FullBevel()
	}
	return pipeline.Options{
		BevelWidth:    bw,
		Smoothness:    c.Smoothness,
		EdgeInset:     c.EdgeInset,
		BevelStrength: c.BevelStrength,
		InnerEdge:     c.InnerEdge,
	}
}
