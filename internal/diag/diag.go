// Package diag defines the structured event sink the pipeline reports
// through. The core performs no logging of its own; callers inject a
// Sink and decide what to do with the events.
package diag

import (
	"log/slog"
	"sync"
)

// Sink receives pipeline events. Implementations must be safe for
// concurrent use; frames may be processed in parallel.
type Sink interface {
	// RegionsDiscovered fires once per discovery pass over a layer.
	RegionsDiscovered(layer string, width, height, count int)
	// RegionStats fires after one region finished the full pipeline.
	RegionStats(layer string, index, pixels, edges int)
	// PartProcessed fires after one whole-mask part finished.
	PartProcessed(part string, pixels, edges int)
}

// Discard drops all events.
type Discard struct{}

func (Discard) RegionsDiscovered(string, int, int, int) {}
func (Discard) RegionStats(string, int, int, int)       {}
func (Discard) PartProcessed(string, int, int)          {}

// DiscoveryEvent is one recorded RegionsDiscovered call.
type DiscoveryEvent struct {
	Layer         string
	Width, Height int
	Count         int
}

// RegionEvent is one recorded RegionStats call.
type RegionEvent struct {
	Layer  string
	Index  int
	Pixels int
	Edges  int
}

// PartEvent is one recorded PartProcessed call.
type PartEvent struct {
	Part   string
	Pixels int
	Edges  int
}

// Recorder collects events in memory, mainly for tests.
type Recorder struct {
	mu          sync.Mutex
	Discoveries []DiscoveryEvent
	Regions     []RegionEvent
	Parts       []PartEvent
}

func (r *Recorder) RegionsDiscovered(layer string, width, height, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Discoveries = append(r.Discoveries, DiscoveryEvent{layer, width, height, count})
}

func (r *Recorder) RegionStats(layer string, index, pixels, edges int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Regions = append(r.Regions, RegionEvent{layer, index, pixels, edges})
}

func (r *Recorder) PartProcessed(part string, pixels, edges int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Parts = append(r.Parts, PartEvent{part, pixels, edges})
}

// Slog forwards events to a structured logger at debug level.
type Slog struct {
	Log *slog.Logger
}

func (s Slog) RegionsDiscovered(layer string, width, height, count int) {
	s.Log.Debug("regions discovered", "layer", layer, "width", width, "height", height, "count", count)
}

func (s Slog) RegionStats(layer string, index, pixels, edges int) {
	s.Log.Debug("region processed", "layer", layer, "index", index, "pixels", pixels, "edges", edges)
}

func (s Slog) PartProcessed(part string, pixels, edges int) {
	s.Log.Debug("part processed", "part", part, "pixels", pixels, "edges", edges)
}
