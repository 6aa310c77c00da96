// Package batch runs the normal-map pipeline over every frame of a
// manifest on a worker pool and writes the merged outputs as WebP.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sprite-bevelgen/internal/diag"
	"sprite-bevelgen/internal/layerset"
	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/pixel"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	BaseDir   string // directory manifest image paths resolve against
	OutputDir string
	Defaults  pipeline.Options
	Workers   int
	Sink      diag.Sink
}

// Result holds the outcome of processing one frame.
type Result struct {
	Frame   string
	Parts   int
	Image   string
	Success bool
	Error   string
}

// Run processes all frames using a worker pool. Frames are mutually
// independent; each frame's regions are processed sequentially within
// one worker, so no region state is shared across goroutines.
func Run(cfg Config, frames []layerset.Frame) []Result {
	if cfg.Sink == nil {
		cfg.Sink = diag.Discard{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, f layerset.Frame) Result {
	parts, err := layerset.LoadFrame(cfg.BaseDir, f, cfg.Defaults)
	if err != nil {
		return Result{Frame: f.Name, Error: err.Error()}
	}
	if len(parts) == 0 {
		return Result{Frame: f.Name, Error: "no parts"}
	}

	w, h := parts[0].Pixels.Width, parts[0].Pixels.Height
	for _, p := range parts[1:] {
		if p.Pixels.Width != w || p.Pixels.Height != h {
			return Result{
				Frame: f.Name,
				Error: fmt.Sprintf("part %q is %dx%d, frame is %dx%d",
					p.Name, p.Pixels.Width, p.Pixels.Height, w, h),
			}
		}
	}

	outputs := make([]*pixel.Buffer, len(parts))
	for i, p := range parts {
		outputs[i] = pipeline.ProcessPart(p, cfg.Sink)
	}
	merged := pipeline.Merge(w, h, outputs)

	imageName := f.Name + ".webp"
	outPath := filepath.Join(cfg.OutputDir, imageName)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{Frame: f.Name, Error: err.Error()}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return Result{Frame: f.Name, Error: err.Error()}
	}
	defer file.Close()

	if err := nativewebp.Encode(file, merged.ToNRGBA(), nil); err != nil {
		return Result{Frame: f.Name, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{
		Frame:   f.Name,
		Parts:   len(parts),
		Image:   imageName,
		Success: true,
	}
}
