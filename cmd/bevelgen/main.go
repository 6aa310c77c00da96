package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"sprite-bevelgen/internal/batch"
	"sprite-bevelgen/internal/config"
	"sprite-bevelgen/internal/diag"
	"sprite-bevelgen/internal/layerset"
)

func main() {
	app := cli.NewApp()
	app.Name = "bevelgen"
	app.Description = "Generates bevel normal maps from flat sprite layers"
	app.Usage = "bevelgen [options] <manifest.json>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to config.json file",
		},
		cli.StringFlag{
			Name:  "manifest",
			Usage: "Path to the frame manifest",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "Output directory (default: normal-maps next to the manifest)",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "Number of worker goroutines (default: NumCPU)",
		},
		cli.IntFlag{
			Name:  "test",
			Usage: "Process only the first N frames",
		},
		cli.StringFlag{
			Name:  "frame",
			Usage: "Process only the frame with this name",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log per-region pipeline diagnostics",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("bevelgen failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var cfg config.Config
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}

	manifestPath := c.String("manifest")
	if manifestPath == "" && c.NArg() > 0 {
		manifestPath = c.Args().Get(0)
	}

	cfg.Resolve(config.Flags{
		Manifest:  manifestPath,
		OutputDir: c.String("output"),
		Workers:   c.Int("workers"),
	})

	if cfg.Manifest == "" {
		cli.ShowAppHelp(c)
		return errors.New("no manifest provided")
	}

	manifest, err := layerset.Parse(cfg.Manifest)
	if err != nil {
		return err
	}

	frames := manifest.Frames
	if name := c.String("frame"); name != "" {
		var filtered []layerset.Frame
		for _, f := range frames {
			if f.Name == name {
				filtered = append(filtered, f)
			}
		}
		frames = filtered
	}
	if n := c.Int("test"); n > 0 && n < len(frames) {
		frames = frames[:n]
	}

	if len(frames) == 0 {
		fmt.Println("No frames to process.")
		return nil
	}

	var sink diag.Sink = diag.Discard{}
	if c.Bool("verbose") {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		sink = diag.Slog{Log: slog.New(handler)}
	}

	mode := ""
	if name := c.String("frame"); name != "" {
		mode = fmt.Sprintf(" (frame %s)", name)
	} else if n := c.Int("test"); n > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", n)
	}

	fmt.Printf("Sprite bevel normal generator%s\n", mode)
	fmt.Printf("Frames: %d, Workers: %d\n", len(frames), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		BaseDir:   filepath.Dir(cfg.Manifest),
		OutputDir: cfg.OutputDir,
		Defaults:  cfg.Options(),
		Workers:   cfg.Workers,
		Sink:      sink,
	}, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			failures = append(failures, r)
		}
	}

	fmt.Printf("Generated: %d/%d\n", success, len(frames))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, r := range failures[:limit] {
			fmt.Printf("  %s: %s\n", r.Frame, r.Error)
		}
	}

	manifestOut := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestOut, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestOut)
	}

	if failed > 0 {
		return fmt.Errorf("%d frames failed", failed)
	}
	return nil
}
