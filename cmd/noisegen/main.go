package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"tinylib/internal/batch"
	"tinylib/internal/config"
	"tinylib/internal/imageio"
	"tinylib/internal/logging"
	"tinylib/internal/noise"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	octaves := flag.Int("octaves", 0, "Noise octaves (default: 4)")
	freq := flag.Float64("freq", 0, "Base frequency (default: 4)")
	amp := flag.Float64("amp", 0, "Base amplitude (default: 1)")
	seed := flag.Int64("seed", 0, "Permutation seed (default: 94)")
	size := flag.Int("size", 0, "Tile size in pixels (default: 256)")
	tiles := flag.Int("tiles", 0, "Tiles per side (default: 1)")
	outputDir := flag.String("output", "", "Output directory (default: out next to data)")
	format := flag.String("format", "", "png, jpg or webp (default: png)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	// -seed 0 is a real seed, so only an explicitly passed flag overrides.
	var seedFlag *int64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedFlag = seed
		}
	})

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Format:    *format,
		Size:      *size,
		Workers:   *workers,
		Octaves:   *octaves,
		Freq:      float32(*freq),
		Amp:       float32(*amp),
		Seed:      seedFlag,
		Tiles:     *tiles,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	n := cfg.Noise
	perlin := noise.NewPerlin(n.Octaves, n.Freq, n.Amp, n.SeedValue())
	perlin.Init()

	ext := imageio.Ext(cfg.Format)
	var jobs []batch.Job
	for row := 0; row < n.Tiles; row++ {
		for col := 0; col < n.Tiles; col++ {
			jobs = append(jobs, &batch.NoiseTile{
				Perlin:  perlin,
				Col:     col,
				Row:     row,
				Size:    cfg.Size,
				Path:    filepath.Join(cfg.OutputDir, fmt.Sprintf("noise_%d_%d%s", col, row, ext)),
				Quality: cfg.Quality,
			})
		}
	}

	fmt.Printf("Perlin heightmap: octaves=%d freq=%g amp=%g seed=%d\n", n.Octaves, n.Freq, n.Amp, n.SeedValue())
	fmt.Printf("Tiles: %dx%d of %dpx, Workers: %d\n", n.Tiles, n.Tiles, cfg.Size, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batch.Config{Workers: cfg.Workers}, jobs)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Written: %d/%d\n", len(results)-failed, len(results))
	printFailures(results)

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func printFailures(results []batch.Result) {
	shown := 0
	for _, r := range results {
		if r.OK() {
			continue
		}
		if shown == 0 {
			fmt.Printf("\nFailed (%d):\n", batch.Failed(results))
		}
		if shown == 20 {
			fmt.Println("  ...")
			return
		}
		fmt.Printf("  %s: %v\n", r.Name, r.Err)
		shown++
	}
}
