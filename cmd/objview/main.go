package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"tinylib/internal/batch"
	"tinylib/internal/config"
	"tinylib/internal/imageio"
	"tinylib/internal/logging"
	"tinylib/internal/mathutil"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	dataDir := flag.String("data", "", "Directory with OBJ files and textures (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: out next to data)")
	format := flag.String("format", "", "png, jpg or webp (default: png)")
	size := flag.Int("size", 0, "Output size in pixels (default: 256)")
	ss := flag.Int("ss", 0, "Supersampling factor (default: 2)")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees (default: 45)")
	rx := flag.Float64("rx", 0, "Model rotation around X in degrees")
	ry := flag.Float64("ry", 0, "Model rotation around Y in degrees")
	rz := flag.Float64("rz", 0, "Model rotation around Z in degrees")
	fill := flag.Float64("fill", 0, "Crop to the mesh and rescale it to this share of the image (0 keeps camera framing)")
	despeckle := flag.Float64("despeckle", 0, "Drop pixel groups smaller than this share of the visible area")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

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
		DataDir:     *dataDir,
		OutputDir:   *outputDir,
		Format:      *format,
		Size:        *size,
		Supersample: *ss,
		Workers:     *workers,
		Fill:        float32(*fill),
		Despeckle:   float32(*despeckle),
		FOV:         float32(*fov),
		Rotate:      mathutil.Vec3{float32(*rx), float32(*ry), float32(*rz)},
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	paths := flag.Args()
	for i, p := range paths {
		paths[i] = cfg.DataPath(p)
	}
	if len(paths) == 0 {
		if cfg.DataDir == "" {
			fmt.Fprintln(os.Stderr, "Error: no OBJ files given and no data directory found. Use -data or pass paths.")
			os.Exit(1)
		}
		var err error
		paths, err = findOBJ(cfg.DataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if len(paths) == 0 {
		fmt.Println("No meshes to render.")
		os.Exit(0)
	}

	var textures *imageio.Cache
	if cfg.DataDir != "" {
		idx := imageio.BuildIndex(cfg.DataDir)
		textures = imageio.NewCache(idx)
		fmt.Printf("Textures: %d indexed\n", idx.Len())
	}

	ext := imageio.Ext(cfg.Format)
	jobs := make([]batch.Job, len(paths))
	for i, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		jobs[i] = &batch.MeshRender{
			Path:        p,
			Out:         filepath.Join(cfg.OutputDir, stem+ext),
			Camera:      cfg.Camera,
			Size:        cfg.Size,
			Supersample: cfg.Supersample,
			Quality:     cfg.Quality,
			Fill:        cfg.Fill,
			Despeckle:   cfg.Despeckle,
			Textures:    textures,
		}
	}

	fmt.Printf("Meshes: %d, Workers: %d, Size: %dpx x%d\n", len(jobs), cfg.Workers, cfg.Size, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batch.Config{Workers: cfg.Workers}, jobs)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(results))
	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, r := range results {
			if !r.OK() {
				fmt.Printf("  %s: %v\n", r.Name, r.Err)
			}
		}
	}

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

// findOBJ lists every .obj file under dir, sorted by path.
func findOBJ(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return paths, nil
}
