package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tinylib/internal/imageio"
	"tinylib/internal/logging"
	"tinylib/internal/obj"
)

func main() {
	dataDir := flag.String("data", "", "Texture directory to resolve mesh textures against")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	var idx *imageio.Index
	if *dataDir != "" {
		idx = imageio.BuildIndex(*dataDir)
	}

	failed := 0
	for _, arg := range flag.Args() {
		mesh, err := obj.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
			continue
		}

		lo, hi := mesh.Bounds()
		fmt.Printf("\n=== %s ===\n", arg)
		fmt.Printf("  vertices=%d normals=%d texcoords=%d triangles=%d\n",
			len(mesh.Vertices), len(mesh.Normals), len(mesh.TexCoords), len(mesh.Faces))
		fmt.Printf("  bounds x=[%.3f..%.3f] y=[%.3f..%.3f] z=[%.3f..%.3f]\n",
			lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		fmt.Printf("  size %v, centre %v\n", hi.Sub(lo), lo.Add(hi).Scale(0.5))

		if idx != nil {
			stem := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
			if p, ok := idx.ResolvePath(stem); ok {
				fmt.Printf("  texture %s\n", p)
			} else {
				fmt.Printf("  texture: none for %q\n", stem)
			}
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
