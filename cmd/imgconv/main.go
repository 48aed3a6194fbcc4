package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tinylib/internal/imageio"
	"tinylib/internal/logging"
)

// convert decodes src, optionally resizes it to a size×size square, and
// writes it into outDir with the new extension.
func convert(src, outDir, ext string, size int, opts imageio.Options) (string, error) {
	img, err := imageio.Load(src)
	if err != nil {
		return "", err
	}
	if size > 0 {
		img = imageio.Resize(img, size, size)
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dst := filepath.Join(outDir, stem+ext)
	if err := imageio.Save(dst, img, opts); err != nil {
		return "", err
	}
	return dst, nil
}

func main() {
	format := flag.String("format", "png", "Output format: png, jpg or webp")
	outDir := flag.String("output", ".", "Output directory")
	size := flag.Int("size", 0, "Resize to a square of this many pixels (0 keeps the size)")
	quality := flag.Int("quality", imageio.DefaultQuality, "JPEG quality 1-100")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: imgconv [flags] image...")
		os.Exit(2)
	}

	ext := imageio.Ext(*format)
	errors := 0
	for _, src := range flag.Args() {
		dst, err := convert(src, *outDir, ext, *size, imageio.Options{Quality: *quality})
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
			continue
		}
		fmt.Printf("OK  %s -> %s\n", src, dst)
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
}
