package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"tinylib/internal/logging"
)

// ErrFormat reports an output extension with no encoder.
var ErrFormat = errors.New("imageio: unsupported format")

// DefaultQuality is the JPEG quality used when Options.Quality is unset.
const DefaultQuality = 90

// Options tunes the encoders. Quality (1-100) only affects JPEG; WebP output
// is lossless.
type Options struct {
	Quality int
}

// Ext returns the file extension, with dot, for a format name such as "png"
// or "jpg". Unknown names are returned unchanged with a dot prefix.
func Ext(format string) string {
	switch f := strings.ToLower(format); f {
	case "jpeg":
		return ".jpg"
	default:
		return "." + f
	}
}

// Save encodes img by the extension of path (.png, .jpg, .jpeg or .webp),
// creating parent directories as needed.
func Save(path string, img image.Image, opts Options) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("imageio: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	switch ext {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		q := opts.Quality
		if q <= 0 {
			q = DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: min(q, 100)})
	case ".webp":
		err = nativewebp.Encode(w, img, nil)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}

	logging.Logger().Debug("image written", "path", path)
	return nil
}

// SavePixels wraps packed pixel data with FromPixels and saves it.
func SavePixels(path string, pix []byte, w, h, channels int, opts Options) error {
	img, err := FromPixels(pix, w, h, channels)
	if err != nil {
		return err
	}
	return Save(path, img, opts)
}
