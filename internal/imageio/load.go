// Package imageio loads and saves images through the standard and third-party
// codecs, and converts between images and tightly packed pixel buffers.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"tinylib/internal/logging"
)

// ErrPixels reports a pixel buffer whose length or channel count does not
// match the requested image.
var ErrPixels = errors.New("imageio: pixel buffer mismatch")

// Load decodes a PNG, JPEG, TGA or WebP file. Formats without alpha come back
// fully opaque.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := decode(bufio.NewReader(f), path)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	b := img.Bounds()
	logging.Logger().Debug("image decoded", "path", path, "format", format, "w", b.Dx(), "h", b.Dy())
	return toNRGBA(img), nil
}

// decode picks the decoder by extension. TGA has no magic number, so
// sniffing is only the fallback for unknown extensions. WebP goes through
// the decoder that accepts lossless data with the alpha flag set.
func decode(r io.Reader, path string) (image.Image, string, error) {
	var (
		img image.Image
		err error
	)
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".tga":
		img, err = tga.Decode(r)
	case ".webp":
		img, err = nativewebp.DecodeIgnoreAlphaFlag(r)
	default:
		return image.Decode(r)
	}
	return img, ext[1:], err
}

// LoadPixels decodes path into tightly packed RGBA bytes, row by row from
// the top. channels is always 4.
func LoadPixels(path string) (pix []byte, w, h, channels int, err error) {
	img, err := Load(path)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	w, h = img.Rect.Dx(), img.Rect.Dy()
	pix = make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return pix, w, h, 4, nil
}

// FromPixels builds an image from packed gray (1), RGB (3) or RGBA (4)
// bytes. The input is copied.
func FromPixels(pix []byte, w, h, channels int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrPixels, w, h)
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrPixels, channels)
	}
	if len(pix) != w*h*channels {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrPixels, len(pix), w*h*channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if channels == 4 {
		copy(img.Pix, pix)
		return img, nil
	}
	for i, j := 0, 0; i < w*h; i, j = i+1, j+channels {
		d := img.Pix[i*4 : i*4+4 : i*4+4]
		if channels == 1 {
			d[0], d[1], d[2] = pix[j], pix[j], pix[j]
		} else {
			d[0], d[1], d[2] = pix[j], pix[j+1], pix[j+2]
		}
		d[3] = 255
	}
	return img, nil
}

// toNRGBA converts any decoded image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.CMYK:
		// Opaque sources: draw.Src fills alpha with 255.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
