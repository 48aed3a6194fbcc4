package imageio

import (
	"image"

	"golang.org/x/image/draw"

	"tinylib/internal/logging"
)

// AlphaBounds returns the smallest rectangle holding every pixel with
// non-zero alpha, or an empty rectangle for a fully transparent image.
func AlphaBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	box := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := image.Rect(b.Min.X+x, y, b.Min.X+x+1, y+1)
			if box.Empty() {
				box = px
			} else {
				box = box.Union(px)
			}
		}
	}
	return box
}

// Fit crops img to its visible pixels, scales them so the longer side is
// fill × size, and centres the result on a transparent size×size canvas.
// A fully transparent image yields an empty canvas.
func Fit(img *image.NRGBA, size int, fill float32) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	box := AlphaBounds(img)
	if box.Empty() || size <= 0 {
		return canvas
	}

	crop := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Copy(crop, image.Point{}, img, box, draw.Src, nil)

	target := float32(size) * fill
	scale := target / float32(max(box.Dx(), box.Dy()))
	w := max(1, int(float32(box.Dx())*scale+0.5))
	h := max(1, int(float32(box.Dy())*scale+0.5))
	scaled := Resize(crop, w, h)

	off := image.Pt((size-w)/2, (size-h)/2)
	draw.Copy(canvas, off, scaled, scaled.Bounds(), draw.Src, nil)
	return canvas
}

// RemoveSpecks clears 8-connected groups of visible pixels smaller than
// minRatio of all visible pixels. The largest group always survives. img is
// not modified.
func RemoveSpecks(img *image.NRGBA, minRatio float32) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	visible := func(i int) bool {
		return img.Pix[(i/w)*img.Stride+(i%w)*4+3] > 0
	}

	label := make([]int32, w*h)
	var sizes []int
	total := 0
	queue := make([]int, 0, 256)
	for start := range label {
		if label[start] != 0 || !visible(start) {
			continue
		}
		id := int32(len(sizes) + 1)
		label[start] = id
		queue = append(queue[:0], start)
		for head := 0; head < len(queue); head++ {
			cx, cy := queue[head]%w, queue[head]/w
			for ny := max(cy-1, 0); ny <= min(cy+1, h-1); ny++ {
				for nx := max(cx-1, 0); nx <= min(cx+1, w-1); nx++ {
					n := ny*w + nx
					if label[n] == 0 && visible(n) {
						label[n] = id
						queue = append(queue, n)
					}
				}
			}
		}
		sizes = append(sizes, len(queue))
		total += len(queue)
	}
	if len(sizes) <= 1 {
		return img
	}

	largest := 0
	for _, s := range sizes {
		largest = max(largest, s)
	}
	minSize := min(int(float32(total)*minRatio), largest)

	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	removed := 0
	for i, id := range label {
		if id != 0 && sizes[id-1] < minSize {
			clear(out.Pix[(i/w)*out.Stride+(i%w)*4:][:4])
			removed++
		}
	}
	if removed > 0 {
		logging.Logger().Debug("specks removed", "pixels", removed, "groups", len(sizes))
	}
	return out
}
