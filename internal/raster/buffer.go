// Package raster is a small CPU rasterizer driven by mathutil matrices. It
// draws flat-shaded, optionally textured triangles into a FrameBuffer.
package raster

import (
	"image"

	"github.com/chewxy/math32"
)

// FrameBuffer holds the render target as flat slices.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float32 // NDC depth per pixel, len = W*H, smaller is nearer
}

// NewFrameBuffer allocates a transparent colour buffer and a +Inf depth buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
	fb.Clear()
	return fb
}

// Clear resets colour to transparent black and depth to +Inf.
func (fb *FrameBuffer) Clear() {
	clear(fb.Color)
	inf := math32.Inf(1)
	for i := range fb.Depth {
		fb.Depth[i] = inf
	}
}

// Image copies the colour buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
