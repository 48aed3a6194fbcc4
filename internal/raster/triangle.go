package raster

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// screenVert is a vertex after the perspective divide and viewport mapping.
// UVs are stored divided by clip w for perspective-correct interpolation.
type screenVert struct {
	x, y, z float32
	invW    float32
	uw, vw  float32
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// drawTriangle fills one flat-shaded triangle, sampling pixel centres. Either
// winding is accepted. It returns the number of pixels written.
//
// Hot path: no allocations inside the pixel loop.
func (fb *FrameBuffer) drawTriangle(v *[3]screenVert, shade float32, tex *image.NRGBA, base color.NRGBA, lc *LightConfig) int {
	v0, v1, v2 := &v[0], &v[1], &v[2]

	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if math32.Abs(area) < 1e-12 {
		return 0
	}
	invArea := 1 / area

	minX := max(0, int(math32.Floor(min(v0.x, v1.x, v2.x))))
	maxX := min(fb.Width-1, int(math32.Ceil(max(v0.x, v1.x, v2.x))))
	minY := max(0, int(math32.Floor(min(v0.y, v1.y, v2.y))))
	maxY := min(fb.Height-1, int(math32.Ceil(max(v0.y, v1.y, v2.y))))
	if minX > maxX || minY > maxY {
		return 0
	}

	written := 0
	for sy := minY; sy <= maxY; sy++ {
		py := float32(sy) + 0.5
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			px := float32(sx) + 0.5
			b0 := edge(v1.x, v1.y, v2.x, v2.y, px, py) * invArea
			b1 := edge(v2.x, v2.y, v0.x, v0.y, px, py) * invArea
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			z := b0*v0.z + b1*v1.z + b2*v2.z
			if z < -1 || z > 1 {
				continue
			}
			zIdx := rowOff + sx
			if z >= fb.Depth[zIdx] {
				continue
			}

			cr, cg, cb, ca := base.R, base.G, base.B, base.A
			if tex != nil {
				iw := b0*v0.invW + b1*v1.invW + b2*v2.invW
				u := (b0*v0.uw + b1*v1.uw + b2*v2.uw) / iw
				t := (b0*v0.vw + b1*v1.vw + b2*v2.vw) / iw
				cr, cg, cb, ca = SampleTexture(tex, u, t)
			}

			// Cut-out texels neither colour nor occlude.
			if ca < 8 {
				continue
			}
			fb.Depth[zIdx] = z

			i := zIdx * 4
			fb.Color[i], fb.Color[i+1], fb.Color[i+2] = lc.Apply(cr, cg, cb, shade)
			fb.Color[i+3] = ca
			written++
		}
	}
	return written
}
