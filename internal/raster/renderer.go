package raster

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"tinylib/internal/logging"
	"tinylib/internal/mathutil"
	"tinylib/internal/obj"
)

// DefaultColor is the surface colour of untextured meshes when
// Renderer.Color is left zero.
var DefaultColor = color.NRGBA{160, 160, 170, 255}

// Renderer holds the transform and material state for DrawMesh.
type Renderer struct {
	Model      mathutil.Mat4
	View       mathutil.Mat4
	Projection mathutil.Mat4
	Light      LightConfig
	Texture    *image.NRGBA // nil draws Color
	Color      color.NRGBA
}

// NewRenderer returns a renderer with identity transforms, the default
// light rig and DefaultColor.
func NewRenderer() *Renderer {
	return &Renderer{
		Model:      mathutil.Mat4Identity(),
		View:       mathutil.Mat4Identity(),
		Projection: mathutil.Mat4Identity(),
		Light:      DefaultLightConfig(),
		Color:      DefaultColor,
	}
}

// Stats counts what DrawMesh did with its triangles.
type Stats struct {
	Triangles  int // rasterized
	Clipped    int // a vertex had clip w <= 0
	Degenerate int // zero-area in world space
	Pixels     int // colour writes
}

// DrawMesh draws verts as a triangle list. Every triangle is transformed by
// Projection × View × Model; triangles with a vertex on or behind the eye
// plane are dropped rather than clipped. Trailing vertices that do not make
// a full triangle are ignored.
func (r *Renderer) DrawMesh(fb *FrameBuffer, verts []obj.Vertex) Stats {
	mvp := mathutil.Mat4Mul(r.Projection, mathutil.Mat4Mul(r.View, r.Model))
	normalMat := mathutil.NormalMatrix(r.Model)

	base := r.Color
	if base.A == 0 {
		base = DefaultColor
	}

	halfW := float32(fb.Width) * 0.5
	halfH := float32(fb.Height) * 0.5

	var st Stats
	var sv [3]screenVert
	for t := 0; t+2 < len(verts); t += 3 {
		tri := verts[t : t+3 : t+3]

		n := normalMat.MulVec3(faceNormal(tri)).Normalize()
		if n == (mathutil.Vec3{}) {
			st.Degenerate++
			continue
		}

		clipped := false
		for k := range tri {
			c := mvp.MulVec4(tri[k].Pos.Vec4(1))
			if c[3] <= 0 {
				clipped = true
				break
			}
			invW := 1 / c[3]
			sv[k] = screenVert{
				x:    (c[0]*invW + 1) * halfW,
				y:    (1 - c[1]*invW) * halfH,
				z:    c[2] * invW,
				invW: invW,
				uw:   tri[k].UV[0] * invW,
				vw:   tri[k].UV[1] * invW,
			}
		}
		if clipped {
			st.Clipped++
			continue
		}

		shade := r.Light.ComputeShade(n)
		st.Pixels += fb.drawTriangle(&sv, shade, r.Texture, base, &r.Light)
		st.Triangles++
	}

	logging.Logger().Debug("mesh drawn",
		"triangles", st.Triangles, "clipped", st.Clipped,
		"degenerate", st.Degenerate, "pixels", st.Pixels)
	return st
}

// faceNormal returns the object-space normal of a triangle: the sum of its
// vertex normals when the mesh has them, otherwise the geometric normal.
func faceNormal(tri []obj.Vertex) mathutil.Vec3 {
	sum := tri[0].Normal.Add(tri[1].Normal).Add(tri[2].Normal)
	if sum.Len() > 1e-6 {
		return sum
	}
	e1 := tri[1].Pos.Sub(tri[0].Pos)
	e2 := tri[2].Pos.Sub(tri[0].Pos)
	return e1.Cross(e2)
}

// FitModel returns a model matrix that centres the box [lo, hi] on the
// origin and scales its largest extent to 2, so it fills the [-1, 1] cube.
func FitModel(lo, hi mathutil.Vec3) mathutil.Mat4 {
	center := lo.Add(hi).Scale(0.5)
	span := math32.Max(hi.Sub(lo).MaxComponent(), 1e-3)

	m := mathutil.Mat4Identity()
	m.ScaleUniform(2 / span).TranslateVec(center.Neg())
	return m
}
