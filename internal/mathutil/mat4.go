package mathutil

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// Mat4 is a 4×4 matrix stored column-major: element (row r, column c) lives at
// m[c*4+r]. This is the layout OpenGL-style uniform uploads expect, so Slice
// and Ptr hand the array over unchanged.
//
// The builder methods post-multiply (m = m * T) and return m, so
//
//	m := Mat4Identity()
//	m.Translate(0, 0, -5).RotateY(a)
//
// applies the rotation first and the translation second to a column vector.
type Mat4 [16]float32

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Diag returns diag(x, y, z, w).
func Mat4Diag(x, y, z, w float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, w,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = a[0*4+r]*b[c*4+0] + a[1*4+r]*b[c*4+1] +
				a[2*4+r]*b[c*4+2] + a[3*4+r]*b[c*4+3]
		}
	}
	return m
}

// At returns the element at row r, column c.
func (m *Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Identity resets m to the identity matrix.
func (m *Mat4) Identity() *Mat4 {
	*m = Mat4Identity()
	return m
}

// MulAssign sets m = m × o.
func (m *Mat4) MulAssign(o Mat4) *Mat4 {
	*m = Mat4Mul(*m, o)
	return m
}

// Translate post-multiplies a translation by (x, y, z).
func (m *Mat4) Translate(x, y, z float32) *Mat4 {
	m[12] += m[0]*x + m[4]*y + m[8]*z
	m[13] += m[1]*x + m[5]*y + m[9]*z
	m[14] += m[2]*x + m[6]*y + m[10]*z
	m[15] += m[3]*x + m[7]*y + m[11]*z
	return m
}

func (m *Mat4) TranslateVec(v Vec3) *Mat4 {
	return m.Translate(v[0], v[1], v[2])
}

// Scale post-multiplies diag(x, y, z, 1): each of the first three columns is
// scaled by its factor.
func (m *Mat4) Scale(x, y, z float32) *Mat4 {
	for r := 0; r < 4; r++ {
		m[0+r] *= x
		m[4+r] *= y
		m[8+r] *= z
	}
	return m
}

func (m *Mat4) ScaleUniform(s float32) *Mat4 {
	return m.Scale(s, s, s)
}

// Rotate post-multiplies a rotation of rad radians around the axis (x, y, z).
func (m *Mat4) Rotate(rad, x, y, z float32) *Mat4 {
	return m.MulAssign(Rotation(rad, x, y, z))
}

func (m *Mat4) RotateAxis(rad float32, axis Vec3) *Mat4 {
	return m.Rotate(rad, axis[0], axis[1], axis[2])
}

func (m *Mat4) RotateX(rad float32) *Mat4 { return m.Rotate(rad, 1, 0, 0) }
func (m *Mat4) RotateY(rad float32) *Mat4 { return m.Rotate(rad, 0, 1, 0) }
func (m *Mat4) RotateZ(rad float32) *Mat4 { return m.Rotate(rad, 0, 0, 1) }

// Ortho replaces m with an orthographic projection mapping the box
// [l,r]×[b,t]×[-n,-f] (eye space) onto the [-1,1] clip cube.
func (m *Mat4) Ortho(l, r, b, t, n, f float32) *Mat4 {
	rml := r - l
	tmb := t - b
	fmn := f - n
	*m = Mat4{
		2 / rml, 0, 0, 0,
		0, 2 / tmb, 0, 0,
		0, 0, -2 / fmn, 0,
		-(r + l) / rml, -(t + b) / tmb, -(f + n) / fmn, 1,
	}
	return m
}

// Frustum replaces m with an asymmetric perspective projection. Clip w is -z.
func (m *Mat4) Frustum(l, r, b, t, n, f float32) *Mat4 {
	*m = Mat4{
		2 * n / (r - l), 0, 0, 0,
		0, 2 * n / (t - b), 0, 0,
		(r + l) / (r - l), (t + b) / (t - b), -(f + n) / (f - n), -1,
		0, 0, -2 * f * n / (f - n), 0,
	}
	return m
}

// Perspective replaces m with a symmetric perspective projection. fovDeg is
// the vertical field of view in degrees.
func (m *Mat4) Perspective(fovDeg, aspect, n, f float32) *Mat4 {
	tanHalf := math32.Tan(DegToRad(fovDeg) * 0.5)
	*m = Mat4{
		1 / (aspect * tanHalf), 0, 0, 0,
		0, 1 / tanHalf, 0, 0,
		0, 0, -(f + n) / (f - n), -1,
		0, 0, -(2 * f * n) / (f - n), 0,
	}
	return m
}

// LookAt replaces m with a right-handed view matrix. The forward axis is
// normalize(target - eye) and is stored negated in the third row, so the
// camera looks down -Z in eye space (gluLookAt convention).
func (m *Mat4) LookAt(eye, target, up Vec3) *Mat4 {
	f := target.Sub(eye).Normalize()
	u := up.Normalize()
	s := f.Cross(u).Normalize()
	u = s.Cross(f)

	*m = Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		0, 0, 0, 1,
	}
	return m.TranslateVec(eye.Neg())
}

// Rotation builds the rotation of rad radians around the normalized axis
// (x, y, z), independent of any existing matrix.
func Rotation(rad, x, y, z float32) Mat4 {
	ax := Vec3{x, y, z}.Normalize()
	c := math32.Cos(rad)
	s := math32.Sin(rad)
	t := 1 - c

	tx, ty, tz := t*ax[0], t*ax[1], t*ax[2]
	sx, sy, sz := s*ax[0], s*ax[1], s*ax[2]
	txy := tx * ax[1]
	txz := tx * ax[2]
	tyz := ty * ax[2]

	return Mat4{
		tx*ax[0] + c, txy + sz, txz - sy, 0,
		txy - sz, ty*ax[1] + c, tyz + sx, 0,
		txz + sy, tyz - sx, tz*ax[2] + c, 0,
		0, 0, 0, 1,
	}
}

// MulVec4 returns m × v.
func (m *Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// MulPoint transforms a 3D point (w=1) and drops w without dividing.
func (m *Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(v.Vec4(1)).XYZ()
}

// Project transforms a point (w=1) and performs the homogeneous divide.
// The clip-space w is returned alongside; callers clip on w <= 0.
func (m *Mat4) Project(v Vec3) (Vec3, float32) {
	c := m.MulVec4(v.Vec4(1))
	w := c[3]
	return Vec3{c[0] / w, c[1] / w, c[2] / w}, w
}

func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[r*4+c] = m[c*4+r]
		}
	}
	return t
}

// Mat3 returns the upper-left 3×3 block.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Approx checks every element for |a-b| <= eps.
func (m Mat4) Approx(o Mat4, eps float32) bool {
	for i := range m {
		d := m[i] - o[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to the first of the 16 column-major floats.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Slice returns the 16 column-major floats, aliasing m.
func (m *Mat4) Slice() []float32 {
	return m[:]
}

// AppendBytes appends the 64-byte little-endian encoding of m (column-major).
func (m *Mat4) AppendBytes(dst []byte) []byte {
	for _, f := range m {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
