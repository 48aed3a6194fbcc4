package mathutil

import "github.com/chewxy/math32"

// Vec4 is a 4-component vector, typically a homogeneous point or an RGBA colour.
type Vec4 [4]float32

func V4(x, y, z, w float32) Vec4 { return Vec4{x, y, z, w} }

func Splat4(s float32) Vec4 { return Vec4{s, s, s, s} }

func (v Vec4) X() float32 { return v[0] }
func (v Vec4) Y() float32 { return v[1] }
func (v Vec4) Z() float32 { return v[2] }
func (v Vec4) W() float32 { return v[3] }

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 { return Vec3{v[0], v[1], v[2]} }

func (v Vec4) Neg() Vec4 {
	return Vec4{-v[0], -v[1], -v[2], -v[3]}
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func (a Vec4) Div(b Vec4) Vec4 {
	return Vec4{a[0] / b[0], a[1] / b[1], a[2] / b[2], a[3] / b[3]}
}

func (v Vec4) AddScalar(s float32) Vec4 {
	return Vec4{v[0] + s, v[1] + s, v[2] + s, v[3] + s}
}

func (v Vec4) SubScalar(s float32) Vec4 {
	return Vec4{v[0] - s, v[1] - s, v[2] - s, v[3] - s}
}

func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

func (v Vec4) DivScalar(s float32) Vec4 {
	return Vec4{v[0] / s, v[1] / s, v[2] / s, v[3] / s}
}

func ScalarSub4(s float32, v Vec4) Vec4 {
	return Vec4{s - v[0], s - v[1], s - v[2], s - v[3]}
}

func ScalarDiv4(s float32, v Vec4) Vec4 {
	return Vec4{s / v[0], s / v[1], s / v[2], s / v[3]}
}

func (a Vec4) Dot(b Vec4) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func (v Vec4) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return Vec4{}
	}
	return v.DivScalar(l)
}

func (v Vec4) MinComponent() float32 {
	return math32.Min(math32.Min(v[0], v[1]), math32.Min(v[2], v[3]))
}

func (v Vec4) MaxComponent() float32 {
	return math32.Max(math32.Max(v[0], v[1]), math32.Max(v[2], v[3]))
}

func (a Vec4) Min(b Vec4) Vec4 {
	var r Vec4
	for i := range r {
		r[i] = math32.Min(a[i], b[i])
	}
	return r
}

func (a Vec4) Max(b Vec4) Vec4 {
	var r Vec4
	for i := range r {
		r[i] = math32.Max(a[i], b[i])
	}
	return r
}

func (v Vec4) Floor() Vec4 {
	return Vec4{math32.Floor(v[0]), math32.Floor(v[1]), math32.Floor(v[2]), math32.Floor(v[3])}
}

func (v Vec4) Ceil() Vec4 {
	return Vec4{math32.Ceil(v[0]), math32.Ceil(v[1]), math32.Ceil(v[2]), math32.Ceil(v[3])}
}

func (v Vec4) Abs() Vec4 {
	return Vec4{math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2]), math32.Abs(v[3])}
}

func (v Vec4) Fract() Vec4 {
	return v.Sub(v.Floor())
}

func (a Vec4) Approx(b Vec4, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
