package mathutil

import "github.com/chewxy/math32"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float32

func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

// Splat3 returns a vector with every component set to s.
func Splat3(s float32) Vec3 { return Vec3{s, s, s} }

func (v Vec3) X() float32 { return v[0] }
func (v Vec3) Y() float32 { return v[1] }
func (v Vec3) Z() float32 { return v[2] }

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Mul multiplies componentwise.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Div divides componentwise. Zero components are not checked.
func (a Vec3) Div(b Vec3) Vec3 {
	return Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

func (v Vec3) AddScalar(s float32) Vec3 {
	return Vec3{v[0] + s, v[1] + s, v[2] + s}
}

func (v Vec3) SubScalar(s float32) Vec3 {
	return Vec3{v[0] - s, v[1] - s, v[2] - s}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) DivScalar(s float32) Vec3 {
	return Vec3{v[0] / s, v[1] / s, v[2] / s}
}

// ScalarSub3 returns s - v for each component.
func ScalarSub3(s float32, v Vec3) Vec3 {
	return Vec3{s - v[0], s - v[1], s - v[2]}
}

// ScalarDiv3 returns s / v for each component.
func ScalarDiv3(s float32, v Vec3) Vec3 {
	return Vec3{s / v[0], s / v[1], s / v[2]}
}

func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Perpendicular returns a vector orthogonal to v. The result is not normalized.
// The branch on |x| vs |z| keeps the result away from zero for any non-zero v.
func (v Vec3) Perpendicular() Vec3 {
	if math32.Abs(v[0]) > math32.Abs(v[2]) {
		return Vec3{-v[1], v[0], 0}
	}
	return Vec3{0, -v[2], v[1]}
}

func (v Vec3) Len() float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// length zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

func (v Vec3) MinComponent() float32 {
	return math32.Min(math32.Min(v[0], v[1]), v[2])
}

func (v Vec3) MaxComponent() float32 {
	return math32.Max(math32.Max(v[0], v[1]), v[2])
}

func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}

func (v Vec3) Floor() Vec3 {
	return Vec3{math32.Floor(v[0]), math32.Floor(v[1]), math32.Floor(v[2])}
}

func (v Vec3) Ceil() Vec3 {
	return Vec3{math32.Ceil(v[0]), math32.Ceil(v[1]), math32.Ceil(v[2])}
}

func (v Vec3) Abs() Vec3 {
	return Vec3{math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2])}
}

// Fract returns the fractional part v - floor(v) of each component.
func (v Vec3) Fract() Vec3 {
	return v.Sub(v.Floor())
}

// Approx reports whether every component of a and b differs by at most eps.
func (a Vec3) Approx(b Vec3, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Vec4 extends v with the given w.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// Intersect tests the segments p0→p1 and p2→p3 for intersection in the XY
// plane; z is ignored. The intersection point (with z = 0) is returned when
// both segment parameters lie in [0, 1]. Parallel or degenerate segments give
// a zero denominator and the NaN/Inf parameters fail the range check.
func Intersect(p0, p1, p2, p3 Vec3) (Vec3, bool) {
	s1 := p1.Sub(p0)
	s2 := p3.Sub(p2)

	den := -s2[0]*s1[1] + s1[0]*s2[1]
	s := (-s1[1]*(p0[0]-p2[0]) + s1[0]*(p0[1]-p2[1])) / den
	t := (s2[0]*(p0[1]-p2[1]) - s2[1]*(p0[0]-p2[0])) / den

	if s >= 0 && s <= 1 && t >= 0 && t <= 1 {
		return Vec3{p0[0] + t*s1[0], p0[1] + t*s1[1], 0}, true
	}
	return Vec3{}, false
}
