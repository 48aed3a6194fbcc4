package mathutil

import "github.com/chewxy/math32"

// Vec2 is a 2-component vector.
type Vec2 [2]float32

func V2(x, y float32) Vec2 { return Vec2{x, y} }

func Splat2(s float32) Vec2 { return Vec2{s, s} }

func (v Vec2) X() float32 { return v[0] }
func (v Vec2) Y() float32 { return v[1] }

func (v Vec2) Neg() Vec2       { return Vec2{-v[0], -v[1]} }
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a[0] + b[0], a[1] + b[1]} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a[0] - b[0], a[1] - b[1]} }
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a[0] * b[0], a[1] * b[1]} }
func (a Vec2) Div(b Vec2) Vec2 { return Vec2{a[0] / b[0], a[1] / b[1]} }

func (v Vec2) AddScalar(s float32) Vec2 { return Vec2{v[0] + s, v[1] + s} }
func (v Vec2) SubScalar(s float32) Vec2 { return Vec2{v[0] - s, v[1] - s} }
func (v Vec2) Scale(s float32) Vec2     { return Vec2{v[0] * s, v[1] * s} }
func (v Vec2) DivScalar(s float32) Vec2 { return Vec2{v[0] / s, v[1] / s} }

// ScalarSub2 returns s - v for each component.
func ScalarSub2(s float32, v Vec2) Vec2 { return Vec2{s - v[0], s - v[1]} }

// ScalarDiv2 returns s / v for each component.
func ScalarDiv2(s float32, v Vec2) Vec2 { return Vec2{s / v[0], s / v[1]} }

func (a Vec2) Dot(b Vec2) float32 { return a[0]*b[0] + a[1]*b[1] }

func (v Vec2) Len() float32 { return math32.Sqrt(v[0]*v[0] + v[1]*v[1]) }

// Normalize returns the unit vector, or zero for a zero-length v.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v[0] / l, v[1] / l}
}

func (v Vec2) MinComponent() float32 { return math32.Min(v[0], v[1]) }
func (v Vec2) MaxComponent() float32 { return math32.Max(v[0], v[1]) }

func (a Vec2) Min(b Vec2) Vec2 { return Vec2{math32.Min(a[0], b[0]), math32.Min(a[1], b[1])} }
func (a Vec2) Max(b Vec2) Vec2 { return Vec2{math32.Max(a[0], b[0]), math32.Max(a[1], b[1])} }

func (v Vec2) Floor() Vec2 { return Vec2{math32.Floor(v[0]), math32.Floor(v[1])} }
func (v Vec2) Ceil() Vec2  { return Vec2{math32.Ceil(v[0]), math32.Ceil(v[1])} }
func (v Vec2) Abs() Vec2   { return Vec2{math32.Abs(v[0]), math32.Abs(v[1])} }
func (v Vec2) Fract() Vec2 { return v.Sub(v.Floor()) }

func (a Vec2) Approx(b Vec2, eps float32) bool {
	return math32.Abs(a[0]-b[0]) <= eps && math32.Abs(a[1]-b[1]) <= eps
}
