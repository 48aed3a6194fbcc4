package mathutil

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

const (
	Pi     = math32.Pi
	HalfPi = Pi / 2
	TwoPi  = Pi * 2
	FourPi = Pi * 4
)

// DegToRad converts degrees to radians.
func DegToRad(d float32) float32 {
	return d * Pi / 180
}

func RadToDeg(r float32) float32 {
	return r * 180 / Pi
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp returns a + t(b-a).
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
