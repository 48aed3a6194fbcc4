// Package spline evaluates uniform Catmull-Rom curves over an ordered list of
// control points. The element type only needs addition and scaling by a
// float32, so the mathutil vectors and plain floats both work.
package spline

import "golang.org/x/exp/constraints"

// MaxT is the largest parameter At evaluates. Keeping t below 1 keeps the
// segment's right-hand control point inside the list.
const MaxT = 0.99

// Vector is the element contract for New.
type Vector[T any] interface {
	Add(T) T
	Scale(float32) T
}

// Spline holds control points of type T. The zero value is not usable; build
// one with New or NewScalar.
type Spline[T any] struct {
	points []T
	add    func(a, b T) T
	scale  func(a T, s float32) T
}

// New returns a spline over vector-like points.
func New[T Vector[T]](points ...T) *Spline[T] {
	return &Spline[T]{
		points: append([]T(nil), points...),
		add:    func(a, b T) T { return a.Add(b) },
		scale:  func(a T, s float32) T { return a.Scale(s) },
	}
}

// NewScalar returns a spline over plain floats.
func NewScalar[F constraints.Float](points ...F) *Spline[F] {
	return &Spline[F]{
		points: append([]F(nil), points...),
		add:    func(a, b F) F { return a + b },
		scale:  func(a F, s float32) F { return a * F(s) },
	}
}

func (s *Spline[T]) Push(p T) { s.points = append(s.points, p) }

// Assign replaces the control points with a copy of points.
func (s *Spline[T]) Assign(points []T) {
	s.points = append(s.points[:0], points...)
}

func (s *Spline[T]) Clear() { s.points = s.points[:0] }

func (s *Spline[T]) Len() int { return len(s.points) }

func (s *Spline[T]) Point(i int) T { return s.points[i] }

func (s *Spline[T]) SetPoint(i int, p T) { s.points[i] = p }

// At evaluates the curve at t in [0, 1]. t is clamped to [0, MaxT]; NaN counts
// as 0. With fewer than four points the zero value of T is returned.
func (s *Spline[T]) At(t float32) T {
	var zero T
	n := len(s.points)
	if n < 4 {
		return zero
	}
	if !(t > 0) {
		t = 0
	} else if t > MaxT {
		t = MaxT
	}

	fi := t * float32(n-1)
	b := int(fi)
	lt := fi - float32(b)

	a := b - 1
	if a < 0 {
		a = 0
	}
	c := b + 1
	d := b + 2
	if d > n-1 {
		d = n - 1
	}

	w0, w1, w2, w3 := weights(lt)
	r := s.scale(s.points[a], w0)
	r = s.add(r, s.scale(s.points[b], w1))
	r = s.add(r, s.scale(s.points[c], w2))
	return s.add(r, s.scale(s.points[d], w3))
}

// Sample evaluates n+1 evenly spaced points over [0, 1]. The last few land on
// the MaxT clamp.
func (s *Spline[T]) Sample(n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, n+1)
	for i := range out {
		out[i] = s.At(float32(i) / float32(n))
	}
	return out
}

// weights returns the Catmull-Rom basis for the four control points at local
// parameter t. w1 is exactly 1 and the others exactly 0 at t = 0.
func weights(t float32) (w0, w1, w2, w3 float32) {
	t2 := t * t
	t3 := t2 * t
	w0 = 0.5 * (-t + 2*t2 - t3)
	w1 = 0.5 * (2 - 5*t2 + 3*t3)
	w2 = 0.5 * (t + 4*t2 - 3*t3)
	w3 = 0.5 * (-t2 + t3)
	return
}
