package mathutil

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

var sampleVec3s = []Vec3{
	{1, 0, 0},
	{0, 2, 0},
	{3, 4, 0},
	{-1, 2, -3},
	{0.5, -0.25, 8},
	{1e-3, 7, -2},
}

func TestVec3_Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), Vec3{5, -3, 9}},
		{"sub", a.Sub(b), Vec3{-3, 7, -3}},
		{"mul", a.Mul(b), Vec3{4, -10, 18}},
		{"div", b.Div(Vec3{2, 5, 3}), Vec3{2, -1, 2}},
		{"neg", a.Neg(), Vec3{-1, -2, -3}},
		{"add scalar", a.AddScalar(1), Vec3{2, 3, 4}},
		{"sub scalar", a.SubScalar(1), Vec3{0, 1, 2}},
		{"scale", a.Scale(2), Vec3{2, 4, 6}},
		{"div scalar", b.DivScalar(2), Vec3{2, -2.5, 3}},
		{"scalar sub", ScalarSub3(10, a), Vec3{9, 8, 7}},
		{"scalar div", ScalarDiv3(12, a), Vec3{12, 6, 4}},
		{"splat", Splat3(7), Vec3{7, 7, 7}},
		{"compound", func() Vec3 { v := a; v = v.Add(b); v = v.Scale(2); return v }(), Vec3{10, -6, 18}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestVec3_ComponentFunctions(t *testing.T) {
	v := V3(-1.25, 2.5, 0.75)
	if got := v.Floor(); got != (Vec3{-2, 2, 0}) {
		t.Errorf("Floor = %v", got)
	}
	if got := v.Ceil(); got != (Vec3{-1, 3, 1}) {
		t.Errorf("Ceil = %v", got)
	}
	if got := v.Abs(); got != (Vec3{1.25, 2.5, 0.75}) {
		t.Errorf("Abs = %v", got)
	}
	if got := v.Fract(); got != (Vec3{0.75, 0.5, 0.75}) {
		t.Errorf("Fract = %v", got)
	}
	if got := v.MinComponent(); got != -1.25 {
		t.Errorf("MinComponent = %v", got)
	}
	if got := v.MaxComponent(); got != 2.5 {
		t.Errorf("MaxComponent = %v", got)
	}
	w := V3(0, 0, 0)
	if got := v.Min(w); got != (Vec3{-1.25, 0, 0}) {
		t.Errorf("Min = %v", got)
	}
	if got := v.Max(w); got != (Vec3{0, 2.5, 0.75}) {
		t.Errorf("Max = %v", got)
	}
	if v[1] != v.Y() {
		t.Errorf("index and accessor disagree")
	}
}

func TestVec3_EqualityIsExact(t *testing.T) {
	a := V3(0.1, 0.2, 0.3)
	b := a
	b[2] = math.Nextafter32(b[2], 1)
	if a == b {
		t.Fatalf("vectors one ulp apart compare equal")
	}
	if !a.Approx(b, 1e-6) {
		t.Fatalf("Approx should tolerate one ulp")
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	for _, a := range sampleVec3s {
		if a.Len() < 0 {
			t.Errorf("Len(%v) < 0", a)
		}
		for _, b := range sampleVec3s {
			if a.Dot(b) != b.Dot(a) {
				t.Errorf("Dot not symmetric for %v, %v", a, b)
			}
		}
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len(3,4,0) = %v, want 5", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	for _, v := range sampleVec3s {
		n := v.Normalize()
		if l := n.Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("Normalize(%v).Len() = %v", v, l)
		}
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Vec2 Normalize(zero) = %v", got)
	}
	if got := (Vec4{}).Normalize(); got != (Vec4{}) {
		t.Errorf("Vec4 Normalize(zero) = %v", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	for _, a := range sampleVec3s {
		for _, b := range sampleVec3s {
			ab := a.Cross(b)
			ba := b.Cross(a)
			if ab != ba.Neg() {
				t.Errorf("Cross(%v,%v) = %v, -Cross(b,a) = %v", a, b, ab, ba.Neg())
			}
			if d := a.Dot(ab); math32.Abs(d) > 1e-3 {
				t.Errorf("Dot(a, a×b) = %v for %v, %v", d, a, b)
			}
		}
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != (Vec3{0, 0, 1}) {
		t.Errorf("X×Y = %v, want Z", got)
	}
}

func TestVec3_Perpendicular(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"x dominant", V3(3, 1, 1), V3(-1, 3, 0)},
		{"z dominant", V3(1, 2, 3), V3(0, -3, 2)},
		{"unit z", V3(0, 0, 1), V3(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Perpendicular()
			if got != tt.want {
				t.Errorf("Perpendicular(%v) = %v, want %v", tt.v, got, tt.want)
			}
			if tt.v.Dot(got) != 0 {
				t.Errorf("not orthogonal")
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p0, p1, p2, p3 Vec3
		ok             bool
		want           Vec3
	}{
		{"diagonals", V3(0, 0, 0), V3(1, 1, 0), V3(0, 1, 0), V3(1, 0, 0), true, V3(0.5, 0.5, 0)},
		{"z ignored", V3(0, 0, 4), V3(2, 0, 4), V3(1, -1, -3), V3(1, 1, 9), true, V3(1, 0, 0)},
		{"touching endpoint", V3(0, 0, 0), V3(1, 0, 0), V3(1, 0, 0), V3(1, 1, 0), true, V3(1, 0, 0)},
		{"parallel", V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0), V3(1, 1, 0), false, Vec3{}},
		{"collinear", V3(0, 0, 0), V3(1, 0, 0), V3(2, 0, 0), V3(3, 0, 0), false, Vec3{}},
		{"lines cross beyond segments", V3(0, 0, 0), V3(1, 1, 0), V3(3, 0, 0), V3(4, -1, 0), false, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Intersect(tt.p0, tt.p1, tt.p2, tt.p3)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVec2AndVec4(t *testing.T) {
	a := V2(3, 4)
	if a.Len() != 5 {
		t.Errorf("Vec2 Len = %v", a.Len())
	}
	if got := a.Fract(); got != (Vec2{}) {
		t.Errorf("Vec2 Fract = %v", got)
	}
	if got := ScalarSub2(1, a); got != (Vec2{-2, -3}) {
		t.Errorf("ScalarSub2 = %v", got)
	}

	p := V4(1, 2, 3, 4)
	q := V4(2, 0, 1, 3)
	if got := p.Dot(q); got != 17 {
		t.Errorf("Vec4 Dot = %v, want 17", got)
	}
	if p.Dot(q) != q.Dot(p) {
		t.Errorf("Vec4 Dot not symmetric")
	}
	if got := p.XYZ(); got != (Vec3{1, 2, 3}) {
		t.Errorf("XYZ = %v", got)
	}
	if got := p.Min(q); got != (Vec4{1, 0, 1, 3}) {
		t.Errorf("Vec4 Min = %v", got)
	}
	if got := p.MaxComponent(); got != 4 {
		t.Errorf("Vec4 MaxComponent = %v", got)
	}
}

func TestVec3_DivideByZeroIsUnchecked(t *testing.T) {
	got := V3(1, -1, 0).DivScalar(0)
	if !math32.IsInf(got[0], 1) || !math32.IsInf(got[1], -1) || !math32.IsNaN(got[2]) {
		t.Errorf("DivScalar(0) = %v, want +Inf, -Inf, NaN", got)
	}
}
