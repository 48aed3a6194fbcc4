// Package noise implements classic lattice gradient (Perlin) noise with
// fractal octave summation.
package noise

import (
	"sync"

	"github.com/chewxy/math32"

	"tinylib/internal/mathutil"
)

const (
	// Size is the lattice period and the length of the permutation.
	Size = 1024

	mask = Size - 1
	// bias is added to coordinates before truncation so that inputs down to
	// -bias land on the same lattice as positive ones.
	bias = 0x1000

	tableLen = Size + Size + 2
)

// Perlin is a seeded noise generator. Its tables are filled once, on the
// first query or an explicit Init, and never reseeded. A Perlin is safe for
// concurrent use.
type Perlin struct {
	octaves int
	freq    float32
	amp     float32
	seed    int64

	once sync.Once
	p    [tableLen]int
	g1   [tableLen]float32
	g2   [tableLen][2]float32
	g3   [tableLen][3]float32
}

func NewPerlin(octaves int, freq, amp float32, seed int64) *Perlin {
	return &Perlin{octaves: octaves, freq: freq, amp: amp, seed: seed}
}

func (n *Perlin) Octaves() int  { return n.octaves }
func (n *Perlin) Freq() float32 { return n.freq }
func (n *Perlin) Amp() float32  { return n.amp }
func (n *Perlin) Seed() int64   { return n.seed }

// Init fills the tables if that has not happened yet. Calling it before
// sharing a Perlin moves the one-time cost out of the first query.
func (n *Perlin) Init() {
	n.once.Do(n.fill)
}

func (n *Perlin) fill() {
	r := mathutil.NewRand(n.seed)
	grad := func() float32 {
		return float32(int(r.Uint32n(2*Size))-Size) / Size
	}

	for i := 0; i < Size; i++ {
		n.p[i] = i
		n.g1[i] = grad()
		n.g2[i] = [2]float32{grad(), grad()}
		n.g2[i] = normalize2(n.g2[i])
		n.g3[i] = [3]float32{grad(), grad(), grad()}
		n.g3[i] = normalize3(n.g3[i])
	}

	for i := Size - 1; i > 0; i-- {
		j := int(r.Uint32n(uint32(i + 1)))
		n.p[i], n.p[j] = n.p[j], n.p[i]
	}

	for i := 0; i < Size+2; i++ {
		n.p[Size+i] = n.p[i]
		n.g1[Size+i] = n.g1[i]
		n.g2[Size+i] = n.g2[i]
		n.g3[Size+i] = n.g3[i]
	}
}

func normalize2(v [2]float32) [2]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1])
	if l == 0 {
		return v
	}
	return [2]float32{v[0] / l, v[1] / l}
}

func normalize3(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// lattice splits a coordinate into its two cell indices and the offsets
// from each cell corner.
func lattice(v float32) (b0, b1 int, r0, r1 float32) {
	t := v + bias
	it := int(t)
	b0 = it & mask
	b1 = (b0 + 1) & mask
	r0 = t - float32(it)
	r1 = r0 - 1
	return
}

func curve(t float32) float32 { return t * t * (3 - 2*t) }

func lerp(t, a, b float32) float32 { return a + t*(b-a) }

// Noise1 is a single octave of 1D noise at x, unscaled.
func (n *Perlin) Noise1(x float32) float32 {
	n.Init()
	bx0, bx1, rx0, rx1 := lattice(x)
	sx := curve(rx0)
	u := rx0 * n.g1[n.p[bx0]]
	v := rx1 * n.g1[n.p[bx1]]
	return lerp(sx, u, v)
}

// Noise2 is a single octave of 2D noise at (x, y), unscaled.
func (n *Perlin) Noise2(x, y float32) float32 {
	n.Init()
	bx0, bx1, rx0, rx1 := lattice(x)
	by0, by1, ry0, ry1 := lattice(y)

	i := n.p[bx0]
	j := n.p[bx1]
	b00 := n.p[i+by0]
	b10 := n.p[j+by0]
	b01 := n.p[i+by1]
	b11 := n.p[j+by1]

	sx := curve(rx0)
	sy := curve(ry0)

	at := func(g [2]float32, rx, ry float32) float32 { return rx*g[0] + ry*g[1] }

	a := lerp(sx, at(n.g2[b00], rx0, ry0), at(n.g2[b10], rx1, ry0))
	b := lerp(sx, at(n.g2[b01], rx0, ry1), at(n.g2[b11], rx1, ry1))
	return lerp(sy, a, b)
}

// Noise3 is a single octave of 3D noise at (x, y, z), unscaled.
func (n *Perlin) Noise3(x, y, z float32) float32 {
	n.Init()
	bx0, bx1, rx0, rx1 := lattice(x)
	by0, by1, ry0, ry1 := lattice(y)
	bz0, bz1, rz0, rz1 := lattice(z)

	i := n.p[bx0]
	j := n.p[bx1]
	b00 := n.p[i+by0]
	b10 := n.p[j+by0]
	b01 := n.p[i+by1]
	b11 := n.p[j+by1]

	sx := curve(rx0)
	sy := curve(ry0)
	sz := curve(rz0)

	at := func(g [3]float32, rx, ry, rz float32) float32 { return rx*g[0] + ry*g[1] + rz*g[2] }

	a := lerp(sx, at(n.g3[b00+bz0], rx0, ry0, rz0), at(n.g3[b10+bz0], rx1, ry0, rz0))
	b := lerp(sx, at(n.g3[b01+bz0], rx0, ry1, rz0), at(n.g3[b11+bz0], rx1, ry1, rz0))
	c := lerp(sy, a, b)

	a = lerp(sx, at(n.g3[b00+bz1], rx0, ry0, rz1), at(n.g3[b10+bz1], rx1, ry0, rz1))
	b = lerp(sx, at(n.g3[b01+bz1], rx0, ry1, rz1), at(n.g3[b11+bz1], rx1, ry1, rz1))
	d := lerp(sy, a, b)

	return lerp(sz, c, d)
}

// Get samples 1D fractal noise along the line y = 0.
func (n *Perlin) Get(x float32) float32 {
	return n.Get2(x, 0)
}

// Get2 sums the configured octaves of 2D noise. The input starts scaled by
// Freq and the amplitude by Amp; each further octave doubles the input and
// halves the amplitude. The sum is not renormalized.
func (n *Perlin) Get2(x, y float32) float32 {
	x *= n.freq
	y *= n.freq
	amp := n.amp
	var sum float32
	for i := 0; i < n.octaves; i++ {
		sum += n.Noise2(x, y) * amp
		x *= 2
		y *= 2
		amp *= 0.5
	}
	return sum
}

// Get3 is Get2 for 3D noise.
func (n *Perlin) Get3(x, y, z float32) float32 {
	x *= n.freq
	y *= n.freq
	z *= n.freq
	amp := n.amp
	var sum float32
	for i := 0; i < n.octaves; i++ {
		sum += n.Noise3(x, y, z) * amp
		x *= 2
		y *= 2
		z *= 2
		amp *= 0.5
	}
	return sum
}

// Fill writes a w×h grid of Get2 samples into dst, row by row. Sample (i, j)
// is taken at (x0 + i*step, y0 + j*step). dst must hold at least w*h values.
func (n *Perlin) Fill(dst []float32, w, h int, x0, y0, step float32) {
	if w <= 0 || h <= 0 {
		return
	}
	_ = dst[w*h-1]
	for j := 0; j < h; j++ {
		y := y0 + float32(j)*step
		row := dst[j*w : (j+1)*w]
		for i := range row {
			row[i] = n.Get2(x0+float32(i)*step, y)
		}
	}
}
