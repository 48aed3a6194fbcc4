package mathutil

import "github.com/MichaelTJones/pcg"

// pcgStream selects the PCG sequence; any odd constant works.
const pcgStream = 0xda3e39cb94b95bdb

// Rand is a small seeded float source. Not safe for concurrent use.
type Rand struct {
	r *pcg.PCG32
}

func NewRand(seed int64) *Rand {
	r := pcg.NewPCG32()
	r.Seed(uint64(seed), pcgStream)
	return &Rand{r: r}
}

// Uint32n returns a uniform integer in [0, n).
func (r *Rand) Uint32n(n uint32) uint32 {
	return r.r.Bounded(n)
}

// Float32 returns a value in [0, 1).
func (r *Rand) Float32() float32 {
	// 24 random bits keep the result strictly below 1 after rounding.
	return float32(r.r.Random()>>8) / (1 << 24)
}

// Random returns a value in [0, max).
func (r *Rand) Random(max float32) float32 {
	return max * r.Float32()
}

// Range returns a value between x and y, in either order.
func (r *Rand) Range(x, y float32) float32 {
	lo, hi := x, y
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + (hi-lo)*r.Float32()
}
