package raster

import (
	"github.com/chewxy/math32"

	"tinylib/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in world
// space and point from the surface toward the light.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // Blinn-Phong half vector
	Ambient   float32
	Hemi      float32
	Direct    float32
	Rim       float32
	SpecInt   float32
	SpecPow   float32
	Exposure  float32
	SRGBGamma float32
	InvGamma  float32
}

// DefaultLightConfig returns a key light from the upper right, a cool rim
// from behind and a soft hemisphere fill.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{180, 260, 140}.Normalize()
	rimDir := mathutil.Vec3{-160, 130, -210}.Normalize()
	viewDir := mathutil.Vec3{0, -110, -400}.Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  lightDir.Sub(viewDir).Normalize(),
		Ambient:   0.55,
		Hemi:      0.50,
		Direct:    1.50,
		Rim:       0.60,
		SpecInt:   0.45,
		SpecPow:   12,
		Exposure:  1.05,
		SRGBGamma: 2.2,
		InvGamma:  1 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal.
// Diffuse terms use |n·l| so faces are lit from both sides.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float32 {
	ndlMain := math32.Abs(normal.Dot(lc.LightDir))
	ndlRim := math32.Abs(normal.Dot(lc.RimDir))

	hemi := (1-math32.Abs(normal[1]))*0.5 + 0.5

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math32.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Apply shades one sRGB texel: decode to linear, scale by shade and
// exposure, tone map, and encode back.
func (lc *LightConfig) Apply(r, g, b uint8, shade float32) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	enc := func(c uint8) uint8 {
		t := ACESTonemap(srgbToLinear[c] * k)
		return clamp255(math32.Pow(t, lc.InvGamma) * 255)
	}
	return enc(r), enc(g), enc(b)
}

// sRGB-to-linear lookup, gamma 2.2.
var srgbToLinear [256]float32

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math32.Pow(float32(i)/255, 2.2)
	}
}

// ACESTonemap applies the ACES filmic curve to a linear value. The result
// is clamped to [0, 1].
func ACESTonemap(x float32) float32 {
	y := (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
	return mathutil.Clamp(y, 0, 1)
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
