package mathutil

import "github.com/chewxy/math32"

// RGBToHSV converts an RGB colour to HSV. All channels, including hue, are
// in [0, 1].
func RGBToHSV(rgb Vec3) Vec3 {
	r, g, b := rgb[0], rgb[1], rgb[2]
	var k float32

	if g < b {
		g, b = b, g
		k = -1
	}
	if r < g {
		r, g = g, r
		k = -2.0/6.0 - k
	}

	chroma := r - math32.Min(g, b)
	h := math32.Abs(k + (g-b)/(6*chroma+1e-20))
	s := chroma / (r + 1e-20)
	return Vec3{h, s, r}
}

// HSVToRGB converts an HSV colour (all channels in [0, 1]) to RGB.
func HSVToRGB(hsv Vec3) Vec3 {
	h, s, v := hsv[0], hsv[1], hsv[2]
	r := Clamp(-1+math32.Abs(6*h-3), 0, 1)
	g := Clamp(2-math32.Abs(6*h-2), 0, 1)
	b := Clamp(2-math32.Abs(6*h-4), 0, 1)
	p := 1 - s
	return Vec3{v * (p + r*s), v * (p + g*s), v * (p + b*s)}
}
