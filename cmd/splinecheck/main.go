package main

import (
	"flag"
	"fmt"

	"tinylib/internal/mathutil"
	"tinylib/internal/spline"
)

func main() {
	samples := flag.Int("n", 11, "Samples per curve")
	flag.Parse()

	// Scalar curve through 1, 3, 6, 5.
	s := spline.NewScalar[float32](1, 3, 6, 5)
	fmt.Printf("Scalar spline over [1 3 6 5], %d samples:\n", *samples)
	for i, v := range s.Sample(*samples) {
		t := float32(i) / float32(max(*samples, 1))
		fmt.Printf("  t=%.2f  %8.4f\n", t, v)
	}

	// The same values in every component of a Vec3.
	vs := spline.New(
		mathutil.Splat3(1), mathutil.Splat3(3), mathutil.Splat3(6), mathutil.Splat3(5),
	)
	fmt.Printf("\nVec3 spline at t=0.5: %v (scalar %.4f)\n", vs.At(0.5), s.At(0.5))

	fmt.Println("\nHSV round trip:")
	for _, rgb := range []mathutil.Vec3{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}, {0.2, 0.4, 0.6}, {0.5, 0.5, 0.5},
	} {
		hsv := mathutil.RGBToHSV(rgb)
		back := mathutil.HSVToRGB(hsv)
		mark := "ok"
		if !back.Approx(rgb, 1e-4) {
			mark = "MISMATCH"
		}
		fmt.Printf("  rgb=%v hsv=%v back=%v %s\n", rgb, hsv, back, mark)
	}

	// Column-major MVP as it would be uploaded.
	var proj, view mathutil.Mat4
	proj.Perspective(45, 1, 0.1, 100)
	view.LookAt(mathutil.Vec3{0, 0, 3}, mathutil.Vec3{}, mathutil.Vec3{0, 1, 0})
	mvp := mathutil.Mat4Mul(proj, view)
	fmt.Println("\nPerspective(45) x LookAt((0,0,3) -> origin), column-major:")
	f := mvp.Slice()
	for c := 0; c < 4; c++ {
		fmt.Printf("  col %d: % .4f % .4f % .4f % .4f\n", c, f[c*4], f[c*4+1], f[c*4+2], f[c*4+3])
	}
	ndc, w := mvp.Project(mathutil.Vec3{})
	fmt.Printf("  origin -> ndc %v (w=%.2f)\n", ndc, w)
}
