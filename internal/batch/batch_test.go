package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tinylib/internal/config"
	"tinylib/internal/imageio"
	"tinylib/internal/mathutil"
	"tinylib/internal/noise"
	"tinylib/internal/obj"
)

type fakeJob struct {
	name  string
	delay time.Duration
	err   error
	runs  *atomic.Int64
}

func (j fakeJob) Name() string { return j.name }

func (j fakeJob) Run(ctx context.Context) error {
	if j.runs != nil {
		j.runs.Add(1)
	}
	time.Sleep(j.delay)
	return j.err
}

func TestRun_KeepsOrder(t *testing.T) {
	boom := errors.New("boom")
	var jobs []Job
	for i := 0; i < 12; i++ {
		j := fakeJob{name: fmt.Sprint(i), delay: time.Duration(12-i) * time.Millisecond}
		if i%5 == 0 {
			j.err = boom
		}
		jobs = append(jobs, j)
	}

	results := Run(context.Background(), Config{Workers: 4, Progress: time.Millisecond}, jobs)
	if len(results) != len(jobs) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Name != fmt.Sprint(i) {
			t.Errorf("results[%d].Name = %q", i, r.Name)
		}
		if wantErr := i%5 == 0; wantErr != errors.Is(r.Err, boom) {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
	}
	if n := Failed(results); n != 3 {
		t.Errorf("Failed = %d, want 3", n)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var runs atomic.Int64
	jobs := []Job{fakeJob{name: "a", runs: &runs}, fakeJob{name: "b", runs: &runs}}
	for _, r := range Run(ctx, Config{Workers: 2}, jobs) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: err = %v, want context.Canceled", r.Name, r.Err)
		}
	}
	if runs.Load() != 0 {
		t.Errorf("%d jobs ran after cancellation", runs.Load())
	}
}

type panicJob struct{}

func (panicJob) Name() string { return "panic" }

func (panicJob) Run(context.Context) error {
	panic("index out of range")
}

func TestRun_RecoversPanic(t *testing.T) {
	jobs := []Job{fakeJob{name: "a"}, panicJob{}, fakeJob{name: "b"}}
	results := Run(context.Background(), Config{Workers: 2}, jobs)
	if !errors.Is(results[1].Err, ErrPanic) {
		t.Errorf("panicking job err = %v, want ErrPanic", results[1].Err)
	}
	if !results[0].OK() || !results[2].OK() {
		t.Errorf("neighbours failed: %v, %v", results[0].Err, results[2].Err)
	}
}

func TestRun_Empty(t *testing.T) {
	if got := Run(context.Background(), Config{}, nil); len(got) != 0 {
		t.Errorf("Run(nil) = %v", got)
	}
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{Name: "ok", Output: filepath.Join(dir, "tiles", "0_0.png")},
		{Name: "bad", Err: errors.New("no faces")},
	}
	path := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(path, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	want := []ManifestEntry{
		{Name: "ok", Output: "tiles/0_0.png", OK: true},
		{Name: "bad", Error: "no faces"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("manifest (-want +got):\n%s", diff)
	}

	if _, err := ReadManifest(filepath.Join(dir, "none.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing manifest: %v", err)
	}
}

func TestNoiseTile(t *testing.T) {
	p := noise.NewPerlin(4, 4, 1, 94)
	p.Init()
	dir := t.TempDir()

	var jobs []Job
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			jobs = append(jobs, &NoiseTile{
				Perlin: p, Col: col, Row: row, Size: 16,
				Path: filepath.Join(dir, fmt.Sprintf("%d_%d.png", col, row)),
			})
		}
	}
	for _, r := range Run(context.Background(), Config{Workers: 4}, jobs) {
		if !r.OK() {
			t.Fatalf("%s: %v", r.Name, r.Err)
		}
	}

	img, err := imageio.Load(filepath.Join(dir, "1_0.png"))
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 16 || img.Rect.Dy() != 16 {
		t.Fatalf("tile size %v", img.Rect)
	}

	// Recompute one pixel directly from the generator.
	want := p.Get2(1+5.0/16, 2.0/16)
	g := uint8(mathutil.Clamp(0.5+0.5*want, 0, 1)*255 + 0.5)
	i := img.PixOffset(5, 2)
	if d := int(img.Pix[i]) - int(g); d < -1 || d > 1 {
		t.Errorf("pixel (5,2) = %d, want %d", img.Pix[i], g)
	}
	if img.Pix[i] != img.Pix[i+1] || img.Pix[i+3] != 255 {
		t.Errorf("tile is not opaque gray: %v", img.Pix[i:i+4])
	}

	bad := &NoiseTile{Perlin: p, Size: 0, Path: filepath.Join(dir, "x.png")}
	if err := bad.Run(context.Background()); err == nil {
		t.Errorf("zero-size tile accepted")
	}
}

const quadOBJ = `
v -1 -1 0
v  1 -1 0
v  1  1 0
v -1  1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func defaultCamera() config.Camera {
	var cfg config.Config
	cfg.DataDir = "unused"
	cfg.Resolve(config.Flags{})
	return cfg.Camera
}

func TestMeshRender(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(objPath, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	job := &MeshRender{
		Path:        objPath,
		Out:         filepath.Join(dir, "out", "quad.webp"),
		Camera:      defaultCamera(),
		Size:        24,
		Supersample: 2,
	}
	if job.Name() != "quad.obj" {
		t.Errorf("Name = %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	img, err := imageio.Load(job.Out)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 24 || img.Rect.Dy() != 24 {
		t.Fatalf("output size %v", img.Rect)
	}
	if a := img.Pix[img.PixOffset(12, 12)+3]; a < 250 {
		t.Errorf("centre alpha = %d, want the quad to cover it", a)
	}
	if a := img.Pix[img.PixOffset(0, 0)+3]; a != 0 {
		t.Errorf("corner alpha = %d, want background", a)
	}

	job.Out = filepath.Join(dir, "out", "quad_fit.png")
	job.Fill = 1
	job.Despeckle = 0.05
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run with Fill: %v", err)
	}
	fitted, err := imageio.Load(job.Out)
	if err != nil {
		t.Fatal(err)
	}
	if b := imageio.AlphaBounds(fitted); b.Dx() < 22 || b.Dy() < 22 {
		t.Errorf("fitted quad covers %v, want nearly the whole 24px canvas", b)
	}
}

func TestMeshRender_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.obj")
	if err := os.WriteFile(empty, []byte("v 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nanUV := filepath.Join(dir, "nanuv.obj")
	src := "v -1 -1 0\nv 1 -1 0\nv 0 1 0\nvt nan 0\nf 1/1 2/1 3/1\n"
	if err := os.WriteFile(nanUV, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		job  MeshRender
		want error
	}{
		{"missing", MeshRender{Path: filepath.Join(dir, "none.obj"), Size: 8}, os.ErrNotExist},
		{"empty", MeshRender{Path: empty, Size: 8}, ErrEmptyMesh},
		{"nan texcoord", MeshRender{Path: nanUV, Size: 8}, obj.ErrValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.job.Camera = defaultCamera()
			tt.job.Out = filepath.Join(dir, tt.name+".png")
			if err := tt.job.Run(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
