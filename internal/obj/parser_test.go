package obj

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tinylib/internal/mathutil"
)

const quad = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParse_QuadIsFanned(t *testing.T) {
	m, err := Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Face{
		{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}},
		{{0, 0, 0}, {2, 2, 0}, {3, 3, 0}},
	}
	if diff := cmp.Diff(want, m.Faces); diff != "" {
		t.Errorf("faces (-want +got):\n%s", diff)
	}
	if !m.HasNormals() || !m.HasTexCoords() {
		t.Errorf("HasNormals=%v HasTexCoords=%v", m.HasNormals(), m.HasTexCoords())
	}
}

func TestParse_TexCoordFlip(t *testing.T) {
	m, err := Parse(strings.NewReader("vt 0.25 0.75\nvt 1 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []mathutil.Vec2{{0.25, 0.25}, {1, 1}}
	if diff := cmp.Diff(want, m.TexCoords); diff != "" {
		t.Errorf("texcoords (-want +got):\n%s", diff)
	}
}

func TestTriangles(t *testing.T) {
	src := `v 0 0 0
v 2 0 0
v 0 3 0
f 1 2 3
`
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if m.HasNormals() || m.HasTexCoords() {
		t.Errorf("mesh without vn/vt reports them")
	}
	got := m.Triangles()
	want := []Vertex{
		{Pos: mathutil.Vec3{0, 0, 0}},
		{Pos: mathutil.Vec3{2, 0, 0}},
		{Pos: mathutil.Vec3{0, 3, 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Triangles (-want +got):\n%s", diff)
	}

	m, err = Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatal(err)
	}
	tris := m.Triangles()
	if len(tris) != 6 {
		t.Fatalf("quad gave %d vertices, want 6", len(tris))
	}
	if tris[2].UV != (mathutil.Vec2{1, 0}) || tris[2].Normal != (mathutil.Vec3{0, 0, 1}) {
		t.Errorf("third corner = %+v", tris[2])
	}
}

func TestParse_CornerForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1//1 2//1 3//1
f 1/1 2/1 3/1
f -3 -2 -1
`
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []Face{
		{{0, -1, 0}, {1, -1, 0}, {2, -1, 0}},
		{{0, 0, -1}, {1, 0, -1}, {2, 0, -1}},
		{{0, -1, -1}, {1, -1, -1}, {2, -1, -1}},
	}
	if diff := cmp.Diff(want, m.Faces); diff != "" {
		t.Errorf("faces (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		errFace  bool
		errValue bool
	}{
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n", true, false},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 x 3\n", true, false},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n", true, false},
		{"vertex out of range", "v 0 0 0\nf 1 2 3\n", true, false},
		{"short vertex", "v 1 2\n", false, false},
		{"bad float", "vn 1 a 0\n", false, false},
		{"nan texcoord", "vt nan 0\n", false, true},
		{"inf position", "v inf 0 0\n", false, true},
		{"float32 overflow", "v 1e39 0 0\n", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrFace); got != tt.errFace {
				t.Errorf("errors.Is(ErrFace) = %v for %v", got, err)
			}
			if got := errors.Is(err, ErrValue); got != tt.errValue {
				t.Errorf("errors.Is(ErrValue) = %v for %v", got, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quad), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lo, hi := m.Bounds()
	if lo != (mathutil.Vec3{0, 0, 0}) || hi != (mathutil.Vec3{1, 1, 0}) {
		t.Errorf("Bounds = %v %v", lo, hi)
	}

	_, err = Load(filepath.Join(dir, "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestBounds_Empty(t *testing.T) {
	var m Mesh
	lo, hi := m.Bounds()
	if lo != (mathutil.Vec3{}) || hi != (mathutil.Vec3{}) {
		t.Errorf("empty Bounds = %v %v", lo, hi)
	}
}
