package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"tinylib/internal/config"
	"tinylib/internal/imageio"
	"tinylib/internal/mathutil"
	"tinylib/internal/noise"
	"tinylib/internal/obj"
	"tinylib/internal/raster"
)

// ErrEmptyMesh is returned by MeshRender for an OBJ file without faces.
var ErrEmptyMesh = errors.New("batch: mesh has no faces")

// NoiseTile renders one square tile of a Perlin heightmap. Tile (Col, Row)
// covers the unit square at that offset in noise space, so neighbouring
// tiles continue each other. The generator is shared between tiles and
// should be pre-warmed with Init before the pool starts.
type NoiseTile struct {
	Perlin  *noise.Perlin
	Col     int
	Row     int
	Size    int
	Path    string
	Quality int
}

func (t *NoiseTile) Name() string   { return fmt.Sprintf("noise %d,%d", t.Col, t.Row) }
func (t *NoiseTile) Output() string { return t.Path }

// Run samples the tile and writes it as a grayscale image. Values map
// linearly from [-Amp, Amp] to [0, 255].
func (t *NoiseTile) Run(ctx context.Context) error {
	if t.Size <= 0 {
		return fmt.Errorf("batch: tile size %d", t.Size)
	}
	vals := make([]float32, t.Size*t.Size)
	t.Perlin.Fill(vals, t.Size, t.Size, float32(t.Col), float32(t.Row), 1/float32(t.Size))
	if err := ctx.Err(); err != nil {
		return err
	}

	amp := t.Perlin.Amp()
	if amp == 0 {
		amp = 1
	}
	gray := make([]byte, len(vals))
	for i, v := range vals {
		g := mathutil.Clamp(0.5+0.5*v/amp, 0, 1)
		gray[i] = uint8(g*255 + 0.5)
	}
	return imageio.SavePixels(t.Path, gray, t.Size, t.Size, 1, imageio.Options{Quality: t.Quality})
}

// MeshRender draws one OBJ file. The mesh is fitted into the [-1, 1] cube,
// rotated by Camera.Rotate, viewed from Camera.Eye and rendered at
// Size*Supersample before downsampling to Size.
type MeshRender struct {
	Path        string
	Out         string
	Camera      config.Camera
	Size        int
	Supersample int
	Quality     int
	Fill        float32        // > 0 crops to the visible pixels and rescales to this share of Size
	Despeckle   float32        // > 0 drops pixel groups smaller than this share of the visible area
	Textures    *imageio.Cache // optional, looked up by the OBJ file stem
}

func (m *MeshRender) Name() string   { return filepath.Base(m.Path) }
func (m *MeshRender) Output() string { return m.Out }

func (m *MeshRender) Run(ctx context.Context) error {
	if m.Size <= 0 {
		return fmt.Errorf("batch: render size %d", m.Size)
	}
	mesh, err := obj.Load(m.Path)
	if err != nil {
		return err
	}
	if len(mesh.Faces) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyMesh, m.Path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ss := max(m.Supersample, 1)
	renderSize := m.Size * ss
	fb := raster.NewFrameBuffer(renderSize, renderSize)

	r := raster.NewRenderer()
	rot := m.Camera.Rotate
	q := mathutil.EulerToQuat(mathutil.DegToRad(rot[0]), mathutil.DegToRad(rot[1]), mathutil.DegToRad(rot[2]))
	r.Model = mathutil.Mat4Mul(q.Mat4(), raster.FitModel(mesh.Bounds()))
	r.View.LookAt(m.Camera.Eye, m.Camera.Target, m.Camera.Up)
	r.Projection.Perspective(m.Camera.FOV, 1, 0.1, 100)

	if m.Textures != nil && mesh.HasTexCoords() {
		stem := strings.TrimSuffix(filepath.Base(m.Path), filepath.Ext(m.Path))
		r.Texture = m.Textures.Resolve(stem)
	}

	r.DrawMesh(fb, mesh.Triangles())

	img := fb.Image()
	if m.Despeckle > 0 {
		img = imageio.RemoveSpecks(img, m.Despeckle)
	}
	if m.Fill > 0 {
		img = imageio.Fit(img, m.Size, m.Fill)
	} else {
		img = imageio.Resize(img, m.Size, m.Size)
	}
	return imageio.Save(m.Out, img, imageio.Options{Quality: m.Quality})
}
