// Package obj reads Wavefront OBJ geometry: positions, normals, texture
// coordinates and faces. Materials and groups are ignored.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"tinylib/internal/mathutil"
)

// ErrFace reports a face record that cannot be turned into triangles.
var ErrFace = errors.New("malformed face")

// ErrValue reports a NaN or infinite number in a vertex record.
var ErrValue = errors.New("non-finite value")

// Load reads and parses the OBJ file at path.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("obj: parse %s: %w", path, err)
	}
	return m, nil
}

// Parse reads OBJ records from r. Faces with more than three corners are
// split into a triangle fan around their first corner.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			m.Vertices = append(m.Vertices, mathutil.Vec3{v[0], v[1], v[2]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			m.Normals = append(m.Normals, mathutil.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", line, err)
			}
			m.TexCoords = append(m.TexCoords, mathutil.Vec2{v[0], 1 - v[1]})
		case "f":
			if err := m.addFace(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		v := float32(f)
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q", ErrValue, fields[i])
		}
		out[i] = v
	}
	return out, nil
}

func (m *Mesh) addFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: %d corners", ErrFace, len(fields))
	}
	corners := make([]Corner, len(fields))
	for i, f := range fields {
		c, err := m.parseCorner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	for i := 1; i+1 < len(corners); i++ {
		m.Faces = append(m.Faces, Face{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

// parseCorner reads v, v/t, v//n or v/t/n. Negative indices count back from
// the most recent element, as in the OBJ format.
func (m *Mesh) parseCorner(s string) (Corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return Corner{}, fmt.Errorf("%w: %q", ErrFace, s)
	}
	idx := [3]int{-1, -1, -1}
	counts := [3]int{len(m.Vertices), len(m.TexCoords), len(m.Normals)}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return Corner{}, fmt.Errorf("%w: %q has no vertex index", ErrFace, s)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n == 0 {
			return Corner{}, fmt.Errorf("%w: bad index %q", ErrFace, s)
		}
		if n < 0 {
			idx[i] = counts[i] + n
		} else {
			idx[i] = n - 1
		}
	}
	if idx[0] < 0 || idx[0] >= len(m.Vertices) {
		return Corner{}, fmt.Errorf("%w: vertex %q out of range", ErrFace, s)
	}
	return Corner{V: idx[0], T: idx[1], N: idx[2]}, nil
}
