package obj

import "tinylib/internal/mathutil"

// Corner indexes one face corner into the mesh arrays (0-based). T and N are
// -1 when the record did not give them.
type Corner struct {
	V, T, N int
}

// Face is a triangle. Polygons are fanned into several Faces on load.
type Face [3]Corner

// Mesh holds the geometry of one OBJ file.
type Mesh struct {
	Vertices  []mathutil.Vec3
	Normals   []mathutil.Vec3
	TexCoords []mathutil.Vec2 // v already flipped to 1-v
	Faces     []Face
}

// Vertex is one flattened triangle corner.
type Vertex struct {
	Pos    mathutil.Vec3
	Normal mathutil.Vec3
	UV     mathutil.Vec2
}

func (m *Mesh) HasNormals() bool   { return len(m.Normals) > 0 }
func (m *Mesh) HasTexCoords() bool { return len(m.TexCoords) > 0 }

// Triangles flattens the faces into three Vertex values each. Missing or
// out-of-range normal and texcoord references come out as zero.
func (m *Mesh) Triangles() []Vertex {
	out := make([]Vertex, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for _, c := range f {
			var v Vertex
			v.Pos = m.Vertices[c.V]
			if c.N >= 0 && c.N < len(m.Normals) {
				v.Normal = m.Normals[c.N]
			}
			if c.T >= 0 && c.T < len(m.TexCoords) {
				v.UV = m.TexCoords[c.T]
			}
			out = append(out, v)
		}
	}
	return out
}

// Bounds returns the axis-aligned box around all vertices, or two zero
// vectors for an empty mesh.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return
}
