package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/autobahn/pkg/math"
)

// Mesh holds triangle data ready for GPU upload.
//
// GPU resources created for a mesh are released through OnDispose hooks,
// so the owner of the mesh never has to know about the renderer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	disposed  bool
	onDispose []func()
}

// Triangle is three corner positions in counter-clockwise order.
type Triangle [3]math.Vec3

// FromTriangles builds a flat-shaded mesh from a triangle soup.
// Degenerate triangles are skipped.
func FromTriangles(name string, tris []Triangle, opts BuildOptions) *Mesh {
	vertices := make([]Vertex, 0, len(tris)*3)
	indices := make([]uint32, 0, len(tris)*3)
	bounds := EmptyBounds()

	for _, tri := range tris {
		a, b, c := tri[0], tri[1], tri[2]
		if opts.ReverseWinding {
			b, c = c, b
		}

		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-8 {
			continue
		}
		normal := n.Normalize().Array()

		base := uint32(len(vertices))
		for _, p := range [3]math.Vec3{a, b, c} {
			pos := p.Array()
			vertices = append(vertices, Vertex{Position: pos, Normal: normal})
			updateBounds(&bounds, pos)
		}
		indices = append(indices, base, base+1, base+2)
	}

	if opts.Smooth {
		SmoothNormals(vertices)
	}

	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangles returns the positions of every indexed triangle.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		out = append(out, Triangle{
			math.FromArray(m.Vertices[m.Indices[i]].Position),
			math.FromArray(m.Vertices[m.Indices[i+1]].Position),
			math.FromArray(m.Vertices[m.Indices[i+2]].Position),
		})
	}
	return out
}

// Transform applies m to every position and normal in place.
func (m *Mesh) Transform(mat math.Mat4) {
	m.Bounds = EmptyBounds()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.TransformPoint(v.Position)
		v.Normal = math.FromArray(mat.TransformDirection(v.Normal)).Normalize().Array()
		updateBounds(&m.Bounds, v.Position)
	}
}

// OnDispose registers fn to run when the mesh is disposed. If the mesh is
// already disposed, fn runs immediately.
func (m *Mesh) OnDispose(fn func()) {
	if m.disposed {
		fn()
		return
	}
	m.onDispose = append(m.onDispose, fn)
}

// Dispose runs the registered hooks and drops vertex data.
// Calling it more than once is a no-op.
func (m *Mesh) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	hooks := m.onDispose
	m.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
	m.Vertices = nil
	m.Indices = nil
}

// Disposed reports whether Dispose has run.
func (m *Mesh) Disposed() bool {
	return m.disposed
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on the car shell.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(math32.Round(vertices[i].Position[0] / epsilon)),
			int32(math32.Round(vertices[i].Position[1] / epsilon)),
			int32(math32.Round(vertices[i].Position[2] / epsilon)),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(math.FromArray(vertices[idx].Normal))
		}
		if sum.Length() < 1e-6 {
			continue
		}

		avg := sum.Normalize().Array()
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
