package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/autobahn/pkg/math"
)

// NewCylinder builds a capped cylinder (or frustum) centered on the origin
// with its axis along Y. A zero radius omits that cap.
func NewCylinder(radiusTop, radiusBottom, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: "cylinder", Bounds: EmptyBounds()}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	// Side: one top and one bottom vertex per column, seam duplicated for UVs.
	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		theta := u * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		normal := math.V3(sin, slope, cos).Normalize().Array()
		m.addVertex(Vertex{
			Position: [3]float32{radiusTop * sin, half, radiusTop * cos},
			Normal:   normal,
			TexCoord: [2]float32{u, 1},
		})
		m.addVertex(Vertex{
			Position: [3]float32{radiusBottom * sin, -half, radiusBottom * cos},
			Normal:   normal,
			TexCoord: [2]float32{u, 0},
		})
	}
	for i := 0; i < segments; i++ {
		a := uint32(i * 2)
		b, c, d := a+1, a+3, a+2
		m.Indices = append(m.Indices, a, b, d, b, c, d)
	}

	if radiusTop > 0 {
		m.addCap(radiusTop, half, 1, segments)
	}
	if radiusBottom > 0 {
		m.addCap(radiusBottom, -half, -1, segments)
	}
	return m
}

func (m *Mesh) addCap(radius, y, sign float32, segments int) {
	center := uint32(len(m.Vertices))
	normal := [3]float32{0, sign, 0}
	m.addVertex(Vertex{Position: [3]float32{0, y, 0}, Normal: normal, TexCoord: [2]float32{0.5, 0.5}})
	for i := 0; i <= segments; i++ {
		theta := float32(i) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		m.addVertex(Vertex{
			Position: [3]float32{radius * sin, y, radius * cos},
			Normal:   normal,
			TexCoord: [2]float32{sin*0.5 + 0.5, cos*0.5*sign + 0.5},
		})
	}
	for i := uint32(0); i < uint32(segments); i++ {
		cur, next := center+1+i, center+2+i
		if sign > 0 {
			m.Indices = append(m.Indices, center, cur, next)
		} else {
			m.Indices = append(m.Indices, center, next, cur)
		}
	}
}

// NewBox builds an axis-aligned box centered on the origin.
func NewBox(width, height, depth float32) *Mesh {
	m := &Mesh{Name: "box", Bounds: EmptyBounds()}
	hx, hy, hz := width/2, height/2, depth/2

	faces := []struct {
		n, u, v    math.Vec3
		hn, hu, hv float32
	}{
		{math.V3(1, 0, 0), math.V3(0, 0, -1), math.V3(0, 1, 0), hx, hz, hy},
		{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0), hx, hz, hy},
		{math.V3(0, 1, 0), math.V3(1, 0, 0), math.V3(0, 0, -1), hy, hx, hz},
		{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1), hy, hx, hz},
		{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0), hz, hx, hy},
		{math.V3(0, 0, -1), math.V3(-1, 0, 0), math.V3(0, 1, 0), hz, hx, hy},
	}
	for _, f := range faces {
		m.addQuad(f.n.Scale(f.hn), f.n, f.u.Scale(f.hu), f.v.Scale(f.hv))
	}
	return m
}

// NewPlane builds a width x height quad in the XY plane facing +Z.
func NewPlane(width, height float32) *Mesh {
	m := &Mesh{Name: "plane", Bounds: EmptyBounds()}
	m.addQuad(math.Vec3{}, math.V3(0, 0, 1), math.V3(width/2, 0, 0), math.V3(0, height/2, 0))
	return m
}

// addQuad appends a quad at center spanning ±u and ±v. u×v must point
// along normal for the quad to face outward.
func (m *Mesh) addQuad(center, normal, u, v math.Vec3) {
	base := uint32(len(m.Vertices))
	n := normal.Array()
	corners := [4]struct {
		su, sv float32
	}{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, c := range corners {
		p := center.Add(u.Scale(c.su)).Add(v.Scale(c.sv))
		m.addVertex(Vertex{
			Position: p.Array(),
			Normal:   n,
			TexCoord: [2]float32{(c.su + 1) / 2, (c.sv + 1) / 2},
		})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

func (m *Mesh) addVertex(v Vertex) {
	m.Vertices = append(m.Vertices, v)
	updateBounds(&m.Bounds, v.Position)
}
