// Package export writes the meshes of a scene subtree as Wavefront OBJ or
// binary STL, with node transforms applied.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	gomath "math"
	"strings"

	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Format is an output file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatSTL:
		return "stl"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts "obj" or "stl", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "obj":
		return FormatOBJ, nil
	case "stl":
		return FormatSTL, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", s)
	}
}

// Stats counts what a writer emitted.
type Stats struct {
	Objects   int
	Vertices  int
	Triangles int
}

// Write dispatches to the writer for f.
func Write(w io.Writer, root *scene.Node, f Format) (Stats, error) {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, root)
	case FormatSTL:
		return WriteSTL(w, root)
	default:
		return Stats{}, fmt.Errorf("unknown export format %v", f)
	}
}

// worldMesh is one visible mesh node with its vertices in root space.
type worldMesh struct {
	name      string
	positions [][3]float32
	normals   [][3]float32
	indices   []uint32
}

// collect flattens the visible mesh nodes under root into root space. The
// root's own transform is not applied.
func collect(root *scene.Node) []worldMesh {
	var out []worldMesh
	seen := make(map[string]int)

	visit := func(n *scene.Node, world math.Mat4) {
		if n.Mesh == nil || n.Mesh.Geometry == nil || n.Mesh.Geometry.Disposed() {
			return
		}
		g := n.Mesh.Geometry
		wm := worldMesh{
			name:      uniqueName(seen, n.Name),
			positions: make([][3]float32, len(g.Vertices)),
			normals:   make([][3]float32, len(g.Vertices)),
			indices:   g.Indices,
		}
		for i, v := range g.Vertices {
			wm.positions[i] = world.TransformPoint(v.Position)
			wm.normals[i] = math.FromArray(world.TransformDirection(v.Normal)).Normalize().Array()
		}
		out = append(out, wm)
	}

	visit(root, math.Identity())
	for _, c := range root.Children() {
		c.WalkWorld(math.Identity(), visit)
	}
	return out
}

func uniqueName(seen map[string]int, name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "mesh"
	}
	seen[name]++
	if n := seen[name]; n > 1 {
		return fmt.Sprintf("%s_%d", name, n)
	}
	return name
}

// WriteOBJ writes one object per mesh node. Vertex indices are global and
// 1-based, as the format requires.
func WriteOBJ(w io.Writer, root *scene.Node) (Stats, error) {
	bw := bufio.NewWriter(w)
	var st Stats

	fmt.Fprintf(bw, "# %s\n", root.Name)
	base := uint32(1)
	for _, m := range collect(root) {
		fmt.Fprintf(bw, "o %s\n", m.name)
		for _, p := range m.positions {
			fmt.Fprintf(bw, "v %s %s %s\n", ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
		}
		for _, n := range m.normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
		}
		for i := 0; i+2 < len(m.indices); i += 3 {
			a, b, c := base+m.indices[i], base+m.indices[i+1], base+m.indices[i+2]
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			st.Triangles++
		}
		base += uint32(len(m.positions))
		st.Vertices += len(m.positions)
		st.Objects++
	}

	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("writing obj: %w", err)
	}
	return st, nil
}

func ftoa(f float32) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", f), "0"), ".")
}

const stlHeaderSize = 80

// WriteSTL writes a binary STL with every triangle of every mesh node.
// Facet normals are recomputed from the transformed corners.
func WriteSTL(w io.Writer, root *scene.Node) (Stats, error) {
	meshes := collect(root)

	var st Stats
	for _, m := range meshes {
		st.Objects++
		st.Vertices += len(m.positions)
		st.Triangles += len(m.indices) / 3
	}

	bw := bufio.NewWriter(w)
	var header [stlHeaderSize]byte
	copy(header[:], "autobahn "+root.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return st, fmt.Errorf("writing stl header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(st.Triangles)); err != nil {
		return st, fmt.Errorf("writing stl header: %w", err)
	}

	var rec [50]byte
	for _, m := range meshes {
		for i := 0; i+2 < len(m.indices); i += 3 {
			a := math.FromArray(m.positions[m.indices[i]])
			b := math.FromArray(m.positions[m.indices[i+1]])
			c := math.FromArray(m.positions[m.indices[i+2]])
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()

			putVec(rec[0:], n)
			putVec(rec[12:], a)
			putVec(rec[24:], b)
			putVec(rec[36:], c)
			binary.LittleEndian.PutUint16(rec[48:], 0)
			if _, err := bw.Write(rec[:]); err != nil {
				return st, fmt.Errorf("writing stl facet: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("writing stl: %w", err)
	}
	return st, nil
}

func putVec(b []byte, v math.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], gomath.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], gomath.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], gomath.Float32bits(v.Z))
}
