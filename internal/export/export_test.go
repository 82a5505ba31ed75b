package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	gomath "math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/random"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

func boxScene() *scene.Node {
	root := scene.NewNode("root")
	root.Position = math.V3(100, 0, 0) // ignored by the writers

	a := scene.NewMeshNode("box", &scene.Mesh{Geometry: geometry.NewBox(1, 1, 1)})
	a.Position = math.V3(0, 5, 0)
	b := scene.NewMeshNode("box", &scene.Mesh{Geometry: geometry.NewBox(2, 2, 2)})
	hidden := scene.NewMeshNode("hidden", &scene.Mesh{Geometry: geometry.NewBox(1, 1, 1)})
	hidden.Visible = false

	root.Add(a, b, hidden)
	return root
}

func lines(t *testing.T, s, prefix string) []string {
	t.Helper()
	var out []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), prefix) {
			out = append(out, sc.Text())
		}
	}
	return out
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	st, err := WriteOBJ(&buf, boxScene())
	require.NoError(t, err)

	assert.Equal(t, Stats{Objects: 2, Vertices: 48, Triangles: 24}, st)

	out := buf.String()
	assert.Equal(t, []string{"o box", "o box_2"}, lines(t, out, "o "))
	assert.Len(t, lines(t, out, "v "), 48)
	assert.Len(t, lines(t, out, "vn "), 48)

	faces := lines(t, out, "f ")
	require.Len(t, faces, 24)
	// second object indexes past the first one's 24 vertices
	assert.True(t, strings.HasPrefix(faces[12], "f 25//25"), faces[12])

	// the first box is lifted by its node transform
	assert.Equal(t, "v 0.5 4.5 0.5", lines(t, out, "v ")[0])
}

func TestWriteSTL(t *testing.T) {
	var buf bytes.Buffer
	st, err := WriteSTL(&buf, boxScene())
	require.NoError(t, err)
	require.Equal(t, 24, st.Triangles)

	data := buf.Bytes()
	require.Len(t, data, 84+50*24)
	assert.Equal(t, uint32(24), binary.LittleEndian.Uint32(data[80:84]))
	assert.True(t, bytes.HasPrefix(data, []byte("autobahn root")))

	// facet normals are unit length
	for i := 0; i < 24; i++ {
		rec := data[84+50*i:]
		var n [3]float32
		for k := range n {
			n[k] = gomath.Float32frombits(binary.LittleEndian.Uint32(rec[k*4:]))
		}
		assert.InDelta(t, 1, math.FromArray(n).Length(), 1e-5)
	}
}

func TestWriteCar(t *testing.T) {
	c, err := car.Build(random.New(random.NewSeeded(7)), car.DefaultOptions())
	require.NoError(t, err)

	want := 0
	c.Root.WalkWorld(math.Identity(), func(n *scene.Node, _ math.Mat4) {
		if n.Mesh != nil {
			want += n.Mesh.Geometry.TriangleCount()
		}
	})

	for _, f := range []Format{FormatOBJ, FormatSTL} {
		var buf bytes.Buffer
		st, err := Write(&buf, c.Root, f)
		require.NoError(t, err, f)
		assert.Equal(t, want, st.Triangles, f)
		assert.Equal(t, 9, st.Objects, f)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("STL")
	require.NoError(t, err)
	assert.Equal(t, FormatSTL, f)
	assert.Equal(t, ".stl", f.Ext())

	_, err = ParseFormat("ply")
	assert.Error(t, err)
}
