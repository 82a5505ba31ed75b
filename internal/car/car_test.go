package car

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/random"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

func build(t *testing.T, seed uint64, opts Options) *Composite {
	t.Helper()
	c, err := Build(random.New(random.NewSeeded(seed)), opts)
	require.NoError(t, err)
	return c
}

func countMeshes(root *scene.Node) (meshes, lights int) {
	root.Walk(func(n *scene.Node) bool {
		if n.Mesh != nil {
			meshes++
		}
		if n.Light != nil {
			lights++
		}
		return true
	})
	return meshes, lights
}

func TestBuildWithoutLights(t *testing.T) {
	c := build(t, 1, DefaultOptions())

	meshes, lights := countMeshes(c.Root)
	assert.Equal(t, 1+4+4, meshes)
	assert.Equal(t, 0, lights)
	assert.Len(t, c.Wheels(), 4)
	assert.Len(t, c.Fixtures(), 4)
	assert.Empty(t, c.Lights())
	require.NotNil(t, c.Shell.Mesh)

	anchor := c.DriverAnchor()
	assert.True(t, anchor.IsFinite())
	assert.Same(t, c.Anchor(), c.Root.Find(DriverAnchorName))
}

func TestBuildWithLights(t *testing.T) {
	opts := DefaultOptions()
	opts.WithLights = true
	c := build(t, 2, opts)

	_, lights := countMeshes(c.Root)
	assert.Equal(t, 4, lights)
	require.Len(t, c.Lights(), 4)

	for _, n := range c.Lights() {
		require.NotNil(t, n.Light.Target, "%s has no target", n.Name)
		assert.Same(t, c.Body, n.Light.Target.Parent())
		assert.NotEqual(t, n.WorldPosition(), n.Light.Target.WorldPosition())
		assert.True(t, n.Light.CastShadow)
	}

	head, tail := c.Lights()[0].Light, c.Lights()[2].Light
	assert.NotEqual(t, head.Color, tail.Color)
	assert.Greater(t, head.Distance, tail.Distance)
	assert.Greater(t, head.Angle, tail.Angle)

	// Headlights aim forward (-x), taillights backward.
	assert.Less(t, head.Direction(c.Lights()[0].WorldPosition()).X, float32(0))
	assert.Greater(t, tail.Direction(c.Lights()[2].WorldPosition()).X, float32(0))
}

func TestTrimNone(t *testing.T) {
	opts := DefaultOptions()
	opts.Trim = TrimNone
	c := build(t, 3, opts)

	meshes, _ := countMeshes(c.Root)
	assert.Equal(t, 5, meshes)
	assert.Empty(t, c.Fixtures())
}

func TestSkeletonInvariants(t *testing.T) {
	s := random.New(random.NewSeeded(2024))
	for i := 0; i < 300; i++ {
		opts := DefaultOptions()
		if i%2 == 1 {
			opts.Roof = RoofSplitP3P5
		}
		c, err := Build(s, opts)
		require.NoError(t, err)

		sk, w := c.Skeleton, c.WheelGeometry
		require.NoError(t, sk.Validate(w))

		for p := P1; p < P8; p++ {
			assert.LessOrEqual(t, sk[p].X, sk[p+1].X)
		}
		for _, hi := range []PointID{P4, P5} {
			for _, lo := range []PointID{P3, P6} {
				assert.GreaterOrEqual(t, sk[hi].Y, sk[lo].Y)
			}
		}
		assert.GreaterOrEqual(t, w.RearRadius, w.FrontRadius)
		assert.Greater(t, w.FrontCenter.X, sk[P1].X)
		assert.Less(t, w.RearCenter.X, sk[P8].X)
		assert.InDelta(t, 0, sk[P1].X+sk[P8].X, 1e-4, "profile centered on x")
	}
}

func TestShellContainsMirroredPoints(t *testing.T) {
	c := build(t, 4, DefaultOptions())
	verts := c.Shell.Mesh.Geometry.Vertices

	has := func(p math.Vec3) bool {
		for _, v := range verts {
			if math.FromArray(v.Position).Distance(p) < 1e-5 {
				return true
			}
		}
		return false
	}
	for i, p := range c.Skeleton {
		assert.True(t, has(p), "shell missing %s", PointID(i))
		mirrored := math.V3(p.X, p.Y, -p.Z)
		assert.Equal(t, mirrored, c.Mirror[i])
		assert.True(t, has(mirrored), "shell missing %sz", PointID(i))
	}
}

// signedVolume is positive for a closed mesh wound outward.
func signedVolume(m *geometry.Mesh) float32 {
	var vol float32
	for _, tri := range m.Triangles() {
		vol += tri[0].Dot(tri[1].Cross(tri[2])) / 6
	}
	return vol
}

func TestShellFacesOutward(t *testing.T) {
	for _, roof := range []RoofPreset{RoofSplitP4P6, RoofSplitP3P5} {
		opts := DefaultOptions()
		opts.Roof = roof
		c := build(t, 5, opts)
		assert.Greater(t, signedVolume(c.Shell.Mesh.Geometry), float32(0), roof.String())
	}
}

func TestDriverAnchor(t *testing.T) {
	c := build(t, 6, DefaultOptions())
	p3, p4, p3z := c.Skeleton[P3], c.Skeleton[P4], c.Mirror[P3]
	r := c.WheelGeometry.FrontRadius

	want := math.V3((p3.X+p4.X)/2, (p3.Y+3*p4.Y)/4+r, (p3.Z+3*p3z.Z)/4)
	assert.Equal(t, want, c.DriverAnchor())
	assert.InDelta(t, 0.5, c.DriverAnchor().Z, 1e-6)
}

func TestWheelsTouchGround(t *testing.T) {
	c := build(t, 7, DefaultOptions())

	// Both axles bottom out at y = 0 after the lift.
	lowest := float32(1e9)
	for _, n := range c.Wheels() {
		m := n.WorldMatrix()
		for _, v := range n.Mesh.Geometry.Vertices {
			lowest = min(lowest, m.TransformPoint(v.Position)[1])
		}
		assert.InDelta(t, 1, absf(n.WorldPosition().Z), 1e-6)
	}
	assert.InDelta(t, 0, lowest, 1e-4)
}

func TestDispose(t *testing.T) {
	opts := DefaultOptions()
	opts.WithLights = true
	c := build(t, 8, opts)

	world := scene.NewNode("world")
	world.Add(c.Root)

	var geoms []*geometry.Mesh
	c.Root.Walk(func(n *scene.Node) bool {
		if n.Mesh != nil {
			geoms = append(geoms, n.Mesh.Geometry)
		}
		return true
	})
	calls := 0
	for _, g := range geoms {
		g.OnDispose(func() { calls++ })
	}

	c.Dispose()
	c.Dispose()
	assert.True(t, c.Disposed())
	assert.Equal(t, len(geoms), calls)
	assert.Empty(t, world.Children())
	for _, g := range geoms {
		assert.True(t, g.Disposed())
	}
	assert.True(t, c.Shell.Mesh.Material.Disposed())
	assert.True(t, c.Wheels()[0].Mesh.Material.Disposed())
}

func TestConsecutiveCarsDiffer(t *testing.T) {
	a, err := New(DefaultOptions())
	require.NoError(t, err)
	b, err := New(DefaultOptions())
	require.NoError(t, err)

	assert.NotEqual(t, a.Color, b.Color)
	assert.NotEqual(t, a.Skeleton, b.Skeleton)
}

func TestSeededBuildsRepeat(t *testing.T) {
	a := build(t, 9, DefaultOptions())
	b := build(t, 9, DefaultOptions())
	assert.Equal(t, a.Skeleton, b.Skeleton)
	assert.Equal(t, a.Color, b.Color)
}

func TestInvalidPriorFails(t *testing.T) {
	p := DefaultPrior()
	p.BY.Min, p.BY.Max = 0.6, 0.3
	opts := DefaultOptions()
	opts.Prior = &p

	_, err := Build(random.New(random.NewSeeded(1)), opts)
	assert.ErrorIs(t, err, random.ErrInvalidRange)
}

func TestImpossiblePriorExhausts(t *testing.T) {
	// Bodies this short cannot fit both wheel insets.
	p := DefaultPrior()
	p.CX = Dist{0, 0.05, 0, 0.1, 0}
	p.DX = Dist{0, 0.05, -0.1, 0.1, 0}
	p.EX = Dist{0.1, 0.05, 0, 0.2, 0}
	p.FX = Dist{0, 0.05, 0, 0.1, 0}
	p.GX = Dist{0, 0.05, 0, 0.1, 0}
	opts := DefaultOptions()
	opts.Prior = &p
	opts.MaxSkeletonAttempts = 3

	_, err := Build(random.New(random.NewSeeded(1)), opts)
	assert.ErrorIs(t, err, random.ErrSamplingExhausted)
	assert.False(t, errors.Is(err, random.ErrInvalidRange))
}

func TestValidateRejects(t *testing.T) {
	c := build(t, 10, DefaultOptions())
	w := c.WheelGeometry

	folded := c.Skeleton
	folded[P3].X = folded[P4].X + 1
	assert.ErrorIs(t, folded.Validate(w), ErrInvalidSkeleton)

	flat := c.Skeleton
	flat[P4].Y = flat[P3].Y - 0.5
	assert.ErrorIs(t, flat.Validate(w), ErrInvalidSkeleton)

	outside := w
	outside.RearCenter.X = c.Skeleton[P8].X + 1
	assert.ErrorIs(t, c.Skeleton.Validate(outside), ErrInvalidSkeleton)
}

func TestDescribe(t *testing.T) {
	opts := DefaultOptions()
	opts.WithLights = true
	c := build(t, 11, opts)
	s := Describe(c)

	assert.Equal(t, c.Color.Hex(), s.Color)
	assert.Equal(t, 4, s.Lights)
	assert.Greater(t, s.Length, c.Skeleton.Length()-1e-4)
	assert.Greater(t, s.Height, float32(0))
	assert.InDelta(t, c.WheelGeometry.Wheelbase(), s.Wheelbase, 1e-6)
	assert.Greater(t, s.Triangles, 28)
	assert.Contains(t, s.String(), s.Color)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestWorldBoundsFollowRoot(t *testing.T) {
	c := build(t, 8, DefaultOptions())
	local := c.Bounds()
	assert.Equal(t, local, c.WorldBounds())

	parent := scene.NewNode("lane")
	parent.Position = math.V3(0, 0, 3)
	parent.Add(c.Root)
	c.Root.Position = math.V3(10, 0, 0)

	world := c.WorldBounds()
	assert.Equal(t, local, c.Bounds())
	assert.InDelta(t, local.Min[0]+10, world.Min[0], 1e-4)
	assert.InDelta(t, local.Max[2]+3, world.Max[2], 1e-4)
	assert.InDelta(t, local.Min[1], world.Min[1], 1e-4)
}
