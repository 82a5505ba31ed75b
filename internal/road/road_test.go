package road

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	r := New(DefaultOptions())

	assert.Len(t, r.Dashes, 17)
	assert.Len(t, r.SideLines, 2)
	assert.InDelta(t, -49, r.Dashes[0].Position.Y, 1e-6)
	assert.InDelta(t, 47, r.Dashes[16].Position.Y, 1e-6)
	assert.Len(t, r.Root.Children(), 1+2+17)

	b := r.Pavement.Mesh.Geometry.Bounds
	assert.InDelta(t, 11.5, b.Max[0]-b.Min[0], 1e-5)
	assert.InDelta(t, 100, b.Max[1]-b.Min[1], 1e-5)
}

func TestRoadRunsAlongWorldX(t *testing.T) {
	r := New(DefaultOptions())

	// Road-space +Y maps to world -X; markings are lifted along world +Y.
	last := r.Dashes[len(r.Dashes)-1].WorldPosition()
	assert.InDelta(t, -47, last.X, 1e-4)
	assert.InDelta(t, 0.1, last.Y, 1e-4)
	assert.InDelta(t, 0, last.Z, 1e-4)

	left := r.SideLines[0].WorldPosition()
	assert.InDelta(t, 4, left.Z, 1e-4)
	assert.InDelta(t, 0.1, left.Y, 1e-4)

	// Pavement normal points up.
	n := r.Pavement.WorldMatrix().TransformDirection(r.Pavement.Mesh.Geometry.Vertices[0].Normal)
	assert.InDelta(t, 1, n[1], 1e-5)
}

func TestDisposeSharedDashResources(t *testing.T) {
	r := New(DefaultOptions())
	stats := r.Dispose()

	// pavement + 2 side lines + 1 shared dash geometry
	assert.Equal(t, 4, stats.Geometries)
	// pavement, side line, dash
	assert.Equal(t, 3, stats.Materials)
	require.True(t, r.Dashes[5].Mesh.Geometry.Disposed())
}

func TestZeroSpacingHasNoDashes(t *testing.T) {
	opts := DefaultOptions()
	opts.DashSpacing = 0
	assert.Empty(t, New(opts).Dashes)
}
