package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/engine/picking"
	"github.com/Faultbox/autobahn/internal/random"
	"github.com/Faultbox/autobahn/pkg/math"
)

func factory(seed uint64) Factory {
	s := random.New(random.NewSeeded(seed))
	return func(opts car.Options) (*car.Composite, error) {
		return car.Build(s, opts)
	}
}

func TestGrid(t *testing.T) {
	g, err := New(DefaultConfig(), factory(1))
	require.NoError(t, err)
	require.Len(t, g.Cars, 9)

	assert.Equal(t, math.V3(-5, -3, 0), g.Cars[0].Root.Position)
	assert.Equal(t, math.V3(0, 0, 0), g.Cars[4].Root.Position)
	assert.Equal(t, math.V3(5, 3, 0), g.Cars[8].Root.Position)
	assert.Len(t, g.Scene.Root.Children(), 9)

	for _, c := range g.Cars {
		assert.Empty(t, c.Lights())
	}
	assert.Equal(t, "#aaaaaa", g.Scene.Background.Hex())
	assert.InDelta(t, 15, g.Camera.Position.Z, 1e-4)
	assert.InDelta(t, 2, g.Camera.Position.Y, 1e-4)
}

func TestSpin(t *testing.T) {
	g, err := New(DefaultConfig(), factory(2))
	require.NoError(t, err)

	g.Update(0.5)
	g.Update(0.5)
	for _, c := range g.Cars {
		assert.InDelta(t, 0.6, c.Root.Rotation.Y, 1e-6)
	}
}

func TestRerollDisposesOldCars(t *testing.T) {
	g, err := New(DefaultConfig(), factory(3))
	require.NoError(t, err)
	g.Update(1)

	old := append([]*car.Composite(nil), g.Cars...)
	require.NoError(t, g.Reroll())

	require.Len(t, g.Cars, 9)
	assert.Len(t, g.Scene.Root.Children(), 9)
	for i, c := range old {
		assert.True(t, c.Disposed())
		assert.NotSame(t, c, g.Cars[i])
		assert.InDelta(t, 0.6, g.Cars[i].Root.Rotation.Y, 1e-6)
	}

	g.Dispose()
	assert.Empty(t, g.Scene.Root.Children())
}

func TestPickAndRerollAt(t *testing.T) {
	g, err := New(DefaultConfig(), factory(4))
	require.NoError(t, err)
	g.Update(0.5)

	r := picking.CameraRay(g.Camera, 400, 300, 800, 600)
	require.Equal(t, 4, g.Pick(r))

	old := g.Cars[4]
	require.NoError(t, g.RerollAt(4))
	assert.True(t, old.Disposed())
	assert.NotSame(t, old, g.Cars[4])
	assert.Equal(t, old.Root.Position, g.Cars[4].Root.Position)
	assert.InDelta(t, 0.3, g.Cars[4].Root.Rotation.Y, 1e-6)
	assert.Len(t, g.Scene.Root.Children(), 9)
	assert.False(t, g.Cars[0].Disposed())

	assert.Error(t, g.RerollAt(9))

	// straight up misses everything
	assert.Equal(t, -1, g.Pick(picking.Ray{Origin: math.V3(0, 10, 15), Direction: math.V3(0, 1, 0)}))
}
