package traffic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/random"
	"github.com/Faultbox/autobahn/internal/road"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

func seededFactory(seed uint64) Factory {
	s := random.New(random.NewSeeded(seed))
	return func(opts car.Options) (*car.Composite, error) {
		return car.Build(s, opts)
	}
}

func newContext(t *testing.T) *Context {
	t.Helper()
	s, _ := NewHighwayScene(DefaultEnvironment(), road.DefaultOptions())
	ctx, err := NewContext(s, DefaultConfig(), seededFactory(1))
	require.NoError(t, err)
	return ctx
}

func TestNewContextPlacesHero(t *testing.T) {
	ctx := newContext(t)

	assert.Equal(t, math.V3(9, 0, -5), ctx.Hero.Root.Position)
	assert.Len(t, ctx.Hero.Lights(), 4)
	assert.Same(t, ctx.Scene.Root, ctx.Hero.Root.Parent())

	want := math.V3(9, 0, -5).Add(ctx.Hero.DriverAnchor())
	assert.Equal(t, want, ctx.Camera().Position)
	assert.Equal(t, float32(100), ctx.Camera().FOV)
}

func TestFirstUpdateSpawnsOnePerLane(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, ctx.Update(1.0/60, Input{}))

	assert.Equal(t, 2, ctx.Spawned)
	require.Len(t, ctx.Lanes, 2)

	right := ctx.Lanes[0].Cars()[0]
	assert.InDelta(t, -50+0.1, right.Root.Position.X, 1e-4)
	assert.Equal(t, float32(2), right.Root.Position.Z)
	assert.Equal(t, float32(math.Pi), right.Root.Rotation.Y)

	left := ctx.Lanes[1].Cars()[0]
	assert.InDelta(t, 50-0.12, left.Root.Position.X, 1e-4)
	assert.Equal(t, float32(-2), left.Root.Position.Z)
	assert.False(t, left.Options.WithLights)
}

func TestLanesSpawnAtSpacing(t *testing.T) {
	ctx := newContext(t)
	const dt = 0.125

	// The right lane moves 0.75 per tick; a gap of 9 takes 12 ticks.
	for i := 0; i < 12; i++ {
		require.NoError(t, ctx.Update(dt, Input{}))
	}
	assert.Equal(t, 1, ctx.Lanes[0].Len())

	require.NoError(t, ctx.Update(dt, Input{}))
	assert.Equal(t, 2, ctx.Lanes[0].Len())
}

func TestLanesDespawnAndDispose(t *testing.T) {
	ctx := newContext(t)
	const dt = 0.1

	require.NoError(t, ctx.Update(dt, Input{}))
	first := ctx.Lanes[0].Cars()[0]

	// 100 units at 6 u/s is about 167 ticks.
	for i := 0; i < 200; i++ {
		require.NoError(t, ctx.Update(dt, Input{}))
	}

	assert.True(t, first.Disposed())
	assert.Nil(t, first.Root.Parent())
	assert.Greater(t, ctx.Despawned, 0)
	for _, lane := range ctx.Lanes {
		// Cars 9 apart across 100 units.
		assert.LessOrEqual(t, lane.Len(), 12)
		for _, c := range lane.Cars() {
			assert.False(t, c.Disposed())
			assert.Same(t, ctx.Scene.Root, c.Root.Parent())
		}
	}
}

func TestSteering(t *testing.T) {
	ctx := newContext(t)
	startCam := ctx.Camera().Position

	require.NoError(t, ctx.Update(0.5, Input{Left: true}))
	assert.InDelta(t, -2, ctx.Hero.Root.Position.Z, 1e-5)
	assert.InDelta(t, startCam.Z+3, ctx.Camera().Position.Z, 1e-5)
	assert.Equal(t, math.V3(0, 0, -2), ctx.Camera().Target)

	require.NoError(t, ctx.Update(1, Input{Right: true}))
	assert.InDelta(t, -8, ctx.Hero.Root.Position.Z, 1e-5)

	before := ctx.Camera().Position
	require.NoError(t, ctx.Update(1, Input{}))
	assert.Equal(t, before, ctx.Camera().Position)
}

func TestFactoryErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	s := scene.New()
	ctx, err := NewContext(s, DefaultConfig(), func(opts car.Options) (*car.Composite, error) {
		calls++
		if calls > 1 {
			return nil, boom
		}
		return car.Build(random.New(random.NewSeeded(3)), opts)
	})
	require.NoError(t, err)
	assert.ErrorIs(t, ctx.Update(0.1, Input{}), boom)
}

func TestDisposeReleasesEverything(t *testing.T) {
	ctx := newContext(t)
	for i := 0; i < 30; i++ {
		require.NoError(t, ctx.Update(0.1, Input{}))
	}
	cars := []*car.Composite{ctx.Hero}
	for _, l := range ctx.Lanes {
		cars = append(cars, l.Cars()...)
	}

	ctx.Dispose()
	assert.Equal(t, 0, ctx.CarCount())
	for _, c := range cars {
		assert.True(t, c.Disposed())
	}
	// Only the road remains.
	assert.Len(t, ctx.Scene.Root.Children(), 1)
}

func TestHighwayScene(t *testing.T) {
	s, r := NewHighwayScene(DefaultEnvironment(), road.DefaultOptions())
	require.NotNil(t, s.Fog)
	assert.Equal(t, s.Background, s.Fog.Color)
	assert.Equal(t, "#348868", s.Background.Hex())
	assert.Equal(t, float32(45), s.Fog.Near)
	assert.Same(t, s.Root, r.Root.Parent())
	assert.Equal(t, math.V3(0, 4, -2.8), s.Sun.Position)
}
