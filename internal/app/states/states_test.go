package states

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/config"
	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

type fakeControls struct {
	held    map[Key]bool
	pressed map[Key]bool
	dx, dy  int
	wheel   int
	click   *[2]int
}

func (f fakeControls) Held(k Key) bool { return f.held[k] }
func (f fakeControls) Pressed(k Key) bool { return f.pressed[k] }
func (f fakeControls) Drag() (int, int) { return f.dx, f.dy }
func (f fakeControls) Wheel() int { return f.wheel }
func (f fakeControls) Click() (int, int, bool) {
	if f.click == nil {
		return 0, 0, false
	}
	return f.click[0], f.click[1], true
}
func (f fakeControls) Viewport() (int, int) { return 800, 600 }

type recordingState struct {
	name  string
	log   *[]string
	fail  error
	ticks int
}

func (r *recordingState) Name() string { return r.name }
func (r *recordingState) Enter() error {
	*r.log = append(*r.log, "enter "+r.name)
	return r.fail
}
func (r *recordingState) Exit() error {
	*r.log = append(*r.log, "exit "+r.name)
	return nil
}
func (r *recordingState) Update(float64, Controls) error {
	r.ticks++
	return nil
}
func (r *recordingState) Scene() *scene.Scene { return nil }
func (r *recordingState) Camera() *camera.Perspective { return nil }
func (r *recordingState) Lens() bool { return false }

func seededConfig() *config.Config {
	cfg := config.Default()
	cfg.Car.Seed = 11
	return cfg
}

func TestManagerTransitions(t *testing.T) {
	var log []string
	a := &recordingState{name: "a", log: &log}
	b := &recordingState{name: "b", log: &log}

	m := NewManager()
	require.NoError(t, m.Update(0.1, NoControls{}))
	assert.Nil(t, m.Current())

	m.Change(a)
	require.NoError(t, m.Update(0.1, NoControls{}))
	assert.Same(t, a, m.Current())
	assert.Equal(t, 1, a.ticks)

	m.Change(b)
	require.NoError(t, m.Update(0.1, NoControls{}))
	require.NoError(t, m.Close())

	assert.Equal(t, []string{"enter a", "exit a", "enter b", "exit b"}, log)
	assert.Nil(t, m.Current())
}

func TestManagerEnterError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	m := NewManager()
	m.Change(&recordingState{name: "bad", log: &log, fail: boom})
	assert.ErrorIs(t, m.Update(0, NoControls{}), boom)
}

func TestCarOptions(t *testing.T) {
	opts, err := CarOptions(config.CarConfig{Roof: "p3p5", Trim: "none", UnderBody: false, MaxSkeletonAttempts: 5})
	require.NoError(t, err)
	assert.Equal(t, car.RoofSplitP3P5, opts.Roof)
	assert.Equal(t, car.TrimNone, opts.Trim)
	assert.False(t, opts.UnderBody)
	assert.Equal(t, 5, opts.MaxSkeletonAttempts)

	_, err = CarOptions(config.CarConfig{Roof: "dome"})
	assert.Error(t, err)
}

func TestTrafficConfigMatchesDefaults(t *testing.T) {
	tc, err := TrafficConfig(config.Default())
	require.NoError(t, err)

	require.Len(t, tc.Lanes, 2)
	right, left := tc.Lanes[0], tc.Lanes[1]
	assert.Equal(t, math.V3(-50, 0, 2), right.Spawn)
	assert.Equal(t, float32(6), right.Speed)
	assert.Equal(t, math.V3(50, 0, -2), left.Spawn)
	assert.Equal(t, float32(-7.2), left.Speed)
	assert.Equal(t, float32(9), left.Spacing)
	assert.Equal(t, math.V3(9, 0, -5), tc.HeroStart)
	assert.Equal(t, float32(100), tc.FOV)
	assert.True(t, tc.HeroLights)
}

func TestCarFactorySeeded(t *testing.T) {
	opts := car.DefaultOptions()
	a, err := NewCarFactory(config.CarConfig{Seed: 5})(opts)
	require.NoError(t, err)
	b, err := NewCarFactory(config.CarConfig{Seed: 5})(opts)
	require.NoError(t, err)
	assert.Equal(t, a.Skeleton, b.Skeleton)
	assert.Equal(t, a.Color, b.Color)
}

func TestHighwayState(t *testing.T) {
	cfg := seededConfig()
	s := NewHighwayState(cfg, NewCarFactory(cfg.Car))
	require.NoError(t, s.Enter())
	assert.True(t, s.Lens())

	sim := s.Simulation()
	start := sim.Hero.Root.Position.Z

	left := fakeControls{held: map[Key]bool{KeyLeft: true}}
	require.NoError(t, s.Update(0.5, left))
	assert.Greater(t, sim.Hero.Root.Position.Z, start)
	assert.Equal(t, 2, sim.CarCount())
	assert.Equal(t, sim.Hero.Root.Position.Z, s.Camera().Target.Z)

	hero := sim.Hero
	require.NoError(t, s.Exit())
	assert.True(t, hero.Disposed())
	assert.Nil(t, s.Scene())
	// a second exit is a no-op
	require.NoError(t, s.Exit())
}

func TestGalleryState(t *testing.T) {
	cfg := seededConfig()
	s := NewGalleryState(cfg, NewCarFactory(cfg.Car))
	require.NoError(t, s.Enter())
	assert.False(t, s.Lens())

	g := s.Gallery()
	require.Len(t, g.Cars, 9)
	first := g.Cars[0]

	eye := s.Camera().Position
	in := fakeControls{pressed: map[Key]bool{KeyReroll: true}, dx: 40, wheel: 1}
	require.NoError(t, s.Update(0.1, in))

	assert.True(t, first.Disposed())
	require.Len(t, g.Cars, 9)
	assert.NotSame(t, first, g.Cars[0])
	assert.NotEqual(t, eye, s.Camera().Position)
	assert.InDelta(t, 0.06, g.Cars[0].Root.Rotation.Y, 1e-6)

	cars := g.Cars
	require.NoError(t, s.Exit())
	for _, c := range cars {
		assert.True(t, c.Disposed())
	}
}

func TestGalleryClickRerollsOneCar(t *testing.T) {
	cfg := seededConfig()
	s := NewGalleryState(cfg, NewCarFactory(cfg.Car))
	require.NoError(t, s.Enter())
	defer s.Exit()

	cars := append([]*car.Composite(nil), s.Gallery().Cars...)
	require.NoError(t, s.Update(0, fakeControls{click: &[2]int{400, 300}}))

	for i, c := range cars {
		assert.Equal(t, i == 4, c.Disposed(), "car %d", i)
	}
}
