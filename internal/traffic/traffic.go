// Package traffic runs the highway simulation: a player-controlled hero car
// and two lanes of oncoming and overtaking traffic.
package traffic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Config holds the highway parameters.
type Config struct {
	Lanes      []LaneConfig
	HeroStart  math.Vec3
	HeroSpeed  float32 // strafe speed in units per second
	HeroLights bool
	FOV        float32
	Car        car.Options
}

// DefaultConfig returns the standard two-lane highway.
func DefaultConfig() Config {
	return Config{
		Lanes: []LaneConfig{
			{Name: "right", Spawn: math.V3(-50, 0, 2), Heading: math.Pi, Speed: 6, Spacing: 9, Despawn: 100},
			{Name: "left", Spawn: math.V3(50, 0, -2), Speed: -7.2, Spacing: 9, Despawn: 100},
		},
		HeroStart:  math.V3(9, 0, -5),
		HeroSpeed:  6,
		HeroLights: true,
		FOV:        100,
		Car:        car.DefaultOptions(),
	}
}

// Input is the player's steering state for one tick.
type Input struct {
	Left  bool
	Right bool
}

// Factory builds a car. car.New and a closure over car.Build both fit.
type Factory func(opts car.Options) (*car.Composite, error)

// Context is the complete simulation state, owned by the caller and
// advanced with Update.
type Context struct {
	Scene  *scene.Scene
	Hero   *car.Composite
	Lanes  []*Lane
	Rig    camera.DriverRig
	Time   float64
	Frames uint64

	Spawned   int
	Despawned int

	cfg     Config
	factory Factory
	log     *zap.Logger
}

// NewContext builds the hero car, attaches it to s and prepares the lanes.
func NewContext(s *scene.Scene, cfg Config, factory Factory) (*Context, error) {
	if factory == nil {
		factory = car.New
	}

	heroOpts := cfg.Car
	heroOpts.WithLights = cfg.HeroLights
	hero, err := factory(heroOpts)
	if err != nil {
		return nil, fmt.Errorf("building hero car: %w", err)
	}
	hero.Root.Name = "hero"
	hero.Root.Position = cfg.HeroStart
	s.Add(hero.Root)

	ctx := &Context{
		Scene: s,
		Hero:  hero,
		Rig: camera.DriverRig{
			Camera: camera.NewPerspective(cfg.FOV),
			Anchor: hero.DriverAnchor(),
		},
		cfg:     cfg,
		factory: factory,
		log:     logger.Named("traffic"),
	}
	for _, lc := range cfg.Lanes {
		ctx.Lanes = append(ctx.Lanes, NewLane(lc))
	}
	ctx.Rig.Follow(hero.Root.Position)
	ctx.Rig.Camera.LookAt(math.Vec3{})
	return ctx, nil
}

// Camera returns the driver camera.
func (c *Context) Camera() *camera.Perspective {
	return c.Rig.Camera
}

// Update advances the simulation by dt seconds.
func (c *Context) Update(dt float32, in Input) error {
	c.Time += float64(dt)
	c.Frames++

	c.steer(dt, in)

	for _, lane := range c.Lanes {
		if lane.expired() {
			old := lane.pop()
			old.Dispose()
			c.Despawned++
			c.log.Debug("despawn", zap.String("lane", lane.cfg.Name), zap.Int("cars", lane.Len()))
		}

		if lane.needsSpawn() {
			nc, err := c.factory(c.cfg.Car)
			if err != nil {
				return fmt.Errorf("spawning car on %s lane: %w", lane.cfg.Name, err)
			}
			lane.push(nc)
			c.Scene.Add(nc.Root)
			c.Spawned++
			c.log.Debug("spawn", zap.String("lane", lane.cfg.Name), zap.Int("cars", lane.Len()))
		}

		lane.advance(dt)
	}
	return nil
}

// steer strafes the hero and the camera along Z. Left is +Z.
func (c *Context) steer(dt float32, in Input) {
	var dir float32
	switch {
	case in.Left:
		dir = 1
	case in.Right:
		dir = -1
	default:
		return
	}

	hero := c.Hero.Root
	hero.Position.Z += dir * c.cfg.HeroSpeed * dt
	c.Rig.Follow(hero.Position)
	c.Rig.Camera.LookAt(math.V3(0, hero.Position.Y, hero.Position.Z))
}

// CarCount returns the number of traffic cars, excluding the hero.
func (c *Context) CarCount() int {
	n := 0
	for _, l := range c.Lanes {
		n += l.Len()
	}
	return n
}

// Dispose releases the hero and every traffic car.
func (c *Context) Dispose() {
	for _, l := range c.Lanes {
		for len(l.cars) > 0 {
			l.pop().Dispose()
		}
	}
	c.Hero.Dispose()
}
