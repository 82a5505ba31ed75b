// Package gallery shows a grid of freshly generated cars spinning in place.
package gallery

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/engine/picking"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Config describes the grid.
type Config struct {
	Columns, Rows      int
	SpacingX, SpacingY float32
	SpinSpeed          float32 // radians per second about Y
	Background         colorful.Color
	LightPosition      math.Vec3
	CameraPosition     math.Vec3
	FOV                float32
	Car                car.Options
}

// DefaultConfig returns a 3x3 grid on a gray backdrop.
func DefaultConfig() Config {
	return Config{
		Columns:        3,
		Rows:           3,
		SpacingX:       5,
		SpacingY:       3,
		SpinSpeed:      0.6,
		Background:     scene.Hex(0xaaaaaa),
		LightPosition:  math.V3(-1, 2, 4),
		CameraPosition: math.V3(0, 2, 15),
		FOV:            40,
		Car:            car.DefaultOptions(),
	}
}

// Factory builds a car.
type Factory func(opts car.Options) (*car.Composite, error)

// Gallery is the grid scene and its cars.
type Gallery struct {
	Scene  *scene.Scene
	Cars   []*car.Composite
	Camera *camera.Perspective
	Orbit  *camera.OrbitCamera

	cfg     Config
	factory Factory
}

// New builds the scene and fills the grid.
func New(cfg Config, factory Factory) (*Gallery, error) {
	if factory == nil {
		factory = car.New
	}

	s := scene.New()
	s.Background = cfg.Background
	s.Sun = &scene.DirectionalLight{
		Color:     scene.Hex(0xffffff),
		Intensity: 1,
		Position:  cfg.LightPosition,
	}

	g := &Gallery{
		Scene:   s,
		Camera:  camera.NewPerspective(cfg.FOV),
		Orbit:   camera.NewOrbitCamera(cfg.CameraPosition, math.Vec3{}),
		cfg:     cfg,
		factory: factory,
	}
	g.Orbit.Apply(g.Camera)

	if err := g.fill(); err != nil {
		return nil, err
	}
	return g, nil
}

// slot returns the grid position of car i, centered on the origin.
func (g *Gallery) slot(i int) math.Vec3 {
	col := i % g.cfg.Columns
	row := i / g.cfg.Columns
	x := float32(col - (g.cfg.Columns-1)/2)
	y := float32(row - (g.cfg.Rows-1)/2)
	return math.V3(x*g.cfg.SpacingX, y*g.cfg.SpacingY, 0)
}

func (g *Gallery) fill() error {
	n := g.cfg.Columns * g.cfg.Rows
	for i := 0; i < n; i++ {
		c, err := g.factory(g.cfg.Car)
		if err != nil {
			return fmt.Errorf("building gallery car %d: %w", i, err)
		}
		c.Root.Position = g.slot(i)
		g.Cars = append(g.Cars, c)
		g.Scene.Add(c.Root)
	}
	logger.Debug("gallery filled")
	return nil
}

// Update spins every car.
func (g *Gallery) Update(dt float32) {
	for _, c := range g.Cars {
		c.Root.Rotation.Y += g.cfg.SpinSpeed * dt
	}
}

// Reroll replaces every car with a new one, keeping the current spin.
func (g *Gallery) Reroll() error {
	old := g.Cars
	g.Cars = nil
	for _, c := range old {
		c.Dispose()
	}
	if err := g.fill(); err != nil {
		return err
	}
	if len(old) > 0 {
		for _, c := range g.Cars {
			c.Root.Rotation.Y = old[0].Root.Rotation.Y
		}
	}
	return nil
}

// Pick returns the index of the car hit by r, or -1.
func (g *Gallery) Pick(r picking.Ray) int {
	boxes := make([]geometry.Bounds, len(g.Cars))
	for i, c := range g.Cars {
		boxes[i] = c.WorldBounds()
	}
	return r.Nearest(boxes)
}

// RerollAt replaces car i in place.
func (g *Gallery) RerollAt(i int) error {
	if i < 0 || i >= len(g.Cars) {
		return fmt.Errorf("gallery: no car at %d", i)
	}
	c, err := g.factory(g.cfg.Car)
	if err != nil {
		return fmt.Errorf("rebuilding gallery car %d: %w", i, err)
	}
	old := g.Cars[i]
	c.Root.Position = old.Root.Position
	c.Root.Rotation = old.Root.Rotation
	old.Dispose()
	g.Cars[i] = c
	g.Scene.Add(c.Root)
	return nil
}

// Dispose releases every car.
func (g *Gallery) Dispose() {
	for _, c := range g.Cars {
		c.Dispose()
	}
	g.Cars = nil
}
