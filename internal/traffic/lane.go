package traffic

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/pkg/math"
)

// LaneConfig describes one stream of traffic moving along world X.
type LaneConfig struct {
	Name    string
	Spawn   math.Vec3
	Heading float32 // rotation about Y applied to spawned cars
	Speed   float32 // signed units per second along X
	Spacing float32 // distance the newest car travels before the next spawns
	Despawn float32 // distance after which the oldest car is removed
}

// Lane owns the cars of one traffic stream, oldest first.
type Lane struct {
	cfg  LaneConfig
	cars []*car.Composite
}

// NewLane creates an empty lane.
func NewLane(cfg LaneConfig) *Lane {
	return &Lane{cfg: cfg}
}

// Config returns the lane configuration.
func (l *Lane) Config() LaneConfig {
	return l.cfg
}

// Cars returns the cars in spawn order. The slice must not be modified.
func (l *Lane) Cars() []*car.Composite {
	return l.cars
}

// Len returns the number of cars on the lane.
func (l *Lane) Len() int {
	return len(l.cars)
}

func (l *Lane) travelled(c *car.Composite) float32 {
	return math32.Abs(c.Root.Position.X - l.cfg.Spawn.X)
}

// expired reports whether the oldest car has reached the despawn distance.
func (l *Lane) expired() bool {
	return len(l.cars) > 0 && l.travelled(l.cars[0]) >= l.cfg.Despawn
}

// needsSpawn reports whether the lane is empty or the newest car has left
// enough room behind it.
func (l *Lane) needsSpawn() bool {
	return len(l.cars) == 0 || l.travelled(l.cars[len(l.cars)-1]) >= l.cfg.Spacing
}

func (l *Lane) push(c *car.Composite) {
	c.Root.Position = l.cfg.Spawn
	c.Root.Rotation.Y = l.cfg.Heading
	l.cars = append(l.cars, c)
}

func (l *Lane) pop() *car.Composite {
	c := l.cars[0]
	l.cars[0] = nil
	l.cars = l.cars[1:]
	return c
}

func (l *Lane) advance(dt float32) {
	for _, c := range l.cars {
		c.Root.Position.X += l.cfg.Speed * dt
	}
}
