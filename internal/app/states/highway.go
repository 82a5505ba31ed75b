package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/config"
	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/road"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/internal/traffic"
)

// HighwayState drives the hero car through two lanes of traffic.
type HighwayState struct {
	cfg     *config.Config
	factory CarFactory

	scene *scene.Scene
	road  *road.Road
	sim   *traffic.Context
}

// NewHighwayState creates the state. Nothing is built until Enter.
func NewHighwayState(cfg *config.Config, factory CarFactory) *HighwayState {
	return &HighwayState{cfg: cfg, factory: factory}
}

// Name implements State.
func (s *HighwayState) Name() string { return config.SceneHighway }

// Enter builds the road, the hero and empty lanes.
func (s *HighwayState) Enter() error {
	tc, err := TrafficConfig(s.cfg)
	if err != nil {
		return err
	}

	s.scene, s.road = traffic.NewHighwayScene(Environment(s.cfg.Scene), road.DefaultOptions())
	s.sim, err = traffic.NewContext(s.scene, tc, traffic.Factory(s.factory))
	if err != nil {
		s.road.Dispose()
		return fmt.Errorf("entering highway: %w", err)
	}

	logger.Info("entering highway",
		zap.Int("lanes", len(s.sim.Lanes)),
		zap.Bool("hero_lights", tc.HeroLights),
	)
	return nil
}

// Exit disposes every car and the road.
func (s *HighwayState) Exit() error {
	if s.sim == nil {
		return nil
	}
	logger.Info("leaving highway",
		zap.Int("spawned", s.sim.Spawned),
		zap.Int("despawned", s.sim.Despawned),
		zap.Float64("seconds", s.sim.Time),
	)
	s.sim.Dispose()
	s.road.Dispose()
	s.sim, s.road, s.scene = nil, nil, nil
	return nil
}

// Update steers the hero and advances the traffic.
func (s *HighwayState) Update(dt float64, in Controls) error {
	return s.sim.Update(float32(dt), traffic.Input{
		Left:  in.Held(KeyLeft),
		Right: in.Held(KeyRight),
	})
}

// Simulation exposes the traffic context.
func (s *HighwayState) Simulation() *traffic.Context { return s.sim }

// Scene implements State.
func (s *HighwayState) Scene() *scene.Scene { return s.scene }

// Camera implements State.
func (s *HighwayState) Camera() *camera.Perspective { return s.sim.Camera() }

// Lens implements State.
func (s *HighwayState) Lens() bool { return true }
