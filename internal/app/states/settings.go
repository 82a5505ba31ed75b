package states

import (
	"fmt"

	"github.com/Faultbox/autobahn/internal/car"
	"github.com/Faultbox/autobahn/internal/config"
	"github.com/Faultbox/autobahn/internal/gallery"
	"github.com/Faultbox/autobahn/internal/random"
	"github.com/Faultbox/autobahn/internal/traffic"
	"github.com/Faultbox/autobahn/pkg/math"
)

// CarFactory builds cars from the generator settings. A non-zero seed makes
// the sequence of cars reproducible.
type CarFactory func(opts car.Options) (*car.Composite, error)

// NewCarFactory returns a factory drawing from one sampler for its lifetime.
func NewCarFactory(c config.CarConfig) CarFactory {
	src := random.Global()
	if c.Seed != 0 {
		src = random.NewSeeded(c.Seed)
	}
	var opts []random.Option
	if c.MaxSamplerAttempts > 0 {
		opts = append(opts, random.WithMaxAttempts(c.MaxSamplerAttempts))
	}
	s := random.New(src, opts...)
	return func(o car.Options) (*car.Composite, error) {
		return car.Build(s, o)
	}
}

// CarOptions converts the generator settings.
func CarOptions(c config.CarConfig) (car.Options, error) {
	opts := car.DefaultOptions()

	roof, err := car.ParseRoofPreset(c.Roof)
	if err != nil {
		return opts, err
	}
	trim, err := car.ParseTrimLevel(c.Trim)
	if err != nil {
		return opts, err
	}

	opts.Roof = roof
	opts.Trim = trim
	opts.UnderBody = c.UnderBody
	if c.MaxSkeletonAttempts > 0 {
		opts.MaxSkeletonAttempts = c.MaxSkeletonAttempts
	}
	return opts, nil
}

// TrafficConfig converts the highway settings. The right lane starts at
// -SpawnX and drives towards +X; the left lane mirrors it.
func TrafficConfig(cfg *config.Config) (traffic.Config, error) {
	opts, err := CarOptions(cfg.Car)
	if err != nil {
		return traffic.Config{}, fmt.Errorf("car settings: %w", err)
	}

	t := cfg.Traffic
	out := traffic.DefaultConfig()
	out.Lanes = []traffic.LaneConfig{
		{
			Name:    "right",
			Spawn:   math.V3(-t.SpawnX, 0, t.LaneOffset),
			Heading: math.Pi,
			Speed:   t.RightSpeed,
			Spacing: t.Spacing,
			Despawn: t.Despawn,
		},
		{
			Name:    "left",
			Spawn:   math.V3(t.SpawnX, 0, -t.LaneOffset),
			Speed:   -t.LeftSpeed,
			Spacing: t.Spacing,
			Despawn: t.Despawn,
		},
	}
	out.HeroStart = vec(t.HeroStart)
	out.HeroSpeed = t.HeroSpeed
	out.HeroLights = t.HeroLights
	out.FOV = t.FOV
	out.Car = opts
	return out, nil
}

// Environment converts the highway atmosphere.
func Environment(c config.SceneConfig) traffic.Environment {
	return traffic.Environment{
		Background:       c.Background.Color,
		FogNear:          c.FogNear,
		FogFar:           c.FogFar,
		Ambient:          c.Ambient.Color,
		AmbientIntensity: c.AmbientIntensity,
		Sun:              c.Sun.Color,
		SunIntensity:     c.SunIntensity,
		SunPosition:      vec(c.SunPosition),
	}
}

// GalleryConfig converts the grid settings.
func GalleryConfig(cfg *config.Config) (gallery.Config, error) {
	opts, err := CarOptions(cfg.Car)
	if err != nil {
		return gallery.Config{}, fmt.Errorf("car settings: %w", err)
	}

	g := cfg.Gallery
	out := gallery.DefaultConfig()
	out.Columns = g.Columns
	out.Rows = g.Rows
	out.SpacingX = g.SpacingX
	out.SpacingY = g.SpacingY
	out.SpinSpeed = g.SpinSpeed
	out.Background = g.Background.Color
	out.FOV = g.FOV
	out.Car = opts
	return out, nil
}

func vec(v config.Vec3) math.Vec3 {
	return math.V3(v[0], v[1], v[2])
}
