package traffic

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/autobahn/internal/road"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Environment is the atmosphere and global lighting of the highway.
type Environment struct {
	Background       colorful.Color
	FogNear, FogFar  float32
	Ambient          colorful.Color
	AmbientIntensity float32
	Sun              colorful.Color
	SunIntensity     float32
	SunPosition      math.Vec3
}

// DefaultEnvironment returns a green dusk with a weak overhead sun.
func DefaultEnvironment() Environment {
	return Environment{
		Background:       scene.Hex(0x348868),
		FogNear:          45,
		FogFar:           50,
		Ambient:          scene.Hex(0x404040),
		AmbientIntensity: 0.5,
		Sun:              scene.Hex(0xffffff),
		SunIntensity:     0.5,
		SunPosition:      math.V3(0, 4, -2.8),
	}
}

// NewHighwayScene creates the scene with fog, lights and the road.
// The fog color matches the background so cars fade in at the horizon.
func NewHighwayScene(env Environment, roadOpts road.Options) (*scene.Scene, *road.Road) {
	s := scene.New()
	s.Background = env.Background
	s.Fog = &scene.Fog{Color: env.Background, Near: env.FogNear, Far: env.FogFar}
	s.Ambient = scene.AmbientLight{Color: env.Ambient, Intensity: env.AmbientIntensity}
	s.Sun = &scene.DirectionalLight{
		Color:     env.Sun,
		Intensity: env.SunIntensity,
		Position:  env.SunPosition,
	}

	r := road.New(roadOpts)
	s.Add(r.Root)
	return s, r
}
