package lighting

import (
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Environment is the global lighting state of a frame.
type Environment struct {
	SunDirection [3]float32 // normalized, pointing towards the sun
	SunColor     [3]float32
	Ambient      [3]float32
	Background   [3]float32
	FogColor     [3]float32
	FogNear      float32
	FogFar       float32 // 0 disables fog
}

// EnvironmentFrom extracts the global lighting of s.
func EnvironmentFrom(s *scene.Scene) Environment {
	env := Environment{
		Ambient:    math.FromArray(scene.RGB(s.Ambient.Color)).Scale(s.Ambient.Intensity).Array(),
		Background: scene.RGB(s.Background),
	}
	if s.Sun != nil {
		env.SunDirection = s.Sun.Direction().Scale(-1).Array()
		env.SunColor = math.FromArray(scene.RGB(s.Sun.Color)).Scale(s.Sun.Intensity).Array()
	}
	if s.Fog != nil {
		env.FogColor = scene.RGB(s.Fog.Color)
		env.FogNear = s.Fog.Near
		env.FogFar = s.Fog.Far
	}
	return env
}
