package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

func addSpot(s *scene.Scene, pos, target math.Vec3) *scene.Node {
	t := scene.NewNode("target")
	t.Position = target
	n := scene.NewNode("spot")
	n.Position = pos
	n.Light = &scene.SpotLight{
		Color:     scene.Hex(0xff4444),
		Intensity: 0.5,
		Distance:  4,
		Angle:     math.Pi / 8,
		Penumbra:  0.5,
		Decay:     0.25,
		Target:    t,
	}
	s.Add(n, t)
	return n
}

func TestFromScene(t *testing.T) {
	s := scene.New()
	n := addSpot(s, math.V3(1, 2, 3), math.V3(2, 2, 3))

	l := FromScene(n)
	assert.Equal(t, [3]float32{1, 2, 3}, l.Position)
	assert.InDeltaSlice(t, []float32{1, 0, 0}, l.Direction[:], 1e-6)
	assert.InDelta(t, 0.5, l.Color[0], 1e-6)
	assert.InDelta(t, math32.Cos(math.Pi/8), l.CosOuter, 1e-6)
	assert.Greater(t, l.CosInner, l.CosOuter)
}

func TestCollectLimitsAndFlattens(t *testing.T) {
	s := scene.New()
	for i := 0; i < MaxSpotLights+4; i++ {
		addSpot(s, math.V3(float32(i), 0, 0), math.V3(float32(i)+1, 0, 0))
	}

	b := NewSpotLightBuffer()
	dropped := b.Collect(s, math.Vec3{})
	assert.Equal(t, 4, dropped)
	require.Equal(t, MaxSpotLights, b.Count)

	// Nearest lights win.
	assert.Equal(t, float32(0), b.Lights[0].Position[0])
	assert.Equal(t, float32(MaxSpotLights-1), b.Lights[MaxSpotLights-1].Position[0])

	assert.Len(t, b.GetPositions(), MaxSpotLights*3)
	assert.Len(t, b.GetCones(), MaxSpotLights*2)
	att := b.GetAttenuation()
	assert.Equal(t, float32(4), att[0])
	assert.Equal(t, float32(0.25), att[1])
}

func TestEnvironmentFrom(t *testing.T) {
	s := scene.New()
	s.Ambient = scene.AmbientLight{Color: scene.Hex(0x404040), Intensity: 0.5}
	s.Sun = &scene.DirectionalLight{Color: scene.Hex(0xffffff), Intensity: 0.5, Position: math.V3(0, 4, 0)}
	s.Fog = &scene.Fog{Color: scene.Hex(0x348868), Near: 45, Far: 50}

	env := EnvironmentFrom(s)
	assert.InDeltaSlice(t, []float32{0, 1, 0}, env.SunDirection[:], 1e-6)
	assert.InDelta(t, 0.5, env.SunColor[1], 1e-6)
	assert.InDelta(t, 0.5*float32(0x40)/255, env.Ambient[0], 1e-6)
	assert.Equal(t, float32(50), env.FogFar)

	s.Fog = nil
	assert.Zero(t, EnvironmentFrom(s).FogFar)
}
