package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/autobahn/pkg/math"
)

// SpotLight is a cone light located at its node and aimed at Target.
// Angle is the half-angle of the cone in radians; Penumbra is the fraction
// of the cone that fades out. A Distance of zero means unlimited range.
type SpotLight struct {
	Color      colorful.Color
	Intensity  float32
	Distance   float32
	Angle      float32
	Penumbra   float32
	Decay      float32
	CastShadow bool
	Target     *Node
}

// Direction returns the normalized world direction from the light's node to
// its target. Without a target the light points down -Z.
func (l *SpotLight) Direction(from math.Vec3) math.Vec3 {
	if l.Target == nil {
		return math.V3(0, 0, -1)
	}
	return l.Target.WorldPosition().Sub(from).Normalize()
}

// DirectionalLight shines uniformly from Position towards the origin.
type DirectionalLight struct {
	Color     colorful.Color
	Intensity float32
	Position  math.Vec3
}

// Direction returns the normalized direction the light travels.
func (l DirectionalLight) Direction() math.Vec3 {
	return l.Position.Scale(-1).Normalize()
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     colorful.Color
	Intensity float32
}

// Fog blends linearly to Color between Near and Far.
type Fog struct {
	Color colorful.Color
	Near  float32
	Far   float32
}
