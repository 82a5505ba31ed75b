// Package lighting flattens scene lights into fixed-size arrays for GPU upload.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// MaxSpotLights is the maximum number of spot lights supported in shaders.
const MaxSpotLights = 16

// SpotLight represents a spot light in world space, ready for GPU upload.
type SpotLight struct {
	Position  [3]float32
	Direction [3]float32 // normalized, from light towards target
	Color     [3]float32 // RGB premultiplied by intensity
	Distance  float32    // 0 means unlimited
	Decay     float32
	CosOuter  float32 // cosine of the cone half-angle
	CosInner  float32 // cosine where the penumbra starts
}

// FromScene converts a spot light node to world space.
func FromScene(n *scene.Node) SpotLight {
	l := n.Light
	pos := n.WorldPosition()
	rgb := scene.RGB(l.Color)
	inner := l.Angle * (1 - l.Penumbra)
	return SpotLight{
		Position:  pos.Array(),
		Direction: l.Direction(pos).Array(),
		Color:     math.FromArray(rgb).Scale(l.Intensity).Array(),
		Distance:  l.Distance,
		Decay:     l.Decay,
		CosOuter:  math32.Cos(l.Angle),
		CosInner:  math32.Cos(inner),
	}
}

// SpotLightBuffer holds lights for GPU upload.
type SpotLightBuffer struct {
	Lights []SpotLight
	Count  int
}

// NewSpotLightBuffer creates an empty spot light buffer.
func NewSpotLightBuffer() *SpotLightBuffer {
	return &SpotLightBuffer{
		Lights: make([]SpotLight, 0, MaxSpotLights),
	}
}

// Clear removes all lights from the buffer.
func (b *SpotLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a spot light to the buffer.
// Returns false if buffer is full.
func (b *SpotLightBuffer) AddLight(light SpotLight) bool {
	if b.Count >= MaxSpotLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Collect refills the buffer from the visible spot lights of s, keeping the
// ones closest to eye when there are more than MaxSpotLights. It returns the
// number of lights dropped.
func (b *SpotLightBuffer) Collect(s *scene.Scene, eye math.Vec3) int {
	b.Clear()
	nodes := s.SpotLights()
	if len(nodes) > MaxSpotLights {
		sortByDistance(nodes, eye)
	}
	dropped := 0
	for _, n := range nodes {
		if !b.AddLight(FromScene(n)) {
			dropped++
		}
	}
	return dropped
}

func sortByDistance(nodes []*scene.Node, eye math.Vec3) {
	dist := make(map[*scene.Node]float32, len(nodes))
	for _, n := range nodes {
		dist[n] = n.WorldPosition().Distance(eye)
	}
	// insertion sort, light counts are small
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && dist[nodes[j]] < dist[nodes[j-1]]; j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *SpotLightBuffer) GetPositions() []float32 {
	return b.flatten3(func(l SpotLight) [3]float32 { return l.Position })
}

// GetDirections returns directions as a flat float32 slice for GPU upload.
func (b *SpotLightBuffer) GetDirections() []float32 {
	return b.flatten3(func(l SpotLight) [3]float32 { return l.Direction })
}

// GetColors returns colors as a flat float32 slice for GPU upload.
func (b *SpotLightBuffer) GetColors() []float32 {
	return b.flatten3(func(l SpotLight) [3]float32 { return l.Color })
}

// GetCones returns (cosOuter, cosInner) pairs for GPU upload.
func (b *SpotLightBuffer) GetCones() []float32 {
	result := make([]float32, MaxSpotLights*2)
	for i, light := range b.Lights {
		result[i*2+0] = light.CosOuter
		result[i*2+1] = light.CosInner
	}
	return result
}

// GetAttenuation returns (distance, decay) pairs for GPU upload.
func (b *SpotLightBuffer) GetAttenuation() []float32 {
	result := make([]float32, MaxSpotLights*2)
	for i, light := range b.Lights {
		result[i*2+0] = light.Distance
		result[i*2+1] = light.Decay
	}
	return result
}

func (b *SpotLightBuffer) flatten3(field func(SpotLight) [3]float32) []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, light := range b.Lights {
		v := field(light)
		result[i*3+0] = v[0]
		result[i*3+1] = v[1]
		result[i*3+2] = v[2]
	}
	return result
}
