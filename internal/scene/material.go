package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/autobahn/internal/engine/geometry"
)

// Hex converts a 0xRRGGBB value to a color.
func Hex(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

// ToHex converts a color back to 0xRRGGBB, clamping out-of-gamut values.
func ToHex(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGB returns the color as float32 components for shader uniforms.
func RGB(c colorful.Color) [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// Material is a Phong surface description.
type Material struct {
	Color       colorful.Color
	Specular    colorful.Color
	Shininess   float32
	DoubleSided bool

	disposed  bool
	onDispose []func()
}

// NewMaterial creates a material with black specular and default shininess.
func NewMaterial(color colorful.Color) *Material {
	return &Material{
		Color:     color,
		Shininess: 30,
	}
}

// OnDispose registers fn to run when the material is disposed.
func (m *Material) OnDispose(fn func()) {
	if m.disposed {
		fn()
		return
	}
	m.onDispose = append(m.onDispose, fn)
}

// Dispose runs the registered hooks once.
func (m *Material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	hooks := m.onDispose
	m.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
}

// Disposed reports whether Dispose has run.
func (m *Material) Disposed() bool {
	return m.disposed
}

// Mesh pairs geometry with a material.
type Mesh struct {
	Geometry      *geometry.Mesh
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool
}
