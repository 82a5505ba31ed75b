// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/autobahn/pkg/math"
)

// Perspective is a look-at camera with a vertical field of view in degrees.
type Perspective struct {
	FOV      float32
	Near     float32
	Far      float32
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov float32) *Perspective {
	return &Perspective{
		FOV:    fov,
		Near:   0.1,
		Far:    1000,
		Target: math.V3(0, 0, -1),
		Up:     math.V3(0, 1, 0),
	}
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target math.Vec3) {
	c.Target = target
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the projection for a viewport aspect ratio.
func (c *Perspective) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV*math.Pi/180, aspect, c.Near, c.Far)
}

// Forward returns the normalized viewing direction.
func (c *Perspective) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// DriverRig places a camera at an anchor point of a moving object.
type DriverRig struct {
	Camera *Perspective
	// Anchor is the eye offset from the followed object's origin.
	Anchor math.Vec3
}

// Follow moves the camera to origin + Anchor, keeping its target.
func (r *DriverRig) Follow(origin math.Vec3) {
	r.Camera.Position = origin.Add(r.Anchor)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around Y, 0 looks down -Z

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera that starts at eye looking at center.
func NewOrbitCamera(eye, center math.Vec3) *OrbitCamera {
	offset := eye.Sub(center)
	dist := offset.Length()
	return &OrbitCamera{
		Center:          center,
		Distance:        dist,
		Pitch:           math32.Asin(offset.Y / dist),
		Yaw:             math32.Atan2(offset.X, offset.Z),
		MinDistance:     2,
		MaxDistance:     100,
		MinPitch:        -1.2,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinP, cosP := math32.Sincos(c.Pitch)
	sinY, cosY := math32.Sincos(c.Yaw)
	return c.Center.Add(math.V3(
		c.Distance*cosP*sinY,
		c.Distance*sinP,
		c.Distance*cosP*cosY,
	))
}

// Apply writes the orbit position and center into a perspective camera.
func (c *OrbitCamera) Apply(p *Perspective) {
	p.Position = c.Position()
	p.Target = c.Center
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = math32.Max(c.MinPitch, math32.Min(c.MaxPitch, c.Pitch))
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))
}
