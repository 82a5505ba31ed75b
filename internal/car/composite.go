package car

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Composite is a built car. Root is the node to place in a scene; Body is
// lifted onto the wheels and holds every mesh and light.
type Composite struct {
	Root  *scene.Node
	Body  *scene.Node
	Shell *scene.Node

	// Skeleton and Mirror are the final left and right profiles in body space.
	Skeleton      Skeleton
	Mirror        Skeleton
	WheelGeometry Wheels
	Color         colorful.Color
	Options       Options

	wheels   []*scene.Node
	fixtures []*scene.Node
	lights   []*scene.Node
	anchor   *scene.Node
	disposed bool
}

// Wheels returns the four tire nodes.
func (c *Composite) Wheels() []*scene.Node { return c.wheels }

// Fixtures returns the headlight and taillight meshes, if any.
func (c *Composite) Fixtures() []*scene.Node { return c.fixtures }

// Lights returns the spot light nodes, if any.
func (c *Composite) Lights() []*scene.Node { return c.lights }

// Anchor returns the driver anchor node.
func (c *Composite) Anchor() *scene.Node { return c.anchor }

// DriverAnchor returns the driver's eye point relative to Root.
func (c *Composite) DriverAnchor() math.Vec3 {
	return c.anchor.Position
}

// Bounds returns the box around every mesh, relative to Root.
func (c *Composite) Bounds() geometry.Bounds {
	b := geometry.EmptyBounds()
	for _, child := range c.Root.Children() {
		child.WalkWorld(math.Identity(), func(n *scene.Node, m math.Mat4) {
			growBounds(&b, n, m)
		})
	}
	return b
}

// WorldBounds returns the axis-aligned box around every mesh in world space.
func (c *Composite) WorldBounds() geometry.Bounds {
	parent := math.Identity()
	if p := c.Root.Parent(); p != nil {
		parent = p.WorldMatrix()
	}
	b := geometry.EmptyBounds()
	c.Root.WalkWorld(parent, func(n *scene.Node, m math.Mat4) {
		growBounds(&b, n, m)
	})
	return b
}

func growBounds(b *geometry.Bounds, n *scene.Node, m math.Mat4) {
	if n.Mesh == nil || n.Mesh.Geometry == nil {
		return
	}
	for _, v := range n.Mesh.Geometry.Vertices {
		p := m.TransformPoint(v.Position)
		*b = b.Union(geometry.Bounds{Min: p, Max: p})
	}
}

// Dispose releases every geometry and material and detaches Root from its
// parent. It is safe to call more than once.
func (c *Composite) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	scene.Dispose(c.Root)
}

// Disposed reports whether Dispose has run.
func (c *Composite) Disposed() bool {
	return c.disposed
}

// Summary is a flat description of a car for logs and tools.
type Summary struct {
	Length      float32 `json:"length"`
	Width       float32 `json:"width"`
	Height      float32 `json:"height"`
	Wheelbase   float32 `json:"wheelbase"`
	FrontRadius float32 `json:"front_radius"`
	RearRadius  float32 `json:"rear_radius"`
	FrontWidth  float32 `json:"front_width"`
	RearWidth   float32 `json:"rear_width"`
	Color       string  `json:"color"`
	Lights      int     `json:"lights"`
	Triangles   int     `json:"triangles"`
}

// Describe summarizes c.
func Describe(c *Composite) Summary {
	b := c.Bounds()
	size := b.Size()
	w := c.WheelGeometry

	tris := 0
	c.Root.Walk(func(n *scene.Node) bool {
		if n.Mesh != nil && n.Mesh.Geometry != nil {
			tris += n.Mesh.Geometry.TriangleCount()
		}
		return true
	})

	return Summary{
		Length:      size[0],
		Width:       size[2],
		Height:      size[1],
		Wheelbase:   w.Wheelbase(),
		FrontRadius: w.FrontRadius,
		RearRadius:  w.RearRadius,
		FrontWidth:  w.FrontWidth,
		RearWidth:   w.RearWidth,
		Color:       c.Color.Hex(),
		Lights:      len(c.lights),
		Triangles:   tris,
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("%s %.2fx%.2fx%.2f wheelbase %.2f wheels %.2f/%.2f",
		s.Color, s.Length, s.Width, s.Height, s.Wheelbase, s.FrontRadius, s.RearRadius)
}
