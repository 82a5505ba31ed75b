package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Scene is a root node plus global lighting and atmosphere.
type Scene struct {
	Root       *Node
	Background colorful.Color
	Fog        *Fog
	Ambient    AmbientLight
	Sun        *DirectionalLight
}

// New creates an empty scene with a black background.
func New() *Scene {
	return &Scene{Root: NewNode("scene")}
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

// SpotLights returns every visible spot light with its node.
func (s *Scene) SpotLights() []*Node {
	var out []*Node
	s.Root.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Light != nil {
			out = append(out, n)
		}
		return true
	})
	return out
}

// DisposeStats counts the resources released by Dispose.
type DisposeStats struct {
	Geometries int
	Materials  int
	Nodes      int
}

// Dispose releases every geometry and material in the subtree rooted at n
// exactly once, even when they are shared between nodes, and detaches n
// from its parent.
func Dispose(n *Node) DisposeStats {
	var stats DisposeStats
	if n == nil {
		return stats
	}
	n.Walk(func(c *Node) bool {
		stats.Nodes++
		if c.Mesh == nil {
			return true
		}
		if g := c.Mesh.Geometry; g != nil && !g.Disposed() {
			g.Dispose()
			stats.Geometries++
		}
		if m := c.Mesh.Material; m != nil && !m.Disposed() {
			m.Dispose()
			stats.Materials++
		}
		return true
	})

	n.RemoveFromParent()
	return stats
}
