// Package geometry holds CPU-side triangle meshes and the primitive
// builders used by the car generator and the road.
package geometry

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	updateBounds(&b, o.Min)
	updateBounds(&b, o.Max)
	return b
}

// EmptyBounds returns an inverted box that any point will grow.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// ReverseWinding reverses triangle winding order (for inward-wound tables).
	ReverseWinding bool
	// Smooth averages normals at shared positions after building.
	Smooth bool
}
