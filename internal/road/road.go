// Package road builds the static highway surface: pavement, two side lines
// and a dashed center line.
package road

import (
	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Options describes the road layout in road space, where the road runs
// along Y and the surface faces +Z.
type Options struct {
	Length      float32
	Width       float32
	LineWidth   float32
	LineOffset  float32 // distance of each side line from the center
	DashLength  float32
	DashSpacing float32 // distance between dash centers
	DashStart   float32
	Lift        float32 // height of markings above the pavement

	PavementColor uint32
	SideLineColor uint32
	DashColor     uint32
}

// DefaultOptions returns a 100 unit, two lane highway.
func DefaultOptions() Options {
	return Options{
		Length:        100,
		Width:         11.5,
		LineWidth:     0.25,
		LineOffset:    4,
		DashLength:    2.75,
		DashSpacing:   6,
		DashStart:     -49,
		Lift:          0.1,
		PavementColor: 0x666666,
		SideLineColor: 0xdddddd,
		DashColor:     0xddcc00,
	}
}

// Road is the built surface. Root is rotated so the road runs along world X
// with its surface facing +Y.
type Road struct {
	Root      *scene.Node
	Pavement  *scene.Node
	SideLines []*scene.Node
	Dashes    []*scene.Node
}

// New builds a road.
func New(opts Options) *Road {
	root := scene.NewNode("road")
	root.Rotation = math.V3(-math.Pi/2, 0, math.Pi/2)

	pavementMat := scene.NewMaterial(scene.Hex(opts.PavementColor))
	pavementMat.Specular = scene.Hex(0)
	pavement := scene.NewMeshNode("pavement", &scene.Mesh{
		Geometry:      geometry.NewPlane(opts.Width, opts.Length),
		Material:      pavementMat,
		ReceiveShadow: true,
	})
	root.Add(pavement)

	r := &Road{Root: root, Pavement: pavement}

	sideMat := scene.NewMaterial(scene.Hex(opts.SideLineColor))
	for _, x := range []float32{-opts.LineOffset, opts.LineOffset} {
		n := scene.NewMeshNode("side line", &scene.Mesh{
			Geometry:      geometry.NewPlane(opts.LineWidth, opts.Length),
			Material:      sideMat,
			ReceiveShadow: true,
		})
		n.Position = math.V3(x, 0, opts.Lift)
		r.SideLines = append(r.SideLines, n)
		root.Add(n)
	}

	// Dashes share one geometry and material.
	dashGeom := geometry.NewPlane(opts.LineWidth, opts.DashLength)
	dashMat := scene.NewMaterial(scene.Hex(opts.DashColor))
	end := opts.Length / 2
	for d := opts.DashStart; opts.DashSpacing > 0 && d < end; d += opts.DashSpacing {
		n := scene.NewMeshNode("dash", &scene.Mesh{
			Geometry:      dashGeom,
			Material:      dashMat,
			ReceiveShadow: true,
		})
		n.Position = math.V3(0, d, opts.Lift)
		r.Dashes = append(r.Dashes, n)
		root.Add(n)
	}

	return r
}

// Dispose releases the road's geometry and materials.
func (r *Road) Dispose() scene.DisposeStats {
	return scene.Dispose(r.Root)
}
