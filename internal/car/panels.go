package car

import (
	"fmt"

	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/pkg/math"
)

// Vertex names a shell corner: a profile point on the left side, or its
// mirror on the right.
type Vertex struct {
	Point    PointID
	Mirrored bool
}

func (v Vertex) String() string {
	if v.Mirrored {
		return v.Point.String() + "z"
	}
	return v.Point.String()
}

// l and r keep the panel table readable.
func l(p PointID) Vertex { return Vertex{Point: p} }
func r(p PointID) Vertex { return Vertex{Point: p, Mirrored: true} }

// Tri is one shell triangle. Table triangles are wound facing into the car.
type Tri [3]Vertex

// Panel is a named group of shell triangles. A Mirrored panel describes
// the left side only; the right side is its reflection with the winding
// reversed.
type Panel struct {
	Name     string
	Tris     []Tri
	Mirrored bool
}

// RoofPreset picks the diagonal used to split the side window quad.
type RoofPreset int

const (
	// RoofSplitP4P6 splits the upper side along p4-p6.
	RoofSplitP4P6 RoofPreset = iota
	// RoofSplitP3P5 splits the upper side along p3-p5.
	RoofSplitP3P5
)

func (p RoofPreset) String() string {
	switch p {
	case RoofSplitP4P6:
		return "p4p6"
	case RoofSplitP3P5:
		return "p3p5"
	default:
		return fmt.Sprintf("RoofPreset(%d)", int(p))
	}
}

// ParseRoofPreset accepts the names returned by RoofPreset.String.
func ParseRoofPreset(s string) (RoofPreset, error) {
	switch s {
	case "p4p6", "":
		return RoofSplitP4P6, nil
	case "p3p5":
		return RoofSplitP3P5, nil
	default:
		return 0, fmt.Errorf("unknown roof preset %q (want p4p6 or p3p5)", s)
	}
}

var lowerSide = Panel{
	Name:     "lower side",
	Mirrored: true,
	Tris: []Tri{
		{l(P1), l(P3), l(P2)},
		{l(P1), l(P8), l(P3)},
		{l(P3), l(P8), l(P6)},
		{l(P8), l(P7), l(P6)},
	},
}

var upperSides = map[RoofPreset]Panel{
	RoofSplitP4P6: {
		Name:     "upper side",
		Mirrored: true,
		Tris: []Tri{
			{l(P3), l(P6), l(P4)},
			{l(P4), l(P6), l(P5)},
		},
	},
	RoofSplitP3P5: {
		Name:     "upper side",
		Mirrored: true,
		Tris: []Tri{
			{l(P3), l(P5), l(P4)},
			{l(P3), l(P6), l(P5)},
		},
	},
}

// strip spans the car between consecutive profile points a and b.
func strip(name string, a, b PointID) Panel {
	return Panel{
		Name: name,
		Tris: []Tri{
			{r(a), l(a), r(b)},
			{r(b), l(a), l(b)},
		},
	}
}

var crossPanels = []Panel{
	strip("lower front", P1, P2),
	strip("hood", P2, P3),
	strip("windshield", P3, P4),
	strip("roof", P4, P5),
	{Name: "back window", Tris: []Tri{{r(P5), l(P5), l(P6)}, {r(P5), l(P6), r(P6)}}},
	{Name: "trunk", Tris: []Tri{{r(P6), l(P6), l(P7)}, {r(P6), l(P7), r(P7)}}},
	{Name: "lower back", Tris: []Tri{{r(P7), l(P7), l(P8)}, {r(P7), l(P8), r(P8)}}},
}

var underBody = Panel{
	Name: "under",
	Tris: []Tri{
		{l(P1), r(P1), l(P8)},
		{r(P1), r(P8), l(P8)},
	},
}

// Panels returns the shell table for a roof preset.
func Panels(roof RoofPreset, under bool) []Panel {
	upper, ok := upperSides[roof]
	if !ok {
		upper = upperSides[RoofSplitP4P6]
	}
	panels := []Panel{lowerSide, upper}
	panels = append(panels, crossPanels...)
	if under {
		panels = append(panels, underBody)
	}
	return panels
}

// Triangles expands panels into the full triangle list, adding the right
// side of every mirrored panel.
func Triangles(panels []Panel) []Tri {
	var out []Tri
	for _, p := range panels {
		out = append(out, p.Tris...)
		if !p.Mirrored {
			continue
		}
		for _, t := range p.Tris {
			out = append(out, Tri{mirror(t[0]), mirror(t[2]), mirror(t[1])})
		}
	}
	return out
}

func mirror(v Vertex) Vertex {
	v.Mirrored = !v.Mirrored
	return v
}

// Edge is a directed triangle edge.
type Edge struct {
	From, To Vertex
}

// OpenEdges returns every directed edge that is not matched by exactly one
// edge running the other way. A closed, consistently wound surface has none.
func OpenEdges(tris []Tri) []Edge {
	count := make(map[Edge]int)
	var order []Edge
	for _, t := range tris {
		for k := range 3 {
			e := Edge{t[k], t[(k+1)%3]}
			if count[e] == 0 {
				order = append(order, e)
			}
			count[e]++
		}
	}

	var open []Edge
	for _, e := range order {
		if count[e] != 1 || count[Edge{e.To, e.From}] != 1 {
			open = append(open, e)
		}
	}
	return open
}

// resolve maps a table vertex to its position.
func resolve(v Vertex, left, right Skeleton) math.Vec3 {
	if v.Mirrored {
		return right[v.Point]
	}
	return left[v.Point]
}

// buildShell turns the panel table into an outward-facing smooth mesh.
func buildShell(left Skeleton, roof RoofPreset, under bool) *geometry.Mesh {
	right := left.Mirror()
	tris := Triangles(Panels(roof, under))

	soup := make([]geometry.Triangle, len(tris))
	for i, t := range tris {
		soup[i] = geometry.Triangle{
			resolve(t[0], left, right),
			resolve(t[1], left, right),
			resolve(t[2], left, right),
		}
	}
	return geometry.FromTriangles("shell", soup, geometry.BuildOptions{
		ReverseWinding: true,
		Smooth:         true,
	})
}
