package car

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelsClosedManifold(t *testing.T) {
	for _, roof := range []RoofPreset{RoofSplitP4P6, RoofSplitP3P5} {
		t.Run(roof.String(), func(t *testing.T) {
			tris := Triangles(Panels(roof, true))
			assert.Len(t, tris, 28)
			assert.Empty(t, OpenEdges(tris), "shell should be closed and consistently wound")
		})
	}
}

func TestPanelsOpenWithoutUnderBody(t *testing.T) {
	for _, roof := range []RoofPreset{RoofSplitP4P6, RoofSplitP3P5} {
		open := OpenEdges(Triangles(Panels(roof, false)))
		require.Len(t, open, 4)

		// The boundary is the loop p1 -> p8 -> p8z -> p1z.
		loop := map[Edge]bool{
			{l(P1), l(P8)}: true,
			{l(P8), r(P8)}: true,
			{r(P8), r(P1)}: true,
			{r(P1), l(P1)}: true,
		}
		for _, e := range open {
			assert.True(t, loop[e], "unexpected open edge %s->%s", e.From, e.To)
		}
	}
}

func TestPanelsCoverEveryPointAndMirror(t *testing.T) {
	seen := make(map[Vertex]bool)
	for _, tri := range Triangles(Panels(RoofSplitP4P6, true)) {
		for _, v := range tri {
			seen[v] = true
		}
	}
	for p := P1; p <= P8; p++ {
		assert.True(t, seen[l(p)], "missing %s", l(p))
		assert.True(t, seen[r(p)], "missing %s", r(p))
	}
}

func TestRoofPresetsDiffer(t *testing.T) {
	a := upperSides[RoofSplitP4P6].Tris
	b := upperSides[RoofSplitP3P5].Tris
	assert.NotEqual(t, a, b)
	assert.Equal(t, Tri{l(P3), l(P6), l(P4)}, a[0])
	assert.Equal(t, Tri{l(P3), l(P5), l(P4)}, b[0])
}

func TestParsePresets(t *testing.T) {
	tests := []struct {
		in      string
		want    RoofPreset
		wantErr bool
	}{
		{"p4p6", RoofSplitP4P6, false},
		{"p3p5", RoofSplitP3P5, false},
		{"", RoofSplitP4P6, false},
		{"diagonal", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRoofPreset(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	trim, err := ParseTrimLevel("none")
	require.NoError(t, err)
	assert.Equal(t, TrimNone, trim)
	_, err = ParseTrimLevel("chrome")
	assert.Error(t, err)
}

func TestVertexString(t *testing.T) {
	assert.Equal(t, "p1", l(P1).String())
	assert.Equal(t, "p8z", r(P8).String())
}
