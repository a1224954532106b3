package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesTable() Table {
	return NewTable([]string{"region", "sales"}, []Row{
		{"region": "north", "sales": "100"},
		{"region": "south", "sales": 250.0},
		{"region": "east", "sales": 80.0},
	})
}

func TestRenderBar(t *testing.T) {
	svg := Render(ChartSpec{Type: Bar, XKey: "region", YKey: "sales", Data: salesTable()})
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "north")
	assert.Equal(t, 4, strings.Count(svg, "<rect"), "background plus one bar per row")
}

func TestRenderLineAndArea(t *testing.T) {
	spec := ChartSpec{Type: Line, XKey: "region", YKey: "sales", Data: salesTable()}
	line := Render(spec)
	assert.Contains(t, line, "<polyline")
	assert.NotContains(t, line, "<polygon")

	spec.Type = Area
	area := Render(spec)
	assert.Contains(t, area, "<polyline")
	assert.Contains(t, area, "<polygon")
}

func TestRenderPie(t *testing.T) {
	svg := Render(ChartSpec{Type: Pie, NameKey: "region", ValueKey: "sales", Data: salesTable()})
	assert.Equal(t, 3, strings.Count(svg, "<path"))
	assert.Contains(t, svg, "south")
}

func TestRenderScatter(t *testing.T) {
	table := NewTable([]string{"x", "y"}, []Row{
		{"x": 1.0, "y": 2.0},
		{"x": 3.0, "y": 4.0},
	})
	svg := Render(ChartSpec{Type: Scatter, XKey: "x", YKey: "y", Data: table})
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
}

func TestRenderHeatmap(t *testing.T) {
	table := NewTable([]string{"city", "product", "sales"}, []Row{
		{"city": "oslo", "product": "tea", "sales": 10.0},
		{"city": "bergen", "product": "tea", "sales": 5.0},
	})
	svg := Render(ChartSpec{Type: Heatmap, XKey: "city", YKey: "product", ValueKey: "sales", Data: table})
	// Background plus a 2x1 grid plus legend swatches.
	assert.Contains(t, svg, "oslo")
	assert.Contains(t, svg, "tea")
}

func TestRenderUnknownArchetype(t *testing.T) {
	svg := Render(ChartSpec{Type: Archetype("sunburst"), Data: salesTable()})
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRenderMalformedSpecs(t *testing.T) {
	// Wrong keys, empty data, nil cells: every case must come back as a
	// well-formed document, never panic.
	specs := []ChartSpec{
		{Type: Bar, XKey: "nope", YKey: "missing", Data: salesTable()},
		{Type: Pie, NameKey: "x", ValueKey: "y", Data: NewTable([]string{"a"}, []Row{{"a": nil}})},
		{Type: Scatter, XKey: "x", YKey: "y", Data: Table{}},
		{Type: Heatmap, Data: NewTable([]string{"a"}, []Row{{"a": "x"}})},
		{Type: Line, Data: Table{}},
	}
	for i, spec := range specs {
		svg := Render(spec)
		assert.True(t, strings.HasPrefix(svg, "<svg"), "spec %d", i)
		assert.True(t, strings.HasSuffix(svg, "</svg>"), "spec %d", i)
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	table := NewTable([]string{"name", "n"}, []Row{
		{"name": `<b>&"x"</b>`, "n": 1.0},
	})
	svg := Render(ChartSpec{Type: Bar, XKey: "name", YKey: "n", Data: table})
	assert.NotContains(t, svg, "<b>")
	assert.Contains(t, svg, "&lt;b&gt;")
}

func TestRenderAutoDetectsKeys(t *testing.T) {
	svg := Render(ChartSpec{Type: Bar, Data: salesTable()})
	require.Contains(t, svg, "north", "category key detected from the first string field")
	assert.Equal(t, 4, strings.Count(svg, "<rect"))
}

func TestRenderAll(t *testing.T) {
	specs := Select(salesTable(), []Archetype{Bar, Pie})
	require.Len(t, specs, 2)
	out := RenderAll(specs)
	require.Len(t, out, 2)
	for _, svg := range out {
		assert.True(t, strings.HasPrefix(svg, "<svg"))
	}
}
