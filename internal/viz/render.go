package viz

// Renderers are terminal consumers: a ChartSpec in, an SVG document out.
// Each one re-coerces its numeric role per row at render time (failed
// parses become 0) since it cannot assume the selector ran, and falls back
// to auto-detected field roles when the spec leaves them blank. Malformed
// role keys produce visibly empty axes or slices, never a panic.

// Render draws the spec with the renderer matching its archetype. Unknown
// archetypes produce an empty canvas.
func Render(spec ChartSpec) string {
	switch spec.Type {
	case Bar:
		return renderBar(spec)
	case Line:
		return renderLine(spec)
	case Area:
		return renderArea(spec)
	case Pie:
		return renderPie(spec)
	case Scatter:
		return renderScatter(spec)
	case Heatmap:
		return renderHeatmap(spec)
	default:
		return emptySVG()
	}
}

// RenderAll draws every spec in declared order.
func RenderAll(specs []ChartSpec) []string {
	out := make([]string, len(specs))
	for i, spec := range specs {
		out[i] = Render(spec)
	}
	return out
}

// detectKeys fills blank category/value roles from the first row: the
// first string-valued field becomes the category key, the first
// number-valued field the value key. This is a safety net independent of
// the selector's own defaults, for specs constructed by hand.
func detectKeys(t Table, catKey, valKey string) (string, string) {
	if (catKey != "" && valKey != "") || len(t.Rows) == 0 {
		return catKey, valKey
	}
	sample := t.Rows[0]
	for _, col := range t.Columns {
		switch sample[col].(type) {
		case string:
			if catKey == "" {
				catKey = col
			}
		case float64, float32, int, int32, int64, uint, uint64:
			if valKey == "" {
				valKey = col
			}
		}
	}
	return catKey, valKey
}

// labelsAndValues extracts the category labels and coerced numeric values
// for the single-series archetypes.
func labelsAndValues(t Table, catKey, valKey string) ([]string, []float64) {
	catKey, valKey = detectKeys(t, catKey, valKey)
	labels := make([]string, len(t.Rows))
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		labels[i] = cellString(row[catKey])
		values[i] = coerceFloat(row[valKey])
	}
	return labels, values
}

func renderBar(spec ChartSpec) string {
	labels, values := labelsAndValues(spec.Data, spec.XKey, spec.YKey)
	return barSVG(labels, values)
}

func renderLine(spec ChartSpec) string {
	labels, values := labelsAndValues(spec.Data, spec.XKey, spec.YKey)
	return lineSVG(labels, values, false)
}

func renderArea(spec ChartSpec) string {
	labels, values := labelsAndValues(spec.Data, spec.XKey, spec.YKey)
	return lineSVG(labels, values, true)
}

func renderPie(spec ChartSpec) string {
	labels, values := labelsAndValues(spec.Data, spec.NameKey, spec.ValueKey)
	return pieSVG(labels, values)
}

func renderScatter(spec ChartSpec) string {
	t := spec.Data
	xs := make([]float64, len(t.Rows))
	ys := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		xs[i] = coerceFloat(row[spec.XKey])
		ys[i] = coerceFloat(row[spec.YKey])
	}
	return scatterSVG(xs, ys, spec.XKey, spec.YKey)
}

func renderHeatmap(spec ChartSpec) string {
	t := spec.Data

	var xCats, yCats []string
	xSeen := map[string]int{}
	ySeen := map[string]int{}
	for _, row := range t.Rows {
		x := cellString(row[spec.XKey])
		y := cellString(row[spec.YKey])
		if _, ok := xSeen[x]; !ok {
			xSeen[x] = len(xCats)
			xCats = append(xCats, x)
		}
		if _, ok := ySeen[y]; !ok {
			ySeen[y] = len(yCats)
			yCats = append(yCats, y)
		}
	}

	cells := make([][]float64, len(yCats))
	for i := range cells {
		cells[i] = make([]float64, len(xCats))
	}
	for _, row := range t.Rows {
		xi := xSeen[cellString(row[spec.XKey])]
		yi := ySeen[cellString(row[spec.YKey])]
		cells[yi][xi] = coerceFloat(row[spec.ValueKey])
	}
	return heatmapSVG(xCats, yCats, cells)
}
