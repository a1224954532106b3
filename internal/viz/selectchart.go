package viz

import "fmt"

// Archetype is one of the six supported chart types.
type Archetype string

const (
	Bar     Archetype = "bar"
	Line    Archetype = "line"
	Pie     Archetype = "pie"
	Area    Archetype = "area"
	Scatter Archetype = "scatter"
	Heatmap Archetype = "heatmap"
)

// Archetypes lists every supported chart type.
var Archetypes = []Archetype{Bar, Line, Pie, Area, Scatter, Heatmap}

// ParseArchetype validates an externally supplied chart-type name.
func ParseArchetype(s string) (Archetype, bool) {
	for _, a := range Archetypes {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// ParseArchetypes filters a recommendation list down to known archetypes,
// preserving the caller's priority order. Unknown names are dropped
// silently; a recommendation is advice, not a contract.
func ParseArchetypes(names []string) []Archetype {
	var out []Archetype
	for _, name := range names {
		if a, ok := ParseArchetype(name); ok {
			out = append(out, a)
		}
	}
	return out
}

// ChartSpec is a fully bound, ready-to-render description of one chart:
// an archetype, its field-role bindings, and the (possibly normalized)
// data to draw.
type ChartSpec struct {
	Type     Archetype `json:"type"`
	XKey     string    `json:"x_key,omitempty"`
	YKey     string    `json:"y_key,omitempty"`
	NameKey  string    `json:"name_key,omitempty"`
	ValueKey string    `json:"value_key,omitempty"`
	Data     Table     `json:"data"`
}

// pieRowLimit excludes pie from the default cascade for larger result
// sets; slices stop being readable well before then.
const pieRowLimit = 20

// CanRender reports whether an archetype's structural preconditions are
// met by the classified field sets.
//
// The "or ≥2 total fields" clause on bar/line/area presses a second field
// into service as a category axis even when nothing classified
// categorical — show something over showing nothing.
func CanRender(a Archetype, numeric, categorical, all []string) bool {
	switch a {
	case Bar, Line, Area:
		return len(numeric) > 0 && (len(categorical) > 0 || len(all) > 1)
	case Pie:
		return len(numeric) > 0 && len(categorical) > 0
	case Scatter:
		return len(numeric) >= 2
	case Heatmap:
		return len(numeric) > 0 && len(categorical) >= 2
	default:
		return false
	}
}

// Select turns a result set and a ranked recommendation list into an
// ordered list of chart specs. An empty result means the caller should
// surface an explicit cannot-visualize verdict; it is a normal return
// value, not a failure.
//
// Passes, in strict order:
//  1. every renderable recommended archetype, in the caller's priority
//     order;
//  2. if none matched, the default cascade bar → pie (row count permitting)
//     → scatter → line, first match only;
//  3. if still nothing and the table has fields, a synthetic per-row index
//     bar series.
func Select(t Table, recommended []Archetype) []ChartSpec {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return nil
	}

	// Field universe is fixed before normalization; a count-aggregated
	// table still renders against the original field count.
	all := t.Columns

	cls := Classify(t)
	if len(cls.Numeric) == 0 {
		t, cls = Normalize(t, cls)
	}

	var specs []ChartSpec
	for _, a := range recommended {
		if CanRender(a, cls.Numeric, cls.Categorical, all) {
			specs = append(specs, bindRoles(a, t, cls, all))
		}
	}

	if len(specs) == 0 {
		for _, a := range []Archetype{Bar, Pie, Scatter, Line} {
			if a == Pie && len(t.Rows) > pieRowLimit {
				continue
			}
			if CanRender(a, cls.Numeric, cls.Categorical, all) {
				specs = append(specs, bindRoles(a, t, cls, all))
				break
			}
		}
	}

	if len(specs) == 0 {
		specs = append(specs, indexSeries(t))
	}
	return specs
}

// bindRoles fills an archetype's role schema from the classified fields:
// categorical 0 (or field 0 outright) as the primary axis/name key,
// numeric 0 as the primary value, numeric 1 and categorical 1 as the
// secondary keys where the archetype wants them. Callers guarantee
// CanRender held.
func bindRoles(a Archetype, t Table, cls Classification, all []string) ChartSpec {
	primary := ""
	if len(cls.Categorical) > 0 {
		primary = cls.Categorical[0]
	} else if len(all) > 0 {
		primary = all[0]
	}

	spec := ChartSpec{Type: a, Data: t}
	switch a {
	case Pie:
		spec.NameKey = primary
		spec.ValueKey = cls.Numeric[0]
	case Scatter:
		spec.XKey = cls.Numeric[0]
		spec.YKey = cls.Numeric[1]
	case Heatmap:
		spec.XKey = cls.Categorical[0]
		spec.YKey = cls.Categorical[1]
		spec.ValueKey = cls.Numeric[0]
	default:
		spec.XKey = primary
		spec.YKey = cls.Numeric[0]
	}
	return spec
}

// indexSeries is the last resort: label each row "Row N" and chart the
// first value in column order that parses to a number, defaulting to 1.
func indexSeries(t Table) ChartSpec {
	out := Table{Columns: []string{"index", "value"}}
	for i, row := range t.Rows {
		value := 1.0
		for _, col := range t.Columns {
			if f, ok := leadingFloat(row[col]); ok {
				value = f
				break
			}
		}
		out.Rows = append(out.Rows, Row{
			"index": fmt.Sprintf("Row %d", i+1),
			"value": value,
		})
	}
	return ChartSpec{Type: Bar, XKey: "index", YKey: "value", Data: out}
}
