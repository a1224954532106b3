package viz

import "fmt"

// Normalize repairs a table whose classification found no numeric field,
// so that at least one archetype can become renderable. It is a no-op when
// a numeric field already exists.
//
// Step 1 coerces the first categorical field whose sampled value has a
// numeric prefix: every row's value for that field becomes a float (failed
// parses become 0), then the table is reclassified.
//
// Step 2, when no categorical field is numeric-like, replaces the table
// with a count aggregation over the first categorical field: one row per
// distinct value with a synthesized numeric "count" field. The original
// rows are not recoverable downstream.
//
// With zero categorical fields the table is returned unchanged and every
// archetype predicate will fail.
func Normalize(t Table, c Classification) (Table, Classification) {
	if len(c.Numeric) > 0 || len(t.Rows) == 0 {
		return t, c
	}

	sample := t.Rows[0]
	for _, col := range c.Categorical {
		if _, ok := leadingFloat(sample[col]); !ok {
			continue
		}
		coerced := coerceColumn(t, col)
		return coerced, Classify(coerced)
	}

	if len(c.Categorical) == 0 {
		return t, c
	}
	return countAggregate(t, c.Categorical[0])
}

// coerceColumn rewrites one column to floats on every row.
func coerceColumn(t Table, col string) Table {
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		out := make(Row, len(row))
		for k, v := range row {
			out[k] = v
		}
		out[col] = coerceFloat(row[col])
		rows[i] = out
	}
	return Table{Columns: t.Columns, Rows: rows}
}

// countAggregate groups rows by the given field and emits one
// {field, count} row per distinct value, in first-seen order.
func countAggregate(t Table, col string) (Table, Classification) {
	type group struct {
		value any
		count int
	}
	groups := map[string]*group{}
	var order []string

	for _, row := range t.Rows {
		key := fmt.Sprint(row[col])
		g, ok := groups[key]
		if !ok {
			g = &group{value: row[col]}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	out := Table{Columns: []string{col, "count"}}
	for _, key := range order {
		g := groups[key]
		out.Rows = append(out.Rows, Row{col: g.value, "count": float64(g.count)})
	}

	return out, Classification{
		Numeric:     []string{"count"},
		Categorical: []string{col},
	}
}
