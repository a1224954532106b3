// Package viz is the visualization decision engine: given an arbitrary
// tabular result set and an optional list of recommended chart types, it
// classifies fields, repairs the data when no numeric field exists, picks
// renderable chart archetypes, and renders them as SVG. The engine is pure
// and stateless; the worst outcome is an empty chart list, never an error.
package viz

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Classification partitions a table's fields into numeric and categorical
// sets. The sets are disjoint and ordered by column position: the numeric
// test wins, everything else is categorical.
type Classification struct {
	Numeric     []string
	Categorical []string
}

// Classify inspects the first row of the table and partitions its fields.
// Only row 0 is sampled; a homogeneous schema across rows is assumed.
// Fields whose sampled value is null fall to categorical, the conservative
// default that keeps the most archetypes applicable.
func Classify(t Table) Classification {
	var c Classification
	if len(t.Rows) == 0 {
		return c
	}
	sample := t.Rows[0]
	for _, col := range t.Columns {
		if _, ok := numericValue(sample[col]); ok {
			c.Numeric = append(c.Numeric, col)
		} else {
			c.Categorical = append(c.Categorical, col)
		}
	}
	return c
}

// numericValue reports whether v is a number, or a string that parses in
// full to a finite number. Booleans and nulls are never numeric.
func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// leadingNumeral matches the longest numeric prefix of a string, mirroring
// JavaScript parseFloat: "100 units" coerces to 100.
var leadingNumeral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// leadingFloat is the lenient parse used for coercion: it accepts anything
// numericValue does, plus strings with a numeric prefix. Used by the
// normalizer, the last-resort series, and the renderers' own per-row
// coercion.
func leadingFloat(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return numericValue(v)
	}
	m := leadingNumeral.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// coerceFloat is leadingFloat with the failed-parse-becomes-zero policy
// applied. Best effort over correctness: a broken cell never breaks a
// chart.
func coerceFloat(v any) float64 {
	f, ok := leadingFloat(v)
	if !ok {
		return 0
	}
	return f
}
