package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		table           Table
		wantNumeric     []string
		wantCategorical []string
	}{
		{
			name: "numbers and strings",
			table: NewTable([]string{"region", "sales"}, []Row{
				{"region": "north", "sales": 100.0},
			}),
			wantNumeric:     []string{"sales"},
			wantCategorical: []string{"region"},
		},
		{
			name: "numeric strings are numeric",
			table: NewTable([]string{"region", "sales"}, []Row{
				{"region": "north", "sales": "100"},
			}),
			wantNumeric:     []string{"sales"},
			wantCategorical: []string{"region"},
		},
		{
			name: "decimal and signed numerals",
			table: NewTable([]string{"a", "b", "c"}, []Row{
				{"a": "3.14", "b": "-42", "c": "+7.5"},
			}),
			wantNumeric: []string{"a", "b", "c"},
		},
		{
			name: "null sample is categorical",
			table: NewTable([]string{"maybe", "n"}, []Row{
				{"maybe": nil, "n": 1.0},
			}),
			wantNumeric:     []string{"n"},
			wantCategorical: []string{"maybe"},
		},
		{
			name: "nested objects are categorical",
			table: NewTable([]string{"node", "degree"}, []Row{
				{"node": map[string]any{"labels": []any{"Person"}}, "degree": 3.0},
			}),
			wantNumeric:     []string{"degree"},
			wantCategorical: []string{"node"},
		},
		{
			name: "booleans are categorical",
			table: NewTable([]string{"active", "n"}, []Row{
				{"active": true, "n": 2.0},
			}),
			wantNumeric:     []string{"n"},
			wantCategorical: []string{"active"},
		},
		{
			name: "string with trailing text is not numeric",
			table: NewTable([]string{"qty"}, []Row{
				{"qty": "12 pcs"},
			}),
			wantCategorical: []string{"qty"},
		},
		{
			name:  "empty result set",
			table: NewTable([]string{"a"}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.table)
			assert.Equal(t, tt.wantNumeric, got.Numeric)
			assert.Equal(t, tt.wantCategorical, got.Categorical)
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	table := NewTable([]string{"region", "sales", "note"}, []Row{
		{"region": "north", "sales": "100", "note": nil},
		{"region": "south", "sales": "oops", "note": "x"},
	})

	first := Classify(table)
	second := Classify(table)
	require.Equal(t, first, second)
}

func TestClassifyDisjoint(t *testing.T) {
	table := NewTable([]string{"a", "b", "c"}, []Row{
		{"a": "100", "b": "north", "c": 1.5},
	})
	got := Classify(table)

	seen := map[string]bool{}
	for _, f := range got.Numeric {
		seen[f] = true
	}
	for _, f := range got.Categorical {
		assert.False(t, seen[f], "field %q in both sets", f)
	}
	assert.Len(t, got.Numeric, 2)
	assert.Len(t, got.Categorical, 1)
}

func TestLeadingFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"12 pcs", 12, true},
		{"  3.5kg", 3.5, true},
		{"-2.5", -2.5, true},
		{"1e3", 1000, true},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{true, 0, false},
		{42.0, 42, true},
	}
	for _, tt := range tests {
		got, ok := leadingFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestCoerceFloatDefaultsToZero(t *testing.T) {
	assert.Equal(t, 0.0, coerceFloat("not a number"))
	assert.Equal(t, 0.0, coerceFloat(nil))
	assert.Equal(t, 250.0, coerceFloat("250"))
}
