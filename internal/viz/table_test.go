package viz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableUnmarshalPreservesColumnOrder(t *testing.T) {
	raw := `[{"zulu":1,"alpha":"x","mike":true},{"zulu":2,"alpha":"y","mike":false}]`

	var table Table
	require.NoError(t, json.Unmarshal([]byte(raw), &table))

	assert.Equal(t, []string{"zulu", "alpha", "mike"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1.0, table.Rows[0]["zulu"])
	assert.Equal(t, "y", table.Rows[1]["alpha"])
}

func TestTableRoundTrip(t *testing.T) {
	raw := `[{"b":"north","a":100},{"b":"south","a":250}]`

	var table Table
	require.NoError(t, json.Unmarshal([]byte(raw), &table))

	out, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Contains(t, string(out), `{"b":"north"`, "key order survives the round trip")
}

func TestTableUnmarshalRejectsNonArray(t *testing.T) {
	var table Table
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &table))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &table))
}

func TestTableUnmarshalEmptyAndNested(t *testing.T) {
	var table Table
	require.NoError(t, json.Unmarshal([]byte(`[]`), &table))
	assert.True(t, table.IsEmpty())
	assert.Empty(t, table.Columns)

	require.NoError(t, json.Unmarshal([]byte(`[{"node":{"labels":["Person"]},"degree":3}]`), &table))
	assert.Equal(t, []string{"node", "degree"}, table.Columns)
	assert.Equal(t, map[string]any{"labels": []any{"Person"}}, table.Rows[0]["node"])
}
