package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one result record keyed by field name. Values are whatever the
// agent service produced: numbers, strings, booleans, nulls, or nested
// objects for graph-typed results.
type Row map[string]any

// Table is an ordered result set. Columns preserves the key order of the
// first row as it appeared on the wire; Go maps do not, and the field-role
// defaults downstream depend on that order.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from pre-ordered columns and rows.
func NewTable(columns []string, rows []Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// UnmarshalJSON decodes a JSON array of objects, capturing the first
// object's key order into Columns. Rows after the first are assumed to
// share the same field set (row 0 is the structural sample).
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("result set must be a JSON array, got %v", tok)
	}

	t.Columns = nil
	t.Rows = nil

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return fmt.Errorf("result row must be a JSON object, got %v", tok)
		}

		row := Row{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", keyTok)
			}

			var val any
			if err := dec.Decode(&val); err != nil {
				return err
			}
			row[key] = val

			if len(t.Rows) == 0 {
				t.Columns = append(t.Columns, key)
			}
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return err
		}
		t.Rows = append(t.Rows, row)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return err
	}
	return nil
}

// MarshalJSON encodes rows in column order so round-trips keep the order
// stable.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(row[col])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
