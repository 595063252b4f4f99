package gateway

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireCell tags each value with its Go type so a decoded ResultSet holds
// exactly what was encoded. Plain JSON would turn int64 into float64 and
// time.Time into a string. All fields nil encodes a nil value.
type wireCell struct {
	I *int64     `json:"i,omitempty"`
	F *float64   `json:"f,omitempty"`
	S *string    `json:"s,omitempty"`
	B *bool      `json:"b,omitempty"`
	T *time.Time `json:"t,omitempty"`
}

type wireResultSet struct {
	Columns []string     `json:"columns"`
	Rows    [][]wireCell `json:"rows"`
}

// MarshalBinary encodes rs for storage outside the process. Values of a type
// other than the normalised ones are stored as their string form.
func (rs *ResultSet) MarshalBinary() ([]byte, error) {
	w := wireResultSet{Columns: rs.Columns, Rows: make([][]wireCell, len(rs.Rows))}
	for i, row := range rs.Rows {
		cells := make([]wireCell, len(rs.Columns))
		for j, col := range rs.Columns {
			switch x := row[col].(type) {
			case nil:
			case int64:
				cells[j].I = &x
			case float64:
				cells[j].F = &x
			case string:
				cells[j].S = &x
			case bool:
				cells[j].B = &x
			case time.Time:
				cells[j].T = &x
			default:
				s, _ := AsString(x)
				cells[j].S = &s
			}
		}
		w.Rows[i] = cells
	}
	return json.Marshal(w)
}

// UnmarshalBinary replaces rs with the result encoded by MarshalBinary.
func (rs *ResultSet) UnmarshalBinary(data []byte) error {
	var w wireResultSet
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode result set: %w", err)
	}

	out := NewResultSet(w.Columns)
	for _, cells := range w.Rows {
		values := make([]any, len(cells))
		for j, c := range cells {
			switch {
			case c.I != nil:
				values[j] = *c.I
			case c.F != nil:
				values[j] = *c.F
			case c.S != nil:
				values[j] = *c.S
			case c.B != nil:
				values[j] = *c.B
			case c.T != nil:
				values[j] = *c.T
			}
		}
		out.Append(values...)
	}
	*rs = *out
	return nil
}
