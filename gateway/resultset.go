package gateway

import (
	"math"
	"strconv"
	"time"
)

// NoData is how a missing or undefined value (SQL NULL, a rate over an empty
// group) is shown to people.
const NoData = "no data"

// Row maps column name to value.
type Row map[string]any

// ResultSet is the tabular result of one statement. Columns keep the order
// the statement produced them in, even when Rows is empty. A ResultSet handed
// out by a gateway is treated as read-only by every consumer.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewResultSet returns an empty result with the given columns.
func NewResultSet(columns []string) *ResultSet {
	if columns == nil {
		columns = []string{}
	}
	return &ResultSet{Columns: columns, Rows: []Row{}}
}

// Append adds a row; values are matched to Columns by position and
// normalised. Extra values are dropped, missing ones are nil.
func (rs *ResultSet) Append(values ...any) {
	row := make(Row, len(rs.Columns))
	for i, col := range rs.Columns {
		var v any
		if i < len(values) {
			v = values[i]
		}
		row[col] = normalize(v)
	}
	rs.Rows = append(rs.Rows, row)
}

// Len is nil-safe.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

func (rs *ResultSet) Empty() bool { return rs.Len() == 0 }

func (rs *ResultSet) HasColumn(name string) bool {
	if rs == nil {
		return false
	}
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Values returns the column's values in row order, or nil when the column
// is absent.
func (rs *ResultSet) Values(column string) []any {
	if !rs.HasColumn(column) {
		return nil
	}
	out := make([]any, len(rs.Rows))
	for i, row := range rs.Rows {
		out[i] = row[column]
	}
	return out
}

// Display renders a cell for people, mapping nil to NoData.
func Display(v any) string {
	switch x := v.(type) {
	case nil:
		return NoData
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return NoData
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		s, _ := AsString(v)
		return s
	}
}

func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return normalize(float64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	default:
		return v
	}
}
