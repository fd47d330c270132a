package assistant

import (
	"strconv"
	"time"
)

// Table is a generic tabular query result: named columns plus rows of
// driver values (int64, float64, string, []byte, time.Time, or nil).
// It is what the executor hands to the formatter, and what the chat
// surface returns alongside the prose so raw data stays inspectable.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Empty reports whether the table has no rows. An empty table is a valid
// query outcome, distinct from a query error.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Col returns the index of the named column, or -1.
func (t Table) Col(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column name), or nil when the column
// does not exist.
func (t Table) Cell(row int, name string) any {
	i := t.Col(name)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row][i]
}

// asInt64 coerces a driver value to int64, treating NULL as 0.
func asInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case []byte:
		n, _ := strconv.ParseInt(string(x), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	default:
		return 0
	}
}

// asFloat coerces a driver value to float64, treating NULL as 0. Postgres
// numerics arrive as []byte through lib/pq, so those are parsed.
func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case []byte:
		f, _ := strconv.ParseFloat(string(x), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return 0
	}
}

// asString coerces a driver value to a string, rendering dates as
// YYYY-MM-DD and NULL as the empty string.
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02")
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}
