package sqlstore

import (
	"fmt"
	"strconv"
	"time"
)

// RawRow is one result row as text, keyed by column name. Columns keep the
// SELECT projection order and NULL cells are stored as "".
type RawRow struct {
	columns []string
	values  map[string]string
}

// NewRawRow pairs column names with values by position. Extra values are
// ignored; missing ones become "".
func NewRawRow(columns []string, values []string) RawRow {
	m := make(map[string]string, len(columns))
	for i, c := range columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		m[c] = v
	}
	return RawRow{columns: columns, values: m}
}

// RowOf builds a RawRow from alternating column/value pairs.
func RowOf(pairs ...string) RawRow {
	cols := make([]string, 0, len(pairs)/2)
	vals := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		cols = append(cols, pairs[i])
		vals = append(vals, pairs[i+1])
	}
	return NewRawRow(cols, vals)
}

func (r RawRow) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r RawRow) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// cellText renders a driver value as text. NULL becomes "". Both drivers hand
// DATE columns back as time.Time; midnight values keep the YYYY-MM-DD form
// they were stored in.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
