package sqlstore

import (
	"math"
	"strconv"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/logging"
	"attribution-analytics-service/internal/metrics"
)

type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindString
)

// Field is one output column with the value used when the cell is missing
// or does not parse.
type Field struct {
	Key    string
	Kind   Kind
	Int    int64
	Float  float64
	String string
}

func IntField(key string, def int64) Field {
	return Field{Key: key, Kind: KindInt, Int: def}
}

func FloatField(key string, def float64) Field {
	return Field{Key: key, Kind: KindFloat, Float: def}
}

func StringField(key string, def string) Field {
	return Field{Key: key, Kind: KindString, String: def}
}

// Schema is the typed shape of one endpoint's rows. When GroupKey is set,
// rows lacking that column are dropped instead of decoded.
type Schema struct {
	Name     string
	GroupKey string
	Fields   []Field
}

// Record holds a decoded row. Raw text does not survive past this point.
type Record struct {
	ints    map[string]int64
	floats  map[string]float64
	strings map[string]string
}

func (r Record) Int(key string) int64 { return r.ints[key] }

func (r Record) Float(key string) float64 { return r.floats[key] }

func (r Record) Text(key string) string { return r.strings[key] }

// MarshalRows decodes every row against the schema. Rows without the
// schema's group key are skipped and logged.
func MarshalRows(rows []RawRow, s Schema) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if s.GroupKey != "" {
			if _, ok := row.Get(s.GroupKey); !ok {
				metrics.SkippedRows.WithLabelValues(s.Name).Inc()
				logging.Warn().
					Str("schema", s.Name).
					Str("group_key", s.GroupKey).
					Strs("columns", row.Columns()).
					Msg("row missing group key, skipped")
				continue
			}
		}
		out = append(out, marshalRow(row, s))
	}
	return out
}

// MarshalSingle decodes the first row of a single-row aggregate. An empty
// result is domain.ErrNoData, never a zero-filled record.
func MarshalSingle(rows []RawRow, s Schema) (Record, error) {
	if len(rows) == 0 {
		return Record{}, &domain.NoDataError{Query: s.Name}
	}
	return marshalRow(rows[0], s), nil
}

func marshalRow(row RawRow, s Schema) Record {
	rec := Record{
		ints:    make(map[string]int64),
		floats:  make(map[string]float64),
		strings: make(map[string]string),
	}

	for _, f := range s.Fields {
		raw, ok := row.Get(f.Key)

		switch f.Kind {
		case KindInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if !ok || err != nil {
				fallback(s, f, raw, ok)
				v = f.Int
			}
			rec.ints[f.Key] = v
		case KindFloat:
			v, err := strconv.ParseFloat(raw, 64)
			if !ok || err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				fallback(s, f, raw, ok)
				v = f.Float
			}
			rec.floats[f.Key] = v
		case KindString:
			v := raw
			if !ok {
				fallback(s, f, raw, ok)
				v = f.String
			}
			rec.strings[f.Key] = v
		}
	}

	return rec
}

func fallback(s Schema, f Field, raw string, present bool) {
	metrics.CoercionFallbacks.WithLabelValues(s.Name, f.Key).Inc()
	logging.Debug().
		Str("schema", s.Name).
		Str("field", f.Key).
		Str("raw", raw).
		Bool("present", present).
		Msg("cell replaced by default")
}
