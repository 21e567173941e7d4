package frame

import (
	"fmt"
	"time"

	"github.com/anvesh9652/csvbench/pkg/shared"
	"github.com/pkg/errors"
)

// FromRows builds a Frame from rows already scanned out of a database.
// Column kinds follow the Go types of the values; a column mixing ints and
// floats becomes a float column and any other mix falls back to strings.
func FromRows(columns []string, rows [][]any, opts ...Option) (*Frame, error) {
	if len(columns) == 0 {
		return nil, errors.New("at least one column name is required")
	}
	o := buildOptions(opts)
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, errors.Errorf("inconsistent column count in row %d: expected %d columns, got %d",
				i+1, len(columns), len(r))
		}
	}

	names := uniqueNames(columns)
	series := make([]Series, len(names))
	for j, name := range names {
		series[j] = valuesToSeries(name, rows, j, o.typeSetting)
	}
	return newFrame(series), nil
}

func valuesToSeries(name string, rows [][]any, j int, typeSetting string) Series {
	n := len(rows)
	nulls := make([]bool, n)
	kind, seen := String, false
	for i, r := range rows {
		k, ok := valueKind(r[j])
		if !ok {
			nulls[i] = true
			continue
		}
		switch {
		case !seen:
			kind, seen = k, true
		case kind == k:
		case (kind == Int && k == Float) || (kind == Float && k == Int):
			kind = Float
		default:
			kind = String
		}
	}
	if typeSetting == shared.AllText {
		kind = String
	}

	switch kind {
	case Int:
		data := make([]int64, n)
		for i, r := range rows {
			if !nulls[i] {
				data[i] = toInt64(r[j])
			}
		}
		return newSeries(name, Int, data, nulls)
	case Float:
		data := make([]float64, n)
		for i, r := range rows {
			if !nulls[i] {
				data[i] = toFloat64(r[j])
			}
		}
		return newSeries(name, Float, data, nulls)
	case Bool:
		data := make([]bool, n)
		for i, r := range rows {
			if !nulls[i] {
				data[i] = r[j].(bool)
			}
		}
		return newSeries(name, Bool, data, nulls)
	default:
		data := make([]string, n)
		for i, r := range rows {
			if !nulls[i] {
				data[i] = formatValue(r[j])
			}
		}
		return newSeries(name, String, data, nulls)
	}
}

// valueKind reports false for nulls.
func valueKind(v any) (Kind, bool) {
	switch v.(type) {
	case nil:
		return String, false
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return Int, true
	case float32, float64:
		return Float, true
	case bool:
		return Bool, true
	default:
		return String, true
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch t := v.(type) {
	case float32:
		return float64(t)
	case float64:
		return t
	}
	return float64(toInt64(v))
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}
