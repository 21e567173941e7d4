package frame

import (
	"strconv"

	"github.com/anvesh9652/csvbench/pkg/shared"
)

// rawColumn is a column before typing; empty fields are nulls.
type rawColumn struct {
	values []string
	nulls  []bool
}

func newRawColumn(capacity int) rawColumn {
	return rawColumn{
		values: make([]string, 0, capacity),
		nulls:  make([]bool, 0, capacity),
	}
}

func (c *rawColumn) append(val string, null bool) {
	c.values = append(c.values, val)
	c.nulls = append(c.nulls, null)
}

func (c *rawColumn) appendColumn(o rawColumn) {
	c.values = append(c.values, o.values...)
	c.nulls = append(c.nulls, o.nulls...)
}

// detectKind narrows a column to the most specific kind all non-null values
// fit into, in the order int, float, bool, string. A column with no values is a string column.
func detectKind(c rawColumn, typeSetting string) Kind {
	if typeSetting == shared.AllText {
		return String
	}
	canInt, canFloat, canBool := true, true, true
	seen := false
	for i, v := range c.values {
		if c.nulls[i] {
			continue
		}
		seen = true
		if canInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				canInt = false
			}
		}
		if canFloat && !canInt {
			canFloat = isNumeric(v)
		}
		if canBool {
			if _, err := strconv.ParseBool(v); err != nil {
				canBool = false
			}
		}
		if !canInt && !canFloat && !canBool {
			return String
		}
	}
	switch {
	case !seen:
		return String
	case canInt:
		return Int
	case canFloat:
		return Float
	case canBool:
		return Bool
	}
	return String
}

// isNumeric accepts what ParseFloat accepts except spelled out values like "nan" or "inf".
func isNumeric(v string) bool {
	if v == "" {
		return false
	}
	switch c := v[0]; {
	case c >= '0' && c <= '9', c == '.':
	case (c == '-' || c == '+') && len(v) > 1 && (v[1] >= '0' && v[1] <= '9' || v[1] == '.'):
	default:
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

// buildSeries types the raw column. The parses can't fail since detectKind already accepted every value.
func buildSeries(name string, c rawColumn, kind Kind) Series {
	n := len(c.values)
	switch kind {
	case Int:
		data := make([]int64, n)
		for i, v := range c.values {
			if !c.nulls[i] {
				data[i], _ = strconv.ParseInt(v, 10, 64)
			}
		}
		return newSeries(name, Int, data, c.nulls)
	case Float:
		data := make([]float64, n)
		for i, v := range c.values {
			if !c.nulls[i] {
				data[i], _ = strconv.ParseFloat(v, 64)
			}
		}
		return newSeries(name, Float, data, c.nulls)
	case Bool:
		data := make([]bool, n)
		for i, v := range c.values {
			if !c.nulls[i] {
				data[i], _ = strconv.ParseBool(v)
			}
		}
		return newSeries(name, Bool, data, c.nulls)
	default:
		return newSeries(name, String, c.values, c.nulls)
	}
}
