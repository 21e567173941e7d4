package frame

import (
	"fmt"
	"strings"
)

// Kind is the element type of a Series.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "string"
	}
}

// Series is a single named column of nullable values.
type Series interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	// Value returns nil for null or out of range positions.
	Value(i int) any
	head(n int) Series
}

type typedSeries[T int64 | float64 | bool | string] struct {
	name  string
	kind  Kind
	data  []T
	nulls []bool
}

func newSeries[T int64 | float64 | bool | string](name string, kind Kind, data []T, nulls []bool) *typedSeries[T] {
	return &typedSeries[T]{name: name, kind: kind, data: data, nulls: nulls}
}

func (s *typedSeries[T]) Name() string { return s.name }
func (s *typedSeries[T]) Kind() Kind   { return s.kind }
func (s *typedSeries[T]) Len() int     { return len(s.data) }

func (s *typedSeries[T]) IsNull(i int) bool {
	if i < 0 || i >= len(s.data) {
		return true
	}
	return s.nulls[i]
}

func (s *typedSeries[T]) Value(i int) any {
	if s.IsNull(i) {
		return nil
	}
	return s.data[i]
}

func (s *typedSeries[T]) head(n int) Series {
	n = min(max(n, 0), len(s.data))
	return newSeries(s.name, s.kind, s.data[:n:n], s.nulls[:n:n])
}

func (s *typedSeries[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(%s, %d elements): [", s.kind, s.name, len(s.data))
	const maxDisplay = 10
	for i := 0; i < len(s.data) && i < maxDisplay; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s.nulls[i] {
			sb.WriteString("NULL")
			continue
		}
		fmt.Fprint(&sb, s.data[i])
	}
	if len(s.data) > maxDisplay {
		fmt.Fprintf(&sb, ", ... (%d more)", len(s.data)-maxDisplay)
	}
	sb.WriteString("]")
	return sb.String()
}
