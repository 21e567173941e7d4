// Package frame holds the columnar, in-memory table that CSV, JSONL and SQL
// sources are loaded into.
package frame

import (
	"strconv"

	"github.com/pkg/errors"
)

// Frame is a table of equally sized, named series. Row order follows the input.
type Frame struct {
	columns []string
	series  []Series
	index   map[string]int
}

func newFrame(series []Series) *Frame {
	f := &Frame{
		columns: make([]string, len(series)),
		series:  series,
		index:   make(map[string]int, len(series)),
	}
	for i, s := range series {
		f.columns[i] = s.Name()
		f.index[s.Name()] = i
	}
	return f
}

func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

func (f *Frame) NumColumns() int {
	return len(f.columns)
}

func (f *Frame) Rows() int {
	if len(f.series) == 0 {
		return 0
	}
	return f.series[0].Len()
}

func (f *Frame) Column(name string) (Series, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, errors.Errorf("column %q not found", name)
	}
	return f.series[i], nil
}

// Get returns the value at row for column col; nil means null.
func (f *Frame) Get(row int, col string) (any, error) {
	s, err := f.Column(col)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= s.Len() {
		return nil, errors.Errorf("row %d out of range [0, %d)", row, s.Len())
	}
	return s.Value(row), nil
}

// Head returns a frame sharing storage with f that holds at most n rows.
func (f *Frame) Head(n int) *Frame {
	series := make([]Series, len(f.series))
	for i, s := range f.series {
		series[i] = s.head(n)
	}
	return newFrame(series)
}

// uniqueNames renames repeated headers to name.1, name.2, ... so every column stays addressable.
func uniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	out := make([]string, len(names))
	for i, n := range names {
		if _, dup := seen[n]; !dup {
			seen[n] = 0
			out[i] = n
			continue
		}
		for {
			seen[n]++
			candidate := n + "." + strconv.Itoa(seen[n])
			if !taken[candidate] {
				taken[candidate] = true
				out[i] = candidate
				break
			}
		}
	}
	return out
}
