package shared

import (
	"bytes"
	"io"
	"slices"
	"sync"

	clp "github.com/anvesh9652/concurrent-line-processor"
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

const MaxRowsReadLimit = 25_000

// Value kinds recorded while scanning JSONL rows.
const (
	Numeric = "NUMERIC"
	Boolean = "BOOLEAN"
	Text    = "TEXT"
	Json    = "JSON"
)

type ColumnType struct {
	Name string
	Type string
}

// Takes a reader as a parameter where the data inside it is JSONL.
// Columns come back in the order they appear inside rows. With more than one
// worker, rows reach the merge in any order, so only one worker gives a stable order.
func FindColumnTypes(r io.Reader, rowsReadLimit, workers int, typeSetting string) ([]ColumnType, error) {
	if rowsReadLimit <= 0 || rowsReadLimit > MaxRowsReadLimit {
		rowsReadLimit = MaxRowsReadLimit
	}
	if workers <= 0 {
		workers = 1
	}

	// Column and respective types we have encountered.
	columnTypes := make(map[string]map[string]int)
	// Rows are processed out of order, so a key first seen in a row is placed
	// right after the key preceding it in that row.
	var order []string
	mut := sync.Mutex{}

	lineProcessor := func(b []byte) ([]byte, error) {
		if len(bytes.TrimSpace(b)) == 0 {
			return b, nil
		}
		mut.Lock()
		defer mut.Unlock()
		prev := -1
		err := jsonparser.ObjectEach(b, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
			keyString := string(key)
			types, exists := columnTypes[keyString]
			if !exists {
				types = make(map[string]int)
				columnTypes[keyString] = types
				order = slices.Insert(order, prev+1, keyString)
				prev++
			} else {
				prev = slices.Index(order, keyString)
			}

			switch dataType {
			case jsonparser.Number:
				types[Numeric]++
			case jsonparser.Boolean:
				types[Boolean]++
			case jsonparser.Null:
				// Just ignore the type detection for this value.
			case jsonparser.Array, jsonparser.Object:
				types[Json]++
			default:
				types[Text]++
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "invalid json row %q", truncate(b, 64))
		}
		return b, nil
	}

	cr := clp.NewConcurrentLineProcessor(r,
		clp.WithWorkers(workers),
		clp.WithRowsReadLimit(rowsReadLimit), clp.WithCustomLineProcessor(lineProcessor),
	)
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return nil, err
	}

	result := make([]ColumnType, 0, len(order))
	for _, name := range order {
		tp := Text
		if typeSetting != AllText {
			tp = maxRecordedType(columnTypes[name])
		}
		result = append(result, ColumnType{Name: name, Type: tp})
	}
	return result, nil
}

func maxRecordedType(types map[string]int) string {
	if types[Text] > 0 {
		return Text
	}
	val, res := -1, Text
	for _, k := range []string{Json, Numeric, Boolean} {
		if v, ok := types[k]; ok && v > val {
			val, res = v, k
		}
	}
	return res
}

func truncate(b []byte, n int) string {
	b = bytes.TrimSpace(b)
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
