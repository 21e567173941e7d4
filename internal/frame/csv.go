package frame

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

var ErrNoHeader = errors.New("no headers found in CSV")

// chunk is a run of consecutive records transposed into columns by one worker.
type chunk struct {
	columns []rawColumn
}

// ReadCSV loads CSV data with a header row into a Frame.
//
// Records are read sequentially and handed to a bounded pool of workers in
// chunks; the chunks are stitched back together in input order and each
// column is then typed on its own goroutine.
func ReadCSV(ctx context.Context, r io.Reader, opts ...Option) (*Frame, error) {
	o := buildOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = o.separator
	cr.Comment = o.comment
	// column counts are checked below to report the offending row
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading headers")
	}
	columnCount := len(headers)
	if columnCount == 0 {
		return nil, ErrNoHeader
	}
	headers = uniqueNames(headers)

	p := pool.New().WithMaxGoroutines(o.workers).WithErrors().WithContext(ctx).WithCancelOnError()

	var chunks []*chunk
	dispatch := func(rows [][]string) {
		c := &chunk{}
		chunks = append(chunks, c)
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.columns = transpose(rows, columnCount)
			return nil
		})
	}

	readErr := func() error {
		rows := make([][]string, 0, o.chunkSize)
		for index := 1; ; index++ {
			record, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return errors.Wrapf(err, "error reading CSV at row %d", index)
			}
			if len(record) != columnCount {
				return errors.Errorf("inconsistent column count in row %d: expected %d columns, got %d",
					index, columnCount, len(record))
			}
			rows = append(rows, record)
			if len(rows) == o.chunkSize {
				if err := ctx.Err(); err != nil {
					return err
				}
				dispatch(rows)
				rows = make([][]string, 0, o.chunkSize)
			}
		}
		if len(rows) > 0 {
			dispatch(rows)
		}
		return nil
	}()
	// always join the workers, even when reading failed
	if err := p.Wait(); err != nil && readErr == nil {
		readErr = err
	}
	if readErr != nil {
		return nil, readErr
	}

	rowCount := 0
	for _, c := range chunks {
		if len(c.columns) > 0 {
			rowCount += len(c.columns[0].values)
		}
	}

	series := make([]Series, columnCount)
	tp := pool.New().WithMaxGoroutines(o.workers)
	for i, name := range headers {
		tp.Go(func() {
			col := newRawColumn(rowCount)
			for _, c := range chunks {
				col.appendColumn(c.columns[i])
			}
			series[i] = buildSeries(name, col, detectKind(col, o.typeSetting))
		})
	}
	tp.Wait()

	return newFrame(series), nil
}

func transpose(rows [][]string, columnCount int) []rawColumn {
	cols := make([]rawColumn, columnCount)
	for j := range cols {
		cols[j] = newRawColumn(len(rows))
	}
	for _, row := range rows {
		for j, val := range row {
			// empty fields are nulls
			cols[j].append(val, val == "")
		}
	}
	return cols
}
