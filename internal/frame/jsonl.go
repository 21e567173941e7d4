package frame

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"slices"
	"strconv"

	"github.com/anvesh9652/csvbench/pkg/shared"
	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// UseNumber keeps integers apart from floats so they type the same way CSV values do.
var jsoni = jsoniter.Config{
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

type row map[string]any

// ReadJSONL loads newline delimited JSON objects into a Frame.
//
// Every non blank line must hold exactly one object. Columns follow the order
// keys first appear in: a key first seen in a row is placed right after the
// key preceding it in that row. Missing keys are nulls. Arrays and objects,
// as voted over the first look up rows, are kept as their JSON text.
func ReadJSONL(ctx context.Context, r io.Reader, opts ...Option) (*Frame, error) {
	o := buildOptions(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading JSONL")
	}

	discovered, err := shared.FindColumnTypes(bytes.NewReader(data), o.lookUp, o.workers, o.typeSetting)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to find column types")
	}
	jsonCols := map[string]bool{}
	for _, ct := range discovered {
		jsonCols[ct.Name] = ct.Type == shared.Json
	}

	var (
		order []string
		cols  = map[string]*rawColumn{}
		rows  int
	)
	for lineNo := 1; len(data) > 0; lineNo++ {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		prev := -1
		err := jsonparser.ObjectEach(line, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
			name := string(key)
			if _, ok := cols[name]; ok {
				prev = slices.Index(order, name)
				return nil
			}
			c := newRawColumn(rows + 1)
			for range rows {
				c.append("", true)
			}
			cols[name] = &c
			prev++
			order = slices.Insert(order, prev, name)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "error decoding JSONL at line %d", lineNo)
		}
		var rec row
		if err := jsoni.Unmarshal(line, &rec); err != nil {
			return nil, errors.Wrapf(err, "error decoding JSONL at line %d", lineNo)
		}

		for key, val := range rec {
			c, ok := cols[key]
			if !ok {
				return nil, errors.Errorf("unexpected key %q at line %d", key, lineNo)
			}
			s, null, err := toString(val)
			if err != nil {
				return nil, errors.Wrapf(err, "error encoding %q at line %d", key, lineNo)
			}
			c.append(s, null)
		}
		rows++
		for _, c := range cols {
			if len(c.values) < rows {
				c.append("", true)
			}
		}
	}
	if len(order) == 0 {
		return nil, errors.New("no columns found in JSONL")
	}

	series := make([]Series, len(order))
	for i, name := range order {
		kind := String
		if !jsonCols[name] {
			kind = detectKind(*cols[name], o.typeSetting)
		}
		series[i] = buildSeries(name, *cols[name], kind)
	}
	return newFrame(series), nil
}

func toString(val any) (string, bool, error) {
	switch t := val.(type) {
	case nil:
		return "", true, nil
	case string:
		return t, false, nil
	case json.Number:
		return t.String(), false, nil
	case bool:
		return strconv.FormatBool(t), false, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), false, nil
	default:
		// Handle JSON arrays and objects by converting them to strings.
		bt, err := jsoni.Marshal(t)
		if err != nil {
			return "", false, err
		}
		return string(bt), false, nil
	}
}
