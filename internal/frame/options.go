package frame

import (
	"runtime"

	"github.com/anvesh9652/csvbench/pkg/shared"
)

const (
	// rows handed to a worker at a time
	defaultChunkSize = 4096
	defaultLookUp    = 400
)

type Option func(*options)

type options struct {
	separator   rune
	comment     rune
	workers     int
	chunkSize   int
	lookUp      int
	typeSetting string
}

func defaultOptions() *options {
	return &options{
		separator:   ',',
		workers:     runtime.NumCPU(),
		chunkSize:   defaultChunkSize,
		lookUp:      defaultLookUp,
		typeSetting: shared.Dynamic,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithSeparator(sep rune) Option {
	return func(o *options) {
		if sep != 0 {
			o.separator = sep
		}
	}
}

// WithComment makes lines starting with c be skipped. Zero disables comments.
func WithComment(c rune) Option {
	return func(o *options) {
		o.comment = c
	}
}

func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithLookUp sets how many JSONL rows are sampled to discover columns.
func WithLookUp(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.lookUp = n
		}
	}
}

// WithTypeSetting selects shared.Dynamic (infer column types) or shared.AllText.
func WithTypeSetting(t string) Option {
	return func(o *options) {
		if shared.ValidTypeSetting(t) {
			o.typeSetting = t
		}
	}
}
