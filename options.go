package pathcount

import (
	"github.com/rs/zerolog"
)

const (
	defaultProgressInterval = 100000
	cancelCheckInterval     = 1 << 12
)

// ProgressFunc receives the number of search calls made so far.
type ProgressFunc func(calls uint64)

// Option configures a count.
type Option func(*options)

type options struct {
	logger           zerolog.Logger
	progress         ProgressFunc
	progressInterval uint64
	memo             bool
}

func newOptions(opts []Option) options {
	o := options{
		logger:           zerolog.Nop(),
		progressInterval: defaultProgressInterval,
		memo:             true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.progressInterval == 0 {
		o.progressInterval = defaultProgressInterval
	}
	return o
}

// WithLogger sets the logger used for analysis milestones. The default logger
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithProgress registers fn to be called every progress interval search
// calls.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressInterval sets the number of search calls between two progress
// reports (default 100000).
func WithProgressInterval(n uint64) Option {
	return func(o *options) {
		o.progressInterval = n
	}
}

// WithoutMemo disables memoization of the constrained count. The result is
// the same, only slower; it exists as a baseline.
func WithoutMemo() Option {
	return func(o *options) {
		o.memo = false
	}
}
