package connectivity

import (
	"log/slog"
	"runtime"
)

// DefaultTolerance is the coordinate tolerance used by the touching test.
const DefaultTolerance = 1e-6

// Option configures an Engine.
type Option func(*options)

type options struct {
	tolerance float64
	cache     Cache
	logger    *slog.Logger
	workers   int
}

func defaultOptions() *options {
	return &options{
		tolerance: DefaultTolerance,
		logger:    slog.New(slog.DiscardHandler),
		workers:   runtime.GOMAXPROCS(0),
	}
}

// WithTolerance sets how far apart, on any coordinate, shared face corners
// may be while still counting as touching.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol >= 0 {
			o.tolerance = tol
		}
	}
}

// WithCache stores and reuses layer labelings.
func WithCache(c Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers bounds the number of layers AllLayers computes at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}
