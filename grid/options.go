package grid

import "log/slog"

// Option configures grid construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

func defaultOptions() *options {
	return &options{logger: slog.New(slog.DiscardHandler)}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
