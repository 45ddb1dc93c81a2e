package resdata

import (
	"encoding/binary"
	"log/slog"
)

// Mode selects the wire format of a keyword stream.
type Mode int

const (
	// ModeAuto detects the format from the first bytes of the stream.
	ModeAuto Mode = iota
	// ModeBinary is the block-chunked unformatted format.
	ModeBinary
	// ModeFormatted is the ASCII format.
	ModeFormatted
)

func (m Mode) String() string {
	switch m {
	case ModeBinary:
		return "binary"
	case ModeFormatted:
		return "formatted"
	default:
		return "auto"
	}
}

// Compression selects the compression applied by Create.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionSnappy
)

// Option configures decoders, encoders and file helpers.
type Option func(*options)

type options struct {
	mode        Mode
	order       binary.ByteOrder
	compression Compression
	logger      *slog.Logger
}

func defaultOptions() *options {
	return &options{
		mode:   ModeAuto,
		logger: slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMode forces the wire format instead of detecting it.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithFormatted is shorthand for WithMode(ModeFormatted) or
// WithMode(ModeBinary).
func WithFormatted(formatted bool) Option {
	return func(o *options) {
		if formatted {
			o.mode = ModeFormatted
		} else {
			o.mode = ModeBinary
		}
	}
}

// WithByteOrder sets the byte order of binary streams. Decoders detect the
// order from the first record marker unless this option is given; encoders
// default to big-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithCompression compresses files written by Create.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
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
