package filter

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip compresses with gzip framing.
type Gzip struct {
	// Level is the compression level. Zero selects the default level.
	Level int
}

func (Gzip) ID() ID { return IDGzip }

func (Gzip) Name() string { return "gzip" }

func (Gzip) Magic() []byte { return []byte{0x1f, 0x8b} }

func (Gzip) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	return zr, nil
}

func (f Gzip) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := f.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	return zw, nil
}
