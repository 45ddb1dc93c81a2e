package filter

import (
	"io"

	"github.com/klauspost/compress/snappy"
)

// Snappy compresses with the Snappy framing format.
type Snappy struct{}

func (Snappy) ID() ID { return IDSnappy }

func (Snappy) Name() string { return "snappy" }

// Magic is the stream identifier chunk that opens every framed stream.
func (Snappy) Magic() []byte { return []byte("\xff\x06\x00\x00sNaPpY") }

func (Snappy) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

func (Snappy) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}
