package filter

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses with Zstandard frames.
type Zstd struct{}

func (Zstd) ID() ID { return IDZstd }

func (Zstd) Name() string { return "zstd" }

func (Zstd) Magic() []byte { return []byte{0x28, 0xb5, 0x2f, 0xfd} }

func (Zstd) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return decoder.IOReadCloser(), nil
}

func (Zstd) NewWriter(w io.Writer) (io.WriteCloser, error) {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return encoder, nil
}
