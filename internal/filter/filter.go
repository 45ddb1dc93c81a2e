package filter

import (
	"bytes"
	"fmt"
	"io"
)

// ID identifies a compression filter.
type ID uint8

const (
	IDNone ID = iota
	IDGzip
	IDZstd
	IDSnappy
)

// MagicSize is the number of leading bytes Detect needs to recognise every
// supported filter.
const MagicSize = 10

// Filter is the interface implemented by all compression filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() ID

	// Name returns a short human readable name.
	Name() string

	// Magic returns the bytes every stream written by the filter starts with.
	Magic() []byte

	// NewReader returns a reader producing the decompressed stream.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a writer compressing into w. Close must be called
	// to flush the trailing frame.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Registry maps filter IDs to filters.
var Registry = map[ID]Filter{
	IDGzip:   Gzip{},
	IDZstd:   Zstd{},
	IDSnappy: Snappy{},
}

// New returns the filter with the given ID. IDNone yields a nil filter.
func New(id ID) (Filter, error) {
	if id == IDNone {
		return nil, nil
	}
	f, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unsupported filter ID: %d", id)
	}
	return f, nil
}

// Detect returns the filter whose magic prefixes head, or nil.
func Detect(head []byte) Filter {
	for _, id := range []ID{IDGzip, IDZstd, IDSnappy} {
		f := Registry[id]
		if bytes.HasPrefix(head, f.Magic()) {
			return f
		}
	}
	return nil
}
