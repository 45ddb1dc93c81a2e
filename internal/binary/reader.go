// Package binary provides low-level record I/O for keyword files.
//
// Keyword files use Fortran sequential-access framing: every record is
// wrapped by a 4-byte length marker before and after its data. The
// markers and all numeric payloads use the configured byte order, which is
// big-endian for files written by the simulators.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncated is returned when the stream ends inside a record.
	ErrTruncated = errors.New("truncated record")

	// ErrMarkerMismatch is returned when a record's trailing marker does not
	// match its leading marker.
	ErrMarkerMismatch = errors.New("record marker mismatch")

	// ErrNegativeLength is returned when a leading marker is negative.
	ErrNegativeLength = errors.New("negative record length")
)

// MarkerSize is the size in bytes of a record length marker.
const MarkerSize = 4

// Config holds reader and writer configuration.
type Config struct {
	ByteOrder binary.ByteOrder
}

// DefaultConfig returns the configuration used by simulator output:
// big-endian markers and payloads.
func DefaultConfig() Config {
	return Config{ByteOrder: binary.BigEndian}
}

// Reader reads framed records from a stream and tracks the byte offset of
// everything it consumes.
type Reader struct {
	r     io.Reader
	order binary.ByteOrder
	pos   int64
}

// NewReader creates a record reader with the given configuration.
func NewReader(r io.Reader, cfg Config) *Reader {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.BigEndian
	}
	return &Reader{r: r, order: order}
}

// At returns a reader over the bytes of ra in [offset, end). Positions
// reported by the new reader are absolute offsets into ra.
func At(ra io.ReaderAt, offset, end int64, cfg Config) *Reader {
	r := NewReader(io.NewSectionReader(ra, offset, end-offset), cfg)
	r.pos = offset
	return r
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// ReadBytes reads exactly n bytes from the current position. A stream that
// ends early yields ErrTruncated; a stream that is already exhausted yields
// io.EOF.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.pos += int64(read)
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		return nil, fmt.Errorf("%w: wanted %d bytes, got %d", ErrTruncated, n, read)
	case err != nil:
		return nil, err
	}
	return buf, nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadMarker reads a leading record marker. io.EOF is returned unchanged
// when the stream ends cleanly on a record boundary.
func (r *Reader) ReadMarker() (int, error) {
	start := r.pos
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %d at offset %d", ErrNegativeLength, v, start)
	}
	return int(v), nil
}

// ReadRecordBody reads the data and trailing marker of a record whose
// leading marker has already been consumed.
func (r *Reader) ReadRecordBody(length int) ([]byte, error) {
	data, err := r.ReadBytes(length)
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing %d data bytes", ErrTruncated, length)
	}
	if err != nil {
		return nil, err
	}
	tail, err := r.ReadInt32()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing trailing marker", ErrTruncated)
	}
	if err != nil {
		return nil, err
	}
	if int(tail) != length {
		return nil, fmt.Errorf("%w: leading %d, trailing %d", ErrMarkerMismatch, length, tail)
	}
	return data, nil
}

// ReadRecord reads one complete framed record and returns its data.
func (r *Reader) ReadRecord() ([]byte, error) {
	length, err := r.ReadMarker()
	if err != nil {
		return nil, err
	}
	return r.ReadRecordBody(length)
}

// PeekMarker interprets the first four bytes of a stream as a record marker
// in both byte orders. It is used to sniff the byte order of a file.
func PeekMarker(head []byte) (big, little int32) {
	if len(head) < MarkerSize {
		return -1, -1
	}
	return int32(binary.BigEndian.Uint32(head)), int32(binary.LittleEndian.Uint32(head))
}
