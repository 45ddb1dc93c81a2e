package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer writes framed records to a stream.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	pos   int64
	buf   [MarkerSize]byte
}

// NewWriter creates a record writer with the given configuration.
func NewWriter(w io.Writer, cfg Config) *Writer {
	order := cfg.ByteOrder
	if order == nil {
		order = binary.BigEndian
	}
	return &Writer{w: w, order: order}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	return err
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	w.order.PutUint32(w.buf[:], v)
	return w.WriteBytes(w.buf[:])
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteRecord writes data wrapped by leading and trailing length markers.
func (w *Writer) WriteRecord(data []byte) error {
	if len(data) > math.MaxInt32 {
		return fmt.Errorf("record of %d bytes exceeds marker range", len(data))
	}
	if err := w.WriteInt32(int32(len(data))); err != nil {
		return err
	}
	if err := w.WriteBytes(data); err != nil {
		return err
	}
	return w.WriteInt32(int32(len(data)))
}
