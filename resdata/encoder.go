package resdata

import (
	"bufio"
	stdbinary "encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/robert-malhotra/go-resdata/internal/binary"
	"github.com/robert-malhotra/go-resdata/internal/dtype"
)

// Encoder writes keywords to a stream in binary or formatted layout.
//
// Every call to Write flushes, so the underlying writer always holds whole
// records.
type Encoder struct {
	bw   *bufio.Writer
	bin  *binary.Writer
	opts *options
	mode Mode
	n    int
}

// NewEncoder returns an encoder writing to w. The default layout is binary
// big-endian; use WithFormatted or WithByteOrder to change it.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := applyOptions(opts)
	mode := o.mode
	if mode == ModeAuto {
		mode = ModeBinary
	}
	bw := bufio.NewWriter(w)
	e := &Encoder{bw: bw, opts: o, mode: mode}
	if mode == ModeBinary {
		e.bin = binary.NewWriter(bw, binary.Config{ByteOrder: o.order})
	}
	return e
}

// Encode writes every keyword in kws to w.
func Encode(w io.Writer, kws []*Keyword, opts ...Option) error {
	enc := NewEncoder(w, opts...)
	for _, kw := range kws {
		if err := enc.Write(kw); err != nil {
			return err
		}
	}
	return nil
}

// Mode returns the layout the encoder writes.
func (e *Encoder) Mode() Mode {
	return e.mode
}

// Count returns the number of keywords written.
func (e *Encoder) Count() int {
	return e.n
}

// Write encodes one keyword.
func (e *Encoder) Write(kw *Keyword) error {
	if err := validate(kw); err != nil {
		return err
	}

	var err error
	if e.mode == ModeFormatted {
		err = writeFormatted(e.bw, kw)
	} else {
		err = e.writeBinary(kw)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", kw.Name(), err)
	}
	if err := e.bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", kw.Name(), err)
	}

	e.n++
	e.opts.logger.Debug("encoded keyword",
		"name", kw.Name(), "type", kw.Type().Tag(), "count", kw.Len(), "mode", e.mode.String())
	return nil
}

func validate(kw *Keyword) error {
	if kw == nil {
		return fmt.Errorf("nil keyword")
	}
	if _, err := dtype.PadName(kw.header, NameLength); err != nil {
		return fmt.Errorf("%w: %v", ErrNameTooLong, err)
	}
	if !kw.typ.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, kw.typ)
	}
	if kw.count > math.MaxInt32 {
		return fmt.Errorf("%s: %d elements exceed the header count range", kw.Name(), kw.count)
	}
	if kw.typ.Width > 0 && len(kw.data) != kw.count*kw.typ.Width {
		return fmt.Errorf("%s: payload of %d bytes for %d %s elements", kw.Name(), len(kw.data), kw.count, kw.typ)
	}
	return nil
}

func (e *Encoder) writeBinary(kw *Keyword) error {
	order := e.bin.ByteOrder()

	var head [headerSize]byte
	copy(head[:NameLength], kw.header)
	for i := len(kw.header); i < NameLength; i++ {
		head[i] = ' '
	}
	order.PutUint32(head[NameLength:], uint32(kw.count))
	copy(head[NameLength+4:], kw.typ.Tag())
	if err := e.bin.WriteRecord(head[:]); err != nil {
		return err
	}

	if kw.typ.Kind == dtype.KindMessage || kw.count == 0 {
		return nil
	}

	step := kw.typ.BlockSize() * kw.typ.Width
	swap := order != stdbinary.BigEndian && !kw.typ.IsString()
	var scratch []byte
	for off := 0; off < len(kw.data); off += step {
		block := kw.data[off:min(off+step, len(kw.data))]
		if swap {
			// Payloads are held big-endian; swapping is symmetric.
			scratch = append(scratch[:0], block...)
			dtype.Swap(kw.typ, scratch, order)
			block = scratch
		}
		if err := e.bin.WriteRecord(block); err != nil {
			return err
		}
	}
	return nil
}
