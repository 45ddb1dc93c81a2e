package resdata

import (
	"bufio"
	stdbinary "encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/robert-malhotra/go-resdata/internal/binary"
	"github.com/robert-malhotra/go-resdata/internal/dtype"
)

// headerSize is the payload size of a binary keyword header record:
// eight name bytes, a 32-bit element count and a four byte type tag.
const headerSize = NameLength + 4 + dtype.TagLength

// sniffSize bounds how far into a stream format detection looks.
const sniffSize = 64

// maxPrealloc caps the payload buffer allocated up front from a header's
// declared count, so a corrupt count cannot trigger a huge allocation.
const maxPrealloc = 1 << 20

// Decoder reads keywords sequentially from a stream.
//
// The decoder is forward-only and not safe for concurrent use. After the
// first error every further call returns the same error.
type Decoder struct {
	br   *bufio.Reader
	opts *options

	mode Mode
	bin  *binary.Reader
	lex  *lexer

	detected bool
	err      error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{
		br:   bufio.NewReader(r),
		opts: applyOptions(opts),
	}
}

// newBinaryDecoder returns a decoder over an already positioned record
// reader. It is used for random access through an Index.
func newBinaryDecoder(r *binary.Reader, o *options) *Decoder {
	return &Decoder{opts: o, mode: ModeBinary, bin: r, detected: true}
}

// Decode reads every keyword from r.
func Decode(r io.Reader, opts ...Option) ([]*Keyword, error) {
	var out []*Keyword
	for kw, err := range NewDecoder(r, opts...).Records() {
		if err != nil {
			return out, err
		}
		out = append(out, kw)
	}
	return out, nil
}

// Mode returns the wire format of the stream. It is ModeAuto until the
// first call to Next.
func (d *Decoder) Mode() Mode {
	return d.mode
}

// Offset returns the byte offset of the next unread record.
func (d *Decoder) Offset() int64 {
	switch {
	case d.bin != nil:
		return d.bin.Pos()
	case d.lex != nil:
		return d.lex.pos
	default:
		return 0
	}
}

// Records returns the remaining keywords as a lazy sequence. Iteration
// stops after the first error, which is yielded with a nil keyword.
func (d *Decoder) Records() iter.Seq2[*Keyword, error] {
	return func(yield func(*Keyword, error) bool) {
		for {
			kw, err := d.Next()
			if err == io.EOF {
				return
			}
			if !yield(kw, err) || err != nil {
				return
			}
		}
	}
}

// Next decodes the next keyword. It returns io.EOF when the stream ends
// cleanly between records.
func (d *Decoder) Next() (*Keyword, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !d.detected {
		if err := d.detect(); err != nil {
			d.err = err
			return nil, err
		}
	}

	var (
		kw  *Keyword
		err error
	)
	start := d.Offset()
	if d.mode == ModeFormatted {
		kw, err = d.nextFormatted()
	} else {
		kw, err = d.nextBinary()
	}
	if err != nil {
		d.err = err
		return nil, err
	}

	d.opts.logger.Debug("decoded keyword",
		"name", kw.Name(), "type", kw.Type().Tag(), "count", kw.Len(), "offset", start)
	return kw, nil
}

// detect chooses the wire format and byte order from the first bytes of
// the stream unless options fix them.
func (d *Decoder) detect() error {
	d.detected = true
	head, err := d.br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return err
	}

	mode := d.opts.mode
	order := d.opts.order
	switch mode {
	case ModeAuto:
		mode, order = sniff(head, order)
	case ModeBinary:
		if order == nil {
			_, order = sniff(head, nil)
		}
	}
	if mode == ModeAuto {
		if len(head) == 0 {
			// An empty stream is a valid stream with no records.
			mode = ModeBinary
		} else {
			return formatError(0, "", ErrUnknownFormat, nil)
		}
	}
	if order == nil {
		order = stdbinary.BigEndian
	}

	d.mode = mode
	if mode == ModeFormatted {
		d.lex = &lexer{r: d.br}
	} else {
		d.bin = binary.NewReader(d.br, binary.Config{ByteOrder: order})
	}
	d.opts.logger.Debug("detected keyword stream", "mode", mode.String())
	return nil
}

// sniff guesses the format of a stream from its first bytes. A binary
// stream starts with the marker of the 16 byte header record; a formatted
// stream starts with optional blanks and the quote opening the name.
func sniff(head []byte, order stdbinary.ByteOrder) (Mode, stdbinary.ByteOrder) {
	if len(head) >= binary.MarkerSize {
		big, little := binary.PeekMarker(head)
		switch {
		case order != nil:
			if int32(order.Uint32(head)) == headerSize {
				return ModeBinary, order
			}
		case big == headerSize:
			return ModeBinary, stdbinary.BigEndian
		case little == headerSize:
			return ModeBinary, stdbinary.LittleEndian
		}
	}
	for _, c := range head {
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			continue
		}
		if c == '\'' {
			return ModeFormatted, order
		}
		break
	}
	return ModeAuto, order
}

// binaryError maps record framing failures to the codec's error taxonomy.
func binaryError(offset int64, keyword string, err error) error {
	switch {
	case errors.Is(err, binary.ErrTruncated), err == io.EOF:
		return formatError(offset, keyword, ErrIncompleteRecord, err)
	case errors.Is(err, binary.ErrMarkerMismatch), errors.Is(err, binary.ErrNegativeLength):
		return formatError(offset, keyword, ErrCorruptRecord, err)
	default:
		return fmt.Errorf("reading keyword at offset %d: %w", offset, err)
	}
}

func (d *Decoder) nextBinary() (*Keyword, error) {
	start := d.bin.Pos()
	head, err := d.bin.ReadRecord()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, binaryError(start, "", err)
	}
	if len(head) != headerSize {
		return nil, formatError(start, "", ErrCorruptRecord,
			fmt.Errorf("header record of %d bytes, want %d", len(head), headerSize))
	}

	order := d.bin.ByteOrder()
	header := string(head[:NameLength])
	count := int32(order.Uint32(head[NameLength:]))
	typ, err := dtype.Parse(string(head[NameLength+4:]))
	if err != nil {
		return nil, formatError(start, header, ErrUnsupportedType, err)
	}
	if count < 0 {
		return nil, formatError(start, header, ErrCorruptRecord, fmt.Errorf("negative count %d", count))
	}

	if typ.Kind == dtype.KindMessage || count == 0 {
		return newKeyword(header, typ, int(count), nil), nil
	}

	total := int(count) * typ.Width
	data := make([]byte, 0, min(total, maxPrealloc))
	remaining := int(count)
	for remaining > 0 {
		blockStart := d.bin.Pos()
		length, err := d.bin.ReadMarker()
		if err != nil {
			return nil, binaryError(blockStart, header, err)
		}
		if length == 0 || length%typ.Width != 0 || length/typ.Width > remaining {
			return nil, formatError(blockStart, header, ErrCorruptRecord,
				fmt.Errorf("block of %d bytes with %d %s elements outstanding", length, remaining, typ))
		}
		body, err := d.bin.ReadRecordBody(length)
		if err != nil {
			return nil, binaryError(blockStart, header, err)
		}
		data = append(data, body...)
		remaining -= length / typ.Width
	}

	dtype.Swap(typ, data, order)
	return newKeyword(header, typ, int(count), data), nil
}
