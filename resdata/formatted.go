package resdata

// Formatted (ASCII) keyword files.
//
// A formatted keyword is a header line followed by its values:
//
//	 'COORD   '          12 'REAL'
//	   0.00000000E+00   0.00000000E+00   0.00000000E+00   0.00000000E+00
//
// Values are printed in blocks that match the binary block sizes, with a
// fixed number of columns per line for each type. Lines always restart at
// a block boundary. Floating point values use a normalized mantissa in
// [0.1, 1) with an E exponent for REAL and a D exponent for DOUB. Logical
// values are T or F and strings are quoted and blank padded.
//
// The reader is whitespace driven and does not depend on the column
// layout, so files produced by other writers are accepted as long as every
// token is well formed.

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-resdata/internal/dtype"
)

// lexer splits a formatted stream into tokens and tracks byte offsets.
type lexer struct {
	r   *bufio.Reader
	pos int64
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// skipSpace consumes whitespace. It returns io.EOF when the stream ends.
func (l *lexer) skipSpace() error {
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(c) {
			return l.r.UnreadByte()
		}
		l.pos++
	}
}

// token reads the next whitespace delimited token.
func (l *lexer) token() (string, error) {
	if err := l.skipSpace(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		c, err := l.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(c) {
			if err := l.r.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		sb.WriteByte(c)
		l.pos++
	}
	return sb.String(), nil
}

// quoted reads a quoted string of at most width characters and returns it
// blank padded to exactly width characters.
func (l *lexer) quoted(width int) (string, error) {
	if err := l.skipSpace(); err != nil {
		return "", err
	}
	start := l.pos
	c, err := l.r.ReadByte()
	if err != nil {
		return "", err
	}
	l.pos++
	if c != '\'' {
		return "", formatError(start, "", ErrInvalidLiteral, fmt.Errorf("expected quote, found %q", c))
	}
	s, err := l.r.ReadString('\'')
	l.pos += int64(len(s))
	if err != nil {
		return "", formatError(start, "", ErrIncompleteRecord, fmt.Errorf("unterminated string"))
	}
	s = s[:len(s)-1]
	if len(s) > width {
		return "", formatError(start, "", ErrInvalidLiteral, fmt.Errorf("string %q longer than %d characters", s, width))
	}
	return s + strings.Repeat(" ", width-len(s)), nil
}

// eofAs turns a premature io.EOF into an incomplete record error.
func eofAs(err error, offset int64, keyword string) error {
	if err == io.EOF {
		return formatError(offset, keyword, ErrIncompleteRecord, nil)
	}
	return err
}

func (d *Decoder) nextFormatted() (*Keyword, error) {
	l := d.lex
	if err := l.skipSpace(); err != nil {
		return nil, err
	}

	start := l.pos
	header, err := l.quoted(NameLength)
	if err != nil {
		return nil, eofAs(err, start, "")
	}
	countPos := l.pos
	tok, err := l.token()
	if err != nil {
		return nil, eofAs(err, countPos, header)
	}
	count, err := strconv.ParseInt(tok, 10, 32)
	if err != nil || count < 0 {
		return nil, formatError(countPos, header, ErrInvalidLiteral, fmt.Errorf("element count %q", tok))
	}
	tagPos := l.pos
	tag, err := l.quoted(dtype.TagLength)
	if err != nil {
		return nil, eofAs(err, tagPos, header)
	}
	typ, err := dtype.Parse(tag)
	if err != nil {
		return nil, formatError(tagPos, header, ErrUnsupportedType, err)
	}

	if typ.Kind == dtype.KindMessage || count == 0 {
		return newKeyword(header, typ, int(count), nil), nil
	}

	n := int(count)
	data := make([]byte, 0, min(n*typ.Width, maxPrealloc))
	var elem [8]byte
	for i := 0; i < n; i++ {
		valuePos := l.pos
		if typ.IsString() {
			s, err := l.quoted(typ.Width)
			if err != nil {
				return nil, eofAs(err, valuePos, header)
			}
			data = append(data, s...)
			continue
		}

		tok, err := l.token()
		if err != nil {
			return nil, eofAs(err, valuePos, header)
		}
		if err := parseValue(typ, tok, elem[:typ.Width]); err != nil {
			return nil, formatError(valuePos, header, ErrInvalidLiteral, err)
		}
		data = append(data, elem[:typ.Width]...)
	}

	return newKeyword(header, typ, n, data), nil
}

// parseValue parses one numeric or logical literal into big-endian bytes.
func parseValue(t Type, tok string, dst []byte) error {
	switch t.Kind {
	case dtype.KindInt:
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return fmt.Errorf("integer %q", tok)
		}
		copy(dst, dtype.EncodeInt32s([]int32{int32(v)}))
	case dtype.KindFloat:
		v, err := parseFloat(tok, 32)
		if err != nil {
			return err
		}
		copy(dst, dtype.EncodeFloat32s([]float32{float32(v)}))
	case dtype.KindDouble:
		v, err := parseFloat(tok, 64)
		if err != nil {
			return err
		}
		copy(dst, dtype.EncodeFloat64s([]float64{v}))
	case dtype.KindBool:
		var v int32
		switch strings.ToUpper(strings.Trim(tok, ".")) {
		case "T", "TRUE":
			v = dtype.BoolTrue
		case "F", "FALSE":
			v = dtype.BoolFalse
		default:
			return fmt.Errorf("logical %q", tok)
		}
		copy(dst, dtype.EncodeInt32s([]int32{v}))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	return nil
}

// parseFloat parses Fortran style literals, accepting D as well as E as the
// exponent marker.
func parseFloat(tok string, bits int) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, tok)
	v, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, fmt.Errorf("float %q", tok)
	}
	return v, nil
}

// formatScientific renders x with a mantissa normalized to [0.1, 1). The
// mantissa is printed with the given width and prec digits, followed by the
// exponent marker and a signed exponent of at least two digits. The digits
// come from strconv so values near the float64 limits keep their magnitude.
func formatScientific(x float64, width, prec int, marker byte) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprintf("  %*s", width+4, strconv.FormatFloat(x, 'g', -1, 64))
	}
	if x == 0 {
		return fmt.Sprintf("  %*.*f%c+00", width, prec, 0.0, marker)
	}

	// d.ddde±xx with prec significant digits, correctly rounded.
	mant, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', prec-1, 64), "e")
	exponent, _ := strconv.Atoi(exp)
	sign := ""
	if mant[0] == '-' {
		sign, mant = "-", mant[1:]
	}
	digits := strings.Replace(mant, ".", "", 1)
	return fmt.Sprintf("  %*s%c%+03d", width, sign+"0."+digits, marker, exponent+1)
}

// formatValue renders element i of kw.
func formatValue(kw *Keyword, i int) string {
	t := kw.typ
	raw := kw.data[i*t.Width : (i+1)*t.Width]
	switch t.Kind {
	case dtype.KindInt:
		return fmt.Sprintf(" %11d", dtype.Int32s(raw)[0])
	case dtype.KindFloat:
		return formatScientific(float64(dtype.Float32s(raw)[0]), 11, 8, 'E')
	case dtype.KindDouble:
		return formatScientific(dtype.Float64s(raw)[0], 17, 14, 'D')
	case dtype.KindBool:
		if dtype.Bools(raw)[0] {
			return "  T"
		}
		return "  F"
	default:
		return fmt.Sprintf(" '%s'", raw)
	}
}

// writeFormatted writes one keyword in formatted layout.
func writeFormatted(w *bufio.Writer, kw *Keyword) error {
	if _, err := fmt.Fprintf(w, " '%-8s' %11d '%-4s'\n", kw.header, kw.count, kw.typ.Tag()); err != nil {
		return err
	}
	if kw.typ.Kind == dtype.KindMessage {
		return nil
	}

	blockSize := kw.typ.BlockSize()
	columns := kw.typ.Columns()
	for blockStart := 0; blockStart < kw.count; blockStart += blockSize {
		blockEnd := min(blockStart+blockSize, kw.count)
		for lineStart := blockStart; lineStart < blockEnd; lineStart += columns {
			lineEnd := min(lineStart+columns, blockEnd)
			for i := lineStart; i < lineEnd; i++ {
				if _, err := w.WriteString(formatValue(kw, i)); err != nil {
					return err
				}
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return nil
}
