package resdata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-resdata/internal/dtype"
)

// NameLength is the fixed width of keyword names.
const NameLength = 8

// Type is a keyword element type: a kind plus an explicit element width.
type Type = dtype.Type

// Element types.
var (
	Int     = dtype.Int
	Float   = dtype.Float
	Double  = dtype.Double
	Bool    = dtype.Bool
	Char    = dtype.Char
	Message = dtype.Message
)

// StringType returns the C0nn string type of the given width.
func StringType(width int) (Type, error) {
	return dtype.String(width)
}

// ParseType parses a four character type tag such as "INTE" or "C010".
func ParseType(tag string) (Type, error) {
	return dtype.Parse(tag)
}

// Keyword is one named, typed and counted record of a keyword file.
//
// The payload is kept as raw big-endian element bytes so that a decoded
// keyword encodes back to exactly the bytes it was read from. Typed
// accessors convert on demand and return slices owned by the caller.
type Keyword struct {
	header string
	typ    Type
	count  int
	data   []byte
}

// NewKeyword creates a keyword from a slice of Go values compatible with t.
func NewKeyword(name string, t Type, values interface{}) (*Keyword, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	data, err := dtype.Encode(t, values)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	count := 0
	if t.Width > 0 {
		count = len(data) / t.Width
	}
	return newKeyword(padName(name), t, count, data), nil
}

// NewInt32s creates an INTE keyword.
func NewInt32s(name string, values []int32) *Keyword {
	return newKeyword(padName(name), Int, len(values), dtype.EncodeInt32s(values))
}

// NewFloat32s creates a REAL keyword.
func NewFloat32s(name string, values []float32) *Keyword {
	return newKeyword(padName(name), Float, len(values), dtype.EncodeFloat32s(values))
}

// NewFloat64s creates a DOUB keyword.
func NewFloat64s(name string, values []float64) *Keyword {
	return newKeyword(padName(name), Double, len(values), dtype.EncodeFloat64s(values))
}

// NewBools creates a LOGI keyword.
func NewBools(name string, values []bool) *Keyword {
	return newKeyword(padName(name), Bool, len(values), dtype.EncodeBools(values))
}

// NewStrings creates a CHAR keyword. Strings longer than eight characters
// are rejected.
func NewStrings(name string, values []string) (*Keyword, error) {
	return NewKeyword(name, Char, values)
}

// NewMessage creates a MESS keyword, which carries no payload.
func NewMessage(name string) *Keyword {
	return newKeyword(padName(name), Message, 0, nil)
}

func newKeyword(header string, t Type, count int, data []byte) *Keyword {
	return &Keyword{header: header, typ: t, count: count, data: data}
}

// padName blank-pads short names to NameLength. Longer names are kept as
// given and rejected when the keyword is encoded.
func padName(name string) string {
	if len(name) >= NameLength {
		return name
	}
	return name + strings.Repeat(" ", NameLength-len(name))
}

// Name returns the keyword name without trailing blanks.
func (k *Keyword) Name() string {
	return strings.TrimRight(k.header, " ")
}

// Header returns the raw, fixed-width name as stored in the file.
func (k *Keyword) Header() string {
	return k.header
}

// Type returns the element type.
func (k *Keyword) Type() Type {
	return k.typ
}

// Len returns the element count.
func (k *Keyword) Len() int {
	return k.count
}

// Bytes returns the raw big-endian payload. The returned slice must not be
// modified.
func (k *Keyword) Bytes() []byte {
	return k.data
}

func (k *Keyword) expect(kinds ...dtype.Kind) error {
	for _, kind := range kinds {
		if k.typ.Kind == kind {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is %s", ErrTypeMismatch, k.Name(), k.typ)
}

// Int32s returns the values of an INTE keyword.
func (k *Keyword) Int32s() ([]int32, error) {
	if err := k.expect(dtype.KindInt); err != nil {
		return nil, err
	}
	return dtype.Int32s(k.data), nil
}

// Float32s returns the values of a REAL keyword.
func (k *Keyword) Float32s() ([]float32, error) {
	if err := k.expect(dtype.KindFloat); err != nil {
		return nil, err
	}
	return dtype.Float32s(k.data), nil
}

// Float64s returns the values of a DOUB keyword.
func (k *Keyword) Float64s() ([]float64, error) {
	if err := k.expect(dtype.KindDouble); err != nil {
		return nil, err
	}
	return dtype.Float64s(k.data), nil
}

// AsFloat64s returns the values of any numeric keyword widened to float64.
func (k *Keyword) AsFloat64s() ([]float64, error) {
	if !k.typ.IsNumeric() {
		return nil, fmt.Errorf("%w: %s is %s", ErrTypeMismatch, k.Name(), k.typ)
	}
	return dtype.AsFloat64s(k.typ, k.data)
}

// Bools returns the values of a LOGI keyword.
func (k *Keyword) Bools() ([]bool, error) {
	if err := k.expect(dtype.KindBool); err != nil {
		return nil, err
	}
	return dtype.Bools(k.data), nil
}

// Strings returns the values of a CHAR or C0nn keyword with trailing
// blanks removed.
func (k *Keyword) Strings() ([]string, error) {
	if err := k.expect(dtype.KindChar, dtype.KindString); err != nil {
		return nil, err
	}
	return dtype.Strings(k.data, k.typ.Width), nil
}

// Equal reports whether two keywords have the same header, type and
// payload bytes.
func (k *Keyword) Equal(o *Keyword) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.header == o.header && k.typ == o.typ && k.count == o.count && bytes.Equal(k.data, o.data)
}

// String implements fmt.Stringer.
func (k *Keyword) String() string {
	return fmt.Sprintf("%-8s %11d:%s", k.Name(), k.count, k.typ)
}
