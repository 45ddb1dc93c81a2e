package dtype

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnsupportedType is returned for type tags that are not recognized.
var ErrUnsupportedType = errors.New("unsupported type")

// Kind identifies the element kind of a keyword.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindDouble
	KindBool
	KindChar
	KindString
	KindMessage
)

// TagLength is the width of a type tag in headers.
const TagLength = 4

const (
	// BlockSizeNumeric is the number of numeric or logical elements per block.
	BlockSizeNumeric = 1000
	// BlockSizeString is the number of string elements per block.
	BlockSizeString = 105
)

// CharWidth is the element width of CHAR keywords.
const CharWidth = 8

// MaxStringWidth is the largest width expressible by a C0nn tag.
const MaxStringWidth = 999

// Logical values in binary payloads.
const (
	BoolTrue  int32 = -1
	BoolFalse int32 = 0
)

// Type is a keyword element type. Width is carried explicitly because C0nn
// string types share a kind but differ in width.
type Type struct {
	Kind  Kind
	Width int
}

// Predefined element types.
var (
	Int     = Type{Kind: KindInt, Width: 4}
	Float   = Type{Kind: KindFloat, Width: 4}
	Double  = Type{Kind: KindDouble, Width: 8}
	Bool    = Type{Kind: KindBool, Width: 4}
	Char    = Type{Kind: KindChar, Width: CharWidth}
	Message = Type{Kind: KindMessage, Width: 0}
)

// String returns a C0nn type with the given width.
func String(width int) (Type, error) {
	if width < 1 || width > MaxStringWidth {
		return Type{}, fmt.Errorf("%w: string width %d", ErrUnsupportedType, width)
	}
	return Type{Kind: KindString, Width: width}, nil
}

// Parse parses a four character type tag.
func Parse(tag string) (Type, error) {
	switch tag {
	case "INTE":
		return Int, nil
	case "REAL":
		return Float, nil
	case "DOUB":
		return Double, nil
	case "LOGI":
		return Bool, nil
	case "CHAR":
		return Char, nil
	case "MESS":
		return Message, nil
	}
	if len(tag) == TagLength && tag[0] == 'C' {
		width, err := strconv.Atoi(tag[1:])
		if err == nil {
			return String(width)
		}
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnsupportedType, tag)
}

// Tag returns the four character type tag.
func (t Type) Tag() string {
	switch t.Kind {
	case KindInt:
		return "INTE"
	case KindFloat:
		return "REAL"
	case KindDouble:
		return "DOUB"
	case KindBool:
		return "LOGI"
	case KindChar:
		return "CHAR"
	case KindMessage:
		return "MESS"
	case KindString:
		return fmt.Sprintf("C%03d", t.Width)
	default:
		return "????"
	}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return t.Tag()
}

// Valid reports whether t is a known, consistent type.
func (t Type) Valid() bool {
	if t.Kind == KindString {
		return t.Width >= 1 && t.Width <= MaxStringWidth
	}
	p, err := Parse(t.Tag())
	return err == nil && p == t
}

// IsString reports whether elements are fixed-width strings.
func (t Type) IsString() bool {
	return t.Kind == KindChar || t.Kind == KindString
}

// IsNumeric reports whether elements are integers or floating point.
func (t Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindFloat || t.Kind == KindDouble
}

// BlockSize returns the maximum number of elements per block.
func (t Type) BlockSize() int {
	if t.IsString() {
		return BlockSizeString
	}
	return BlockSizeNumeric
}

// Columns returns the number of elements per line in formatted files.
func (t Type) Columns() int {
	switch t.Kind {
	case KindChar, KindString:
		return 7
	case KindInt:
		return 6
	case KindFloat:
		return 4
	case KindDouble:
		return 3
	case KindBool:
		return 25
	default:
		return 1
	}
}

// GoType returns the Go element type for t.
func GoType(t Type) (reflect.Type, error) {
	switch t.Kind {
	case KindInt:
		return reflect.TypeOf(int32(0)), nil
	case KindFloat:
		return reflect.TypeOf(float32(0)), nil
	case KindDouble:
		return reflect.TypeOf(float64(0)), nil
	case KindBool:
		return reflect.TypeOf(false), nil
	case KindChar, KindString:
		return reflect.TypeOf(""), nil
	default:
		return nil, fmt.Errorf("%w: %s has no elements", ErrUnsupportedType, t)
	}
}

// PadName pads or reports an error for a keyword name so it fills width
// bytes.
func PadName(name string, width int) (string, error) {
	if len(name) > width {
		return "", fmt.Errorf("name %q longer than %d characters", name, width)
	}
	return name + strings.Repeat(" ", width-len(name)), nil
}
