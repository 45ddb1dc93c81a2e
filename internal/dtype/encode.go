package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

var order = binary.BigEndian

// Encode converts Go values to raw big-endian payload bytes for type t.
// The src parameter should be a slice of a Go type compatible with t:
// any integer kind for INTE, any float kind for REAL and DOUB, bool for
// LOGI and string for CHAR and C0nn.
func Encode(t Type, src interface{}) ([]byte, error) {
	if t.Kind == KindMessage {
		return nil, nil
	}

	want, err := GoType(t)
	if err != nil {
		return nil, err
	}

	srcVal := reflect.ValueOf(src)
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if srcVal.Kind() != reflect.Slice && srcVal.Kind() != reflect.Array {
		return nil, fmt.Errorf("cannot encode %v as %s: want []%v", srcVal.Kind(), t, want)
	}

	n := srcVal.Len()
	data := make([]byte, n*t.Width)

	for i := 0; i < n; i++ {
		elem := srcVal.Index(i)
		off := i * t.Width

		switch t.Kind {
		case KindInt:
			switch elem.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				v := elem.Int()
				if v < math.MinInt32 || v > math.MaxInt32 {
					return nil, fmt.Errorf("element %d: %d overflows INTE", i, v)
				}
				order.PutUint32(data[off:], uint32(int32(v)))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				v := elem.Uint()
				if v > math.MaxInt32 {
					return nil, fmt.Errorf("element %d: %d overflows INTE", i, v)
				}
				order.PutUint32(data[off:], uint32(v))
			default:
				return nil, fmt.Errorf("cannot encode %v as %s", elem.Kind(), t)
			}
		case KindFloat:
			if elem.Kind() != reflect.Float32 && elem.Kind() != reflect.Float64 {
				return nil, fmt.Errorf("cannot encode %v as %s", elem.Kind(), t)
			}
			order.PutUint32(data[off:], math.Float32bits(float32(elem.Float())))
		case KindDouble:
			if elem.Kind() != reflect.Float32 && elem.Kind() != reflect.Float64 {
				return nil, fmt.Errorf("cannot encode %v as %s", elem.Kind(), t)
			}
			order.PutUint64(data[off:], math.Float64bits(elem.Float()))
		case KindBool:
			if elem.Kind() != reflect.Bool {
				return nil, fmt.Errorf("cannot encode %v as %s", elem.Kind(), t)
			}
			v := BoolFalse
			if elem.Bool() {
				v = BoolTrue
			}
			order.PutUint32(data[off:], uint32(v))
		case KindChar, KindString:
			if elem.Kind() != reflect.String {
				return nil, fmt.Errorf("cannot encode %v as %s", elem.Kind(), t)
			}
			if err := putString(data[off:off+t.Width], elem.String()); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
		}
	}

	return data, nil
}

// putString copies s into dst and pads the remainder with blanks.
func putString(dst []byte, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("string %q longer than %d characters", s, len(dst))
	}
	n := copy(dst, s)
	for j := n; j < len(dst); j++ {
		dst[j] = ' '
	}
	return nil
}

// EncodeInt32s is the allocation-light form of Encode for INTE payloads.
func EncodeInt32s(values []int32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		order.PutUint32(data[4*i:], uint32(v))
	}
	return data
}

// EncodeBools is the allocation-light form of Encode for LOGI payloads.
func EncodeBools(values []bool) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		b := BoolFalse
		if v {
			b = BoolTrue
		}
		order.PutUint32(data[4*i:], uint32(b))
	}
	return data
}

// EncodeFloat32s is the allocation-light form of Encode for REAL payloads.
func EncodeFloat32s(values []float32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		order.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return data
}

// EncodeFloat64s is the allocation-light form of Encode for DOUB payloads.
func EncodeFloat64s(values []float64) []byte {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		order.PutUint64(data[8*i:], math.Float64bits(v))
	}
	return data
}
