package dtype

// Conversion from raw payload bytes to Go values.
//
// Payload bytes are always big-endian regardless of the byte order of the
// file they were read from; the codec normalizes little-endian files on
// the way in. Every function here allocates a fresh slice owned by the
// caller.

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Int32s converts an INTE payload.
func Int32s(data []byte) []int32 {
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(order.Uint32(data[4*i:]))
	}
	return out
}

// Float32s converts a REAL payload.
func Float32s(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(order.Uint32(data[4*i:]))
	}
	return out
}

// Float64s converts a DOUB payload.
func Float64s(data []byte) []float64 {
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(data[8*i:]))
	}
	return out
}

// Bools converts a LOGI payload. Any nonzero value is true.
func Bools(data []byte) []bool {
	out := make([]bool, len(data)/4)
	for i := range out {
		out[i] = order.Uint32(data[4*i:]) != 0
	}
	return out
}

// Strings converts a CHAR or C0nn payload of the given element width.
// Trailing blanks are removed.
func Strings(data []byte, width int) []string {
	if width <= 0 {
		return nil
	}
	out := make([]string, len(data)/width)
	for i := range out {
		out[i] = strings.TrimRight(string(data[i*width:(i+1)*width]), " ")
	}
	return out
}

// AsFloat64s converts any numeric payload to float64 values.
func AsFloat64s(t Type, data []byte) ([]float64, error) {
	switch t.Kind {
	case KindDouble:
		return Float64s(data), nil
	case KindFloat:
		f := Float32s(data)
		out := make([]float64, len(f))
		for i, v := range f {
			out[i] = float64(v)
		}
		return out, nil
	case KindInt:
		n := Int32s(data)
		out := make([]float64, len(n))
		for i, v := range n {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %s to float64", t)
	}
}

// Swap converts a payload between byte orders in place. String payloads
// are left untouched.
func Swap(t Type, data []byte, from binary.ByteOrder) {
	if from == order || t.IsString() {
		return
	}
	switch t.Width {
	case 4:
		for i := 0; i+4 <= len(data); i += 4 {
			order.PutUint32(data[i:], from.Uint32(data[i:]))
		}
	case 8:
		for i := 0; i+8 <= len(data); i += 8 {
			order.PutUint64(data[i:], from.Uint64(data[i:]))
		}
	}
}
