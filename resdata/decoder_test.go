package resdata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeBinary(t *testing.T, kws ...*Keyword) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, kws))
	return buf.Bytes()
}

func mustStrings(t *testing.T, name string, values ...string) *Keyword {
	t.Helper()
	kw, err := NewStrings(name, values)
	require.NoError(t, err)
	return kw
}

func sampleKeywords(t *testing.T) []*Keyword {
	t.Helper()
	c10, err := StringType(10)
	require.NoError(t, err)
	well, err := NewKeyword("WELLS", c10, []string{"PROD-1", "INJECTOR-2"})
	require.NoError(t, err)

	return []*Keyword{
		NewInt32s("SEQNUM", []int32{7}),
		NewFloat32s("PORO", []float32{0.25, 0.5, 1.5}),
		NewFloat64s("TIME", []float64{0, 31.5, -2.5}),
		NewBools("LOGIHEAD", []bool{true, false, true}),
		mustStrings(t, "NAMES", "FOPR", "WWCT"),
		well,
		NewMessage("STARTSOL"),
		NewInt32s("EMPTY", nil),
	}
}

func TestBinaryLayout(t *testing.T) {
	got := encodeBinary(t, NewInt32s("SEQNUM", []int32{7}))
	want := []byte{
		0, 0, 0, 16,
		'S', 'E', 'Q', 'N', 'U', 'M', ' ', ' ',
		0, 0, 0, 1,
		'I', 'N', 'T', 'E',
		0, 0, 0, 16,
		0, 0, 0, 4,
		0, 0, 0, 7,
		0, 0, 0, 4,
	}
	assert.Equal(t, want, got)
}

func TestMessageHasNoDataRecord(t *testing.T) {
	got := encodeBinary(t, NewMessage("STARTSOL"))
	assert.Len(t, got, 24)
	assert.Equal(t, "MESS", string(got[16:20]))
}

func TestBlockChunking(t *testing.T) {
	values := make([]int32, 2500)
	for i := range values {
		values[i] = int32(i)
	}
	data := encodeBinary(t, NewInt32s("BIG", values))

	// header, then blocks of 1000, 1000 and 500 elements
	require.Len(t, data, 24+(8+4000)*2+(8+2000))
	assert.Equal(t, uint32(4000), binary.BigEndian.Uint32(data[24:]))
	assert.Equal(t, uint32(4000), binary.BigEndian.Uint32(data[24+4+4000:]))
	assert.Equal(t, uint32(2000), binary.BigEndian.Uint32(data[24+2*4008:]))

	kws, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, kws, 1)
	got, err := kws[0].Int32s()
	require.NoError(t, err)
	assert.Equal(t, values, got)

	small := encodeBinary(t, NewInt32s("SMALL", []int32{1, 2, 3}))
	assert.Len(t, small, 24+8+12)
}

func TestFloatBlockChunking(t *testing.T) {
	values := make([]float32, 2500)
	for i := range values {
		values[i] = float32(i) * 0.25
	}
	data := encodeBinary(t, NewFloat32s("PORO", values))
	require.Len(t, data, 24+(8+4000)*2+(8+2000))

	kws, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	got, err := kws[0].Float32s()
	require.NoError(t, err)
	assert.Equal(t, values, got)

	// Chunking is invisible: the first three values decode the same as a
	// three element keyword.
	small, err := Decode(bytes.NewReader(encodeBinary(t, NewFloat32s("PORO", values[:3]))))
	require.NoError(t, err)
	head, err := small[0].Float32s()
	require.NoError(t, err)
	assert.Equal(t, head, got[:3])
}

func TestStringBlockChunking(t *testing.T) {
	values := make([]string, 210)
	for i := range values {
		values[i] = "W"
	}
	data := encodeBinary(t, mustStrings(t, "NAMES", values...))

	require.Len(t, data, 24+2*(8+105*8))
	assert.Equal(t, uint32(840), binary.BigEndian.Uint32(data[24:]))
}

func TestBinaryRoundtrip(t *testing.T) {
	kws := sampleKeywords(t)
	first := encodeBinary(t, kws...)

	decoded, err := Decode(bytes.NewReader(first))
	require.NoError(t, err)
	require.Len(t, decoded, len(kws))
	for i := range kws {
		assert.True(t, kws[i].Equal(decoded[i]), "keyword %d: %s != %s", i, kws[i], decoded[i])
	}

	second := encodeBinary(t, decoded...)
	assert.Equal(t, first, second)

	names, err := decoded[4].Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"FOPR", "WWCT"}, names)

	wells, err := decoded[5].Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"PROD-1", "INJECTOR-2"}, wells)
	assert.Equal(t, "C010", decoded[5].Type().Tag())

	flags, err := decoded[3].Bools()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, flags)
}

func TestLittleEndianDetection(t *testing.T) {
	kws := sampleKeywords(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, kws, WithByteOrder(binary.LittleEndian)))

	data := buf.Bytes()
	assert.Equal(t, []byte{16, 0, 0, 0}, data[:4])
	assert.Equal(t, []byte{7, 0, 0, 0}, data[28:32])

	dec := NewDecoder(bytes.NewReader(data))
	var decoded []*Keyword
	for kw, err := range dec.Records() {
		require.NoError(t, err)
		decoded = append(decoded, kw)
	}
	assert.Equal(t, ModeBinary, dec.Mode())
	require.Len(t, decoded, len(kws))
	for i := range kws {
		assert.True(t, kws[i].Equal(decoded[i]), "keyword %d", i)
	}

	// Re-encoding big-endian matches a direct big-endian encoding.
	assert.Equal(t, encodeBinary(t, kws...), encodeBinary(t, decoded...))
}

func TestRecordsResumes(t *testing.T) {
	data := encodeBinary(t, NewInt32s("A", []int32{1}), NewInt32s("B", []int32{2}), NewInt32s("C", []int32{3}))
	dec := NewDecoder(bytes.NewReader(data))

	for kw, err := range dec.Records() {
		require.NoError(t, err)
		assert.Equal(t, "A", kw.Name())
		break
	}

	var rest []string
	for kw, err := range dec.Records() {
		require.NoError(t, err)
		rest = append(rest, kw.Name())
	}
	assert.Equal(t, []string{"B", "C"}, rest)

	_, err := dec.Next()
	assert.Equal(t, io.EOF, err)
}

func TestEmptyStream(t *testing.T) {
	kws, err := Decode(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, kws)
}

func TestDecodeErrors(t *testing.T) {
	valid := func() []byte {
		return encodeBinary(t, NewInt32s("A", []int32{1, 2, 3}))
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
		offset int64
	}{
		{
			name:   "truncated payload",
			mutate: func(b []byte) []byte { return b[:len(b)-6] },
			want:   ErrIncompleteRecord,
			offset: 24,
		},
		{
			name:   "truncated trailing marker",
			mutate: func(b []byte) []byte { return b[:len(b)-2] },
			want:   ErrIncompleteRecord,
			offset: 24,
		},
		{
			name:   "missing payload",
			mutate: func(b []byte) []byte { return b[:24] },
			want:   ErrIncompleteRecord,
			offset: 24,
		},
		{
			name:   "truncated header",
			mutate: func(b []byte) []byte { return b[:10] },
			want:   ErrIncompleteRecord,
			offset: 0,
		},
		{
			name: "trailing marker mismatch",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint32(b[len(b)-4:], 99)
				return b
			},
			want:   ErrCorruptRecord,
			offset: 24,
		},
		{
			name: "block overruns count",
			mutate: func(b []byte) []byte {
				binary.BigEndian.PutUint32(b[12:], 2)
				return b
			},
			want:   ErrCorruptRecord,
			offset: 24,
		},
		{
			name: "unknown type tag",
			mutate: func(b []byte) []byte {
				copy(b[16:20], "XXXX")
				return b
			},
			want:   ErrUnsupportedType,
			offset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.mutate(valid())))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want *FormatError, got %T", err)
			assert.Equal(t, tt.offset, fe.Offset)
		})
	}
}

func TestDecodeErrorIsSticky(t *testing.T) {
	data := encodeBinary(t, NewInt32s("A", []int32{1, 2, 3}))
	dec := NewDecoder(bytes.NewReader(data[:len(data)-2]))

	_, err := dec.Next()
	require.ErrorIs(t, err, ErrIncompleteRecord)
	_, again := dec.Next()
	assert.Equal(t, err, again)
}

func TestUnknownFormat(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("hello world")))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestForcedBinaryMode(t *testing.T) {
	data := encodeBinary(t, NewInt32s("A", []int32{1}))
	kws, err := Decode(bytes.NewReader(data), WithMode(ModeBinary))
	require.NoError(t, err)
	require.Len(t, kws, 1)

	_, err = Decode(bytes.NewReader(data), WithFormatted(true))
	assert.Error(t, err)
}
