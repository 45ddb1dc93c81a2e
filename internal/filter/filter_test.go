package filter

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, f Filter, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := f.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFiltersRoundtrip(t *testing.T) {
	original := bytes.Repeat([]byte("ZCORN   \x00\x00\x03\xe8REAL"), 200)

	for _, id := range []ID{IDGzip, IDZstd, IDSnappy} {
		f, err := New(id)
		require.NoError(t, err)

		t.Run(f.Name(), func(t *testing.T) {
			compressed := compress(t, f, original)
			assert.True(t, bytes.HasPrefix(compressed, f.Magic()), "stream starts with magic")

			r, err := f.NewReader(bytes.NewReader(compressed))
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, original, got)
		})
	}
}

func TestDetect(t *testing.T) {
	data := []byte("some keyword bytes")

	for _, id := range []ID{IDGzip, IDZstd, IDSnappy} {
		f := Registry[id]
		compressed := compress(t, f, data)
		detected := Detect(compressed[:min(MagicSize, len(compressed))])
		require.NotNil(t, detected, f.Name())
		assert.Equal(t, id, detected.ID())
	}

	assert.Nil(t, Detect([]byte{0, 0, 0, 16, 'F', 'I', 'L', 'E'}))
	assert.Nil(t, Detect(nil))
}

func TestNew(t *testing.T) {
	f, err := New(IDNone)
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = New(ID(42))
	assert.Error(t, err)
}

func TestGzipReaderRejectsGarbage(t *testing.T) {
	_, err := Gzip{}.NewReader(bytes.NewReader([]byte("not gzip at all")))
	assert.Error(t, err)
}
