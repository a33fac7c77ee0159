package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	c := JSON{}
	assert.Equal(t, "json", c.Name())

	in := map[string][]float64{"a": {1, 2.5}, "b": {0}}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out map[string][]float64
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("protobuf")
	assert.False(t, ok)
}

func TestCompressRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("term frequency inverse document frequency ", 64))

	for _, ct := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		block, err := Compress(ct, payload)
		require.NoError(t, err)

		out, err := Decompress(block)
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	}
}

func TestCompress_IncompressibleFallsBackToRaw(t *testing.T) {
	// Too short and too random to shrink; stored as a raw block.
	payload := []byte{0x01, 0xfe, 0x99, 0x42}

	block, err := Compress(CompressionLZ4, payload)
	require.NoError(t, err)
	assert.Equal(t, byte(CompressionNone), block[0])

	out, err := Decompress(block)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompress_Corrupt(t *testing.T) {
	_, err := Decompress([]byte{0x01})
	assert.ErrorIs(t, err, ErrBlockCorrupt)

	block, err := Compress(CompressionZSTD, []byte(strings.Repeat("abc", 100)))
	require.NoError(t, err)
	block[len(block)-1] ^= 0xff
	_, err = Decompress(block)
	assert.Error(t, err)
}

func TestCompress_Empty(t *testing.T) {
	block, err := Compress(CompressionZSTD, nil)
	require.NoError(t, err)

	out, err := Decompress(block)
	require.NoError(t, err)
	assert.Empty(t, out)
}
