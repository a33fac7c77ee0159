package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression applied to encoded artifacts.
type Compression uint8

const (
	// CompressionNone stores blocks uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, lighter ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd block compression (better ratio).
	CompressionZSTD Compression = 2
)

// blockHeaderSize is the length of the self-describing block header:
// [Compression uint8][UncompressedSize uint32].
const blockHeaderSize = 5

var (
	// ErrBlockCorrupt is returned when a compressed block cannot be decoded.
	ErrBlockCorrupt = errors.New("codec: corrupt compressed block")

	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Compress wraps data in a self-describing compressed block. The block
// records the compression type and uncompressed size in its header, so
// Decompress needs no out-of-band information. If compression does not
// shrink the payload, the block is stored uncompressed.
func Compress(ct Compression, data []byte) ([]byte, error) {
	switch ct {
	case CompressionNone:
		return frame(CompressionNone, data, data)

	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("codec: lz4 compress: %w", err)
		}
		if n == 0 || n >= len(data) {
			// Incompressible; store raw.
			return frame(CompressionNone, data, data)
		}
		return frame(CompressionLZ4, data, buf[:n])

	case CompressionZSTD:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return frame(CompressionNone, data, data)
		}
		return frame(CompressionZSTD, data, compressed)

	default:
		return nil, fmt.Errorf("codec: unknown compression type %d", ct)
	}
}

// Decompress unwraps a block produced by Compress.
func Decompress(block []byte) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, ErrBlockCorrupt
	}
	ct := Compression(block[0])
	size := binary.LittleEndian.Uint32(block[1:blockHeaderSize])
	payload := block[blockHeaderSize:]

	switch ct {
	case CompressionNone:
		if uint32(len(payload)) != size {
			return nil, ErrBlockCorrupt
		}
		out := make([]byte, size)
		copy(out, payload)
		return out, nil

	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil || uint32(n) != size {
			return nil, ErrBlockCorrupt
		}
		return out, nil

	case CompressionZSTD:
		out, err := zstdDecoder.DecodeAll(payload, nil)
		if err != nil || uint32(len(out)) != size {
			return nil, ErrBlockCorrupt
		}
		return out, nil

	default:
		return nil, fmt.Errorf("codec: unknown compression type %d", ct)
	}
}

func frame(ct Compression, raw, payload []byte) ([]byte, error) {
	out := make([]byte, blockHeaderSize+len(payload))
	out[0] = byte(ct)
	binary.LittleEndian.PutUint32(out[1:blockHeaderSize], uint32(len(raw)))
	copy(out[blockHeaderSize:], payload)
	return out, nil
}
