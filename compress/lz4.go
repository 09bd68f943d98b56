package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table
// between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	lz4BlockRaw        = 0x0
	lz4BlockCompressed = 0x1

	// lz4MaxDecodedSize rejects corrupted headers before allocating.
	lz4MaxDecodedSize = 1 << 30
)

var errLZ4Header = errors.New("lz4: invalid block header")

// LZ4Compressor provides LZ4 block compression.
//
// Each payload is framed as a one-byte block kind followed by the uvarint length
// of the original data, so decompression allocates exactly once. Blocks that LZ4
// cannot shrink are stored raw.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns TypeLZ4.
func (c LZ4Compressor) Type() Type {
	return TypeLZ4
}

// Compress compresses data using a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	header := make([]byte, 1, 1+binary.MaxVarintLen64)
	header = binary.AppendUvarint(header, uint64(len(data)))

	dst := make([]byte, len(header)+lz4.CompressBlockBound(len(data)))
	copy(dst, header)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[len(header):])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	if n == 0 || n >= len(data) {
		dst[0] = lz4BlockRaw
		return append(dst[:len(header)], data...), nil
	}

	dst[0] = lz4BlockCompressed

	return dst[:len(header)+n], nil
}

// Decompress decompresses a payload produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, k := binary.Uvarint(data[1:])
	if k <= 0 || size > lz4MaxDecodedSize {
		return nil, errLZ4Header
	}
	body := data[1+k:]

	switch data[0] {
	case lz4BlockRaw:
		if uint64(len(body)) != size {
			return nil, errLZ4Header
		}

		return clone(body), nil
	case lz4BlockCompressed:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(n) != size {
			return nil, fmt.Errorf("lz4 decompression failed: got %d bytes, want %d", n, size)
		}

		return out, nil
	default:
		return nil, errLZ4Header
	}
}
