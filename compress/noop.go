package compress

// NoOpCompressor stores payloads without compression.
//
// Unlike the other codecs it does no work, but it still copies so that callers
// can treat every Codec the same way with respect to buffer ownership.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-op codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns TypeNone.
func (c NoOpCompressor) Type() Type {
	return TypeNone
}

// Compress returns a copy of data.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return clone(data), nil
}

// Decompress returns a copy of data.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return clone(data), nil
}

func clone(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)

	return out
}
