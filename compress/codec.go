package compress

import (
	"fmt"
	"strings"
)

// Type identifies a compression algorithm.
type Type uint8

const (
	TypeNone Type = 0x1 // TypeNone stores payloads as-is.
	TypeZstd Type = 0x2 // TypeZstd uses Zstandard.
	TypeS2   Type = 0x3 // TypeS2 uses S2 (Snappy-compatible).
	TypeLZ4  Type = 0x4 // TypeLZ4 uses LZ4 block compression.
)

var typeNames = map[Type]string{
	TypeNone: "none",
	TypeZstd: "zstd",
	TypeS2:   "s2",
	TypeLZ4:  "lz4",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return "unknown"
}

// ParseType returns the Type for a case-insensitive name such as "zstd".
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(name, n) {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unsupported compression type: %q", name)
}

// Compressor compresses a payload.
type Compressor interface {
	// Compress returns a newly allocated compressed copy of data.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
type Decompressor interface {
	// Decompress returns a newly allocated copy of the original payload.
	// It returns an error if data is corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions and reports its algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() Type
}

// Stats describes the effect of compressing one payload.
type Stats struct {
	Algorithm      Type
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns compressed size / original size (0 when the original is empty).
//
// Values below 1.0 mean the codec saved space.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NewNoOpCompressor(),
	TypeZstd: NewZstdCompressor(),
	TypeS2:   NewS2Compressor(),
	TypeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the given type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}

// GetCodecByName is GetCodec(ParseType(name)).
func GetCodecByName(name string) (Codec, error) {
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}

	return GetCodec(t)
}
