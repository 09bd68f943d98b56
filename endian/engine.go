// Package endian provides the byte-order engine used to serialize float64 columns.
//
// Column payloads are always little-endian so that a stored dataset decodes the
// same way on every host:
//
//	engine := endian.GetLittleEndianEngine()
//	buf := endian.AppendFloat64s(engine, nil, []float64{1.5, 2.5})
//	vals, err := endian.Float64s(engine, buf)
package endian

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Float64Size is the encoded size of one float64.
const Float64Size = 8

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendFloat64s appends the IEEE-754 bits of every value to dst.
func AppendFloat64s(engine EndianEngine, dst []byte, vals []float64) []byte {
	for _, v := range vals {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// Float64s decodes a payload produced by AppendFloat64s.
//
// Returns an error if len(src) is not a multiple of Float64Size.
func Float64s(engine EndianEngine, src []byte) ([]float64, error) {
	if len(src)%Float64Size != 0 {
		return nil, fmt.Errorf("payload length %d is not a multiple of %d", len(src), Float64Size)
	}

	vals := make([]float64, len(src)/Float64Size)
	for i := range vals {
		vals[i] = math.Float64frombits(engine.Uint64(src[i*Float64Size:]))
	}

	return vals, nil
}
