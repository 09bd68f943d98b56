// Package hash provides xxHash64 content fingerprints for datasets and cache keys.
package hash

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/olsfit/endian"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Hasher accumulates a fingerprint over strings and float64 sequences.
//
// Every write is length-prefixed, so ("ab", "c") and ("a", "bc") hash differently.
// Floats are hashed by their IEEE-754 bit pattern: 0 and -0 differ, and NaNs hash
// equal only when their bit patterns are identical.
type Hasher struct {
	d       *xxhash.Digest
	engine  endian.EndianEngine
	scratch []byte
}

// NewHasher creates an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{
		d:       xxhash.New(),
		engine:  endian.GetLittleEndianEngine(),
		scratch: make([]byte, 0, 8),
	}
}

// Uint64 writes a single value.
func (h *Hasher) Uint64(v uint64) *Hasher {
	h.scratch = h.engine.AppendUint64(h.scratch[:0], v)
	_, _ = h.d.Write(h.scratch)

	return h
}

// String writes a length-prefixed string.
func (h *Hasher) String(s string) *Hasher {
	h.Uint64(uint64(len(s)))
	_, _ = h.d.WriteString(s)

	return h
}

// Floats writes a length-prefixed float64 sequence.
func (h *Hasher) Floats(vs []float64) *Hasher {
	h.Uint64(uint64(len(vs)))
	for _, v := range vs {
		h.Uint64(math.Float64bits(v))
	}

	return h
}

// Sum64 returns the fingerprint of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
