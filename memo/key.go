package memo

import (
	"github.com/arloliu/olsfit/internal/hash"
)

// Key identifies a memoized computation.
//
// Tag groups keys for InvalidateTag, typically a dataset handle. Sum is an
// xxHash64 over the tag and every part that was mixed in.
type Key struct {
	Tag string
	Sum uint64
}

// NewKey builds a key from a tag and any number of float64 sequences.
//
// Sequences are hashed by bit pattern, so -0 and 0 give different keys.
func NewKey(tag string, parts ...[]float64) Key {
	h := hash.NewHasher().String(tag).Uint64(uint64(len(parts)))
	for _, p := range parts {
		h.Floats(p)
	}

	return Key{Tag: tag, Sum: h.Sum64()}
}

// With returns a key that additionally depends on the given qualifiers, such as
// column names or options.
func (k Key) With(qualifiers ...string) Key {
	h := hash.NewHasher().Uint64(k.Sum)
	for _, q := range qualifiers {
		h.String(q)
	}

	return Key{Tag: k.Tag, Sum: h.Sum64()}
}

// WithUint64 returns a key that additionally depends on v, such as a content
// fingerprint.
func (k Key) WithUint64(v uint64) Key {
	return Key{Tag: k.Tag, Sum: hash.NewHasher().Uint64(k.Sum).Uint64(v).Sum64()}
}
