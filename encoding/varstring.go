// Package encoding serializes the text columns of a stored dataset.
package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/internal/pool"
)

// MaxTextLength is the maximum length of a single cell.
const MaxTextLength = 1 << 20

var errTruncated = errors.New("varstring: truncated payload")

// VarStringEncoder encodes a sequence of strings, each as its uvarint length
// followed by its bytes.
//
// The encoder borrows a pooled buffer; call Release when done with Bytes.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates an encoder backed by the shared column pool.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetColumnBuffer()}
}

// Write encodes a single string.
//
// Returns errs.ErrCellTooLong if text is longer than MaxTextLength.
func (e *VarStringEncoder) Write(text string) error {
	if len(text) > MaxTextLength {
		return fmt.Errorf("%w: length %d, maximum %d", errs.ErrCellTooLong, len(text), MaxTextLength)
	}

	e.buf.Grow(binary.MaxVarintLen64 + len(text))
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(text)))
	e.buf.B = append(e.buf.B, text...)
	e.count++

	return nil
}

// WriteSlice encodes every string of texts after validating all of them.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	total := 0
	for _, text := range texts {
		if len(text) > MaxTextLength {
			return fmt.Errorf("%w: length %d, maximum %d", errs.ErrCellTooLong, len(text), MaxTextLength)
		}
		total += binary.MaxVarintLen64 + len(text)
	}

	e.buf.Grow(total)
	for _, text := range texts {
		e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(text)))
		e.buf.B = append(e.buf.B, text...)
	}
	e.count += len(texts)

	return nil
}

// Bytes returns the encoded data. The slice is only valid until Release.
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings written.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Release returns the buffer to the pool. The encoder must not be used afterwards.
func (e *VarStringEncoder) Release() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// DecodeVarStrings decodes exactly count strings from data.
//
// Returns an error if data holds fewer or more strings than count.
func DecodeVarStrings(data []byte, count int) ([]string, error) {
	out := make([]string, 0, count)
	for len(data) > 0 {
		if len(out) == count {
			return nil, fmt.Errorf("varstring: %d trailing bytes after %d strings", len(data), count)
		}

		n, k := binary.Uvarint(data)
		if k <= 0 || n > MaxTextLength || uint64(len(data)-k) < n {
			return nil, errTruncated
		}
		out = append(out, string(data[k:k+int(n)]))
		data = data[k+int(n):]
	}

	if len(out) != count {
		return nil, fmt.Errorf("varstring: got %d strings, want %d", len(out), count)
	}

	return out, nil
}
