package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, _ = bb.Write([]byte("defgh"))
	require.Equal(t, "abcdefgh", string(bb.Bytes()))
	require.Equal(t, 8, bb.Len())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 8)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(0)
	_, _ = bb.Write([]byte{1, 2, 3})

	bb.Grow(10)
	require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 10)
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes(), "content survives growth")

	before := cap(bb.B)
	bb.Grow(1)
	require.Equal(t, before, cap(bb.B), "no growth when capacity suffices")

	big := NewByteBuffer(8 * ColumnBufferDefaultSize)
	big.B = big.B[:cap(big.B)]
	big.Grow(1)
	require.GreaterOrEqual(t, cap(big.B), 10*ColumnBufferDefaultSize)
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())

	_, _ = bb.Write([]byte("payload"))
	p.Put(bb)

	again := p.Get()
	require.Zero(t, again.Len(), "buffers come back empty")

	p.Put(nil)

	oversized := NewByteBuffer(128)
	p.Put(oversized)
	require.LessOrEqual(t, cap(p.Get().B), 64)
}

func TestColumnBuffer(t *testing.T) {
	bb := GetColumnBuffer()
	require.Zero(t, bb.Len())
	PutColumnBuffer(bb)
}
