package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/olsfit/errs"
)

func TestVarString_RoundTrip(t *testing.T) {
	texts := []string{"Oslo", "", "São Paulo", strings.Repeat("x", 300), "日本"}

	enc := NewVarStringEncoder()
	defer enc.Release()

	require.NoError(t, enc.Write(texts[0]))
	require.NoError(t, enc.WriteSlice(texts[1:]))
	require.Equal(t, len(texts), enc.Len())
	require.Equal(t, len(enc.Bytes()), enc.Size())

	got, err := DecodeVarStrings(enc.Bytes(), len(texts))
	require.NoError(t, err)
	require.Equal(t, texts, got)
}

func TestVarString_Empty(t *testing.T) {
	got, err := DecodeVarStrings(nil, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestVarString_TooLong(t *testing.T) {
	enc := NewVarStringEncoder()
	defer enc.Release()

	long := strings.Repeat("y", MaxTextLength+1)
	require.ErrorIs(t, enc.Write(long), errs.ErrCellTooLong)
	require.ErrorIs(t, enc.WriteSlice([]string{"ok", long}), errs.ErrMalformedFile)
	require.Zero(t, enc.Len(), "a rejected slice writes nothing")
}

func TestDecodeVarStrings_Corrupted(t *testing.T) {
	enc := NewVarStringEncoder()
	defer enc.Release()
	require.NoError(t, enc.WriteSlice([]string{"alpha", "beta"}))
	data := enc.Bytes()

	_, err := DecodeVarStrings(data[:len(data)-1], 2)
	require.Error(t, err)

	_, err = DecodeVarStrings(data, 1)
	require.Error(t, err)

	_, err = DecodeVarStrings(data, 3)
	require.Error(t, err)

	_, err = DecodeVarStrings([]byte{0xff}, 1)
	require.Error(t, err)
}
