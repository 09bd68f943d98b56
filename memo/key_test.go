package memo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{2, 4, 5}

	require.Equal(t, NewKey("t", xs, ys), NewKey("t", []float64{1, 2, 3}, []float64{2, 4, 5}))
	require.Equal(t, "t", NewKey("t", xs).Tag)

	distinct := []Key{
		NewKey("t", xs, ys),
		NewKey("t", ys, xs),
		NewKey("u", xs, ys),
		NewKey("t", []float64{1, 2}, []float64{3, 2, 4, 5}),
		NewKey("t", xs),
		NewKey("t"),
		NewKey("t", []float64{0}),
		NewKey("t", []float64{math.Copysign(0, -1)}),
	}

	seen := make(map[uint64]int)
	for i, k := range distinct {
		if j, dup := seen[k.Sum]; dup {
			t.Fatalf("keys %d and %d collide", j, i)
		}
		seen[k.Sum] = i
	}
}

func TestKey_With(t *testing.T) {
	base := NewKey("ds")

	require.Equal(t, base.With("x", "y"), base.With("x", "y"))
	require.NotEqual(t, base.With("x", "y"), base.With("y", "x"))
	require.NotEqual(t, base.With("xy"), base.With("x", "y"))
	require.NotEqual(t, base, base.With())
	require.Equal(t, "ds", base.With("x").Tag)

	require.Equal(t, base.WithUint64(7), base.WithUint64(7))
	require.NotEqual(t, base.WithUint64(7), base.WithUint64(8))
}
