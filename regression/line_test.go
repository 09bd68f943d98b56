package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/olsfit/errs"
)

// TestPredict_RoundTrip verifies predictions equal slope·x + intercept exactly.
func TestPredict_RoundTrip(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 5, 4, 5}

	sum, err := Estimate(xs, ys)
	require.NoError(t, err)

	line := sum.Line()
	for _, x := range xs {
		require.Equal(t, sum.Slope*x+sum.Intercept, Predict(sum.Slope, sum.Intercept, x))
		require.Equal(t, sum.Slope*x+sum.Intercept, line.Predict(x))
	}
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name      string
		slope     float64
		intercept float64
		x         float64
		expected  float64
	}{
		{"origin", 2, 3, 0, 3},
		{"positive", 0.5, 1, 4, 3},
		{"negative slope", -2, 10, 3, 4},
		{"zero slope", 0, 7, 1e6, 7},
		{"negative x", 1.5, 0, -2, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Predict(tt.slope, tt.intercept, tt.x))
			require.Equal(t, tt.expected, Line{Slope: tt.slope, Intercept: tt.intercept}.Predict(tt.x))
		})
	}
}

func TestPredictAll(t *testing.T) {
	line := Line{Slope: 2, Intercept: -1}
	xs := []float64{-1, 0, 0.5, 10}

	got := line.PredictAll(xs)
	require.Equal(t, []float64{-3, -1, 0, 19}, got)
	require.Len(t, got, len(xs))
	require.Equal(t, []float64{-1, 0, 0.5, 10}, xs, "input must not be modified")

	for i, x := range xs {
		require.Equal(t, Predict(line.Slope, line.Intercept, x), got[i])
	}
}

func TestPredictAll_Empty(t *testing.T) {
	got := PredictAll(1, 1, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestPredict_NeverFails(t *testing.T) {
	// Non-finite input propagates through arithmetic without panicking.
	require.True(t, math.IsNaN(Predict(1, 0, math.NaN())))
	require.True(t, math.IsInf(Predict(1, 0, math.Inf(1)), 1))
}

func TestLine_Residuals(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 5, 4, 5}

	sum, err := Estimate(xs, ys)
	require.NoError(t, err)
	line := sum.Line()

	res, err := line.Residuals(xs, ys)
	require.NoError(t, err)
	require.Len(t, res, len(xs))

	var total float64
	for _, r := range res {
		total += r
	}
	require.InDelta(t, 0.0, total, tolerance, "OLS residuals sum to zero")

	sse, err := line.SSE(xs, ys)
	require.NoError(t, err)
	// SSE = Syy - Sxy²/Sxx = 6 - 3.6
	require.InDelta(t, 2.4, sse, tolerance)
	require.InDelta(t, sum.Syy*(1-sum.RSquared), sse, tolerance)
	require.InDelta(t, sse, sum.SSE(), tolerance)

	// Any other line does worse.
	worse, err := Line{Slope: line.Slope + 0.01, Intercept: line.Intercept}.SSE(xs, ys)
	require.NoError(t, err)
	require.Greater(t, worse, sse)
}

func TestLine_ResidualsLengthMismatch(t *testing.T) {
	_, err := Line{Slope: 1}.Residuals([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = Line{Slope: 1}.SSE([]float64{1}, nil)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func BenchmarkPredictAll(b *testing.B) {
	xs := make([]float64, 10_000)
	for i := range xs {
		xs[i] = float64(i)
	}
	line := Line{Slope: 0.6, Intercept: 2.2}

	b.ResetTimer()
	for b.Loop() {
		_ = line.PredictAll(xs)
	}
}
