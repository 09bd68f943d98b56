package regression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLine_Equation(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		places   int
		expected string
		latex    string
	}{
		{"textbook", Line{Slope: 0.6, Intercept: 2.2000000000000002}, 3, "y = 0.6x + 2.2", "y = 0.6 x + 2.2"},
		{"negative intercept", Line{Slope: 2, Intercept: -3}, 3, "y = 2x - 3", "y = 2 x - 3"},
		{"unit slope", Line{Slope: 1, Intercept: 4}, 3, "y = x + 4", "y = x + 4"},
		{"negative unit slope", Line{Slope: -1, Intercept: -0.25}, 3, "y = -x - 0.25", "y = -x - 0.25"},
		{"zero intercept", Line{Slope: 1.5, Intercept: 0}, 3, "y = 1.5x", "y = 1.5 x"},
		{"zero slope", Line{Slope: 0, Intercept: 7.125}, 3, "y = 7.125", "y = 7.125"},
		{"all zero", Line{}, 3, "y = 0", "y = 0"},
		{"rounding", Line{Slope: 1.23456, Intercept: -0.0004}, 3, "y = 1.235x", "y = 1.235 x"},
		{"zero places", Line{Slope: 2.5, Intercept: 1.4}, 0, "y = 3x + 1", "y = 3 x + 1"},
		{"slope rounds to zero", Line{Slope: 0.0004, Intercept: 5}, 3, "y = 5", "y = 5"},
		{"negative slope rounds to zero", Line{Slope: -0.0004, Intercept: -2}, 3, "y = -2", "y = -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.line.Equation(tt.places))
			require.Equal(t, tt.latex, tt.line.LaTeX(tt.places))
		})
	}
}

func TestLine_String(t *testing.T) {
	require.Equal(t, "y = 0.667x - 1", Line{Slope: 2.0 / 3.0, Intercept: -1}.String())
}

func TestSummary_Round(t *testing.T) {
	sum := Summary{
		N:         3,
		MeanX:     1.23449,
		MeanY:     -2.0005,
		Sxx:       10,
		Syy:       0.0004,
		Sxy:       -0.0004,
		Slope:     0.6666666,
		Intercept: 2.2000000000000002,
		RSquared:  0.7499999,
		R:         0.8660254,
	}

	got := sum.Round(3)
	require.Equal(t, 3, got.N)
	require.Equal(t, 1.234, got.MeanX)
	require.Equal(t, -2.001, got.MeanY)
	require.Equal(t, 10.0, got.Sxx)
	require.Equal(t, 0.0, got.Syy)
	require.Equal(t, 0.0, got.Sxy)
	require.False(t, got.Sxy < 0 || 1/got.Sxy < 0, "rounded values must not be negative zero")
	require.Equal(t, 0.667, got.Slope)
	require.Equal(t, 2.2, got.Intercept)
	require.Equal(t, 0.75, got.RSquared)
	require.Equal(t, 0.866, got.R)

	// The receiver is a value and stays at full precision.
	require.Equal(t, 0.6666666, sum.Slope)
}

func TestSummary_Line(t *testing.T) {
	sum := Summary{Slope: 1.5, Intercept: -2}
	require.Equal(t, Line{Slope: 1.5, Intercept: -2}, sum.Line())
}

func TestSummary_String(t *testing.T) {
	sum, err := Estimate([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	require.NoError(t, err)
	require.Contains(t, sum.String(), "N: 5")
	require.Contains(t, sum.String(), "m: 0.6000")
}

func TestRoundValue(t *testing.T) {
	require.Equal(t, 2.4, RoundValue(2.39999999, 3))
	require.Equal(t, 3.0, RoundValue(2.5, -2))

	neg := RoundValue(-0.0001, 2)
	require.Equal(t, 0.0, neg)
	require.False(t, 1/neg < 0)
}
