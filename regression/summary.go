package regression

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// DisplayPrecision is the conventional number of decimals used when presenting
// a Summary.
const DisplayPrecision = 3

// Summary is the result of an ordinary least squares fit.
//
// A Summary is an immutable value. Every field keeps full float64 precision; use
// Round to obtain a copy for display.
type Summary struct {
	// N is the number of samples.
	N int `json:"n"`
	// MeanX is the sample mean of x (X̄).
	MeanX float64 `json:"mean_x"`
	// MeanY is the sample mean of y (Ȳ).
	MeanY float64 `json:"mean_y"`
	// Sxx is Σ(x-X̄)².
	Sxx float64 `json:"s_xx"`
	// Syy is Σ(y-Ȳ)².
	Syy float64 `json:"s_yy"`
	// Sxy is Σ(x-X̄)(y-Ȳ).
	Sxy float64 `json:"s_xy"`
	// Slope is Sxy/Sxx.
	Slope float64 `json:"slope"`
	// Intercept is Ȳ - Slope·X̄.
	Intercept float64 `json:"intercept"`
	// RSquared is the coefficient of determination Sxy²/(Sxx·Syy).
	RSquared float64 `json:"r_squared"`
	// R is the correlation coefficient, signed unless CorrelationUnsigned was used.
	R float64 `json:"r"`
}

// Line returns the fitted line.
func (s Summary) Line() Line {
	return Line{Slope: s.Slope, Intercept: s.Intercept}
}

// SSE returns the residual sum of squares Syy - m·Sxy, the quantity the fit
// minimizes, without revisiting the samples.
func (s Summary) SSE() float64 {
	if sse := s.Syy - s.Slope*s.Sxy; sse > 0 {
		return sse
	}

	return 0
}

// Round returns a copy of the summary with every float field rounded to the given
// number of decimal places.
//
// The returned value is for presentation only. Feeding rounded values back into
// further computation compounds rounding error.
//
// Parameters:
//   - places: Number of decimal places (negative values are treated as 0)
//
// Returns:
//   - Summary: Rounded copy; N is unchanged
func (s Summary) Round(places int) Summary {
	return Summary{
		N:         s.N,
		MeanX:     RoundValue(s.MeanX, places),
		MeanY:     RoundValue(s.MeanY, places),
		Sxx:       RoundValue(s.Sxx, places),
		Syy:       RoundValue(s.Syy, places),
		Sxy:       RoundValue(s.Sxy, places),
		Slope:     RoundValue(s.Slope, places),
		Intercept: RoundValue(s.Intercept, places),
		RSquared:  RoundValue(s.RSquared, places),
		R:         RoundValue(s.R, places),
	}
}

// String returns a string representation of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("Summary{N: %d, X̄: %.4f, Ȳ: %.4f, Sxx: %.4f, Syy: %.4f, Sxy: %.4f, m: %.4f, b: %.4f, R²: %.4f, r: %.4f}",
		s.N, s.MeanX, s.MeanY, s.Sxx, s.Syy, s.Sxy, s.Slope, s.Intercept, s.RSquared, s.R)
}

// RoundValue rounds v to the given number of decimal places, half away from zero.
// Negative places are treated as 0 and the result is never negative zero.
func RoundValue(v float64, places int) float64 {
	if places < 0 {
		places = 0
	}

	rounded, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	if rounded == 0 {
		return 0
	}

	return rounded
}
