package regression

import (
	"fmt"

	"github.com/arloliu/olsfit/errs"
)

// Line is a fitted line y = Slope·x + Intercept.
//
// A Line is stateless and can be reused for any number of predictions.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Predict returns Slope·x + Intercept.
func (l Line) Predict(x float64) float64 {
	return Predict(l.Slope, l.Intercept, x)
}

// PredictAll applies Predict element-wise and returns a new slice of the same length.
func (l Line) PredictAll(xs []float64) []float64 {
	return PredictAll(l.Slope, l.Intercept, xs)
}

// Residuals returns y_i - ŷ_i for every sample.
//
// Returns:
//   - []float64: One residual per sample
//   - error: errs.ErrLengthMismatch if the inputs differ in length
func (l Line) Residuals(xs, ys []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d xs vs %d ys", errs.ErrLengthMismatch, len(xs), len(ys))
	}

	res := make([]float64, len(xs))
	for i := range xs {
		res[i] = ys[i] - l.Predict(xs[i])
	}

	return res, nil
}

// SSE returns the sum of squared residuals, the quantity OLS minimizes.
func (l Line) SSE(xs, ys []float64) (float64, error) {
	res, err := l.Residuals(xs, ys)
	if err != nil {
		return 0, err
	}

	var sse float64
	for _, r := range res {
		sse += r * r
	}

	return sse, nil
}

// Predict returns slope·x + intercept.
//
// Predict is a total function: it never fails and performs no rounding beyond
// float64 arithmetic.
func Predict(slope, intercept, x float64) float64 {
	return slope*x + intercept
}

// PredictAll returns slope·x + intercept for every x.
//
// The result is a new slice with the same length as xs; xs is not modified. A nil
// or empty input yields an empty, non-nil slice.
func PredictAll(slope, intercept float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Predict(slope, intercept, x)
	}

	return out
}
