package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/internal/options"
)

// MinSamples is the smallest sample count for which a slope can be defined.
const MinSamples = 2

// Estimate fits y = m·x + b to the paired samples by ordinary least squares.
//
// The inputs are validated before any arithmetic. Means are computed first and the
// centered sums of squares and cross-products are accumulated in a second pass.
//
// Parameters:
//   - xs: Independent variable samples
//   - ys: Dependent variable samples, len(ys) must equal len(xs)
//   - opts: Optional settings, see WithUnsignedCorrelation
//
// Returns:
//   - Summary: The sufficient statistics and the fitted line
//   - error: errs.ErrLengthMismatch, errs.ErrInsufficientSamples, errs.ErrNonFinite or
//     errs.ErrOverflow (all wrap errs.ErrInvalidInput); errs.ErrConstantX or
//     errs.ErrConstantY (both wrap errs.ErrDegenerateInput)
//
// Example:
//
//	sum, err := Estimate([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("m=%.3f b=%.3f R²=%.3f\n", sum.Slope, sum.Intercept, sum.RSquared)
func Estimate(xs, ys []float64, opts ...EstimateOption) (Summary, error) {
	cfg := defaultEstimateConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Summary{}, err
	}

	if err := validatePair(xs, ys); err != nil {
		return Summary{}, err
	}

	n := len(xs)
	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)

	var sxx, syy, sxy float64
	for i := range n {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if !isFinite(meanX) || !isFinite(meanY) || !isFinite(sxx) || !isFinite(syy) || !isFinite(sxy) {
		return Summary{}, errs.ErrOverflow
	}

	// A constant column can still leave a tiny nonzero sum when its mean is not
	// exactly representable, so constancy is checked on the samples themselves.
	if sxx == 0 || isConstant(xs) {
		return Summary{}, errs.ErrConstantX
	}
	slope := sxy / sxx
	intercept := meanY - slope*meanX

	if syy == 0 || isConstant(ys) {
		return Summary{}, errs.ErrConstantY
	}
	// Divided before multiplying so sums above ~1e154 do not overflow.
	r2 := slope * (sxy / syy)
	if !isFinite(slope) || !isFinite(intercept) || !isFinite(r2) {
		return Summary{}, errs.ErrOverflow
	}
	// Cauchy-Schwarz bounds R² by 1; rounding can overshoot by an ulp.
	if r2 > 1 {
		r2 = 1
	}

	r := math.Sqrt(r2)
	if cfg.Correlation == CorrelationSigned && sxy < 0 {
		r = -r
	}

	return Summary{
		N:         n,
		MeanX:     meanX,
		MeanY:     meanY,
		Sxx:       sxx,
		Syy:       syy,
		Sxy:       sxy,
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		R:         r,
	}, nil
}

// validatePair checks the preconditions of Estimate without computing anything.
func validatePair(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d xs vs %d ys", errs.ErrLengthMismatch, len(xs), len(ys))
	}

	if len(xs) < MinSamples {
		return fmt.Errorf("%w: got %d", errs.ErrInsufficientSamples, len(xs))
	}

	for i := range xs {
		if !isFinite(xs[i]) {
			return fmt.Errorf("%w: x[%d] = %v", errs.ErrNonFinite, i, xs[i])
		}
		if !isFinite(ys[i]) {
			return fmt.Errorf("%w: y[%d] = %v", errs.ErrNonFinite, i, ys[i])
		}
	}

	return nil
}

func isConstant(vs []float64) bool {
	for _, v := range vs[1:] {
		if v != vs[0] {
			return false
		}
	}

	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
