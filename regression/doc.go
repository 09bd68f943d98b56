// Package regression implements ordinary least squares simple linear regression.
//
// The package has two parts. The estimator turns paired samples (x_i, y_i) into an
// immutable Summary holding the sufficient statistics and the fitted line, and the
// predictor applies a fitted Line to new x values.
//
// # Basic Usage
//
//	xs := []float64{1, 2, 3, 4, 5}
//	ys := []float64{2, 4, 5, 4, 5}
//
//	sum, err := regression.Estimate(xs, ys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(sum.Line().Equation(3)) // y = 0.6x + 2.2
//	fmt.Println(sum.Line().Predict(6))  // 5.8
//
// # Algorithm
//
// Estimate uses the two-pass formulation. Means are computed first and the
// centered sums are accumulated in a second pass:
//
//	X̄ = Σx/n, Ȳ = Σy/n
//	Sxx = Σ(x-X̄)², Syy = Σ(y-Ȳ)², Sxy = Σ(x-X̄)(y-Ȳ)
//	m = Sxy/Sxx, b = Ȳ - m·X̄
//	R² = Sxy²/(Sxx·Syy), r = sign(Sxy)·√R²
//
// The one-pass Σxy - n·X̄·Ȳ form loses most of its significant digits when the data
// sits far from the origin, so it is not used.
//
// # Errors
//
// Malformed input (unequal lengths, fewer than two samples, NaN or ±Inf) fails with
// an error wrapping errs.ErrInvalidInput. Constant X or constant Y fails with an
// error wrapping errs.ErrDegenerateInput. No NaN or Inf is ever returned as part of
// a successful Summary.
//
// # Precision
//
// All values keep full float64 precision. Rounding belongs to the presentation
// boundary: use Summary.Round and Line.Equation for display.
//
// # Thread Safety
//
// Every function in this package is pure. Summary and Line are values and are safe
// to share between goroutines.
package regression
