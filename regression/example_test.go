package regression_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/regression"
)

// ExampleEstimate demonstrates fitting a line and reading the summary.
func ExampleEstimate() {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 5, 4, 5}

	sum, err := regression.Estimate(xs, ys)
	if err != nil {
		log.Fatal(err)
	}

	display := sum.Round(regression.DisplayPrecision)
	fmt.Printf("X̄ = %v, Ȳ = %v\n", display.MeanX, display.MeanY)
	fmt.Printf("Sxx = %v, Syy = %v, Sxy = %v\n", display.Sxx, display.Syy, display.Sxy)
	fmt.Printf("m = %v, b = %v\n", display.Slope, display.Intercept)
	fmt.Printf("R² = %v, r = %v\n", display.RSquared, display.R)
	fmt.Println(sum.Line().Equation(regression.DisplayPrecision))

	// Output:
	// X̄ = 3, Ȳ = 4
	// Sxx = 10, Syy = 6, Sxy = 6
	// m = 0.6, b = 2.2
	// R² = 0.6, r = 0.775
	// y = 0.6x + 2.2
}

// ExampleLine_Predict demonstrates point predictions from a fitted line.
func ExampleLine_Predict() {
	sum, err := regression.Estimate([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	if err != nil {
		log.Fatal(err)
	}

	line := sum.Line()
	fmt.Printf("%.3f\n", line.Predict(6))
	fmt.Printf("%.3f\n", line.PredictAll([]float64{0, 10}))

	// Output:
	// 5.800
	// [2.200 8.200]
}

// ExampleEstimate_degenerate demonstrates handling of constant input.
func ExampleEstimate_degenerate() {
	_, err := regression.Estimate([]float64{5, 5, 5}, []float64{1, 2, 3})

	switch {
	case errors.Is(err, errs.ErrConstantX):
		fmt.Println("cannot fit a line: X values are constant")
	case errors.Is(err, errs.ErrConstantY):
		fmt.Println("R² is undefined: Y values are constant")
	}

	// Output:
	// cannot fit a line: X values are constant
}

// ExampleWithUnsignedCorrelation compares signed and unsigned r.
func ExampleWithUnsignedCorrelation() {
	xs := []float64{1, 2, 3}
	ys := []float64{6, 4, 2}

	signed, _ := regression.Estimate(xs, ys)
	unsigned, _ := regression.Estimate(xs, ys, regression.WithUnsignedCorrelation())

	fmt.Println(signed.Round(3).R, unsigned.Round(3).R)

	// Output:
	// -1 1
}
