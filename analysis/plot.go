package analysis

import (
	"context"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Point is one (x, y) coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plot is a scatter plot of the selected columns with the fitted line overlaid.
type Plot struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	XMin   float64 `json:"x_min"`
	XMax   float64 `json:"x_max"`
	// Points are the samples in row order.
	Points []Point `json:"points"`
	// Line is the fitted line evaluated at every observed x, sorted by x.
	Line     []Point `json:"line"`
	Equation string  `json:"equation"`
}

// Plot builds the scatter plot and regression line overlay for a column pair.
func (s *Service) Plot(ctx context.Context, req FitRequest) (Plot, error) {
	fit, err := s.Fit(ctx, req)
	if err != nil {
		return Plot{}, err
	}

	xs, ys, err := s.pair(req.Handle, fit.X, fit.Y)
	if err != nil {
		return Plot{}, err
	}

	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	fitted := fit.Line.PredictAll(sorted)
	line := make([]Point, len(sorted))
	for i := range sorted {
		line[i] = Point{X: sorted[i], Y: fitted[i]}
	}

	return Plot{
		Title:    fmt.Sprintf("Scatter Plot with Regression Line of %s vs %s", fit.Y, fit.X),
		XLabel:   fit.X,
		YLabel:   fit.Y,
		XMin:     floats.Min(xs),
		XMax:     floats.Max(xs),
		Points:   points,
		Line:     line,
		Equation: fit.Equation,
	}, nil
}
