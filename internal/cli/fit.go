package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/olsfit/analysis"
	"github.com/arloliu/olsfit/dataset"
	"github.com/arloliu/olsfit/regression"
)

type fitFlags struct {
	x           string
	y           string
	predict     []float64
	precision   int
	unsignedR   bool
	dropMissing bool
}

func (a *app) newFitCmd() *cobra.Command {
	var f fitFlags

	cmd := &cobra.Command{
		Use:   "fit FILE",
		Short: "Fit a regression line to two numeric columns of a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			var extra []analysis.Option
			if f.unsignedR {
				extra = append(extra, analysis.WithCorrelationMode(regression.CorrelationUnsigned))
			}
			if f.dropMissing {
				extra = append(extra, analysis.WithMissingPolicy(dataset.MissingDrop))
			}
			places := cfg.Precision
			if cmd.Flags().Changed("precision") {
				places = f.precision
				extra = append(extra, analysis.WithPrecision(places))
			}

			svc, err := newService(cfg, extra...)
			if err != nil {
				return err
			}

			info, err := uploadFile(ctx, svc, args[0])
			if err != nil {
				return err
			}

			req := analysis.FitRequest{Handle: info.Handle, X: f.x, Y: f.y}
			res, err := svc.Fit(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printFit(out, res, places); err != nil {
				return err
			}

			if len(f.predict) == 0 {
				return nil
			}

			pred, err := svc.Predict(ctx, analysis.PredictRequest{FitRequest: req, Values: f.predict})
			if err != nil {
				return err
			}

			return printPredictions(out, pred, places)
		},
	}

	cmd.Flags().StringVar(&f.x, "x", "", "Independent column (default: first numeric column)")
	cmd.Flags().StringVar(&f.y, "y", "", "Dependent column (default: second numeric column)")
	cmd.Flags().Float64SliceVar(&f.predict, "predict", nil, "X values to predict Y for")
	cmd.Flags().IntVar(&f.precision, "precision", regression.DisplayPrecision, "Decimal places shown")
	cmd.Flags().BoolVar(&f.unsignedR, "unsigned-r", false, "Report r as √R² regardless of the slope sign")
	cmd.Flags().BoolVar(&f.dropMissing, "drop-missing", false, "Drop rows with missing values instead of failing")

	return cmd
}

func printFit(w io.Writer, res analysis.FitResult, places int) error {
	s := res.Summary.Round(places)
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Regression Analysis Results: %s on %s (n = %d)\n\n", res.Y, res.X, s.N)
	fmt.Fprintf(tw, "Mean of X\tX̄\t%s\n", num(s.MeanX))
	fmt.Fprintf(tw, "Mean of Y\tȲ\t%s\n", num(s.MeanY))
	fmt.Fprintf(tw, "Sxx\tΣ(x-X̄)²\t%s\n", num(s.Sxx))
	fmt.Fprintf(tw, "Syy\tΣ(y-Ȳ)²\t%s\n", num(s.Syy))
	fmt.Fprintf(tw, "Sxy\tΣ(x-X̄)(y-Ȳ)\t%s\n", num(s.Sxy))
	fmt.Fprintf(tw, "Slope\tm\t%s\n", num(s.Slope))
	fmt.Fprintf(tw, "Y-intercept\tb\t%s\n", num(s.Intercept))
	fmt.Fprintf(tw, "Coef of Determination\tR²\t%s\n", num(s.RSquared))
	fmt.Fprintf(tw, "Linear Correlation Coef\tr\t%s\n", num(s.R))
	fmt.Fprintf(tw, "Residual sum of squares\tSSE\t%s\n", num(regression.RoundValue(res.SSE, places)))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nThe equation of the line is: %s\n", res.Line.Equation(places))

	return err
}

func printPredictions(w io.Writer, pred analysis.PredictResult, places int) error {
	fmt.Fprintln(w)
	for i, x := range pred.Values {
		y := regression.RoundValue(pred.Predictions[i], places)
		if _, err := fmt.Fprintf(w, "The predicted value of Y for X = %s is %s\n",
			strconv.FormatFloat(x, 'f', -1, 64), strconv.FormatFloat(y, 'f', -1, 64)); err != nil {
			return err
		}
	}

	return nil
}
