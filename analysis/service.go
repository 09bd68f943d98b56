// Package analysis ties dataset storage, memoization and the regression core into
// the operations offered by the HTTP API and the CLI.
package analysis

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"

	"github.com/arloliu/olsfit/dataset"
	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/internal/options"
	"github.com/arloliu/olsfit/memo"
	"github.com/arloliu/olsfit/regression"
)

// FitRequest selects a column pair of a stored dataset.
//
// Empty X and Y select the first two numeric columns.
type FitRequest struct {
	Handle dataset.Handle
	X      string
	Y      string
}

// FitResult is a fitted regression with its presentation forms.
type FitResult struct {
	X        string             `json:"x"`
	Y        string             `json:"y"`
	Summary  regression.Summary `json:"summary"`
	Line     regression.Line    `json:"line"`
	Equation string             `json:"equation"`
	LaTeX    string             `json:"latex"`
	SSE      float64            `json:"sse"`
	Cached   bool               `json:"cached"`
}

// PredictRequest asks for predictions from the line fitted to a column pair.
type PredictRequest struct {
	FitRequest
	Values []float64
}

// PredictResult pairs every requested x with its prediction.
type PredictResult struct {
	Line        regression.Line `json:"line"`
	Values      []float64       `json:"values"`
	Predictions []float64       `json:"predictions"`
}

// Service performs regression analyses on stored datasets. It is safe for
// concurrent use.
type Service struct {
	store *dataset.Store
	cache *memo.Cache[regression.Summary]
	cfg   Config
}

// NewService creates a Service backed by store.
func NewService(store *dataset.Store, opts ...Option) (*Service, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Service{
		store: store,
		cache: memo.New[regression.Summary](cfg.CacheSize),
		cfg:   cfg,
	}, nil
}

// Config returns the settings of the service.
func (s *Service) Config() Config {
	return s.cfg
}

// CacheStats returns the counters of the summary cache.
func (s *Service) CacheStats() memo.Stats {
	return s.cache.Stats()
}

// Upload parses and stores a CSV or XLSX file.
//
// Returns errs.ErrUploadTooLarge when r holds more than the configured limit.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader) (dataset.Info, error) {
	logger := zerolog.Ctx(ctx)

	lr := &limitedReader{r: r, remaining: s.cfg.MaxUploadBytes}
	tbl, err := dataset.Parse(name, lr)
	if lr.exceeded {
		return dataset.Info{}, fmt.Errorf("%w: limit is %d bytes", errs.ErrUploadTooLarge, s.cfg.MaxUploadBytes)
	}
	if err != nil {
		return dataset.Info{}, fmt.Errorf("failed to parse %q: %w", name, err)
	}

	h, err := s.store.Put(name, tbl)
	if err != nil {
		return dataset.Info{}, err
	}

	info, err := s.store.Info(h)
	if err != nil {
		return dataset.Info{}, err
	}

	logger.Info().
		Str("dataset", string(h)).
		Str("name", name).
		Int("rows", info.Rows).
		Strs("numeric_columns", info.NumericColumns).
		Int64("stored_bytes", info.StoredBytes).
		Msg("dataset uploaded")

	return info, nil
}

// List returns every stored dataset, oldest first.
func (s *Service) List(_ context.Context) []dataset.Info {
	return s.store.List()
}

// Columns returns the numeric columns of a dataset.
//
// Returns errs.ErrTooFewNumericColumns when fewer than two columns are numeric,
// since no pair can be selected.
func (s *Service) Columns(_ context.Context, h dataset.Handle) ([]string, error) {
	info, err := s.store.Info(h)
	if err != nil {
		return nil, err
	}

	if len(info.NumericColumns) < 2 {
		return nil, fmt.Errorf("%w: found %d", errs.ErrTooFewNumericColumns, len(info.NumericColumns))
	}

	return info.NumericColumns, nil
}

// Fit estimates the regression of req.Y on req.X.
//
// Summaries are memoized per dataset content, column pair and settings; a hit
// does not decode the dataset.
func (s *Service) Fit(ctx context.Context, req FitRequest) (FitResult, error) {
	logger := zerolog.Ctx(ctx)

	info, err := s.store.Info(req.Handle)
	if err != nil {
		return FitResult{}, err
	}

	x, y, err := resolvePair(info, req.X, req.Y)
	if err != nil {
		return FitResult{}, err
	}

	key := memo.NewKey(string(req.Handle)).
		WithUint64(info.Fingerprint).
		With(x, y, s.cfg.Missing.String(), s.cfg.Correlation.String())

	sum, cached, err := s.cache.GetOrCompute(key, func() (regression.Summary, error) {
		xs, ys, err := s.pair(req.Handle, x, y)
		if err != nil {
			return regression.Summary{}, err
		}

		return regression.Estimate(xs, ys, regression.WithCorrelationMode(s.cfg.Correlation))
	})
	if err != nil {
		logger.Debug().Err(err).Str("dataset", string(req.Handle)).Str("x", x).Str("y", y).Msg("fit rejected")
		return FitResult{}, fmt.Errorf("fit %s on %s: %w", y, x, err)
	}

	logger.Debug().
		Str("dataset", string(req.Handle)).
		Str("x", x).
		Str("y", y).
		Bool("cached", cached).
		Float64("r_squared", sum.RSquared).
		Msg("regression fitted")

	line := sum.Line()

	return FitResult{
		X:        x,
		Y:        y,
		Summary:  sum,
		Line:     line,
		Equation: line.Equation(s.cfg.Precision),
		LaTeX:    line.LaTeX(s.cfg.Precision),
		SSE:      sum.SSE(),
		Cached:   cached,
	}, nil
}

// Predict applies the line fitted to a column pair to req.Values.
func (s *Service) Predict(ctx context.Context, req PredictRequest) (PredictResult, error) {
	fit, err := s.Fit(ctx, req.FitRequest)
	if err != nil {
		return PredictResult{}, err
	}

	values := slices.Clone(req.Values)
	if values == nil {
		values = []float64{}
	}

	return PredictResult{
		Line:        fit.Line,
		Values:      values,
		Predictions: fit.Line.PredictAll(values),
	}, nil
}

// Delete removes a dataset and every summary memoized for it.
func (s *Service) Delete(ctx context.Context, h dataset.Handle) error {
	if err := s.store.Delete(h); err != nil {
		return err
	}

	removed := s.cache.InvalidateTag(string(h))
	zerolog.Ctx(ctx).Info().
		Str("dataset", string(h)).
		Int("invalidated", removed).
		Msg("dataset deleted")

	return nil
}

func (s *Service) pair(h dataset.Handle, x, y string) ([]float64, []float64, error) {
	tbl, err := s.store.Get(h)
	if err != nil {
		return nil, nil, err
	}

	return tbl.Pair(x, y, s.cfg.Missing)
}

// resolvePair fills in the default pair and checks that both columns exist.
func resolvePair(info dataset.Info, x, y string) (string, string, error) {
	if x == "" || y == "" {
		if len(info.NumericColumns) < 2 {
			return "", "", fmt.Errorf("%w: found %d", errs.ErrTooFewNumericColumns, len(info.NumericColumns))
		}
		if x == "" {
			x = info.NumericColumns[0]
		}
		if y == "" {
			y = info.NumericColumns[1]
		}
	}

	for _, name := range []string{x, y} {
		if !slices.Contains(info.Columns, name) {
			return "", "", fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
		}
		if !slices.Contains(info.NumericColumns, name) {
			return "", "", fmt.Errorf("%w: %q", errs.ErrNotNumeric, name)
		}
	}

	return x, y, nil
}

// limitedReader is io.LimitReader that remembers whether the limit was hit.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Probe for one more byte to tell "exactly at the limit" from "over it".
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			l.exceeded = true
			return 0, errs.ErrUploadTooLarge
		}

		return 0, err
	}

	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)

	return n, err
}
