// Package errs defines the sentinel errors returned across olsfit.
//
// Errors are grouped by kind. Specific errors wrap their kind so callers can
// match either level with errors.Is:
//
//	_, err := regression.Estimate(xs, ys)
//	if errors.Is(err, errs.ErrDegenerateInput) {
//	    // constant X or constant Y
//	}
//	if errors.Is(err, errs.ErrConstantX) {
//	    // specifically: slope is undefined
//	}
package errs

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrInvalidInput is the kind for malformed sample pairs: unequal lengths,
	// too few samples, or non-finite values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateInput is the kind for well-formed samples that do not define
	// a regression: constant X (undefined slope) or constant Y (undefined R²).
	ErrDegenerateInput = errors.New("degenerate input")
)

// Estimator errors.
var (
	ErrLengthMismatch      = fmt.Errorf("%w: xs and ys differ in length", ErrInvalidInput)
	ErrInsufficientSamples = fmt.Errorf("%w: at least 2 samples are required", ErrInvalidInput)
	ErrNonFinite           = fmt.Errorf("%w: NaN or infinite value", ErrInvalidInput)
	ErrOverflow            = fmt.Errorf("%w: sums of squares overflow float64", ErrInvalidInput)

	ErrConstantX = fmt.Errorf("%w: X values are constant, slope is undefined", ErrDegenerateInput)
	ErrConstantY = fmt.Errorf("%w: Y values are constant, R² is undefined", ErrDegenerateInput)
)

// Dataset errors.
var (
	ErrEmptyTable           = errors.New("table has no data rows")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrColumnNotFound       = errors.New("column not found")
	ErrNotNumeric           = errors.New("column is not numeric")
	ErrTooFewNumericColumns = errors.New("at least two numeric columns are required")
	ErrDatasetNotFound      = errors.New("dataset not found")
	ErrInvalidPayload       = errors.New("invalid column payload")
	ErrUploadTooLarge       = errors.New("upload exceeds the size limit")
	ErrMalformedFile        = errors.New("malformed file")
	ErrCellTooLong          = fmt.Errorf("%w: cell exceeds the maximum length", ErrMalformedFile)
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsInvalidInput reports whether err is of the invalid-input kind.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDegenerate reports whether err is of the degenerate-input kind.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}
