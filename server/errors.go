package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/arloliu/olsfit/errs"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// apiError is an error with its HTTP status and response code.
type apiError struct {
	status  int
	code    string
	message string
}

var errorTable = []struct {
	target error
	apiError
}{
	{errs.ErrConstantX, apiError{http.StatusUnprocessableEntity, "constant_x", "cannot fit a line: X values are constant"}},
	{errs.ErrConstantY, apiError{http.StatusUnprocessableEntity, "constant_y", "R² is undefined: Y values are constant"}},
	{errs.ErrLengthMismatch, apiError{http.StatusUnprocessableEntity, "length_mismatch", ""}},
	{errs.ErrInsufficientSamples, apiError{http.StatusUnprocessableEntity, "insufficient_samples", "at least two rows with values in both columns are required"}},
	{errs.ErrNonFinite, apiError{http.StatusUnprocessableEntity, "missing_values", "the selected columns contain missing or non-finite values"}},
	{errs.ErrOverflow, apiError{http.StatusUnprocessableEntity, "overflow", "the selected values are too large to fit"}},
	{errs.ErrInvalidInput, apiError{http.StatusUnprocessableEntity, "invalid_input", ""}},
	{errs.ErrDatasetNotFound, apiError{http.StatusNotFound, "dataset_not_found", "dataset not found"}},
	{errs.ErrColumnNotFound, apiError{http.StatusNotFound, "column_not_found", ""}},
	{errs.ErrNotNumeric, apiError{http.StatusBadRequest, "column_not_numeric", ""}},
	{errs.ErrTooFewNumericColumns, apiError{http.StatusBadRequest, "too_few_numeric_columns", "the uploaded file must contain at least two numeric columns"}},
	{errs.ErrUnsupportedFormat, apiError{http.StatusBadRequest, "unsupported_format", "only .csv and .xlsx files are supported"}},
	{errs.ErrEmptyTable, apiError{http.StatusBadRequest, "empty_table", "the uploaded file has no data rows"}},
	{errs.ErrMalformedFile, apiError{http.StatusBadRequest, "malformed_file", ""}},
	{errs.ErrUploadTooLarge, apiError{http.StatusRequestEntityTooLarge, "upload_too_large", ""}},
}

// classify maps err to its API form. An empty message means err.Error() is shown.
func classify(err error) apiError {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return apiError{http.StatusRequestEntityTooLarge, "upload_too_large", err.Error()}
	}

	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			out := e.apiError
			if out.message == "" {
				out.message = err.Error()
			}

			return out
		}
	}

	return apiError{http.StatusInternalServerError, "internal", "internal server error"}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)

	logger := zerolog.Ctx(r.Context())
	if e.status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", e.code).Msg("request rejected")
	}

	writeJSON(w, r, e.status, errorResponse{Error: e.code, Message: e.message})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	zerolog.Ctx(r.Context()).Debug().Str("reason", message).Msg("bad request")
	writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}
