package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/arloliu/olsfit/analysis"
	"github.com/arloliu/olsfit/dataset"
	"github.com/arloliu/olsfit/memo"
	"github.com/arloliu/olsfit/regression"
)

const (
	maxPrecision = 15
	// multipartOverhead is allowed on top of the upload limit for form boundaries
	// and part headers.
	multipartOverhead = 64 << 10
	maxPredictBody    = 1 << 20
)

type columnsResponse struct {
	ID             dataset.Handle `json:"id"`
	NumericColumns []string       `json:"numeric_columns"`
	DefaultX       string         `json:"default_x"`
	DefaultY       string         `json:"default_y"`
}

type regressionResponse struct {
	ID        dataset.Handle     `json:"id"`
	X         string             `json:"x"`
	Y         string             `json:"y"`
	Precision int                `json:"precision"`
	Summary   regression.Summary `json:"summary"`
	Equation  string             `json:"equation"`
	LaTeX     string             `json:"latex"`
	SSE       float64            `json:"sse"`
	Cached    bool               `json:"cached"`
}

type predictRequest struct {
	X      string    `json:"x"`
	Y      string    `json:"y"`
	Values []float64 `json:"values"`
}

type healthResponse struct {
	Status   string     `json:"status"`
	Datasets int        `json:"datasets"`
	Cache    memo.Stats `json:"cache"`
}

type handler struct {
	analyzer       Analyzer
	maxUploadBytes int64
	precision      int
}

func newHandler(config Config) *handler {
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = analysis.DefaultMaxUploadBytes
	}

	return &handler{
		analyzer:       config.Dependencies.Analyzer,
		maxUploadBytes: maxUpload,
		precision:      config.Precision,
	}
}

func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:   "ok",
		Datasets: len(h.analyzer.List(r.Context())),
		Cache:    h.analyzer.CacheStats(),
	})
}

func (h *handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			writeError(w, r, err)
			return
		}
		badRequest(w, r, "multipart form field \"file\" is required")

		return
	}
	defer file.Close()

	info, err := h.analyzer.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, info)
}

func (h *handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.analyzer.List(r.Context()))
}

func (h *handler) ListColumns(w http.ResponseWriter, r *http.Request) {
	id, ok := h.handle(w, r)
	if !ok {
		return
	}

	cols, err := h.analyzer.Columns(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := columnsResponse{ID: id, NumericColumns: cols}
	if len(cols) >= 2 {
		resp.DefaultX, resp.DefaultY = cols[0], cols[1]
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) GetRegression(w http.ResponseWriter, r *http.Request) {
	id, ok := h.handle(w, r)
	if !ok {
		return
	}

	places, err := h.parsePrecision(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	res, err := h.analyzer.Fit(r.Context(), h.fitRequest(r, id))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, regressionResponse{
		ID:        id,
		X:         res.X,
		Y:         res.Y,
		Precision: places,
		Summary:   res.Summary.Round(places),
		Equation:  res.Line.Equation(places),
		LaTeX:     res.Line.LaTeX(places),
		SSE:       regression.RoundValue(res.SSE, places),
		Cached:    res.Cached,
	})
}

func (h *handler) GetPlot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.handle(w, r)
	if !ok {
		return
	}

	plot, err := h.analyzer.Plot(r.Context(), h.fitRequest(r, id))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, plot)
}

func (h *handler) Predict(w http.ResponseWriter, r *http.Request) {
	id, ok := h.handle(w, r)
	if !ok {
		return
	}

	var body predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		badRequest(w, r, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(body.Values) == 0 {
		badRequest(w, r, "values must contain at least one number")
		return
	}

	res, err := h.analyzer.Predict(r.Context(), analysis.PredictRequest{
		FitRequest: analysis.FitRequest{Handle: id, X: body.X, Y: body.Y},
		Values:     body.Values,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.handle(w, r)
	if !ok {
		return
	}

	if err := h.analyzer.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handle(w http.ResponseWriter, r *http.Request) (dataset.Handle, bool) {
	id, err := dataset.ParseHandle(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return "", false
	}

	return id, true
}

func (h *handler) fitRequest(r *http.Request, id dataset.Handle) analysis.FitRequest {
	q := r.URL.Query()

	return analysis.FitRequest{Handle: id, X: q.Get("x"), Y: q.Get("y")}
}

func (h *handler) parsePrecision(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("precision")
	if raw == "" {
		return h.precision, nil
	}

	places, err := strconv.Atoi(raw)
	if err != nil || places < 0 || places > maxPrecision {
		return 0, fmt.Errorf("precision must be an integer between 0 and %d", maxPrecision)
	}

	return places, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
