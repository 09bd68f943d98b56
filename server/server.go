// Package server exposes the analysis service as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/arloliu/olsfit/analysis"
	"github.com/arloliu/olsfit/dataset"
	"github.com/arloliu/olsfit/memo"
	olsfitmiddleware "github.com/arloliu/olsfit/server/middleware"
)

// Analyzer is the part of analysis.Service used by the handlers.
type Analyzer interface {
	Upload(ctx context.Context, name string, r io.Reader) (dataset.Info, error)
	List(ctx context.Context) []dataset.Info
	Columns(ctx context.Context, h dataset.Handle) ([]string, error)
	Fit(ctx context.Context, req analysis.FitRequest) (analysis.FitResult, error)
	Predict(ctx context.Context, req analysis.PredictRequest) (analysis.PredictResult, error)
	Plot(ctx context.Context, req analysis.FitRequest) (analysis.Plot, error)
	Delete(ctx context.Context, h dataset.Handle) error
	CacheStats() memo.Stats
}

var _ Analyzer = (*analysis.Service)(nil)

// Dependencies are the collaborators of the API.
type Dependencies struct {
	Analyzer Analyzer
	Logger   zerolog.Logger
}

// Config configures the API server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// MaxUploadBytes bounds the request body of an upload.
	MaxUploadBytes int64
	// Precision is the number of decimals of regression responses when the
	// request does not ask for one.
	Precision    int
	Dependencies Dependencies
}

// WebAPI is the HTTP server of the olsfit API.
type WebAPI struct {
	router http.Handler
	logger *zerolog.Logger
	server *http.Server
	config Config
}

// ConfigureRouter builds the chi router with every API route.
func ConfigureRouter(config Config) http.Handler {
	logger := config.Dependencies.Logger
	h := newHandler(config)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(olsfitmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/datasets", h.UploadDataset)
		r.Get("/datasets", h.ListDatasets)
		r.Route("/datasets/{id}", func(r chi.Router) {
			r.Delete("/", h.DeleteDataset)
			r.Get("/columns", h.ListColumns)
			r.Get("/regression", h.GetRegression)
			r.Get("/plot", h.GetPlot)
			r.Post("/predict", h.Predict)
		})
	})

	return router
}

// NewWebAPI creates the server; call Run to start it.
func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		config: config,
	}
}

// Handler returns the router of the server.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Run serves until ctx is done, then shuts down gracefully within the
// configured timeout.
func (w *WebAPI) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		timeout := w.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		return err
	}
}
