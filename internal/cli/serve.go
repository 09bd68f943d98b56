package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/olsfit/server"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			logger := zerolog.Ctx(ctx)
			logger.Info().
				Str("compression", cfg.Compression).
				Str("correlation", cfg.Correlation).
				Int("cache_size", cfg.CacheSize).
				Msg("configuration loaded")

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			api := server.NewWebAPI(server.Config{
				Addr:            cfg.Addr,
				ShutdownTimeout: cfg.ShutdownTimeout,
				MaxUploadBytes:  cfg.MaxUploadBytes,
				Precision:       cfg.Precision,
				Dependencies: server.Dependencies{
					Analyzer: svc,
					Logger:   *logger,
				},
			})

			return api.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
