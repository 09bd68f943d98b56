// Package cli implements the olsfit command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/olsfit/analysis"
	"github.com/arloliu/olsfit/compress"
	"github.com/arloliu/olsfit/config"
	"github.com/arloliu/olsfit/dataset"
)

// Options configures the root command.
type Options struct {
	// Output receives command results; defaults to os.Stdout.
	Output io.Writer
	// LogOutput receives log lines; defaults to os.Stderr.
	LogOutput io.Writer
}

type app struct {
	opts       Options
	configPath string
	logLevel   string
}

// NewRootCmd builds the olsfit command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "olsfit",
		Short:         "Simple linear regression over CSV and XLSX data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Output)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML, JSON or TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides config)")

	root.AddCommand(
		a.newServeCmd(),
		a.newFitCmd(),
		a.newColumnsCmd(),
	)

	return root
}

// load reads the configuration and returns a context carrying the logger.
func (a *app) load(ctx context.Context) (context.Context, config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, config.Config{}, err
		}
	}

	logger := zerolog.New(a.opts.LogOutput).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()

	return logger.WithContext(ctx), cfg, nil
}

// newService wires a store and analysis service from cfg.
func newService(cfg config.Config, extra ...analysis.Option) (*analysis.Service, error) {
	codec, err := compress.GetCodec(cfg.CodecType())
	if err != nil {
		return nil, err
	}

	opts := []analysis.Option{
		analysis.WithCacheSize(cfg.CacheSize),
		analysis.WithCorrelationMode(cfg.CorrelationMode()),
		analysis.WithMissingPolicy(cfg.MissingPolicy()),
		analysis.WithPrecision(cfg.Precision),
		analysis.WithMaxUploadBytes(cfg.MaxUploadBytes),
	}

	svc, err := analysis.NewService(dataset.NewStore(codec), append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis service: %w", err)
	}

	return svc, nil
}

// uploadFile stores the file at path in svc.
func uploadFile(ctx context.Context, svc *analysis.Service, path string) (dataset.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Info{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return svc.Upload(ctx, path, f)
}
