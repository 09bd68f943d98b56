package analysis

import (
	"fmt"

	"github.com/arloliu/olsfit/dataset"
	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/internal/options"
	"github.com/arloliu/olsfit/memo"
	"github.com/arloliu/olsfit/regression"
)

// DefaultMaxUploadBytes bounds the size of a single upload.
const DefaultMaxUploadBytes = 32 << 20

// Config holds the settings of a Service.
type Config struct {
	// Correlation selects signed or unsigned r.
	Correlation regression.CorrelationMode
	// Missing decides how rows with missing values are handled.
	Missing dataset.MissingPolicy
	// Precision is the number of decimals used in equations.
	Precision int
	// CacheSize is the number of fitted summaries kept in memory.
	CacheSize int
	// MaxUploadBytes bounds the size of a single upload.
	MaxUploadBytes int64
}

func defaultConfig() Config {
	return Config{
		Correlation:    regression.CorrelationSigned,
		Missing:        dataset.MissingReject,
		Precision:      regression.DisplayPrecision,
		CacheSize:      memo.DefaultCapacity,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithCorrelationMode sets how r is reported.
func WithCorrelationMode(mode regression.CorrelationMode) Option {
	return options.New(func(cfg *Config) error {
		if mode.String() == "unknown" {
			return fmt.Errorf("%w: unknown correlation mode %d", errs.ErrInvalidConfig, int(mode))
		}
		cfg.Correlation = mode

		return nil
	})
}

// WithMissingPolicy sets how rows with missing values are handled.
func WithMissingPolicy(policy dataset.MissingPolicy) Option {
	return options.New(func(cfg *Config) error {
		if policy.String() == "unknown" {
			return fmt.Errorf("%w: unknown missing-value policy %d", errs.ErrInvalidConfig, int(policy))
		}
		cfg.Missing = policy

		return nil
	})
}

// WithPrecision sets the number of decimals used in equations.
func WithPrecision(places int) Option {
	return options.New(func(cfg *Config) error {
		if places < 0 || places > 15 {
			return fmt.Errorf("%w: precision %d out of range [0, 15]", errs.ErrInvalidConfig, places)
		}
		cfg.Precision = places

		return nil
	})
}

// WithCacheSize sets the number of fitted summaries kept in memory.
func WithCacheSize(n int) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: cache size must be positive, got %d", errs.ErrInvalidConfig, n)
		}
		cfg.CacheSize = n

		return nil
	})
}

// WithMaxUploadBytes bounds the size of a single upload.
func WithMaxUploadBytes(n int64) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: upload limit must be positive, got %d", errs.ErrInvalidConfig, n)
		}
		cfg.MaxUploadBytes = n

		return nil
	})
}
