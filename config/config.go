// Package config loads olsfit settings from an optional file, a .env file and
// OLSFIT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/arloliu/olsfit/compress"
	"github.com/arloliu/olsfit/dataset"
	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/regression"
)

// EnvPrefix prefixes every environment variable, e.g. OLSFIT_ADDR.
const EnvPrefix = "OLSFIT"

// Config holds every setting of the olsfit server and CLI.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	CacheSize       int           `mapstructure:"cache_size"`
	Compression     string        `mapstructure:"compression"`
	Correlation     string        `mapstructure:"correlation"`
	Missing         string        `mapstructure:"missing"`
	Precision       int           `mapstructure:"precision"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Addr:            ":8080",
		CacheSize:       256,
		Compression:     compress.TypeZstd.String(),
		Correlation:     regression.CorrelationSigned.String(),
		Missing:         dataset.MissingReject.String(),
		Precision:       regression.DisplayPrecision,
		MaxUploadBytes:  32 << 20,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        zerolog.LevelInfoValue,
	}
}

// Load reads the configuration.
//
// path names an optional YAML, JSON or TOML file; an empty path skips it. A .env
// file in the working directory is loaded into the environment if present.
// Returns errs.ErrInvalidConfig when a value fails validation.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("addr", d.Addr)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("compression", d.Compression)
	v.SetDefault("correlation", d.Correlation)
	v.SetDefault("missing", d.Missing)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("log_level", d.LogLevel)
}

// Validate checks every field and returns the first problem wrapped in
// errs.ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", errs.ErrInvalidConfig)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: cache_size must be positive, got %d", errs.ErrInvalidConfig, c.CacheSize)
	}
	if _, err := compress.ParseType(c.Compression); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	if _, err := regression.ParseCorrelationMode(c.Correlation); err != nil {
		return err
	}
	if _, err := dataset.ParseMissingPolicy(c.Missing); err != nil {
		return err
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("%w: precision must be within [0, 15], got %d", errs.ErrInvalidConfig, c.Precision)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes must be positive, got %d", errs.ErrInvalidConfig, c.MaxUploadBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive, got %s", errs.ErrInvalidConfig, c.ShutdownTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return nil
}

// CodecType returns the parsed compression type.
func (c Config) CodecType() compress.Type {
	t, _ := compress.ParseType(c.Compression)
	return t
}

// CorrelationMode returns the parsed correlation mode.
func (c Config) CorrelationMode() regression.CorrelationMode {
	m, _ := regression.ParseCorrelationMode(c.Correlation)
	return m
}

// MissingPolicy returns the parsed missing-value policy.
func (c Config) MissingPolicy() dataset.MissingPolicy {
	p, _ := dataset.ParseMissingPolicy(c.Missing)
	return p
}

// Level returns the parsed log level.
func (c Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}

	return l
}
