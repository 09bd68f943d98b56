package regression

import (
	"fmt"
	"strings"

	"github.com/arloliu/olsfit/errs"
	"github.com/arloliu/olsfit/internal/options"
)

// CorrelationMode selects how the correlation coefficient r is derived from R².
type CorrelationMode int

const (
	// CorrelationSigned returns r = sign(Sxy)·√R², the Pearson correlation.
	CorrelationSigned CorrelationMode = iota
	// CorrelationUnsigned returns r = √R² regardless of the slope direction.
	CorrelationUnsigned
)

// correlationModeNames maps CorrelationMode to their string representations.
var correlationModeNames = map[CorrelationMode]string{
	CorrelationSigned:   "signed",
	CorrelationUnsigned: "unsigned",
}

// String returns the string representation of the correlation mode.
func (m CorrelationMode) String() string {
	if name, exists := correlationModeNames[m]; exists {
		return name
	}

	return "unknown"
}

// ParseCorrelationMode returns the CorrelationMode for a given name (case-insensitive).
func ParseCorrelationMode(name string) (CorrelationMode, error) {
	for mode, modeName := range correlationModeNames {
		if strings.EqualFold(name, modeName) {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown correlation mode %q", errs.ErrInvalidConfig, name)
}

// EstimateConfig holds the options of a single Estimate call.
type EstimateConfig struct {
	Correlation CorrelationMode
}

// defaultEstimateConfig returns the default config (signed correlation).
func defaultEstimateConfig() EstimateConfig {
	return EstimateConfig{
		Correlation: CorrelationSigned,
	}
}

// EstimateOption is a functional option for EstimateConfig.
type EstimateOption = options.Option[*EstimateConfig]

// WithCorrelationMode sets how r is derived from R².
func WithCorrelationMode(mode CorrelationMode) EstimateOption {
	return options.New(func(cfg *EstimateConfig) error {
		if _, ok := correlationModeNames[mode]; !ok {
			return fmt.Errorf("%w: unknown correlation mode %d", errs.ErrInvalidConfig, int(mode))
		}
		cfg.Correlation = mode

		return nil
	})
}

// WithUnsignedCorrelation reports r as the unsigned square root of R².
//
// This reproduces tools that present r = √R² even for a negative slope.
func WithUnsignedCorrelation() EstimateOption {
	return options.NoError(func(cfg *EstimateConfig) {
		cfg.Correlation = CorrelationUnsigned
	})
}
