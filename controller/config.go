package controller

import (
	"fmt"
	"time"

	"github.com/milbus/go-1553/logger"
)

// Default controller settings.
const (
	// DefaultUnresponsiveThreshold is the run of consecutive errors or
	// timeouts after which a terminal is declared Unresponsive.
	DefaultUnresponsiveThreshold = 3

	// DefaultResponseTimeout is the expected response window. The typical
	// bus no-response window is on the order of 12 microseconds.
	DefaultResponseTimeout = 12 * time.Microsecond
)

// Config holds the tunable policy of a BusController.
type Config struct {
	unresponsiveThreshold int
	responseTimeout       time.Duration
	logger                logger.Logger
}

// NewConfig creates a controller configuration with defaults, applying opts
// in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		unresponsiveThreshold: DefaultUnresponsiveThreshold,
		responseTimeout:       DefaultResponseTimeout,
		logger:                logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// UnresponsiveThreshold returns the configured consecutive-error threshold.
func (cfg *Config) UnresponsiveThreshold() int { return cfg.unresponsiveThreshold }

// ResponseTimeout returns the configured response window.
func (cfg *Config) ResponseTimeout() time.Duration { return cfg.responseTimeout }

// Option is a functional option for configuring a BusController.
type Option interface {
	apply(cfg *Config) error
}

type optionFunc func(cfg *Config) error

func (f optionFunc) apply(cfg *Config) error { return f(cfg) }

// WithUnresponsiveThreshold sets the run of consecutive errors or timeouts
// after which a terminal transitions to Unresponsive. Must be at least 1.
func WithUnresponsiveThreshold(n int) Option {
	return optionFunc(func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: unresponsive threshold %d, want >= 1", ErrConfigOption, n)
		}
		cfg.unresponsiveThreshold = n

		return nil
	})
}

// WithResponseTimeout sets the response window used for responsiveness
// classification. Must be positive.
func WithResponseTimeout(d time.Duration) Option {
	return optionFunc(func(cfg *Config) error {
		if d <= 0 {
			return fmt.Errorf("%w: response timeout %v, want > 0", ErrConfigOption, d)
		}
		cfg.responseTimeout = d

		return nil
	})
}

// WithLogger sets the logger used by the controller.
func WithLogger(l logger.Logger) Option {
	return optionFunc(func(cfg *Config) error {
		if l == nil {
			return fmt.Errorf("%w: logger is nil", ErrConfigOption)
		}
		cfg.logger = l

		return nil
	})
}
