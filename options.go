package conninfo

import (
	"fmt"
	"strings"
)

// WithDefaultHost sets the host reported when no header or request-line
// authority names one.
func WithDefaultHost(host string) Option {
	return func(c *config) error {
		c.defaultHost = strings.TrimSpace(host)
		return nil
	}
}

// WithSecure marks connections served by the application as secure, so the
// scheme falls back to "https" instead of "http".
//
// Requests arriving over TLS are treated as secure regardless.
func WithSecure(secure bool) Option {
	return func(c *config) error {
		c.secure = secure
		return nil
	}
}

// WithLogger sets the logger implementation used for diagnostic events.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets a concrete metrics implementation.
//
// If previously configured, a metrics factory is disabled.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		c.metrics = metrics
		c.metricsFactory = nil
		c.useMetricsFactory = false
		return nil
	}
}

// WithMetricsFactory configures a lazy metrics constructor.
//
// The factory is invoked only for the final winning metrics option after
// option validation succeeds.
func WithMetricsFactory(factory func() (Metrics, error)) Option {
	return func(c *config) error {
		if factory == nil {
			return fmt.Errorf("metrics factory cannot be nil")
		}

		c.metricsFactory = factory
		c.useMetricsFactory = true
		return nil
	}
}
