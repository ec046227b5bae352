package conninfo

import (
	"fmt"
	"strings"
)

const (
	// DefaultHost is the host reported when neither proxy headers, the Host
	// header nor the request line name one and no default host is configured.
	DefaultHost = "localhost:8080"
)

// Option configures a Resolver.
//
// Construct options using package-provided option builder functions.
type Option func(*config) error

// SetValue represents an optional per-call override value.
//
// Use Set(v) to mark an override as explicitly provided.
type SetValue[T any] struct {
	v   T
	set bool
}

// Set marks a value as explicitly set for OverrideOptions.
func Set[T any](value T) SetValue[T] {
	return SetValue[T]{v: value, set: true}
}

// isSet reports whether a value was explicitly provided.
func (s SetValue[T]) isSet() bool {
	return s.set
}

// value returns the stored value.
func (s SetValue[T]) value() T {
	return s.v
}

// OverrideOptions applies per-call application defaults, for example when one
// Resolver serves several listeners.
//
// Logger and Metrics remain fixed at resolver construction time. A
// DefaultHost override that WithDefaultHost would reject (blank, containing
// whitespace, or a URL) is ignored.
type OverrideOptions struct {
	DefaultHost SetValue[string]
	Secure      SetValue[bool]
}

func (o OverrideOptions) hasSetValues() bool {
	return o.DefaultHost.isSet() || o.Secure.isSet()
}

// config holds resolver configuration state.
//
// It is mutated by Option functions during construction and override merging.
type config struct {
	defaultHost string
	secure      bool

	logger  Logger
	metrics Metrics

	metricsFactory    func() (Metrics, error)
	useMetricsFactory bool
}

func defaultConfig() *config {
	return &config{
		defaultHost: DefaultHost,
		secure:      false,
		logger:      noopLogger{},
		metrics:     noopMetrics{},
	}
}

func applyOptions(c *config, opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			return fmt.Errorf("option cannot be nil")
		}
		if err := opt(c); err != nil {
			return err
		}
	}

	return nil
}

func configFromOptions(opts ...Option) (*config, error) {
	cfg := defaultConfig()

	if err := applyOptions(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.useMetricsFactory {
		if cfg.metricsFactory == nil {
			return nil, fmt.Errorf("metrics factory cannot be nil")
		}
	}

	validationConfig := cfg
	if cfg.useMetricsFactory {
		validationConfig = cfg.clone()
		validationConfig.metrics = noopMetrics{}
	}

	if err := validationConfig.validate(); err != nil {
		return nil, err
	}

	if cfg.useMetricsFactory {
		metrics, err := cfg.metricsFactory()
		if err != nil {
			return nil, err
		}
		cfg.metrics = metrics

		if err := cfg.validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *config) clone() *config {
	return &config{
		defaultHost:       c.defaultHost,
		secure:            c.secure,
		logger:            c.logger,
		metrics:           c.metrics,
		metricsFactory:    c.metricsFactory,
		useMetricsFactory: c.useMetricsFactory,
	}
}

// withOverrides merges overrides left-to-right into a copy of c.
//
// It returns c itself when no override carries a set value.
func (c *config) withOverrides(overrides ...OverrideOptions) *config {
	hasOverrides := false

	for _, override := range overrides {
		if override.hasSetValues() {
			hasOverrides = true
			break
		}
	}

	if !hasOverrides {
		return c
	}

	effective := c.clone()

	for _, override := range overrides {
		if override.DefaultHost.isSet() {
			host := strings.TrimSpace(override.DefaultHost.value())
			if validateDefaultHost(host) == nil {
				effective.defaultHost = host
			}
		}
		if override.Secure.isSet() {
			effective.secure = override.Secure.value()
		}
	}

	return effective
}
