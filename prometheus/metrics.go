package prometheus

import (
	"errors"
	"fmt"

	"github.com/abczzz13/conninfo"
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	resolutionTotalName = "conninfo_resolution_total"
	eventsTotalName     = "conninfo_events_total"
)

// PrometheusMetrics is a Prometheus-backed implementation of conninfo.Metrics.
type PrometheusMetrics struct {
	resolutionTotal *prom.CounterVec
	events          *prom.CounterVec
}

// WithMetrics returns a conninfo option that installs Prometheus-backed
// metrics using prom.DefaultRegisterer.
func WithMetrics() conninfo.Option {
	return withMetricsFactory(New)
}

// WithRegisterer returns a conninfo option that installs Prometheus-backed
// metrics using the provided registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used.
func WithRegisterer(registerer prom.Registerer) conninfo.Option {
	return withMetricsFactory(func() (*PrometheusMetrics, error) {
		return NewWithRegisterer(registerer)
	})
}

// withMetricsFactory adapts a PrometheusMetrics constructor into a
// conninfo.Option.
func withMetricsFactory(factory func() (*PrometheusMetrics, error)) conninfo.Option {
	return conninfo.WithMetricsFactory(func() (conninfo.Metrics, error) {
		metrics, err := factory()
		if err != nil {
			return nil, err
		}
		return metrics, nil
	})
}

// New creates PrometheusMetrics and registers its collectors on
// prom.DefaultRegisterer.
func New() (*PrometheusMetrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates PrometheusMetrics and registers its collectors on
// the given registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*PrometheusMetrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	resolutionTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: resolutionTotalName,
			Help: "Total number of resolved connection attributes (scheme, host, real_ip) by the source that supplied them.",
		},
		[]string{"attribute", "source"},
	)
	eventsCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: eventsTotalName,
			Help: "Diagnostic events during connection info resolution, labeled by event.",
		},
		[]string{"event"},
	)

	resolutionTotal, err := registerCounterVec(registerer, resolutionTotalCollector, resolutionTotalName)
	if err != nil {
		return nil, err
	}

	events, err := registerCounterVec(registerer, eventsCollector, eventsTotalName)
	if err != nil {
		return nil, err
	}

	return &PrometheusMetrics{
		resolutionTotal: resolutionTotal,
		events:          events,
	}, nil
}

func registerCounterVec(registerer prom.Registerer, collector *prom.CounterVec, metricName string) (*prom.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prom.CounterVec)
			if ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return nil, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordResolution increments conninfo_resolution_total for the provided
// attribute and source.
func (m *PrometheusMetrics) RecordResolution(attribute, source string) {
	m.resolutionTotal.WithLabelValues(attribute, source).Inc()
}

// RecordEvent increments conninfo_events_total for the provided event label.
func (m *PrometheusMetrics) RecordEvent(event string) {
	m.events.WithLabelValues(event).Inc()
}
