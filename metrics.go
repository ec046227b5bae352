package conninfo

// Metrics records resolution outcomes and diagnostic events emitted by
// Resolver.
//
// Implementations should be safe for concurrent use, as a single Resolver
// instance is typically shared across many goroutines.
type Metrics interface {
	// RecordResolution is called once per resolved attribute (AttributeScheme,
	// AttributeHost, AttributeRealIP) with the Source* constant that supplied
	// it. An unresolved real IP is reported with source "none".
	RecordResolution(attribute, source string)
	// RecordEvent is called when the resolver observes malformed input or a
	// missing peer address.
	RecordEvent(event string)
}

// noopMetrics is the default Metrics implementation when metrics are not
// explicitly configured.
type noopMetrics struct{}

func (noopMetrics) RecordResolution(string, string) {}

func (noopMetrics) RecordEvent(string) {}
