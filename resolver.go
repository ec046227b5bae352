package conninfo

import (
	"fmt"
	"net/http"
	"strings"
)

// Resolver resolves connection information from HTTP requests and
// framework-agnostic request inputs.
//
// Resolver instances are safe for concurrent reuse.
type Resolver struct {
	config *config
}

// New creates a Resolver from one or more Option builders.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := configFromOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Resolver{config: cfg}, nil
}

// defaultResolver serves PeerAddrFromRequest when no middleware installed a
// resolver on the request.
var defaultResolver = &Resolver{config: defaultConfig()}

// Resolve resolves connection information for r.
//
// Resolution never fails: absent or malformed data falls through to the next
// source in the precedence chain. When overrides are provided, they are
// merged left-to-right and applied only for this call.
func (res *Resolver) Resolve(r *http.Request, overrides ...OverrideOptions) Info {
	return res.ResolveFrom(InputFromRequest(r), overrides...)
}

// ResolveFrom resolves connection information from framework-agnostic request
// input.
func (res *Resolver) ResolveFrom(input RequestInput, overrides ...OverrideOptions) Info {
	cfg := res.config
	if len(overrides) > 0 {
		cfg = cfg.withOverrides(overrides...)
	}

	headers := newHeaderLookup(input.Headers)
	forwarded := parseForwardedValues(headers.all(headerForwarded))

	var info Info
	if addr, ok := parsePeerAddr(input.RemoteAddr); ok {
		info.remoteAddr = addr.String()
	}
	info.scheme, info.provenance.Scheme = resolveScheme(cfg, input, headers, forwarded)
	info.host, info.provenance.Host = resolveHost(cfg, input, headers, forwarded)
	info.realIP, info.provenance.RealIP = resolveRealIP(headers, forwarded)
	if info.realIP == "" && info.remoteAddr != "" {
		info.provenance.RealIP = SourceRemoteAddr
	}

	res.record(info.provenance)
	res.reportMalformed(input, forwarded, headers)

	return info
}

// ResolveWithOptions is a one-shot convenience helper.
//
// It constructs a temporary resolver from opts and resolves r.
func ResolveWithOptions(r *http.Request, opts ...Option) (Info, error) {
	resolver, err := New(opts...)
	if err != nil {
		return Info{}, err
	}

	return resolver.Resolve(r), nil
}

func resolveScheme(cfg *config, input RequestInput, headers *headerLookup, forwarded forwardedParams) (string, string) {
	if forwarded.proto != "" {
		return forwarded.proto, SourceForwarded
	}
	if proto, ok := headers.first(headerXForwardedProto); ok {
		return proto, SourceXForwardedProto
	}
	if scheme := strings.TrimSpace(input.Scheme); scheme != "" {
		return scheme, SourceRequestLine
	}
	if cfg.secure || input.Secure {
		return schemeHTTPS, SourceSecureDefault
	}
	return schemeHTTP, SourceFallback
}

func resolveHost(cfg *config, input RequestInput, headers *headerLookup, forwarded forwardedParams) (string, string) {
	if forwarded.host != "" {
		return forwarded.host, SourceForwarded
	}
	if host, ok := headers.first(headerXForwardedHost); ok {
		return host, SourceXForwardedHost
	}
	if host, ok := headers.check(input.Host); ok {
		return host, SourceHostHeader
	}
	if host, ok := headers.line(headerHost); ok {
		return host, SourceHostHeader
	}
	if authority := strings.TrimSpace(input.Authority); authority != "" {
		return authority, SourceRequestLine
	}
	return cfg.defaultHost, SourceDefaultHost
}

// resolveRealIP returns the proxy-declared client address. The transport
// peer address is not stored here; Info falls back to it at read time.
func resolveRealIP(headers *headerLookup, forwarded forwardedParams) (string, string) {
	if forwarded.forAddr != "" {
		return forwarded.forAddr, SourceForwarded
	}
	if addr, ok := headers.first(headerXForwardedFor); ok {
		return addr, SourceXForwardedFor
	}
	return "", ""
}

func (res *Resolver) record(provenance Provenance) {
	metrics := res.config.metrics
	metrics.RecordResolution(AttributeScheme, provenance.Scheme)
	metrics.RecordResolution(AttributeHost, provenance.Host)

	realIPSource := provenance.RealIP
	if realIPSource == "" {
		realIPSource = sourceNone
	}
	metrics.RecordResolution(AttributeRealIP, realIPSource)
}

func (res *Resolver) reportMalformed(input RequestInput, forwarded forwardedParams, headers *headerLookup) {
	if forwarded.malformed == 0 && headers.invalid == 0 {
		return
	}

	ctx := requestInputContext(input)

	if forwarded.malformed > 0 {
		res.config.metrics.RecordEvent(eventMalformedForwarded)
		res.logWarning(ctx, input, eventMalformedForwarded, "malformed Forwarded parameters skipped",
			"malformed_tokens", forwarded.malformed,
		)
	}

	if headers.invalid > 0 {
		res.config.metrics.RecordEvent(eventInvalidHeaderEncoding)
		res.logWarning(ctx, input, eventInvalidHeaderEncoding, "header values with invalid encoding ignored",
			"invalid_values", headers.invalid,
		)
	}
}
