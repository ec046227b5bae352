package conninfo

import (
	"context"
)

const (
	// SourceForwarded resolves from the RFC7239 Forwarded header.
	SourceForwarded = "forwarded"
	// SourceXForwardedProto resolves from the X-Forwarded-Proto header.
	SourceXForwardedProto = "x_forwarded_proto"
	// SourceXForwardedHost resolves from the X-Forwarded-Host header.
	SourceXForwardedHost = "x_forwarded_host"
	// SourceXForwardedFor resolves from the X-Forwarded-For header.
	SourceXForwardedFor = "x_forwarded_for"
	// SourceHostHeader resolves from the Host header.
	SourceHostHeader = "host_header"
	// SourceRequestLine resolves from the scheme or authority of an
	// absolute-form request target.
	SourceRequestLine = "request_line"
	// SourceSecureDefault reports "https" chosen because the connection is
	// secure.
	SourceSecureDefault = "secure_default"
	// SourceDefaultHost resolves from the configured default host.
	SourceDefaultHost = "default_host"
	// SourceFallback reports the literal "http" scheme fallback.
	SourceFallback = "fallback"
	// SourceRemoteAddr resolves from the transport peer address.
	SourceRemoteAddr = "remote_addr"
)

const (
	// AttributeScheme labels scheme resolutions reported to Metrics.
	AttributeScheme = "scheme"
	// AttributeHost labels host resolutions reported to Metrics.
	AttributeHost = "host"
	// AttributeRealIP labels client address resolutions reported to Metrics.
	AttributeRealIP = "real_ip"
)

const (
	headerForwarded       = "Forwarded"
	headerXForwardedFor   = "X-Forwarded-For"
	headerXForwardedHost  = "X-Forwarded-Host"
	headerXForwardedProto = "X-Forwarded-Proto"
	headerHost            = "Host"
)

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"
)

func (res *Resolver) logAttrs(input RequestInput, event string, attrs []any) []any {
	baseAttrs := []any{
		"event", event,
		"path", input.Path,
		"remote_addr", input.RemoteAddr,
	}
	return append(baseAttrs, attrs...)
}

func (res *Resolver) logWarning(ctx context.Context, input RequestInput, event, msg string, attrs ...any) {
	res.config.logger.WarnContext(ctx, msg, res.logAttrs(input, event, attrs)...)
}

func (res *Resolver) logError(ctx context.Context, input RequestInput, event, msg string, attrs ...any) {
	res.config.logger.ErrorContext(ctx, msg, res.logAttrs(input, event, attrs)...)
}
