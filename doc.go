// Package conninfo resolves the effective scheme, host and client address of
// HTTP requests that may have passed through one or more reverse proxies.
//
// # Precedence
//
// Each attribute is resolved independently; the first source that yields a
// non-empty value wins:
//
//   - Scheme: Forwarded proto, X-Forwarded-Proto, request-line scheme,
//     "https" for secure connections, then "http".
//   - Host: Forwarded host, X-Forwarded-Host, Host header, request-line
//     authority, then the configured default host.
//   - Client address: Forwarded for, X-Forwarded-For, then the transport
//     peer address.
//
// Forwarded (RFC 7239) lines are read as one token stream and the first
// value of each parameter wins. For the legacy X-Forwarded-* headers only
// the first comma-separated element is used. Values are passed through as
// opaque strings; they are not validated as addresses, and the by parameter
// is not interpreted.
//
// # Basic Usage
//
//	resolver, err := conninfo.New(conninfo.WithDefaultHost("example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info := resolver.Resolve(req)
//	fmt.Println(info.Scheme(), info.Host())
//
// # Middleware
//
// Resolver.Middleware caches the result per request; handlers read it with
// FromRequest:
//
//	mux.Handle("/", resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    info, _ := conninfo.FromRequest(r)
//	    addr, _ := info.RealIPRemoteAddr()
//	    fmt.Fprintln(w, addr)
//	})))
//
// PeerAddrFromRequest returns the socket peer address and fails with
// ErrMissingPeerAddr when the request has none.
//
// # Observability
//
// Add logging and metrics for production monitoring:
// (Prometheus adapter package: github.com/abczzz13/conninfo/prometheus)
// The logger receives the request context, allowing trace/span IDs to flow
// through.
//
//	import conninfoprom "github.com/abczzz13/conninfo/prometheus"
//
//	resolver, err := conninfo.New(
//	    conninfo.WithLogger(slog.Default()),
//	    conninfoprom.WithMetrics(),
//	)
//
// # Security Considerations
//
// Forwarded and X-Forwarded-* are set by whoever sent the request. Unless a
// trusted edge proxy strips or overwrites them, every resolved value except
// the peer address is attacker controlled. This package performs no trust
// validation; use PeerAddr for security-sensitive client identification.
//
// # Thread Safety
//
// Resolver instances are safe for concurrent use. They are typically created
// once at application startup and reused across all requests.
package conninfo
