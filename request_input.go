package conninfo

import (
	"context"
	"net/http"
)

// HeaderValues provides access to request header values by name.
//
// Implementations should return one slice entry per received header line, in
// wire order. Forwarded lines are parsed together; for the other headers only
// the first line is consulted.
//
// Header names are requested in canonical MIME format (for example
// "X-Forwarded-For").
//
// net/http's http.Header satisfies this interface directly.
type HeaderValues interface {
	Values(name string) []string
}

// HeaderValuesFunc adapts a function to the HeaderValues interface.
type HeaderValuesFunc func(name string) []string

// Values implements HeaderValues.
func (f HeaderValuesFunc) Values(name string) []string {
	if f == nil {
		return nil
	}

	return f(name)
}

// RequestInput provides framework-agnostic request data for resolution.
//
// Context defaults to context.Background() when nil and is only passed on to
// the Logger.
type RequestInput struct {
	Context context.Context
	Headers HeaderValues

	// Host is the Host header value. net/http moves it out of the header map;
	// when empty, a "Host" entry in Headers is consulted instead.
	Host string

	// Scheme and Authority come from an absolute-form request target and are
	// usually empty for origin-form requests.
	Scheme    string
	Authority string

	// RemoteAddr is the transport peer address, empty when the request did
	// not arrive over a socket.
	RemoteAddr string

	// Secure marks the connection as TLS-terminated by this server.
	Secure bool

	Path string
}

// InputFromRequest maps an *http.Request onto RequestInput.
//
// A nil request yields an empty input.
func InputFromRequest(r *http.Request) RequestInput {
	if r == nil {
		return RequestInput{Context: context.Background()}
	}

	input := RequestInput{
		Context:    r.Context(),
		Host:       r.Host,
		RemoteAddr: r.RemoteAddr,
		Secure:     r.TLS != nil,
	}

	if r.Header != nil {
		input.Headers = r.Header
	}

	if r.URL != nil {
		input.Scheme = r.URL.Scheme
		input.Authority = r.URL.Host
		input.Path = r.URL.Path
	}

	return input
}

func requestInputContext(input RequestInput) context.Context {
	if input.Context == nil {
		return context.Background()
	}

	return input.Context
}
