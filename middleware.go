package conninfo

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

type memoKey struct{}

// memo caches the Info of one request. It is written once and read-only
// afterwards.
type memo struct {
	resolver *Resolver
	once     sync.Once
	info     Info
}

// Middleware installs a request-scoped cache so FromRequest resolves each
// request at most once, on first use.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), memoKey{}, &memo{resolver: res})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func memoFromRequest(r *http.Request) *memo {
	if r == nil {
		return nil
	}

	m, _ := r.Context().Value(memoKey{}).(*memo)
	return m
}

// FromRequest returns the connection information of r, resolving it on the
// first call and returning the cached value afterwards.
//
// It reports false when r did not pass through Resolver.Middleware.
func FromRequest(r *http.Request) (Info, bool) {
	m := memoFromRequest(r)
	if m == nil {
		return Info{}, false
	}

	m.once.Do(func() {
		m.info = m.resolver.Resolve(r)
	})

	return m.info, true
}

// PeerAddrFromRequest returns the transport peer address of r.
//
// The resolver installed by Middleware is used for logging and metrics; without
// it, failures are reported nowhere but in the returned error.
func PeerAddrFromRequest(r *http.Request) (PeerAddr, error) {
	resolver := defaultResolver
	if m := memoFromRequest(r); m != nil {
		resolver = m.resolver
	}

	return resolver.PeerAddr(r)
}

// WriteError writes err as a plain-text HTTP error response, using the status
// code carried by err when it has one and 500 otherwise.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var coder interface{ StatusCode() int }
	if errors.As(err, &coder) {
		status = coder.StatusCode()
	}

	http.Error(w, err.Error(), status)
}
