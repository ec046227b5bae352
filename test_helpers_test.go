package conninfo

import (
	"net/http"
	"net/url"
	"testing"
)

type infoState struct {
	Scheme        string
	Host          string
	RealIP        string
	HasRealIP     bool
	RemoteAddr    string
	HasRemoteAddr bool
}

func infoStateOf(info Info) infoState {
	state := infoState{
		Scheme: info.Scheme(),
		Host:   info.Host(),
	}
	state.RealIP, state.HasRealIP = info.RealIPRemoteAddr()
	state.RemoteAddr, state.HasRemoteAddr = info.RemoteAddr()
	return state
}

func mustNewResolver(t testing.TB, opts ...Option) *Resolver {
	t.Helper()

	resolver, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return resolver
}

func newTestRequest(remoteAddr, path string) *http.Request {
	req := &http.Request{
		RemoteAddr: remoteAddr,
		Header:     make(http.Header),
	}

	if path != "" {
		req.URL = &url.URL{Path: path}
	}

	return req
}

// newTargetRequest builds a request whose request line carries target, which
// may be in absolute form.
func newTargetRequest(t testing.TB, remoteAddr, target string) *http.Request {
	t.Helper()

	u, err := url.Parse(target)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", target, err)
	}

	return &http.Request{
		RemoteAddr: remoteAddr,
		Header:     make(http.Header),
		URL:        u,
	}
}
