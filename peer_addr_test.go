package conninfo

import (
	"errors"
	"net/netip"
	"testing"
)

func TestPeerAddr(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       netip.AddrPort
		wantErr    bool
	}{
		{
			name:       "ipv4",
			remoteAddr: "192.0.2.1:1234",
			want:       netip.MustParseAddrPort("192.0.2.1:1234"),
		},
		{
			name:       "ipv6",
			remoteAddr: "[2001:db8::1]:443",
			want:       netip.MustParseAddrPort("[2001:db8::1]:443"),
		},
		{
			name:       "ipv4-mapped ipv6 kept as reported",
			remoteAddr: "[::ffff:192.0.2.1]:80",
			want:       netip.MustParseAddrPort("[::ffff:192.0.2.1]:80"),
		},
		{
			name:       "surrounding whitespace",
			remoteAddr: " 127.0.0.1:8080 ",
			want:       netip.MustParseAddrPort("127.0.0.1:8080"),
		},
		{name: "empty", remoteAddr: "", wantErr: true},
		{name: "ip without port", remoteAddr: "192.0.2.1", wantErr: true},
		{name: "hostname", remoteAddr: "localhost:80", wantErr: true},
		{name: "unix socket", remoteAddr: "@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := mustNewResolver(t)

			got, err := resolver.PeerAddr(newTestRequest(tt.remoteAddr, "/"))
			if tt.wantErr {
				if !errors.Is(err, ErrMissingPeerAddr) {
					t.Fatalf("PeerAddr() error = %v, want ErrMissingPeerAddr", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PeerAddr() error = %v", err)
			}
			if got.AddrPort() != tt.want {
				t.Errorf("PeerAddr() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPeerAddr_IgnoresProxyHeaders(t *testing.T) {
	resolver := mustNewResolver(t)

	req := newTestRequest("10.0.0.1:5000", "/")
	req.Header.Set("Forwarded", "for=192.0.2.60")
	req.Header.Set("X-Forwarded-For", "198.51.100.1")

	got, err := resolver.PeerAddr(req)
	if err != nil {
		t.Fatalf("PeerAddr() error = %v", err)
	}
	if got.String() != "10.0.0.1:5000" {
		t.Errorf("PeerAddr() = %s, want 10.0.0.1:5000", got)
	}
	if got.Addr() != netip.MustParseAddr("10.0.0.1") || got.Port() != 5000 {
		t.Errorf("Addr(), Port() = %v, %d", got.Addr(), got.Port())
	}
}

func TestPeerAddr_ErrorDetails(t *testing.T) {
	logger := &capturedLogger{}
	metrics := newMockMetrics()
	resolver := mustNewResolver(t, WithLogger(logger), WithMetrics(metrics))

	_, err := resolver.PeerAddrFrom(RequestInput{RemoteAddr: "pipe", Path: "/peer"})

	var peerErr *PeerAddrError
	if !errors.As(err, &peerErr) {
		t.Fatalf("error type = %T, want *PeerAddrError", err)
	}
	if peerErr.RemoteAddr != "pipe" {
		t.Errorf("RemoteAddr = %q, want %q", peerErr.RemoteAddr, "pipe")
	}
	if got := peerErr.Error(); got != `missing peer address (remote_addr="pipe")` {
		t.Errorf("Error() = %q", got)
	}
	if got := peerErr.StatusCode(); got != 500 {
		t.Errorf("StatusCode() = %d, want 500", got)
	}

	if got := metrics.eventCount(eventMissingPeerAddr); got != 1 {
		t.Errorf("missing_peer_addr events = %d, want 1", got)
	}

	entries := logger.snapshot()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.level != levelError {
		t.Errorf("log level = %s, want %s", entry.level, levelError)
	}
	assertAttr(t, entry.attrs, "event", eventMissingPeerAddr)
	assertAttr(t, entry.attrs, "path", "/peer")
	assertAttr(t, entry.attrs, "remote_addr", "pipe")
}

func TestPeerAddr_EmptyRemoteAddrError(t *testing.T) {
	resolver := mustNewResolver(t)

	_, err := resolver.PeerAddrFrom(RequestInput{})
	if err == nil {
		t.Fatal("PeerAddrFrom() error = nil")
	}
	if got := err.Error(); got != "missing peer address" {
		t.Errorf("Error() = %q, want %q", got, "missing peer address")
	}
}
