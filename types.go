package conninfo

import (
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

var (
	// ErrMissingPeerAddr reports that a request has no transport-level peer
	// endpoint, as is the case for synthetic or non-socket requests.
	ErrMissingPeerAddr = errors.New("missing peer address")
)

// PeerAddrError is returned by the peer address accessors.
type PeerAddrError struct {
	Err        error
	RemoteAddr string
}

func (e *PeerAddrError) Error() string {
	if e.RemoteAddr == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (remote_addr=%q)", e.Err, e.RemoteAddr)
}

func (e *PeerAddrError) Unwrap() error {
	return e.Err
}

// StatusCode reports the HTTP status used when the error reaches a client.
func (e *PeerAddrError) StatusCode() int {
	return http.StatusInternalServerError
}

// Provenance names the source that produced each resolved field.
//
// RealIP is empty when no client address could be resolved at all.
type Provenance struct {
	Scheme string `json:"scheme"`
	Host   string `json:"host"`
	RealIP string `json:"real_ip"`
}

// Info is the resolved connection information of a single request.
//
// Values are produced by Resolver and never modified afterwards. The zero
// value is not meaningful; Scheme and Host of a resolved Info are never empty.
//
// Values parsed from Forwarded and X-Forwarded-* are returned verbatim and are
// not validated as addresses, since RFC 7239 permits obfuscated and "unknown"
// identifiers.
type Info struct {
	scheme     string
	host       string
	realIP     string
	remoteAddr string
	provenance Provenance
}

// Scheme returns the request scheme, resolved from Forwarded proto,
// X-Forwarded-Proto, the request line, the secure flag and finally "http".
func (i Info) Scheme() string {
	return i.scheme
}

// Host returns the request host, resolved from Forwarded host,
// X-Forwarded-Host, the Host header, the request-line authority and finally
// the configured default host.
func (i Info) Host() string {
	return i.host
}

// RemoteAddr returns the transport peer address in the same form as
// PeerAddr.String. It is absent when the connection has no ip:port peer,
// for example a unix socket.
func (i Info) RemoteAddr() (string, bool) {
	return i.remoteAddr, i.remoteAddr != ""
}

// RealIPRemoteAddr returns the address of the client that initiated the
// request, resolved from Forwarded for, X-Forwarded-For and finally the
// transport peer address.
//
// Do not use this for security decisions unless a trusted edge proxy strips
// or overwrites Forwarded and X-Forwarded-For; both are client controlled.
// Use PeerAddr for the socket address instead.
func (i Info) RealIPRemoteAddr() (string, bool) {
	if i.realIP != "" {
		return i.realIP, true
	}
	return i.RemoteAddr()
}

// Provenance reports which source produced each field.
func (i Info) Provenance() Provenance {
	return i.provenance
}

func (i Info) String() string {
	var b strings.Builder
	b.WriteString("scheme=")
	b.WriteString(i.scheme)
	b.WriteString(" host=")
	b.WriteString(i.host)
	b.WriteString(" real_ip=")
	b.WriteString(orDash(i.RealIPRemoteAddr()))
	b.WriteString(" remote_addr=")
	b.WriteString(orDash(i.RemoteAddr()))
	return b.String()
}

func orDash(value string, ok bool) string {
	if !ok {
		return "-"
	}
	return value
}

// PeerAddr is the transport-level address of the connected peer.
type PeerAddr struct {
	addr netip.AddrPort
}

// AddrPort returns the wrapped address and port.
func (p PeerAddr) AddrPort() netip.AddrPort {
	return p.addr
}

// Addr returns the peer IP.
func (p PeerAddr) Addr() netip.Addr {
	return p.addr.Addr()
}

// Port returns the peer port.
func (p PeerAddr) Port() uint16 {
	return p.addr.Port()
}

func (p PeerAddr) String() string {
	return p.addr.String()
}
