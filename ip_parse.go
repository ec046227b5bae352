package conninfo

import (
	"net/netip"
	"strings"
)

// parsePeerAddr parses a transport endpoint in ip:port form.
//
// The address is kept as reported, IPv4-mapped IPv6 included, so Info and
// PeerAddr print the same peer identically.
//
// Bracketed IPv6 literals and zones are accepted. Hostnames, bare IPs without
// a port and non-IP endpoints such as unix sockets are rejected, since they
// do not describe an IP peer.
func parsePeerAddr(remoteAddr string) (netip.AddrPort, bool) {
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return netip.AddrPort{}, false
	}

	addrPort, err := netip.ParseAddrPort(remoteAddr)
	if err != nil {
		return netip.AddrPort{}, false
	}

	return addrPort, true
}
