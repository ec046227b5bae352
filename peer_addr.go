package conninfo

import (
	"net/http"
)

// PeerAddr returns the transport peer address of r.
//
// It fails with a *PeerAddrError wrapping ErrMissingPeerAddr when r has no
// ip:port peer endpoint. Unlike Info.RealIPRemoteAddr, the result never comes
// from client-controlled headers.
func (res *Resolver) PeerAddr(r *http.Request) (PeerAddr, error) {
	return res.PeerAddrFrom(InputFromRequest(r))
}

// PeerAddrFrom returns the transport peer address of framework-agnostic
// request input.
func (res *Resolver) PeerAddrFrom(input RequestInput) (PeerAddr, error) {
	if addr, ok := parsePeerAddr(input.RemoteAddr); ok {
		return PeerAddr{addr: addr}, nil
	}

	res.config.metrics.RecordEvent(eventMissingPeerAddr)
	res.logError(requestInputContext(input), input, eventMissingPeerAddr, "missing peer address")

	return PeerAddr{}, &PeerAddrError{
		Err:        ErrMissingPeerAddr,
		RemoteAddr: input.RemoteAddr,
	}
}
