package conninfo

const (
	eventMalformedForwarded    = "malformed_forwarded"
	eventInvalidHeaderEncoding = "invalid_header_encoding"
	eventMissingPeerAddr       = "missing_peer_addr"
)

const sourceNone = "none"
