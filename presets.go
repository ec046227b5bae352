package conninfo

// PresetPlaintextServer configures resolution for an application serving
// plain HTTP under host.
//
// Without proxy headers the scheme falls back to "http" and the host to
// host.
func PresetPlaintextServer(host string) Option {
	return func(c *config) error {
		return applyOptions(c,
			WithDefaultHost(host),
			WithSecure(false),
		)
	}
}

// PresetTLSServer configures resolution for an application terminating TLS
// itself under host.
//
// Without proxy headers the scheme falls back to "https" and the host to
// host.
func PresetTLSServer(host string) Option {
	return func(c *config) error {
		return applyOptions(c,
			WithDefaultHost(host),
			WithSecure(true),
		)
	}
}
