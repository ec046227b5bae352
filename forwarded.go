package conninfo

import (
	"strings"
)

// forwardedParams holds the interpreted parameters of one or more Forwarded
// header values.
type forwardedParams struct {
	forAddr string
	proto   string
	host    string

	// malformed counts non-empty tokens that carry no "=".
	malformed int
}

// parseForwardedValues parses Forwarded header values as one token stream in
// wire order.
//
// Each value is split on ';' into parameter groups and each group on ',' into
// tokens, so "for=a, for=b; proto=https" yields three tokens. Every token is
// split once on the first '='. Tokens without '=' are counted as malformed and
// skipped; empty tokens are skipped silently.
//
// The first non-empty for, proto and host value wins. RFC 7239 section 5.2
// puts the originating client first in a chain of for values; the other
// parameters have no defined ordering, so the first is taken for them too.
// The by parameter and unknown names are ignored.
func parseForwardedValues(values []string) forwardedParams {
	var params forwardedParams

	for _, value := range values {
		for group := range strings.SplitSeq(value, ";") {
			for token := range strings.SplitSeq(group, ",") {
				params.apply(token)
			}
		}
	}

	return params
}

func (p *forwardedParams) apply(token string) {
	name, value, ok := strings.Cut(token, "=")
	if !ok {
		if strings.TrimSpace(token) != "" {
			p.malformed++
		}
		return
	}

	value = unquote(value)
	if value == "" {
		return
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "for":
		setFirst(&p.forAddr, value)
	case "proto":
		setFirst(&p.proto, value)
	case "host":
		setFirst(&p.host, value)
	case "by":
		// Proxy self-identification, not interpreted.
	}
}

func setFirst(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// unquote trims surrounding whitespace, then one double quote on each side,
// then any whitespace the quotes enclosed.
//
// Backslash escapes are left untouched: values are passed through as opaque
// strings.
func unquote(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)
	return strings.TrimSpace(value)
}
