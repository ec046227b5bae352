package conninfo

import (
	"strings"
	"unicode/utf8"
)

// headerLookup reads request headers for a single resolution.
//
// Header lines that are not valid UTF-8 are treated as absent and counted so
// the resolver can report them once per request.
type headerLookup struct {
	headers HeaderValues
	invalid int
}

func newHeaderLookup(headers HeaderValues) *headerLookup {
	if isNilInterface(headers) {
		headers = nil
	}
	return &headerLookup{headers: headers}
}

func (h *headerLookup) values(name string) []string {
	if h.headers == nil {
		return nil
	}
	return h.headers.Values(name)
}

// all returns every valid line of name in wire order.
func (h *headerLookup) all(name string) []string {
	values := h.values(name)
	if len(values) == 0 {
		return nil
	}

	valid := make([]string, 0, len(values))
	for _, value := range values {
		if !utf8.ValidString(value) {
			h.invalid++
			continue
		}
		valid = append(valid, value)
	}

	return valid
}

// line returns the first line of name, trimmed.
func (h *headerLookup) line(name string) (string, bool) {
	values := h.values(name)
	if len(values) == 0 {
		return "", false
	}

	return h.check(values[0])
}

// check trims value and reports it absent when blank or not valid UTF-8.
func (h *headerLookup) check(value string) (string, bool) {
	if !utf8.ValidString(value) {
		h.invalid++
		return "", false
	}

	value = strings.TrimSpace(value)
	return value, value != ""
}

// first returns the first comma-separated element of the first line of name,
// trimmed.
//
// X-Forwarded-* lists are appended to by each proxy on the way; only the
// leftmost element describes the original request.
func (h *headerLookup) first(name string) (string, bool) {
	line, ok := h.line(name)
	if !ok {
		return "", false
	}

	first, _, _ := strings.Cut(line, ",")
	first = strings.TrimSpace(first)
	return first, first != ""
}
