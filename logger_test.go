package conninfo

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type loggerTestContextKey string

const (
	levelWarn  = "warn"
	levelError = "error"
)

type capturedLogEntry struct {
	ctx   context.Context
	level string
	msg   string
	attrs map[string]any
}

type capturedLogger struct {
	mu      sync.Mutex
	entries []capturedLogEntry
}

func (l *capturedLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, levelWarn, msg, args)
}

func (l *capturedLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, levelError, msg, args)
}

func (l *capturedLogger) record(ctx context.Context, level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, capturedLogEntry{
		ctx:   ctx,
		level: level,
		msg:   msg,
		attrs: attrsToMap(args),
	})
}

func (l *capturedLogger) snapshot() []capturedLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]capturedLogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func attrsToMap(args []any) map[string]any {
	attrs := make(map[string]any)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs[key] = args[i+1]
	}
	return attrs
}

func assertAttr(t *testing.T, attrs map[string]any, key string, want any) {
	t.Helper()

	got, ok := attrs[key]
	if !ok {
		t.Fatalf("missing %q attr", key)
	}

	if got != want {
		t.Fatalf("%s attr = %v, want %v", key, got, want)
	}
}

func TestLogging_MalformedForwarded_WarnsWithRequestContext(t *testing.T) {
	logger := &capturedLogger{}
	resolver := mustNewResolver(t, WithLogger(logger))

	req := newTestRequest("10.0.0.1:5000", "/checkout")
	req.Header.Set("Forwarded", "garbage;for=192.0.2.1;more-garbage")

	ctx := context.WithValue(req.Context(), loggerTestContextKey("trace_id"), "trace-123")
	req = req.WithContext(ctx)

	info := resolver.Resolve(req)
	if got, _ := info.RealIPRemoteAddr(); got != "192.0.2.1" {
		t.Fatalf("RealIPRemoteAddr() = %q, want 192.0.2.1", got)
	}

	entries := logger.snapshot()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}

	entry := entries[0]
	if entry.level != levelWarn {
		t.Errorf("level = %s, want %s", entry.level, levelWarn)
	}
	if got := entry.ctx.Value(loggerTestContextKey("trace_id")); got != "trace-123" {
		t.Errorf("context trace_id = %v, want trace-123", got)
	}
	assertAttr(t, entry.attrs, "event", eventMalformedForwarded)
	assertAttr(t, entry.attrs, "path", "/checkout")
	assertAttr(t, entry.attrs, "remote_addr", "10.0.0.1:5000")
	assertAttr(t, entry.attrs, "malformed_tokens", 2)
}

func TestLogging_InvalidEncoding_WarnsOncePerRequest(t *testing.T) {
	logger := &capturedLogger{}
	resolver := mustNewResolver(t, WithLogger(logger))

	req := newTestRequest("", "/")
	req.Header.Add("Forwarded", "for=\xff")
	req.Header.Set("X-Forwarded-Proto", "\xfe")
	req.Header.Set("X-Forwarded-Host", "\xfd")

	resolver.Resolve(req)

	entries := logger.snapshot()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	assertAttr(t, entries[0].attrs, "event", eventInvalidHeaderEncoding)
	assertAttr(t, entries[0].attrs, "invalid_values", 3)
}

func TestLogging_CleanRequestIsSilent(t *testing.T) {
	logger := &capturedLogger{}
	resolver := mustNewResolver(t, WithLogger(logger))

	req := newTestRequest("10.0.0.1:5000", "/")
	req.Header.Set("Forwarded", "for=192.0.2.1;proto=https")
	req.Header.Set("X-Forwarded-Host", "example.com")

	resolver.Resolve(req)
	if _, err := resolver.PeerAddr(req); err != nil {
		t.Fatalf("PeerAddr() error = %v", err)
	}

	if entries := logger.snapshot(); len(entries) != 0 {
		t.Errorf("log entries = %d, want 0", len(entries))
	}
}

func TestLogging_SlogLoggerSatisfiesInterface(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	resolver := mustNewResolver(t, WithLogger(logger))

	if _, err := resolver.PeerAddrFrom(RequestInput{Path: "/peer"}); err == nil {
		t.Fatal("PeerAddrFrom() error = nil")
	}

	out := buf.String()
	for _, want := range []string{"level=ERROR", `msg="missing peer address"`, "event=missing_peer_addr", "path=/peer"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
