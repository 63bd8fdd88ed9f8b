package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theory-cloud/reactstarter/pkg/sanitization"
)

type testLoggerCore struct {
	mu      sync.Mutex
	entries []LogEntry

	entriesLogged  atomic.Int64
	flushCount     atomic.Int64
	lastFlushNanos atomic.Int64
	closed         atomic.Bool
}

// TestLogger is an in-memory logger for deterministic unit tests.
//
// Derived loggers (via With* calls) share the same underlying core.
type TestLogger struct {
	core *testLoggerCore

	fields    map[string]any
	requestID string
}

var _ StructuredLogger = (*TestLogger)(nil)

func NewTestLogger() *TestLogger {
	return &TestLogger{
		core:   &testLoggerCore{},
		fields: map[string]any{},
	}
}

func (l *TestLogger) Entries() []LogEntry {
	if l == nil || l.core == nil {
		return nil
	}
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	out := make([]LogEntry, len(l.core.entries))
	copy(out, l.core.entries)
	return out
}

// Messages returns just the messages of recorded entries, in order.
func (l *TestLogger) Messages() []string {
	entries := l.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

func (l *TestLogger) Debug(message string, fields ...map[string]any) {
	l.log("debug", message, fields...)
}
func (l *TestLogger) Info(message string, fields ...map[string]any) {
	l.log("info", message, fields...)
}
func (l *TestLogger) Warn(message string, fields ...map[string]any) {
	l.log("warn", message, fields...)
}
func (l *TestLogger) Error(message string, fields ...map[string]any) {
	l.log("error", message, fields...)
}

func (l *TestLogger) WithField(key string, value any) StructuredLogger {
	return l.WithFields(map[string]any{key: value})
}

func (l *TestLogger) WithFields(fields map[string]any) StructuredLogger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

func (l *TestLogger) WithRequestID(requestID string) StructuredLogger {
	next := l.clone()
	next.requestID = requestID
	return next
}

func (l *TestLogger) Flush(ctx context.Context) error {
	if l == nil || l.core == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	l.core.flushCount.Add(1)
	l.core.lastFlushNanos.Store(time.Now().UnixNano())
	return nil
}

func (l *TestLogger) Close() error {
	if l == nil || l.core == nil {
		return nil
	}
	l.core.closed.Store(true)
	return nil
}

func (l *TestLogger) IsHealthy() bool {
	return l != nil && l.core != nil && !l.core.closed.Load()
}

func (l *TestLogger) GetStats() LoggerStats {
	if l == nil || l.core == nil {
		return LoggerStats{}
	}

	var lastFlush time.Time
	if nanos := l.core.lastFlushNanos.Load(); nanos > 0 {
		lastFlush = time.Unix(0, nanos)
	}
	return LoggerStats{
		LastFlush:     lastFlush,
		EntriesLogged: l.core.entriesLogged.Load(),
		FlushCount:    l.core.flushCount.Load(),
	}
}

func (l *TestLogger) clone() *TestLogger {
	if l == nil {
		return NewTestLogger()
	}
	nextFields := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		nextFields[k] = v
	}
	return &TestLogger{
		core:      l.core,
		fields:    nextFields,
		requestID: l.requestID,
	}
}

func (l *TestLogger) log(level string, message string, fields ...map[string]any) {
	if l == nil || l.core == nil || l.core.closed.Load() {
		return
	}

	sanitized := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		sanitized[k] = sanitization.SanitizeFieldValue(k, v)
	}
	for _, set := range fields {
		for k, v := range set {
			sanitized[k] = sanitization.SanitizeFieldValue(k, v)
		}
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   sanitization.SanitizeLogString(message),
		Fields:    sanitized,
		RequestID: l.requestID,
	}

	l.core.entriesLogged.Add(1)

	l.core.mu.Lock()
	l.core.entries = append(l.core.entries, entry)
	l.core.mu.Unlock()
}
