package observability

import (
	"context"
	"time"
)

type SanitizerFunc func(key string, value any) any

type ErrorNotifier interface {
	Notify(ctx context.Context, entry LogEntry) error
}

// LogEntry represents a structured log entry.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// StructuredLogger is the logging surface used across the config loaders, the CDK
// entry point and the runtime config Lambda.
//
// Calls take a message plus optional map fields; With* calls return derived loggers
// and never mutate the receiver.
type StructuredLogger interface {
	Debug(message string, fields ...map[string]any)
	Info(message string, fields ...map[string]any)
	Warn(message string, fields ...map[string]any)
	Error(message string, fields ...map[string]any)

	WithField(key string, value any) StructuredLogger
	WithFields(fields map[string]any) StructuredLogger
	WithRequestID(requestID string) StructuredLogger

	Flush(ctx context.Context) error
	Close() error
	IsHealthy() bool
	GetStats() LoggerStats
}

type LoggerStats struct {
	LastFlush      time.Time     `json:"last_flush"`
	LastError      string        `json:"last_error,omitempty"`
	EntriesLogged  int64         `json:"entries_logged"`
	EntriesDropped int64         `json:"entries_dropped"`
	FlushCount     int64         `json:"flush_count"`
	ErrorCount     int64         `json:"error_count"`
	AverageFlush   time.Duration `json:"average_flush_time"`
}

// LostSince reports how many entries were dropped and how many write or notify
// errors occurred since prev was taken.
func (s LoggerStats) LostSince(prev LoggerStats) (dropped, errs int64) {
	return s.EntriesDropped - prev.EntriesDropped, s.ErrorCount - prev.ErrorCount
}

// LoggerConfig configures logger implementations.
type LoggerConfig struct {
	Format       string        `json:"format"`
	Level        string        `json:"level"`
	RetryDelay   time.Duration `json:"retry_delay"`
	BufferSize   int           `json:"buffer_size"`
	MaxRetries   int           `json:"max_retries"`
	EnableStack  bool          `json:"enable_stack"`
	EnableCaller bool          `json:"enable_caller"`
}
