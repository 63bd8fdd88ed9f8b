package zap

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	ubzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theory-cloud/reactstarter/pkg/observability"
	"github.com/theory-cloud/reactstarter/pkg/sanitization"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

type Option func(*loggerOptions)

type loggerOptions struct {
	initErr error

	zapLogger *ubzap.Logger
	sanitizer observability.SanitizerFunc
	notifier  observability.ErrorNotifier
}

// WithZapLogger uses base instead of building a core from LoggerConfig.
func WithZapLogger(base *ubzap.Logger) Option {
	return func(opts *loggerOptions) {
		opts.zapLogger = base
	}
}

func WithSanitizer(fn observability.SanitizerFunc) Option {
	return func(opts *loggerOptions) {
		opts.sanitizer = fn
	}
}

// WithErrorNotifier forwards error-level entries to notifier on a background goroutine.
func WithErrorNotifier(notifier observability.ErrorNotifier) Option {
	return func(opts *loggerOptions) {
		opts.notifier = notifier
	}
}

type zapCore struct {
	logger    *ubzap.Logger
	sanitizer observability.SanitizerFunc
	notifier  observability.ErrorNotifier

	retryDelay time.Duration
	maxRetries int

	notifyMu sync.Mutex
	notifyCh chan observability.LogEntry
	notifyWg sync.WaitGroup

	closeOnce sync.Once
	closed    atomic.Bool

	entriesLogged   atomic.Int64
	entriesDropped  atomic.Int64
	flushCount      atomic.Int64
	errorCount      atomic.Int64
	lastFlushNanos  atomic.Int64
	totalFlushNanos atomic.Int64
	lastError       atomic.Value
}

type Logger struct {
	core *zapCore
	log  *ubzap.Logger

	fields    map[string]any
	requestID string
}

var _ observability.StructuredLogger = (*Logger)(nil)

func NewZapLogger(config observability.LoggerConfig, options ...Option) (observability.StructuredLogger, error) {
	cfg := normalizeLoggerConfig(config)

	opts := &loggerOptions{sanitizer: sanitization.SanitizeFieldValue}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	if opts.initErr != nil {
		return nil, opts.initErr
	}

	base := opts.zapLogger
	if base == nil {
		var err error
		if base, err = buildZapLogger(cfg); err != nil {
			return nil, err
		}
	}

	zcore := &zapCore{
		logger:     base,
		sanitizer:  opts.sanitizer,
		notifier:   opts.notifier,
		retryDelay: cfg.RetryDelay,
		maxRetries: cfg.MaxRetries,
	}
	zcore.lastError.Store("")

	if zcore.notifier != nil {
		ch := make(chan observability.LogEntry, cfg.BufferSize)
		zcore.notifyCh = ch
		go zcore.runNotifier(ch)
	}

	return &Logger{core: zcore, log: base, fields: map[string]any{}}, nil
}

func buildZapLogger(cfg observability.LoggerConfig) (*ubzap.Logger, error) {
	level, err := parseZapLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	enc := zapEncoderConfig(cfg.EnableCaller)
	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "console":
		encoder = zapcore.NewConsoleEncoder(enc)
	case "json":
		encoder = zapcore.NewJSONEncoder(enc)
	default:
		return nil, errors.New("observability/zap: unsupported log format")
	}

	// stderr keeps stdout clean for `cdk synth` and envcheck output.
	base := ubzap.New(zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level))
	if cfg.EnableCaller {
		base = base.WithOptions(ubzap.AddCaller())
	}
	if cfg.EnableStack {
		base = base.WithOptions(ubzap.AddStacktrace(zapcore.ErrorLevel))
	}
	return base, nil
}

func normalizeLoggerConfig(config observability.LoggerConfig) observability.LoggerConfig {
	cfg := config

	if strings.TrimSpace(cfg.Format) == "" {
		if runningInLambda() {
			cfg.Format = "json"
		} else {
			cfg.Format = "console"
		}
	}
	if strings.TrimSpace(cfg.Level) == "" {
		cfg.Level = levelInfo
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	return cfg
}

func runningInLambda() bool {
	for _, key := range []string{"AWS_LAMBDA_FUNCTION_NAME", "AWS_LAMBDA_RUNTIME_API", "LAMBDA_TASK_ROOT"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

func parseZapLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case levelDebug:
		return zapcore.DebugLevel, nil
	case levelInfo, "":
		return zapcore.InfoLevel, nil
	case levelWarn, "warning":
		return zapcore.WarnLevel, nil
	case levelError:
		return zapcore.ErrorLevel, nil
	default:
		return 0, errors.New("observability/zap: unsupported log level")
	}
}

func zapEncoderConfig(enableCaller bool) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if enableCaller {
		enc.CallerKey = "caller"
		enc.EncodeCaller = zapcore.ShortCallerEncoder
	}
	return enc
}

func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.logEntry(levelDebug, message, fields...)
}
func (l *Logger) Info(message string, fields ...map[string]any) {
	l.logEntry(levelInfo, message, fields...)
}
func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.logEntry(levelWarn, message, fields...)
}
func (l *Logger) Error(message string, fields ...map[string]any) {
	l.logEntry(levelError, message, fields...)
}

func (l *Logger) WithField(key string, value any) observability.StructuredLogger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) WithFields(fields map[string]any) observability.StructuredLogger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	next.log = next.log.With(l.core.zapFields(fields)...)
	return next
}

func (l *Logger) WithRequestID(requestID string) observability.StructuredLogger {
	next := l.clone()
	next.requestID = requestID
	next.log = next.log.With(ubzap.String("request_id", sanitization.SanitizeLogString(requestID)))
	return next
}

func (l *Logger) Flush(ctx context.Context) error {
	if l == nil || l.core == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	l.core.flushCount.Add(1)
	err := l.core.sync()
	l.core.waitNotifier(ctx)

	l.core.lastFlushNanos.Store(time.Now().UnixNano())
	l.core.totalFlushNanos.Add(time.Since(start).Nanoseconds())
	return err
}

func (l *Logger) Close() error {
	if l == nil || l.core == nil {
		return nil
	}
	return l.core.close()
}

func (l *Logger) IsHealthy() bool {
	if l == nil || l.core == nil || l.core.closed.Load() {
		return false
	}
	return l.core.lastErrorString() == ""
}

func (l *Logger) GetStats() observability.LoggerStats {
	if l == nil || l.core == nil {
		return observability.LoggerStats{}
	}

	flushCount := l.core.flushCount.Load()
	avg := time.Duration(0)
	if total := l.core.totalFlushNanos.Load(); flushCount > 0 && total > 0 {
		avg = time.Duration(total / flushCount)
	}
	var lastFlush time.Time
	if nanos := l.core.lastFlushNanos.Load(); nanos > 0 {
		lastFlush = time.Unix(0, nanos)
	}

	return observability.LoggerStats{
		LastFlush:      lastFlush,
		LastError:      l.core.lastErrorString(),
		EntriesLogged:  l.core.entriesLogged.Load(),
		EntriesDropped: l.core.entriesDropped.Load(),
		FlushCount:     flushCount,
		ErrorCount:     l.core.errorCount.Load(),
		AverageFlush:   avg,
	}
}

func (l *Logger) clone() *Logger {
	nextFields := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		nextFields[k] = v
	}
	return &Logger{
		core:      l.core,
		log:       l.log,
		fields:    nextFields,
		requestID: l.requestID,
	}
}

func (l *Logger) logEntry(level string, message string, fields ...map[string]any) {
	if l == nil || l.core == nil || l.log == nil || l.core.closed.Load() {
		return
	}

	message = sanitization.SanitizeLogString(message)
	callFields := mergeFields(fields...)
	zfields := l.core.zapFields(callFields)

	switch level {
	case levelDebug:
		l.log.Debug(message, zfields...)
	case levelWarn:
		l.log.Warn(message, zfields...)
	case levelError:
		l.log.Error(message, zfields...)
	default:
		l.log.Info(message, zfields...)
	}
	l.core.entriesLogged.Add(1)

	if level == levelError && l.core.notifier != nil {
		l.core.enqueueNotification(observability.LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Message:   message,
			Fields:    l.core.sanitize(mergeFields(l.fields, callFields)),
			RequestID: l.requestID,
		})
	}
}

func mergeFields(sets ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

func (c *zapCore) sanitize(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if c.sanitizer != nil {
			out[k] = c.sanitizer(k, v)
		} else {
			out[k] = sanitization.SanitizeFieldValue(k, v)
		}
	}
	return out
}

func (c *zapCore) zapFields(fields map[string]any) []ubzap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]ubzap.Field, 0, len(fields))
	for k, v := range c.sanitize(fields) {
		out = append(out, ubzap.Any(k, v))
	}
	return out
}

func (c *zapCore) sync() error {
	err := c.logger.Sync()
	if err != nil && !isIgnorableSyncError(err) {
		c.recordError(err)
		return err
	}
	return nil
}

// Sync on a terminal stderr returns EINVAL/ENOTTY; that is not a logging failure.
func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}

func (c *zapCore) recordError(err error) {
	c.errorCount.Add(1)
	c.lastError.Store(err.Error())
}

func (c *zapCore) enqueueNotification(entry observability.LogEntry) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if c.closed.Load() || c.notifyCh == nil {
		c.entriesDropped.Add(1)
		return
	}

	c.notifyWg.Add(1)
	select {
	case c.notifyCh <- entry:
	default:
		c.notifyWg.Done()
		c.entriesDropped.Add(1)
	}
}

// runNotifier drains ch until close() closes it. It must not read c.notifyCh, which
// close() clears under notifyMu.
func (c *zapCore) runNotifier(ch <-chan observability.LogEntry) {
	for entry := range ch {
		if err := c.notifyWithRetries(entry); err != nil {
			c.recordError(err)
		}
		c.notifyWg.Done()
	}
}

func (c *zapCore) notifyWithRetries(entry observability.LogEntry) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		err := c.notifier.Notify(context.Background(), entry)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < c.maxRetries-1 {
			time.Sleep(c.retryDelay)
		}
	}
	return lastErr
}

func (c *zapCore) waitNotifier(ctx context.Context) {
	if c.notifier == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		c.notifyWg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
}

func (c *zapCore) close() error {
	var err error
	c.closeOnce.Do(func() {
		c.notifyMu.Lock()
		c.closed.Store(true)
		if c.notifyCh != nil {
			close(c.notifyCh)
			c.notifyCh = nil
		}
		c.notifyMu.Unlock()

		c.notifyWg.Wait()
		err = c.sync()
	})
	return err
}

func (c *zapCore) lastErrorString() string {
	lastError, ok := c.lastError.Load().(string)
	if !ok {
		return ""
	}
	return lastError
}
