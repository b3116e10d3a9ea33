// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: leveled structured logging with
//              persistent context (session, request, correlation), optional
//              caller capture, asynchronous output and integration with the
//              structured error type.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Initial logger with immutable With* derivation
// - 2026-10-03 v0.2.0: Session context, LogError via error fields

package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

// Logger is a structured logger. Loggers are immutable; the With* methods
// return derived copies that share the output writer.
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	contextFields Fields
	sessionID     string
	requestID     string
	correlationID string

	enableCaller     bool
	callerSkipFrames int

	async *asyncSink

	mutex sync.RWMutex
}

// Config configures a new Logger
type Config struct {
	Level            Level
	Format           Format
	Output           io.Writer
	Name             string
	EnableCaller     bool
	CallerSkipFrames int
	AsyncEnabled     bool
	AsyncBufferSize  int
}

// DefaultAsyncBufferSize is used when AsyncBufferSize is not positive
const DefaultAsyncBufferSize = 1000

// New creates a logger writing JSON at the default level to stderr
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatJSON})
}

// NewWithConfig creates a logger from config
func NewWithConfig(config Config) *Logger {
	l := &Logger{
		level:            config.Level,
		formatter:        GetFormatter(config.Format),
		output:           config.Output,
		name:             config.Name,
		contextFields:    make(Fields),
		enableCaller:     config.EnableCaller,
		callerSkipFrames: config.CallerSkipFrames,
	}
	if l.output == nil {
		l.output = os.Stderr
	}
	if config.AsyncEnabled {
		size := config.AsyncBufferSize
		if size <= 0 {
			size = DefaultAsyncBufferSize
		}
		l.async = newAsyncSink(size)
	}
	return l
}

func (l *Logger) derive(apply func(*Logger)) *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	clone := &Logger{
		level:            l.level,
		formatter:        l.formatter,
		output:           l.output,
		name:             l.name,
		contextFields:    l.contextFields.Clone(),
		sessionID:        l.sessionID,
		requestID:        l.requestID,
		correlationID:    l.correlationID,
		enableCaller:     l.enableCaller,
		callerSkipFrames: l.callerSkipFrames,
		async:            l.async,
	}
	apply(clone)
	return clone
}

// WithLevel returns a copy with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	return l.derive(func(c *Logger) { c.level = level })
}

// WithFormat returns a copy using the default formatter for format
func (l *Logger) WithFormat(format Format) *Logger {
	return l.derive(func(c *Logger) { c.formatter = GetFormatter(format) })
}

// WithFormatter returns a copy using a custom formatter
func (l *Logger) WithFormatter(formatter Formatter) *Logger {
	return l.derive(func(c *Logger) { c.formatter = formatter })
}

// WithOutput returns a copy writing to w
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return l.derive(func(c *Logger) { c.output = w })
}

// WithName returns a copy with a component name, e.g. "calc"
func (l *Logger) WithName(name string) *Logger {
	return l.derive(func(c *Logger) { c.name = name })
}

// WithField returns a copy adding a persistent field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.derive(func(c *Logger) { c.contextFields[key] = value })
}

// WithFields returns a copy adding persistent fields
func (l *Logger) WithFields(fields Fields) *Logger {
	return l.derive(func(c *Logger) {
		for k, v := range fields {
			c.contextFields[k] = v
		}
	})
}

// WithSessionID returns a copy bound to a calculator session
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return l.derive(func(c *Logger) { c.sessionID = sessionID })
}

// WithRequestID returns a copy bound to a protocol request
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.derive(func(c *Logger) { c.requestID = requestID })
}

// WithCorrelationID returns a copy with a correlation id
func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	return l.derive(func(c *Logger) { c.correlationID = correlationID })
}

// WithCaller returns a copy that records the calling source location
func (l *Logger) WithCaller(skip int) *Logger {
	return l.derive(func(c *Logger) {
		c.enableCaller = true
		c.callerSkipFrames = skip
	})
}

// Trace logs at trace level
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs at debug level
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs at info level
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs at warn level
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs at error level
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs at fatal level, flushes and exits with status 1
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	l.Close()
	os.Exit(1)
}

// Audit logs an audit record regardless of the minimum level
func (l *Logger) Audit(message string, fields ...Fields) {
	l.log(LevelAudit, message, nil, fields...)
}

// ErrorWithErr logs at error level with an attached error
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs at warn level with an attached error
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs err at a level derived from its severity. Structured errors
// contribute their fields (code, operation, details).
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var ce *cplxerror.Error
	if !errors.As(err, &ce) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields(ce.Fields())
	delete(fields, "error")
	l.log(levelForSeverity(ce.Severity()), ce.Message(), err, fields)
}

// StartTimer starts a timer that logs its duration when stopped
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled reports whether level would be written
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return level.ShouldLog(l.level)
}

// GetLevel returns the minimum level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.level
}

// SetLevel changes the minimum level in place. Prefer WithLevel for shared loggers.
func (l *Logger) SetLevel(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.SessionID = l.sessionID
	entry.RequestID = l.requestID
	entry.CorrelationID = l.correlationID
	entry.Error = err
	entry.WithFields(l.contextFields)
	for _, f := range fields {
		entry.WithFields(f)
	}
	formatter, output, async := l.formatter, l.output, l.async
	withCaller, skip := l.enableCaller, l.callerSkipFrames
	l.mutex.RUnlock()

	if withCaller {
		if function, file, line, ok := caller(skip); ok {
			entry.WithCaller(function, file, line)
		}
	}

	if async != nil && async.enqueue(entry, formatter, output) {
		return
	}
	write(entry, formatter, output)
}

func write(entry *Entry, formatter Formatter, output io.Writer) {
	if formatted, err := formatter.Format(entry); err == nil {
		_, _ = output.Write(formatted)
	}
}

// caller skips caller, log and the public logging method
func caller(skip int) (function, file string, line int, ok bool) {
	pc, file, line, ok := runtime.Caller(3 + skip)
	if !ok {
		return "", "", 0, false
	}
	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if idx := strings.LastIndex(function, "."); idx != -1 {
			function = function[idx+1:]
		}
	}
	return function, filepath.Base(file), line, true
}

// Close drains pending asynchronous entries. Safe to call more than once.
func (l *Logger) Close() {
	if l.async != nil {
		l.async.close()
	}
}

type queued struct {
	entry     *Entry
	formatter Formatter
	output    io.Writer
}

// asyncSink writes entries from a buffered channel on one goroutine
type asyncSink struct {
	queue  chan queued
	done   chan struct{}
	once   sync.Once
	closed sync.WaitGroup
	mu     sync.RWMutex
	shut   bool
}

func newAsyncSink(size int) *asyncSink {
	s := &asyncSink{
		queue: make(chan queued, size),
		done:  make(chan struct{}),
	}
	s.closed.Add(1)
	go s.run()
	return s
}

// enqueue returns false when the sink is closed or full; the caller then
// writes synchronously
func (s *asyncSink) enqueue(entry *Entry, formatter Formatter, output io.Writer) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.shut {
		return false
	}
	select {
	case s.queue <- queued{entry, formatter, output}:
		return true
	default:
		return false
	}
}

func (s *asyncSink) run() {
	defer s.closed.Done()
	for {
		select {
		case q := <-s.queue:
			write(q.entry, q.formatter, q.output)
		case <-s.done:
			for {
				select {
				case q := <-s.queue:
					write(q.entry, q.formatter, q.output)
				default:
					return
				}
			}
		}
	}
}

func (s *asyncSink) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.shut = true
		s.mu.Unlock()
		close(s.done)
	})
	s.closed.Wait()
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the process-wide logger
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Debug logs through the default logger
func Debug(message string, fields ...Fields) { GetDefault().Debug(message, fields...) }

// Info logs through the default logger
func Info(message string, fields ...Fields) { GetDefault().Info(message, fields...) }

// Warn logs through the default logger
func Warn(message string, fields ...Fields) { GetDefault().Warn(message, fields...) }

// Error logs through the default logger
func Error(message string, fields ...Fields) { GetDefault().Error(message, fields...) }
