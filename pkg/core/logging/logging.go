// ============================================================================
// cplx - Complex number toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from settings
// Author:      msto63
// Created:     2026-09-29
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	cplxlog "github.com/msto63/cplx/foundation/core/log"
	"github.com/msto63/cplx/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name, shown as {name} in text output
	Name string

	// Log level (trace, debug, info, warn, error, fatal, audit)
	Level string

	// Output format (json, text, console, logfmt); default console
	Format string

	// File receives a JSON copy of every entry when set
	File string

	// Async writes entries from a background goroutine
	Async bool

	// Verbose forces the debug level
	Verbose bool

	// Output defaults to stderr
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "console",
	}
}

// FromSettings builds a LoggerConfig from the [log] section
func FromSettings(name string, s config.LogConfig) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  s.Level,
		Format: s.Format,
		File:   s.File,
		Async:  s.Async,
	}
}

// Logger is a configured logger together with the resources it owns
type Logger struct {
	*cplxlog.Logger
	file *os.File
}

// NewLogger creates a logger from cfg. Invalid level or format names fall
// back to info and console; the returned error reports what was ignored.
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	var firstErr error

	level, err := cplxlog.ParseLevel(cfg.Level)
	if err != nil {
		firstErr = err
		level = cplxlog.LevelInfo
	}
	if cfg.Verbose && level > cplxlog.LevelDebug {
		level = cplxlog.LevelDebug
	}

	format := cplxlog.FormatConsole
	if cfg.Format != "" {
		if f, err := cplxlog.ParseFormat(cfg.Format); err == nil {
			format = f
		} else if firstErr == nil {
			firstErr = err
		}
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	base := cplxlog.NewWithConfig(cplxlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: level <= cplxlog.LevelDebug,
		AsyncEnabled: cfg.Async,
	})

	l := &Logger{Logger: base}
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return l, firstErr
		}
		l.file = f
		l.Logger = base.WithFormatter(&teeFormatter{
			primary: cplxlog.GetFormatter(format),
			json:    cplxlog.NewJSONFormatter(),
			file:    f,
		})
	}
	return l, firstErr
}

// NewSimpleLogger creates a console logger at info level
func NewSimpleLogger(name string) *Logger {
	l, _ := NewLogger(DefaultLoggerConfig(name))
	return l
}

// Close flushes asynchronous output and closes the log file
func (l *Logger) Close() error {
	l.Logger.Close()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// teeFormatter formats for the primary output and appends a JSON line
// to the log file
type teeFormatter struct {
	primary cplxlog.Formatter
	json    *cplxlog.JSONFormatter
	file    io.Writer
}

func (t *teeFormatter) Format(entry *cplxlog.Entry) ([]byte, error) {
	if line, err := t.json.Format(entry); err == nil {
		_, _ = t.file.Write(line)
	}
	return t.primary.Format(entry)
}

// toFields converts alternating key-value pairs to cplxlog.Fields.
// Non-string keys are skipped.
func toFields(keysAndValues ...interface{}) cplxlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(cplxlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = keysAndValues[i+1]
	}
	return fields
}

// Debugw logs a debug message with key-value pairs
func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Infow logs an info message with key-value pairs
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warnw logs a warning with key-value pairs
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Errorw logs an error message with key-value pairs
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}
