// File: timer.go
// Title: Performance Timers
// Description: Timer measures the duration of an operation and logs it on
//              completion, failure or at intermediate checkpoints.
// Author: msto63
// Version: v0.1.1
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Initial timer
// - 2026-10-03 v0.1.1: Failures log the error through LogError fields

package log

import (
	"sync"
	"time"
)

// Timer measures one operation. A Timer logs at most once.
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	level     Level
	fields    Fields

	mu      sync.Mutex
	stopped bool
}

// NewTimer starts a timer for operation; completion is logged at debug level
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		level:     LevelDebug,
		fields:    make(Fields),
	}
}

// WithLevel sets the level of the completion record
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion record
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// finish marks the timer stopped; it returns false if it already was
func (t *Timer) finish() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (t *Timer) record(level Level, message string, err error, elapsed time.Duration, extra Fields) {
	if t.logger == nil {
		return
	}
	fields := t.fields.Merge(extra)
	fields["operation"] = t.operation
	fields["duration_ms"] = durationMillis(elapsed)
	t.logger.log(level, message, err, fields)
}

// Stop logs the completion and returns the elapsed time; repeated calls return 0
func (t *Timer) Stop() time.Duration {
	if !t.finish() {
		return 0
	}
	elapsed := t.Elapsed()
	t.record(t.level, t.operation+" completed", nil, elapsed, nil)
	return elapsed
}

// StopWithError logs a failure at error level
func (t *Timer) StopWithError(err error) time.Duration {
	if !t.finish() {
		return 0
	}
	elapsed := t.Elapsed()
	t.record(LevelError, t.operation+" failed", err, elapsed, Fields{"success": false})
	return elapsed
}

// StopWithResult logs the outcome; failures are raised to at least warn level
func (t *Timer) StopWithResult(success bool, result interface{}) time.Duration {
	if !t.finish() {
		return 0
	}
	elapsed := t.Elapsed()

	level := t.level
	message := t.operation + " completed"
	if !success {
		message = t.operation + " completed with errors"
		if level < LevelWarn {
			level = LevelWarn
		}
	}
	extra := Fields{"success": success}
	if result != nil {
		extra["result"] = result
	}
	t.record(level, message, nil, elapsed, extra)
	return elapsed
}

// Checkpoint logs an intermediate duration at debug level
func (t *Timer) Checkpoint(name string) {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if stopped {
		return
	}
	t.record(LevelDebug, t.operation+" checkpoint: "+name, nil, t.Elapsed(), Fields{"checkpoint": name})
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.finish()
}

// IsRunning reports whether the timer has not been stopped
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}
