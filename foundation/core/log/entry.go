// File: entry.go
// Title: Log Entries and Fields
// Description: Defines a single log entry with its evaluation context and the
//              Fields map used for structured key-value data.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Entry and field helpers
// - 2026-10-03 v0.2.0: Session IDs, sorted field keys

package log

import (
	"fmt"
	"sort"
	"time"
)

// Entry is a single log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string

	SessionID     string
	RequestID     string
	CorrelationID string

	Fields   Fields
	Error    error
	Duration time.Duration
	Caller   *CallerInfo
}

// CallerInfo identifies the source location of a log call
type CallerInfo struct {
	Function string
	File     string
	Line     int
}

// Fields holds structured key-value data
type Fields map[string]interface{}

// Field creates a single field
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an "error" field
func Err(err error) Fields {
	return Fields{"error": err}
}

// Value renders a fmt.Stringer (typically a complex value) into a field
func Value(key string, v fmt.Stringer) Fields {
	return Fields{key: v.String()}
}

// Merge returns a new Fields containing f overlaid with other
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Clone returns a shallow copy of f
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return f.Merge(nil)
}

// Keys returns the field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// WithFields adds fields to the entry
func (e *Entry) WithFields(fields Fields) *Entry {
	if e.Fields == nil {
		e.Fields = make(Fields, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// WithError attaches an error to the entry
func (e *Entry) WithError(err error) *Entry {
	e.Error = err
	return e
}

// WithDuration attaches a duration to the entry
func (e *Entry) WithDuration(d time.Duration) *Entry {
	e.Duration = d
	return e
}

// WithCaller records the source location
func (e *Entry) WithCaller(function, file string, line int) *Entry {
	e.Caller = &CallerInfo{Function: function, File: file, Line: line}
	return e
}

// Clone returns a deep copy of the entry
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Fields = e.Fields.Clone()
	if e.Caller != nil {
		caller := *e.Caller
		clone.Caller = &caller
	}
	return &clone
}
