// File: level.go
// Title: Log Levels
// Description: Defines the log levels from trace to audit, their textual
//              forms and the lipgloss styles used by the console formatter.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Levels and parsing
// - 2026-10-03 v0.2.0: lipgloss styles replace raw ANSI codes

package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

// Level represents the importance of a log message
type Level int

const (
	// LevelTrace logs every evaluation step
	LevelTrace Level = iota
	// LevelDebug logs timings and intermediate values
	LevelDebug
	// LevelInfo is the standard level for normal operation
	LevelInfo
	// LevelWarn indicates degenerate results or recoverable problems
	LevelWarn
	// LevelError indicates failed operations
	LevelError
	// LevelFatal terminates the program after logging
	LevelFatal
	// LevelAudit is always logged regardless of the minimum level
	LevelAudit
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "fatal", "audit"}
var levelShort = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "FTL", "AUD"}

// ANSI 256 palette indices per level
var levelColors = [...]lipgloss.Color{"245", "6", "2", "3", "1", "5", "4"}

func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelAudit
}

// String returns the lower-case name of the level
func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelNames[l]
}

// ShortString returns the three-letter tag of the level
func (l Level) ShortString() string {
	if !l.valid() {
		return "???"
	}
	return levelShort[l]
}

// Style returns the console style for the level
func (l Level) Style() lipgloss.Style {
	style := lipgloss.NewStyle()
	if !l.valid() {
		return style
	}
	style = style.Foreground(levelColors[l])
	if l >= LevelError {
		style = style.Bold(true)
	}
	return style
}

// ShouldLog reports whether l passes the minimum level. Audit always passes.
func (l Level) ShouldLog(minLevel Level) bool {
	if l == LevelAudit {
		return true
	}
	return l >= minLevel
}

// ParseLevel parses a level name or its short tag
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "fatal", "ftl":
		return LevelFatal, nil
	case "audit", "aud":
		return LevelAudit, nil
	}
	return LevelInfo, cplxerror.Newf("invalid log level %q", level).
		WithCode(cplxerror.CodeInvalidConfig).
		WithDetail("key", "log.level").
		WithDetail("value", level)
}

// AllLevels returns all levels in ascending order
func AllLevels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelAudit}
}

// DefaultLevel returns the level used when nothing is configured
func DefaultLevel() Level {
	return LevelInfo
}

// levelForSeverity maps an error severity onto the level it is logged at
func levelForSeverity(s cplxerror.Severity) Level {
	switch s {
	case cplxerror.SeverityLow:
		return LevelInfo
	case cplxerror.SeverityMedium:
		return LevelWarn
	default:
		return LevelError
	}
}
