// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logging layer maps
//              severities to log levels and the REPL colors messages by them.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Initial severity levels
// - 2026-10-02 v0.2.0: Defaults for storage and transport codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks errors caused by the caller's input: bad syntax,
	// unknown functions, wrong argument counts
	SeverityLow Severity = iota

	// SeverityMedium marks errors the caller can usually recover from, such
	// as a NaN result or a timed-out request
	SeverityMedium

	// SeverityHigh marks failures of the process itself: storage errors,
	// unusable configuration, a server that cannot start
	SeverityHigh

	// SeverityCritical marks corrupted persistent state
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldAlert returns true if this severity level should be surfaced at error level
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDataCorruption:
		return SeverityCritical

	case CodeStorageError, CodeStorageClosed, CodeServiceInitialization,
		CodeServiceUnavailable, CodeInvalidConfig, CodeEnvironmentError, CodeInternal:
		return SeverityHigh

	case CodeDegenerateValue, CodeDivisionByZero, CodeEvaluationFailed,
		CodeTimeout, CodeCanceled, CodeConfigError, CodeMissingConfig, CodeMessageTooLarge:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeUnknownFunction, CodeArityMismatch,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange,
		CodeProtocolError:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
