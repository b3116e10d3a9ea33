// Package log provides the structured logger used throughout cplx.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with persistent context fields,
//              JSON/text/console/logfmt output, performance timers and
//              severity-aware logging of structured errors.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Initial logger
// - 2026-10-03 v0.2.0: Session context, lipgloss console output
//
// Loggers are immutable: every With* call returns a derived copy, so a
// component logger can be handed to goroutines freely.
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatConsole}).
//		WithName("calc").
//		WithSessionID(sessionID)
//
//	timer := logger.StartTimer("eval.asin")
//	result := complexx.Asin(z)
//	timer.WithField("result", result.String()).Stop()
//
//	if err != nil {
//		logger.LogError(err) // level follows the error severity
//	}
package log
