// Package error provides structured errors for cplx.
//
// Package: error
// Title: cplx Error Handling
// Description: This package implements contextual errors with codes, severity
//              levels, details and stack traces. Every layer of cplx (parser,
//              calculator, history store, websocket server) reports failures
//              through this type so that the protocol and the REPL can render
//              them uniformly.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Initial contextual errors and codes
// - 2026-10-02 v0.2.0: Session and request context, code matching
//
// Features:
// - Contextual error wrapping with additional metadata
// - Error codes with categories and HTTP status mapping
// - Severity levels derived from codes unless set explicitly
// - Stack trace capture for debugging
// - Flat field maps for structured logging
//
// Usage:
//
//	import cplxerror "github.com/msto63/cplx/foundation/core/error"
//
//	err := cplxerror.New("unknown function").
//		WithCode(cplxerror.CodeUnknownFunction).
//		WithDetail("name", "asinn").
//		WithOperation("calc.evaluate")
//
//	wrapped := cplxerror.Wrap(err, "evaluating line 3")
//	if cplxerror.HasCode(wrapped, cplxerror.CodeUnknownFunction) {
//		// suggest similar names
//	}
package error
