// Package errors provides the standard way for cplx modules to create errors.
//
// Package: errors
// Title: Module Error Constructors for cplx
// Description: This package builds on the core error package. It attaches the
//              reporting module and operation to every error, derives the
//              error code from them when none is given and offers one-call
//              constructors for the failures each module reports.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Builder and generic constructors
// - 2026-10-02 v0.2.0: Module helpers for calc, history and server
//
// # Error Builder
//
//	err := errors.NewErrorBuilder(errors.ModuleCalc).
//		Operation("evaluate").
//		Messagef("%s produced NaN", name).
//		Code(cplxerror.CodeDegenerateValue).
//		Detail("function", name).
//		Build()
//
// Without an explicit Code, the code follows from the module and keywords in
// the operation name: a calc operation containing "lookup" yields
// UNKNOWN_FUNCTION, a history operation yields STORAGE_ERROR and so on.
//
// # Module Helpers
//
//	errors.ComplexxInvalidFormat("3+4k")
//	errors.CalcUnknownFunction("asinn", []string{"asin", "asinh"})
//	errors.CalcArityMismatch("pow", 2, 1)
//	errors.HistoryStorageFailed("record", dbErr)
//	errors.ServerProtocolError("unknown message type", nil)
//
// # Error Analysis
//
// ExtractModule, ExtractOperation and IsModuleOperation read the module and
// operation back from any error whose chain contains a structured error.
package errors
