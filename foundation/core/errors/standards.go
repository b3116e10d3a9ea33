// File: standards.go
// Title: Module Error Standards
// Description: Module identifiers and the mapping from module operations to
//              error codes, shared by every cplx package that reports errors.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Initial module identifiers and code mapping
// - 2026-10-02 v0.2.0: history, server and repl modules

package errors

import (
	"strings"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleComplexx = "complexx"
	ModuleAssertx  = "assertx"
	ModuleCalc     = "calc"
	ModuleConfig   = "config"
	ModuleHistory  = "history"
	ModuleServer   = "server"
	ModuleRepl     = "repl"
)

// getModuleErrorCode picks the code for a failed module operation from
// keywords in the operation name
func getModuleErrorCode(module, operation string) cplxerror.Code {
	op := strings.ToLower(operation)

	switch module {
	case ModuleComplexx:
		switch {
		case strings.Contains(op, "parse") || strings.Contains(op, "format"):
			return cplxerror.CodeInvalidFormat
		case strings.Contains(op, "div"):
			return cplxerror.CodeDivisionByZero
		}
		return cplxerror.CodeDegenerateValue

	case ModuleAssertx:
		return cplxerror.CodeValidationFailed

	case ModuleCalc:
		switch {
		case strings.Contains(op, "lookup") || strings.Contains(op, "resolve"):
			return cplxerror.CodeUnknownFunction
		case strings.Contains(op, "arity") || strings.Contains(op, "args"):
			return cplxerror.CodeArityMismatch
		case strings.Contains(op, "parse"):
			return cplxerror.CodeInvalidFormat
		}
		return cplxerror.CodeEvaluationFailed

	case ModuleConfig:
		switch {
		case strings.Contains(op, "load") || strings.Contains(op, "find"):
			return cplxerror.CodeMissingConfig
		case strings.Contains(op, "validate"):
			return cplxerror.CodeInvalidConfig
		}
		return cplxerror.CodeConfigError

	case ModuleHistory:
		if strings.Contains(op, "get") || strings.Contains(op, "find") {
			return cplxerror.CodeNotFound
		}
		return cplxerror.CodeStorageError

	case ModuleServer:
		switch {
		case strings.Contains(op, "decode") || strings.Contains(op, "read"):
			return cplxerror.CodeProtocolError
		case strings.Contains(op, "start") || strings.Contains(op, "listen"):
			return cplxerror.CodeServiceInitialization
		}
		return cplxerror.CodeServiceUnavailable
	}

	return cplxerror.CodeInternal
}

// getFormatErrorCode returns the code used for malformed input in module
func getFormatErrorCode(module string) cplxerror.Code {
	switch module {
	case ModuleServer:
		return cplxerror.CodeProtocolError
	case ModuleConfig:
		return cplxerror.CodeInvalidConfig
	default:
		return cplxerror.CodeInvalidFormat
	}
}

// getOperationErrorCode returns the code used when an operation of module fails
func getOperationErrorCode(module string) cplxerror.Code {
	switch module {
	case ModuleCalc:
		return cplxerror.CodeEvaluationFailed
	case ModuleHistory:
		return cplxerror.CodeStorageError
	case ModuleServer:
		return cplxerror.CodeServiceUnavailable
	case ModuleConfig:
		return cplxerror.CodeConfigError
	default:
		return cplxerror.CodeInternal
	}
}

// StandardError creates an error for module and operation with the code
// chosen by the operation name
func StandardError(module, operation, message string) *cplxerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(message).
		Build()
}

// ModuleError wraps cause as the failure of a module operation
func ModuleError(module, operation string, cause error, details map[string]interface{}) *cplxerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Cause(cause).
		Details(details).
		Build()
}

// IsModuleError checks if an error belongs to a specific module
func IsModuleError(err error, module string) bool {
	return module != "" && ExtractModule(err) == module
}
