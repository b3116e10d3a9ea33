// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across cplx for classifying
//              failures of parsing, evaluation, storage and transport. Codes
//              drive the severity default, the protocol error payload and the
//              HTTP status of the health and websocket endpoints.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Initial code set for evaluation and validation
// - 2026-10-02 v0.2.0: Storage, transport and configuration codes

package error

// Code represents a structured error code for categorizing errors
type Code string

// Error codes
const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"
	CodeCanceled     Code = "CANCELED"

	// Evaluation of complex functions
	CodeUnknownFunction  Code = "UNKNOWN_FUNCTION"
	CodeArityMismatch    Code = "ARITY_MISMATCH"
	CodeDegenerateValue  Code = "DEGENERATE_VALUE"
	CodeDivisionByZero   Code = "DIVISION_BY_ZERO"
	CodeEvaluationFailed Code = "EVALUATION_FAILED"

	// History storage
	CodeStorageError   Code = "STORAGE_ERROR"
	CodeStorageClosed  Code = "STORAGE_CLOSED"
	CodeDataCorruption Code = "DATA_CORRUPTION"

	// Service and transport
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeProtocolError         Code = "PROTOCOL_ERROR"
	CodeMessageTooLarge       Code = "MESSAGE_TOO_LARGE"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeMissingConfig    Code = "MISSING_CONFIG"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
)

// categories maps every known code to its category
var categories = map[Code]string{
	CodeUnknown:      "generic",
	CodeInternal:     "generic",
	CodeNotFound:     "generic",
	CodeInvalidInput: "generic",
	CodeTimeout:      "generic",
	CodeCanceled:     "generic",

	CodeUnknownFunction:  "evaluation",
	CodeArityMismatch:    "evaluation",
	CodeDegenerateValue:  "evaluation",
	CodeDivisionByZero:   "evaluation",
	CodeEvaluationFailed: "evaluation",

	CodeStorageError:   "storage",
	CodeStorageClosed:  "storage",
	CodeDataCorruption: "storage",

	CodeServiceUnavailable:    "service",
	CodeServiceInitialization: "service",
	CodeProtocolError:         "service",
	CodeMessageTooLarge:       "service",

	CodeConfigError:      "configuration",
	CodeMissingConfig:    "configuration",
	CodeInvalidConfig:    "configuration",
	CodeEnvironmentError: "configuration",

	CodeValidationFailed: "validation",
	CodeRequiredField:    "validation",
	CodeInvalidFormat:    "validation",
	CodeValueOutOfRange:  "validation",
}

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is one of the defined codes
func (c Code) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// Category returns the high-level category of the error code.
// Codes defined outside this package fall into "generic".
func (c Code) Category() string {
	if cat, ok := categories[c]; ok {
		return cat
	}
	return "generic"
}

// HTTPStatus returns the HTTP status code reported for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeUnknownFunction:
		return 404
	case CodeInvalidInput, CodeArityMismatch, CodeValidationFailed, CodeRequiredField,
		CodeInvalidFormat, CodeValueOutOfRange, CodeProtocolError:
		return 400
	case CodeTimeout:
		return 408
	case CodeMessageTooLarge:
		return 413
	case CodeDegenerateValue, CodeDivisionByZero, CodeEvaluationFailed:
		return 422
	case CodeCanceled:
		return 499
	case CodeServiceUnavailable, CodeStorageError, CodeStorageClosed:
		return 503
	default:
		return 500
	}
}
