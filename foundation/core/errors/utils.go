// File: utils.go
// Title: Error Builder and Convenience Constructors
// Description: Provides the fluent ErrorBuilder, generic constructors for the
//              common failure shapes and module-specific helpers for the
//              parser, calculator, history store, server and configuration.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Builder and generic constructors
// - 2026-10-02 v0.2.0: Module helpers for calc, history and server

package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

// ErrorBuilder provides a fluent interface for building module errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	details   map[string]interface{}
	severity  *cplxerror.Severity
	code      cplxerror.Code
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:  module,
		details: make(map[string]interface{}),
	}
}

// Operation sets the operation name for the error
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause of the error
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Detail adds a detail key-value pair to the error
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Details adds multiple details at once
func (eb *ErrorBuilder) Details(details map[string]interface{}) *ErrorBuilder {
	for k, v := range details {
		eb.details[k] = v
	}
	return eb
}

// Severity overrides the severity derived from the code
func (eb *ErrorBuilder) Severity(severity cplxerror.Severity) *ErrorBuilder {
	eb.severity = &severity
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code cplxerror.Code) *ErrorBuilder {
	eb.code = code
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() *cplxerror.Error {
	code := eb.code
	if code == "" {
		code = getModuleErrorCode(eb.module, eb.operation)
	}

	message := eb.message
	if message == "" {
		if eb.operation != "" {
			message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
		} else {
			message = fmt.Sprintf("%s operation failed", eb.module)
		}
	}

	var err *cplxerror.Error
	if eb.cause != nil {
		err = cplxerror.Wrap(eb.cause, message)
	} else {
		err = cplxerror.New(message)
	}

	err.WithDetails(eb.details).WithDetail("module", eb.module)
	if eb.operation != "" {
		err.WithDetail("operation", eb.operation).WithOperation(eb.module + "." + eb.operation)
	}
	if eb.severity != nil {
		err.WithSeverity(*eb.severity)
	}
	return err.WithCode(code)
}

// InvalidInput creates an invalid input error
func InvalidInput(module, operation string, input interface{}, expected string) *cplxerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("invalid input for %s.%s", module, operation)).
		Code(cplxerror.CodeInvalidInput).
		Detail("input", input).
		Detail("expected", expected).
		Build()
}

// InvalidFormat creates a format error
func InvalidFormat(module string, input interface{}, expectedFormat string) *cplxerror.Error {
	return NewErrorBuilder(module).
		Message(fmt.Sprintf("invalid format in %s: %v", module, input)).
		Code(getFormatErrorCode(module)).
		Detail("input", input).
		Detail("expected_format", expectedFormat).
		Build()
}

// OperationFailed wraps cause as an operation failure
func OperationFailed(module, operation string, cause error) *cplxerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("%s.%s operation failed", module, operation)).
		Cause(cause).
		Code(getOperationErrorCode(module)).
		Build()
}

// ValidationFailed creates a validation error for a named field
func ValidationFailed(module, field string, value interface{}, reason string) *cplxerror.Error {
	return NewErrorBuilder(module).
		Message(fmt.Sprintf("validation failed for %s: %s", field, reason)).
		Code(cplxerror.CodeValidationFailed).
		Detail("field", field).
		Detail("value", value).
		Detail("reason", reason).
		Build()
}

// OutOfRange creates an out of range error
func OutOfRange(module, operation string, value, min, max interface{}) *cplxerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("value %v out of range [%v, %v] in %s.%s", value, min, max, module, operation)).
		Code(cplxerror.CodeValueOutOfRange).
		Detail("value", value).
		Detail("min", min).
		Detail("max", max).
		Build()
}

// NotFound creates a not found error
func NotFound(module, operation string, identifier interface{}) *cplxerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Message(fmt.Sprintf("%v not found in %s", identifier, module)).
		Code(cplxerror.CodeNotFound).
		Detail("identifier", identifier).
		Build()
}

// ExtractDetails returns the details of the outermost structured error in err's chain
func ExtractDetails(err error) map[string]interface{} {
	var structured *cplxerror.Error
	if errors.As(err, &structured) {
		return structured.Details()
	}
	return nil
}

// ExtractModule extracts the module name from an error
func ExtractModule(err error) string {
	if module, ok := ExtractDetails(err)["module"].(string); ok {
		return module
	}
	return ""
}

// ExtractOperation extracts the operation name from an error
func ExtractOperation(err error) string {
	if operation, ok := ExtractDetails(err)["operation"].(string); ok {
		return operation
	}
	return ""
}

// IsModuleOperation checks if error is from specific module and operation
func IsModuleOperation(err error, module, operation string) bool {
	return ExtractModule(err) == module && ExtractOperation(err) == operation
}

// ValidateRequired validates that a value is not nil or empty
func ValidateRequired(module, field string, value interface{}) error {
	if value == nil {
		return ValidationFailed(module, field, value, "cannot be nil")
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		if strings.TrimSpace(v.String()) == "" {
			return ValidationFailed(module, field, value, "cannot be empty")
		}
	case reflect.Slice, reflect.Map, reflect.Array:
		if v.Len() == 0 {
			return ValidationFailed(module, field, value, "cannot be empty")
		}
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return ValidationFailed(module, field, value, "cannot be nil")
		}
	}

	return nil
}

// ValidateRange validates that a numeric value lies in [min, max]
func ValidateRange(module, field string, value, min, max interface{}) error {
	val, err := toFloat64(value)
	if err != nil {
		return InvalidInput(module, "validate_"+field, value, "numeric value")
	}
	minVal, err := toFloat64(min)
	if err != nil {
		return InvalidInput(module, "validate_"+field, min, "numeric min value")
	}
	maxVal, err := toFloat64(max)
	if err != nil {
		return InvalidInput(module, "validate_"+field, max, "numeric max value")
	}

	if val < minVal || val > maxVal {
		return OutOfRange(module, "validate_"+field, value, min, max)
	}
	return nil
}

func toFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

// =============================================================================
// MODULE-SPECIFIC CONVENIENCE FUNCTIONS
// =============================================================================

// ComplexxInvalidFormat reports text that Parse cannot read as a complex value
func ComplexxInvalidFormat(input string) *cplxerror.Error {
	return NewErrorBuilder(ModuleComplexx).
		Operation("parse").
		Message(fmt.Sprintf("cannot parse %q as a complex number", input)).
		Code(cplxerror.CodeInvalidFormat).
		Detail("input", input).
		Detail("expected_format", "a+bi, (a, b) or a/b").
		Build()
}

// ComplexxDegenerate reports a NaN or infinite value produced by operation
func ComplexxDegenerate(operation string, value fmt.Stringer) *cplxerror.Error {
	return NewErrorBuilder(ModuleComplexx).
		Operation(operation).
		Message(fmt.Sprintf("%s produced a non-finite value", operation)).
		Code(cplxerror.CodeDegenerateValue).
		Detail("value", strings.TrimSpace(value.String())).
		Build()
}

// AssertxFailed reports a failed check on argument position index
func AssertxFailed(check string, index int, value fmt.Stringer) *cplxerror.Error {
	return NewErrorBuilder(ModuleAssertx).
		Operation(check).
		Message(fmt.Sprintf("argument %d: %s", index+1, check)).
		Code(cplxerror.CodeValidationFailed).
		Detail("index", index).
		Detail("value", strings.TrimSpace(value.String())).
		Build()
}

// CalcUnknownFunction reports a function name missing from the registry
func CalcUnknownFunction(name string, suggestions []string) *cplxerror.Error {
	b := NewErrorBuilder(ModuleCalc).
		Operation("lookup").
		Message(fmt.Sprintf("unknown function %q", name)).
		Code(cplxerror.CodeUnknownFunction).
		Detail("function", name)
	if len(suggestions) > 0 {
		b.Detail("suggestions", suggestions)
	}
	return b.Build()
}

// CalcArityMismatch reports a call with the wrong number of arguments
func CalcArityMismatch(name string, want, got int) *cplxerror.Error {
	return NewErrorBuilder(ModuleCalc).
		Operation("arity").
		Message(fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got)).
		Code(cplxerror.CodeArityMismatch).
		Detail("function", name).
		Detail("want", want).
		Detail("got", got).
		Build()
}

// CalcParseError reports a malformed input line
func CalcParseError(line, reason string) *cplxerror.Error {
	return NewErrorBuilder(ModuleCalc).
		Operation("parse").
		Message(fmt.Sprintf("cannot parse %q: %s", line, reason)).
		Code(cplxerror.CodeInvalidFormat).
		Detail("line", line).
		Detail("reason", reason).
		Build()
}

// HistoryStorageFailed wraps a database error of a history operation
func HistoryStorageFailed(operation string, cause error) *cplxerror.Error {
	return NewErrorBuilder(ModuleHistory).
		Operation(operation).
		Message(fmt.Sprintf("history %s failed", operation)).
		Cause(cause).
		Code(cplxerror.CodeStorageError).
		Build()
}

// HistoryClosed reports use of a closed history store
func HistoryClosed(operation string) *cplxerror.Error {
	return NewErrorBuilder(ModuleHistory).
		Operation(operation).
		Message("history store is closed").
		Code(cplxerror.CodeStorageClosed).
		Build()
}

// HistoryNotFound reports a missing history entry
func HistoryNotFound(id string) *cplxerror.Error {
	return NotFound(ModuleHistory, "get", id)
}

// ServerProtocolError reports an undecodable or invalid client message
func ServerProtocolError(reason string, cause error) *cplxerror.Error {
	return NewErrorBuilder(ModuleServer).
		Operation("decode").
		Message("protocol error: " + reason).
		Cause(cause).
		Code(cplxerror.CodeProtocolError).
		Build()
}

// ServerMessageTooLarge reports a client message above the read limit
func ServerMessageTooLarge(limit int64) *cplxerror.Error {
	return NewErrorBuilder(ModuleServer).
		Operation("read").
		Message(fmt.Sprintf("message exceeds %d bytes", limit)).
		Code(cplxerror.CodeMessageTooLarge).
		Detail("limit", limit).
		Build()
}

// ConfigInvalid reports a configuration value that fails validation
func ConfigInvalid(key string, value interface{}, reason string) *cplxerror.Error {
	return NewErrorBuilder(ModuleConfig).
		Operation("validate").
		Message(fmt.Sprintf("invalid configuration %s=%v: %s", key, value, reason)).
		Code(cplxerror.CodeInvalidConfig).
		Detail("key", key).
		Detail("value", value).
		Detail("reason", reason).
		Build()
}
