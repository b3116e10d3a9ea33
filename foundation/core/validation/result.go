// File: result.go
// Title: Validation Results and Validator Interface
// Description: Defines the Validator interface, the ValidationResult and
//              ValidationError types and their conversion into structured
//              cplx errors. Concrete validators live with their domain
//              (see utils/assertx for the complex-value checks).
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-24
// Modified: 2026-10-08
//
// Change History:
// - 2026-09-24 v0.1.0: Results, error codes and validator interface
// - 2026-10-08 v0.2.0: Typed context keys, numeric codes for degenerate values

package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

// Validation codes carried by ValidationError.Code
const (
	CodeRequired = "VALIDATION_REQUIRED"
	CodeFormat   = "VALIDATION_FORMAT"
	CodeRange    = "VALIDATION_RANGE"
	CodeType     = "VALIDATION_TYPE"
	CodeCustom   = "VALIDATION_CUSTOM"

	// Numeric checks on complex operands
	CodeNaN       = "VALIDATION_NAN"
	CodeInfinite  = "VALIDATION_INFINITE"
	CodeZero      = "VALIDATION_ZERO"
	CodeMagnitude = "VALIDATION_MAGNITUDE"
)

// errorCodes maps validation codes onto the error codes of core/error
var errorCodes = map[string]cplxerror.Code{
	CodeRequired:  cplxerror.CodeRequiredField,
	CodeFormat:    cplxerror.CodeInvalidFormat,
	CodeRange:     cplxerror.CodeValueOutOfRange,
	CodeType:      cplxerror.CodeInvalidInput,
	CodeCustom:    cplxerror.CodeValidationFailed,
	CodeNaN:       cplxerror.CodeDegenerateValue,
	CodeInfinite:  cplxerror.CodeDegenerateValue,
	CodeZero:      cplxerror.CodeDivisionByZero,
	CodeMagnitude: cplxerror.CodeValueOutOfRange,
}

// ErrorCode returns the core error code a validation code is reported under
func ErrorCode(code string) cplxerror.Code {
	if c, ok := errorCodes[code]; ok {
		return c
	}
	return cplxerror.CodeValidationFailed
}

// Validator is implemented by everything that checks a single value
type Validator interface {
	Validate(value interface{}) ValidationResult
	ValidateWithContext(ctx context.Context, value interface{}) ValidationResult
}

// ValidatorFunc adapts a plain function to the Validator interface
type ValidatorFunc func(value interface{}) ValidationResult

// Validate implements Validator
func (f ValidatorFunc) Validate(value interface{}) ValidationResult {
	return f(value)
}

// ValidateWithContext implements Validator. The request and session ids
// stored in ctx are copied into the result context.
func (f ValidatorFunc) ValidateWithContext(ctx context.Context, value interface{}) ValidationResult {
	result := f(value)
	if ctx == nil {
		return result
	}
	if id := RequestID(ctx); id != "" {
		result.WithContext("request_id", id)
	}
	if id := SessionID(ctx); id != "" {
		result.WithContext("session_id", id)
	}
	return result
}

type contextKey int

const (
	requestIDKey contextKey = iota
	sessionIDKey
	chainNameKey
)

// WithRequestID returns a context carrying the protocol request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithSessionID returns a context carrying the calculator session id
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// RequestID returns the request id stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// SessionID returns the session id stored in ctx, if any
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// ChainName returns the name of the chain a validator is running in
func ChainName(ctx context.Context) string {
	name, _ := ctx.Value(chainNameKey).(string)
	return name
}

// ValidationResult is the outcome of one or more validators
type ValidationResult struct {
	Valid   bool                   `json:"valid"`
	Errors  []ValidationError      `json:"errors,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ValidationError describes a single failed check
type ValidationError struct {
	Code     string                 `json:"code"`
	Field    string                 `json:"field,omitempty"`
	Message  string                 `json:"message"`
	Value    interface{}            `json:"value,omitempty"`
	Expected interface{}            `json:"expected,omitempty"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// NewValidationResult returns a passing result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// NewValidationError returns a failed result with a single error
func NewValidationError(code, message string) ValidationResult {
	return ValidationResult{
		Errors: []ValidationError{{Code: code, Message: message}},
	}
}

// NewFieldError returns a failed result for a named field
func NewFieldError(code, field, message string, value interface{}) ValidationResult {
	return ValidationResult{
		Errors: []ValidationError{{Code: code, Field: field, Message: message, Value: value}},
	}
}

// AddError records a failure on r
func (r *ValidationResult) AddError(code, message string) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message})
	return r
}

// AddFieldError records a failure for a named field on r
func (r *ValidationResult) AddFieldError(code, field, message string, value interface{}) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Field: field, Message: message, Value: value})
	return r
}

// WithContext attaches a context value to r
func (r *ValidationResult) WithContext(key string, value interface{}) *ValidationResult {
	if r.Context == nil {
		r.Context = make(map[string]interface{})
	}
	r.Context[key] = value
	return r
}

// FirstError returns the first failure, or nil for a passing result
func (r ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// Messages returns the failure messages in order
func (r ValidationResult) Messages() []string {
	messages := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		messages[i] = e.Message
	}
	return messages
}

// Codes returns the failure codes in order
func (r ValidationResult) Codes() []string {
	codes := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		codes[i] = e.Code
	}
	return codes
}

// HasError reports whether r contains a failure with the given code
func (r ValidationResult) HasError(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ToError converts a failed result into a *cplxerror.Error built from its
// first failure. A passing result yields nil.
func (r ValidationResult) ToError() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return cplxerror.New("validation failed").WithCode(cplxerror.CodeValidationFailed)
	}

	first := r.Errors[0]
	err := cplxerror.New(first.Message).
		WithCode(ErrorCode(first.Code)).
		WithDetail("validation_code", first.Code)

	if first.Field != "" {
		err.WithDetail("field", first.Field)
	}
	if first.Value != nil {
		err.WithDetail("value", fmt.Sprint(first.Value))
	}
	if first.Expected != nil {
		err.WithDetail("expected", first.Expected)
	}
	for k, v := range first.Context {
		err.WithDetail(k, v)
	}
	if len(r.Errors) > 1 {
		err.WithDetail("total_errors", len(r.Errors))
		err.WithDetail("messages", r.Messages())
	}
	return err
}

// String summarizes the result on one line
func (r ValidationResult) String() string {
	if r.Valid {
		return "ValidationResult{valid: true}"
	}
	parts := []string{"ValidationResult{valid: false", fmt.Sprintf("errors: %d", len(r.Errors))}
	if first := r.FirstError(); first != nil {
		parts = append(parts, "first: "+first.Message)
		if first.Field != "" {
			parts = append(parts, "field: "+first.Field)
		}
	}
	return strings.Join(parts, ", ") + "}"
}

// String summarizes the error on one line
func (e ValidationError) String() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, "field:"+e.Field)
	}
	parts = append(parts, "code:"+e.Code, "message:"+e.Message)
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value:%v", e.Value))
	}
	if e.Expected != nil {
		parts = append(parts, fmt.Sprintf("expected:%v", e.Expected))
	}
	return "ValidationError{" + strings.Join(parts, ", ") + "}"
}

// Combine merges results; the combination is valid only if all inputs are.
// Context keys from later results overwrite earlier ones.
func Combine(results ...ValidationResult) ValidationResult {
	combined := NewValidationResult()
	for _, result := range results {
		if !result.Valid {
			combined.Valid = false
			combined.Errors = append(combined.Errors, result.Errors...)
		}
		keys := make([]string, 0, len(result.Context))
		for k := range result.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			combined.WithContext(k, result.Context[k])
		}
	}
	return combined
}
