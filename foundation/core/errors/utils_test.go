// File: utils_test.go
// Title: Module Error Constructor Tests
// Description: Tests for the error builder, the generic constructors and the
//              module-specific helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-23
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-23 v0.1.0: Builder and generic constructor tests
// - 2026-10-02 v0.2.0: Module helper tests

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestErrorBuilder(t *testing.T) {
	t.Run("basic error creation", func(t *testing.T) {
		err := NewErrorBuilder("testmodule").
			Operation("test_op").
			Message("test error").
			Detail("key", "value").
			Severity(cplxerror.SeverityHigh).
			Build()

		details := err.Details()
		if details["module"] != "testmodule" {
			t.Errorf("module = %v, want testmodule", details["module"])
		}
		if details["operation"] != "test_op" {
			t.Errorf("operation = %v, want test_op", details["operation"])
		}
		if details["key"] != "value" {
			t.Errorf("key = %v, want value", details["key"])
		}
		if err.Severity() != cplxerror.SeverityHigh {
			t.Errorf("Severity() = %v, want high", err.Severity())
		}
		if err.Operation() != "testmodule.test_op" {
			t.Errorf("Operation() = %q, want testmodule.test_op", err.Operation())
		}
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewErrorBuilder("testmodule").
			Operation("test_op").
			Cause(cause).
			Build()

		if !errors.Is(err, cause) {
			t.Error("error should wrap the cause")
		}
	})

	t.Run("auto-generated message", func(t *testing.T) {
		err := NewErrorBuilder("testmodule").Operation("test_op").Build()

		if err.Error() != "testmodule.test_op failed" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("code derived from operation", func(t *testing.T) {
		tests := []struct {
			module    string
			operation string
			want      cplxerror.Code
		}{
			{ModuleComplexx, "parse", cplxerror.CodeInvalidFormat},
			{ModuleComplexx, "div", cplxerror.CodeDivisionByZero},
			{ModuleComplexx, "log", cplxerror.CodeDegenerateValue},
			{ModuleCalc, "lookup", cplxerror.CodeUnknownFunction},
			{ModuleCalc, "check_args", cplxerror.CodeArityMismatch},
			{ModuleCalc, "evaluate", cplxerror.CodeEvaluationFailed},
			{ModuleConfig, "load", cplxerror.CodeMissingConfig},
			{ModuleHistory, "record", cplxerror.CodeStorageError},
			{ModuleHistory, "get", cplxerror.CodeNotFound},
			{ModuleServer, "start", cplxerror.CodeServiceInitialization},
			{ModuleServer, "decode", cplxerror.CodeProtocolError},
			{"other", "anything", cplxerror.CodeInternal},
		}

		for _, tt := range tests {
			err := NewErrorBuilder(tt.module).Operation(tt.operation).Build()
			if err.Code() != tt.want {
				t.Errorf("%s.%s code = %v, want %v", tt.module, tt.operation, err.Code(), tt.want)
			}
		}
	})
}

func TestGenericConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *cplxerror.Error
		code     cplxerror.Code
		detail   string
		expected interface{}
	}{
		{"invalid input", InvalidInput(ModuleCalc, "evaluate", "x", "complex"), cplxerror.CodeInvalidInput, "expected", "complex"},
		{"invalid format", InvalidFormat(ModuleComplexx, "3+4k", "a+bi"), cplxerror.CodeInvalidFormat, "expected_format", "a+bi"},
		{"invalid protocol format", InvalidFormat(ModuleServer, "{", "json"), cplxerror.CodeProtocolError, "input", "{"},
		{"validation failed", ValidationFailed(ModuleConfig, "precision", -1, "must be positive"), cplxerror.CodeValidationFailed, "reason", "must be positive"},
		{"out of range", OutOfRange(ModuleConfig, "set", 150, 0, 100), cplxerror.CodeValueOutOfRange, "value", 150},
		{"not found", NotFound(ModuleHistory, "get", "id-1"), cplxerror.CodeNotFound, "identifier", "id-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", tt.err.Code(), tt.code)
			}
			if got := tt.err.Details()[tt.detail]; got != tt.expected {
				t.Errorf("Details()[%q] = %v, want %v", tt.detail, got, tt.expected)
			}
		})
	}
}

func TestOperationFailed(t *testing.T) {
	cause := errors.New("database is locked")
	err := OperationFailed(ModuleHistory, "record", cause)

	if !errors.Is(err, cause) {
		t.Error("error should wrap the cause")
	}
	if err.Code() != cplxerror.CodeStorageError {
		t.Errorf("Code() = %v, want STORAGE_ERROR", err.Code())
	}
	if !IsModuleOperation(err, ModuleHistory, "record") {
		t.Error("IsModuleOperation() = false")
	}
}

func TestExtraction(t *testing.T) {
	err := fmt.Errorf("outer: %w", InvalidInput("testmodule", "test_op", "input", "expected"))

	if got := ExtractModule(err); got != "testmodule" {
		t.Errorf("ExtractModule() = %q", got)
	}
	if got := ExtractOperation(err); got != "test_op" {
		t.Errorf("ExtractOperation() = %q", got)
	}
	if !IsModuleError(err, "testmodule") || IsModuleError(err, "other") {
		t.Error("IsModuleError() mismatch")
	}
	if IsModuleOperation(err, "testmodule", "wrong_op") {
		t.Error("IsModuleOperation() matched wrong operation")
	}
	if ExtractDetails(errors.New("plain")) != nil {
		t.Error("ExtractDetails() of a plain error should be nil")
	}
}

func TestStandardAndModuleError(t *testing.T) {
	err := StandardError(ModuleCalc, "lookup", "no such function")
	if err.Code() != cplxerror.CodeUnknownFunction {
		t.Errorf("Code() = %v", err.Code())
	}

	cause := errors.New("boom")
	wrapped := ModuleError(ModuleServer, "listen", cause, map[string]interface{}{"addr": ":8080"})
	if !errors.Is(wrapped, cause) || wrapped.Details()["addr"] != ":8080" {
		t.Errorf("ModuleError() = %v, details %v", wrapped, wrapped.Details())
	}
	if wrapped.Code() != cplxerror.CodeServiceInitialization {
		t.Errorf("Code() = %v", wrapped.Code())
	}
}

func TestModuleHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     *cplxerror.Error
		code    cplxerror.Code
		module  string
		message string
	}{
		{"complexx format", ComplexxInvalidFormat("3+4k"), cplxerror.CodeInvalidFormat, ModuleComplexx, `"3+4k"`},
		{"complexx degenerate", ComplexxDegenerate("log", stringer("NaN/NaN\t")), cplxerror.CodeDegenerateValue, ModuleComplexx, "non-finite"},
		{"assertx", AssertxFailed("finite", 1, stringer("+Inf/0")), cplxerror.CodeValidationFailed, ModuleAssertx, "argument 2"},
		{"unknown function", CalcUnknownFunction("asinn", []string{"asin"}), cplxerror.CodeUnknownFunction, ModuleCalc, "asinn"},
		{"arity", CalcArityMismatch("pow", 2, 1), cplxerror.CodeArityMismatch, ModuleCalc, "expects 2"},
		{"parse", CalcParseError("sin(", "missing )"), cplxerror.CodeInvalidFormat, ModuleCalc, "missing )"},
		{"storage", HistoryStorageFailed("record", errors.New("locked")), cplxerror.CodeStorageError, ModuleHistory, "locked"},
		{"closed", HistoryClosed("recent"), cplxerror.CodeStorageClosed, ModuleHistory, "closed"},
		{"history not found", HistoryNotFound("abc"), cplxerror.CodeNotFound, ModuleHistory, "abc"},
		{"protocol", ServerProtocolError("unknown type", nil), cplxerror.CodeProtocolError, ModuleServer, "unknown type"},
		{"too large", ServerMessageTooLarge(4096), cplxerror.CodeMessageTooLarge, ModuleServer, "4096"},
		{"config", ConfigInvalid("calc.precision", -1, "must be positive"), cplxerror.CodeInvalidConfig, ModuleConfig, "calc.precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", tt.err.Code(), tt.code)
			}
			if got := ExtractModule(tt.err); got != tt.module {
				t.Errorf("module = %q, want %q", got, tt.module)
			}
			if !strings.Contains(tt.err.Error(), tt.message) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.message)
			}
		})
	}

	if got := CalcUnknownFunction("x", nil).Details()["suggestions"]; got != nil {
		t.Errorf("suggestions without candidates = %v, want absent", got)
	}
	if got := ComplexxDegenerate("log", stringer("NaN/NaN\t")).Details()["value"]; got != "NaN/NaN" {
		t.Errorf("value detail = %q, want trimmed", got)
	}
}

func TestValidateRequired(t *testing.T) {
	var nilPtr *int

	tests := []struct {
		name      string
		value     interface{}
		wantError bool
	}{
		{"valid string", "sin", false},
		{"empty string", "", true},
		{"blank string", "  \t", true},
		{"nil value", nil, true},
		{"nil pointer", nilPtr, true},
		{"valid slice", []string{"a"}, false},
		{"empty slice", []string{}, true},
		{"empty map", map[string]int{}, true},
		{"zero int", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired("testmodule", "testfield", tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateRequired() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		min, max  interface{}
		wantError bool
		wantCode  cplxerror.Code
	}{
		{"in range", 16, 1, 17, false, ""},
		{"below range", 0, 1, 17, true, cplxerror.CodeValueOutOfRange},
		{"above range", 18.5, 1.0, 17.0, true, cplxerror.CodeValueOutOfRange},
		{"exact bounds", int64(17), 1, 17, false, ""},
		{"non-numeric", "x", 1, 17, true, cplxerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("testmodule", "precision", tt.value, tt.min, tt.max)
			if (err != nil) != tt.wantError {
				t.Fatalf("ValidateRange() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && cplxerror.GetCode(err) != tt.wantCode {
				t.Errorf("code = %v, want %v", cplxerror.GetCode(err), tt.wantCode)
			}
		})
	}
}
