// File: assertx_test.go
// Title: Unit Tests for Operand Assertions
// Description: Tests the validators on accepted operand types and the error
//              codes and positions reported by the Require helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-25
// Modified: 2026-10-09

package assertx

import (
	"math"
	"testing"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/core/validation"
	"github.com/msto63/cplx/foundation/utils/complexx"
)

var (
	nan    = complexx.New(math.NaN(), 1)
	inf    = complexx.New(1, math.Inf(-1))
	finite = complexx.New(3, 4)
)

func TestToComplex(t *testing.T) {
	z := complexx.New(1, -2)

	tests := []struct {
		name  string
		value interface{}
		want  complexx.Complex
		ok    bool
	}{
		{"Complex", z, z, true},
		{"pointer", &z, z, true},
		{"complex128", complex(1, -2), z, true},
		{"complex64", complex64(complex(1, -2)), z, true},
		{"int", 7, complexx.FromReal(7), true},
		{"float64", 0.5, complexx.FromReal(0.5), true},
		{"string", "1+2i", complexx.Complex{}, false},
		{"struct", struct{}{}, complexx.Complex{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToComplex(tt.value)
			if ok != tt.ok || (ok && !got.Equal(tt.want)) {
				t.Errorf("ToComplex(%v) = %v, %v; want %v, %v", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator validation.Validator
		value     interface{}
		code      string
	}{
		{"NotNaN passes finite", NotNaN(), finite, ""},
		{"NotNaN passes infinity", NotNaN(), inf, ""},
		{"NotNaN rejects NaN", NotNaN(), nan, validation.CodeNaN},
		{"Finite rejects infinity", Finite(), inf, validation.CodeInfinite},
		{"Finite rejects NaN", Finite(), nan, validation.CodeInfinite},
		{"NonZero rejects zero", NonZero(), complexx.Zero, validation.CodeZero},
		{"NonZero rejects negative zero", NonZero(), complexx.New(math.Copysign(0, -1), 0), validation.CodeZero},
		{"NonZero passes i", NonZero(), complexx.I, ""},
		{"magnitude on the bound", MagnitudeAtMost(5), finite, ""},
		{"magnitude above the bound", MagnitudeAtMost(4.99), finite, validation.CodeMagnitude},
		{"magnitude of NaN", MagnitudeAtMost(10), nan, validation.CodeMagnitude},
		{"real operand", Finite(), 2.5, ""},
		{"missing operand", Finite(), nil, validation.CodeRequired},
		{"wrong type", Finite(), "3", validation.CodeType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.validator.Validate(tt.value)
			if tt.code == "" {
				if !r.Valid {
					t.Errorf("Validate(%v) = %v, want pass", tt.value, r)
				}
				return
			}
			if r.Valid || !r.HasError(tt.code) {
				t.Errorf("Validate(%v) = %v, want %s", tt.value, r, tt.code)
			}
		})
	}
}

func TestRequireHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  cplxerror.Code
		index int
	}{
		{"finite arguments", RequireFinite(finite, complexx.One), "", 0},
		{"NaN second", RequireNotNaN(finite, nan), cplxerror.CodeDegenerateValue, 1},
		{"infinite first", RequireFinite(inf, nan), cplxerror.CodeDegenerateValue, 0},
		{"zero divisor", RequireNonZero(complexx.One, complexx.I, complexx.Zero), cplxerror.CodeDivisionByZero, 2},
		{"outside disc", RequireMagnitudeAtMost(1, complexx.I, finite), cplxerror.CodeValueOutOfRange, 1},
		{"no arguments", RequireNonZero(), "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code == "" {
				if tt.err != nil {
					t.Errorf("unexpected error: %v", tt.err)
				}
				return
			}
			if tt.err == nil {
				t.Fatalf("expected %s error", tt.code)
			}
			if !cplxerror.HasCode(tt.err, tt.code) {
				t.Errorf("code = %s, want %s", cplxerror.GetCode(tt.err), tt.code)
			}
			if !IsAssertionError(tt.err) {
				t.Errorf("error not attributed to assertx: %v", errors.ExtractDetails(tt.err))
			}
			if got := errors.ExtractDetails(tt.err)["index"]; got != tt.index {
				t.Errorf("index = %v, want %d", got, tt.index)
			}
		})
	}
}

func TestRequireResult(t *testing.T) {
	if err := RequireResult("div", finite); err != nil {
		t.Errorf("RequireResult(finite) = %v", err)
	}

	err := RequireResult("div", complexx.Div(complexx.One, complexx.Zero))
	if !cplxerror.HasCode(err, cplxerror.CodeDegenerateValue) {
		t.Errorf("RequireResult(1/0) = %v, want DEGENERATE_VALUE", err)
	}
	if errors.ExtractOperation(err) != "div" {
		t.Errorf("operation = %q, want div", errors.ExtractOperation(err))
	}
}

func TestOperandsChain(t *testing.T) {
	bounded := Operands(10)
	if bounded.Length() != 2 {
		t.Fatalf("Operands(10) has %d validators, want 2", bounded.Length())
	}
	if r := bounded.Validate(complexx.New(20, 0)); !r.HasError(validation.CodeMagnitude) {
		t.Errorf("Operands(10) on 20 = %v", r)
	}
	if r := bounded.Validate(inf); len(r.Errors) != 1 || !r.HasError(validation.CodeInfinite) {
		t.Errorf("Operands(10) on infinity = %v, want single finite failure", r)
	}
	if unbounded := Operands(0); unbounded.Length() != 1 {
		t.Errorf("Operands(0) has %d validators, want 1", unbounded.Length())
	}
}
