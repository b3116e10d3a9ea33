// File: assertx.go
// Title: Assertions on Complex Operands
// Description: Validators and Require helpers that check complex operands
//              before they reach the numeric kernel. The kernel itself never
//              fails; callers that want errors for NaN, infinite or zero
//              operands opt in through this package.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-25
// Modified: 2026-10-09
//
// Change History:
// - 2026-09-25 v0.1.0: NotNaN, Finite and NonZero validators
// - 2026-10-09 v0.2.0: Magnitude bound, result checks, indexed Require errors

package assertx

import (
	"fmt"
	"math"

	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/core/validation"
	"github.com/msto63/cplx/foundation/utils/complexx"
)

// Check names reported as the failing operation
const (
	CheckNotNaN          = "not_nan"
	CheckFinite          = "finite"
	CheckNonZero         = "non_zero"
	CheckMagnitudeAtMost = "magnitude_at_most"
)

// ToComplex converts the values validators accept into a Complex.
// Accepted are Complex, *Complex, complex128, complex64 and real numbers.
func ToComplex(value interface{}) (complexx.Complex, bool) {
	switch v := value.(type) {
	case complexx.Complex:
		return v, true
	case *complexx.Complex:
		if v == nil {
			return complexx.Complex{}, false
		}
		return *v, true
	case complex128:
		return complexx.FromComplex128(v), true
	case complex64:
		return complexx.FromComplex128(complex128(v)), true
	case string:
		// numeric strings belong to complexx.Parse, not to validation
		return complexx.Complex{}, false
	}
	f, err := validation.ConvertToFloat64(value)
	if err != nil {
		return complexx.Complex{}, false
	}
	return complexx.FromReal(f), true
}

// predicate builds a validator from a check on a converted operand
func predicate(code, message string, ok func(complexx.Complex) bool) validation.ValidatorFunc {
	return func(value interface{}) validation.ValidationResult {
		if validation.IsNilOrEmpty(value) {
			return validation.NewValidationError(validation.CodeRequired, "operand is missing")
		}
		z, converted := ToComplex(value)
		if !converted {
			return validation.NewValidationError(validation.CodeType,
				fmt.Sprintf("%T is not a complex operand", value))
		}
		if !ok(z) {
			result := validation.NewValidationError(code, message)
			result.Errors[0].Value = z.Text('g', -1)
			return result
		}
		return validation.NewValidationResult()
	}
}

// NotNaN fails for operands with a NaN component
func NotNaN() validation.Validator {
	return predicate(validation.CodeNaN, "operand is NaN", func(z complexx.Complex) bool {
		return !z.IsNaN()
	})
}

// Finite fails for operands with a NaN or infinite component
func Finite() validation.Validator {
	return predicate(validation.CodeInfinite, "operand is not finite", func(z complexx.Complex) bool {
		return !z.IsDegenerate()
	})
}

// NonZero fails for the zero operand, including signed zeros
func NonZero() validation.Validator {
	return predicate(validation.CodeZero, "operand is zero", func(z complexx.Complex) bool {
		return !z.IsZero()
	})
}

// MagnitudeAtMost fails for operands whose magnitude exceeds limit.
// A NaN magnitude always fails.
func MagnitudeAtMost(limit float64) validation.Validator {
	message := fmt.Sprintf("magnitude exceeds %g", limit)
	return predicate(validation.CodeMagnitude, message, func(z complexx.Complex) bool {
		m := z.Magnitude()
		return !math.IsNaN(m) && m <= limit
	})
}

// Operands returns the chain strict evaluation runs over every argument:
// finite, and bounded by maxMagnitude when it is positive
func Operands(maxMagnitude float64) *validation.ValidatorChain {
	chain := validation.NewValidatorChain("operands").
		Add(Finite()).
		StopOnFirstError(true)
	if maxMagnitude > 0 {
		chain.Add(MagnitudeAtMost(maxMagnitude))
	}
	return chain
}

// Check runs v over every argument and returns an error for the first one
// that fails. The error carries the argument position and the validation
// code mapped onto the core error codes.
func Check(check string, v validation.Validator, args ...complexx.Complex) error {
	for i, z := range args {
		result := v.Validate(z)
		if result.Valid {
			continue
		}
		first := result.FirstError()
		return errors.AssertxFailed(check, i, z).
			WithCode(validation.ErrorCode(first.Code)).
			WithDetail("reason", first.Message)
	}
	return nil
}

// RequireNotNaN fails if any argument has a NaN component
func RequireNotNaN(args ...complexx.Complex) error {
	return Check(CheckNotNaN, NotNaN(), args...)
}

// RequireFinite fails if any argument is NaN or infinite
func RequireFinite(args ...complexx.Complex) error {
	return Check(CheckFinite, Finite(), args...)
}

// RequireNonZero fails if any argument is zero
func RequireNonZero(args ...complexx.Complex) error {
	return Check(CheckNonZero, NonZero(), args...)
}

// RequireMagnitudeAtMost fails if any argument lies outside the disc of
// radius limit
func RequireMagnitudeAtMost(limit float64, args ...complexx.Complex) error {
	return Check(CheckMagnitudeAtMost, MagnitudeAtMost(limit), args...)
}

// RequireResult reports a degenerate value produced by operation
func RequireResult(operation string, z complexx.Complex) error {
	if z.IsDegenerate() {
		return errors.ComplexxDegenerate(operation, z)
	}
	return nil
}

// IsAssertionError reports whether err was produced by this package
func IsAssertionError(err error) bool {
	return errors.IsModuleError(err, errors.ModuleAssertx)
}

