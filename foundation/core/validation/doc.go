// File: doc.go
// Title: Validation Framework Package Documentation
// Description: Package overview for the validation framework.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-24
// Modified: 2026-10-08
//
// Change History:
// - 2026-09-24 v0.1.0: Initial framework
// - 2026-10-08 v0.2.0: Typed context keys, degenerate-value codes

/*
Package validation provides the framework the cplx validators are built on:
the Validator interface, structured results and the composition types
ValidatorChain, ConditionalValidator and ParallelValidator.

The package carries no domain checks. The complex-value checks used by strict
evaluation (NaN, infinity, zero divisors, magnitude bounds) live in
utils/assertx and are composed with the types here:

	chain := validation.NewValidatorChain("divisor").
		Add(assertx.NotNaN()).
		Add(assertx.NonZero()).
		StopOnFirstError(true)

	if err := chain.Validate(z).ToError(); err != nil {
		return err
	}

ToError maps every validation code onto a core/error code, so callers can
test failures with cplxerror.HasCode. Degenerate operands report
CodeDegenerateValue, zero divisors CodeDivisionByZero.

Request and session ids stored with WithRequestID and WithSessionID are copied
into the context of results produced by ValidatorFunc.
*/
package validation
