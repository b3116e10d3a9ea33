// File: doc.go
// Title: Package Documentation for complexx
// Description: Package complexx provides double-precision complex arithmetic
//              with a complete set of elementary, trigonometric, hyperbolic and
//              composite functions over an immutable value type.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-14
// Modified: 2026-10-05
//
// Change History:
// - 2026-09-14 v0.1.0: Initial value type, arithmetic and trigonometry
// - 2026-10-05 v0.2.0: Hyperbolic family, parsing, documentation

// Package complexx provides complex-number mathematics on float64 pairs.
//
// Overview
//
// The package is built around the Complex value type. A Complex is a plain
// pair of float64 fields; all functions take values and return new values, so
// a Complex can be shared freely between goroutines. No function in this
// package mutates its arguments and none of them returns an error: invalid
// inputs follow IEEE-754 semantics and show up as NaN or infinite components.
//
// Callers that want to reject such values at their own boundary use the
// predicates IsNaN, IsInfinite and IsDegenerate, or the validators in package
// assertx.
//
// Function Families
//
//   - Arithmetic: Add, Sub, SubRev, Mul, Div, DivRev, Reciprocal, Conjugate, ...
//   - Powers and logarithms: Pow, PowReal, PowInt, Sqrt, Cbrt, NthRoot, Root,
//     Exp, Exp2, Exp10, Log, Log2, Log10, LogBase
//   - Means and norms: HarmonicMean, GeometricMean, AsteroidMean, QuadraticMean,
//     CubicMean (plus the unnormalized *Wrong variants), Manhattan, Chebyshev,
//     MinNorm, PNorm
//   - Rounding and modulo: Floor, Ceil, Round, Trunc, Mod, Remainder,
//     NearestRemainder, ModReal
//   - Interpolation: Lerp, Clerp, CopyMagnitude
//   - Trigonometry: Sin, Cos, Tan, Sec, Csc, Cot, Asin, Acos, Atan
//   - Hyperbolic: Sinh, Cosh, Tanh, Sech, Csch, Coth, Asinh, Acosh, Atanh
//   - Composite: Normal, LogNormal, Butterfly, NthFibonacci
//
// Zero Handling
//
// Pow, PowReal, NthRoot, Root and LogBase return exactly (0, 0) when their
// first operand is zero. Computing them through exp(y·log(0)) would otherwise
// turn log(0) = -Inf into NaN components.
//
// Division by a value of zero magnitude is not special-cased: the components
// become NaN or ±Inf as ordinary float64 division dictates.
//
// Branch Cuts
//
// Asin, Acos and Atan return principal values. On the branch cuts the
// discriminant of the defining identity becomes a negative real number and
// its square root or logarithm is chosen with an explicit sign rule, so
// asin(2+0i) = π/2 + 1.3169...i and asin(2-0i) = π/2 - 1.3169...i.
//
// Usage Examples
//
//	a := complexx.New(1, 2)
//	b := complexx.New(3, 4)
//
//	sum := complexx.Add(a, b)          // (4, 6)
//	product := complexx.Mul(a, b)      // (-5, 10)
//	magnitude := b.Magnitude()         // 5
//
//	z, err := complexx.Parse("0.5-1.25i")
//	if err != nil {
//	    // errors carry code INVALID_FORMAT
//	}
//	fmt.Print(complexx.Sin(z))         // +...e-01/-...e+00<TAB>
//
// Text Format
//
// String renders both components with %+.16e, separated by a slash and
// followed by a tab character. Parse accepts this form back, along with the
// algebraic form a+bi and the tuple form (a, b).
//
// See Also
//
//   - Package assertx: validators for complex inputs
//   - math/cmplx: the standard library's complex128 functions
package complexx
