// File: modulo.go
// Title: Rounding, Modulo and Remainder
// Description: Component-wise rounding and the Gaussian-integer based modulo
//              and remainder variants. The variants differ only in how the
//              quotient a/b is reduced to a Gaussian integer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.1.0: Initial rounding and modulo functions

package complexx

import "math"

// Floor applies math.Floor to both components
func Floor(z Complex) Complex {
	return Complex{math.Floor(z.Real), math.Floor(z.Imag)}
}

// Ceil applies math.Ceil to both components
func Ceil(z Complex) Complex {
	return Complex{math.Ceil(z.Real), math.Ceil(z.Imag)}
}

// Round applies math.Round (half away from zero) to both components
func Round(z Complex) Complex {
	return Complex{math.Round(z.Real), math.Round(z.Imag)}
}

// Trunc applies math.Trunc to both components
func Trunc(z Complex) Complex {
	return Complex{math.Trunc(z.Real), math.Trunc(z.Imag)}
}

// Mod returns a - b·floor(a/b). For real operands this matches the
// floored modulo: the result takes the sign of b.
func Mod(a, b Complex) Complex {
	return Sub(a, Mul(b, Floor(Div(a, b))))
}

// Remainder returns a - b·trunc(a/b). For real operands the result takes the
// sign of a, like math.Mod.
func Remainder(a, b Complex) Complex {
	return Sub(a, Mul(b, Trunc(Div(a, b))))
}

// NearestRemainder returns a - b·round(a/b), the Gaussian analogue of the
// IEEE remainder. The result never exceeds |b|/√2 in magnitude.
func NearestRemainder(a, b Complex) Complex {
	return Sub(a, Mul(b, Round(Div(a, b))))
}

// ModReal reduces both components into [0, m) for a positive real modulus
func ModReal(z Complex, m float64) Complex {
	return Complex{floorMod(z.Real, m), floorMod(z.Imag, m)}
}

// floorMod is math.Mod adjusted to the sign of m
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}
