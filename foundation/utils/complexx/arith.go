// File: arith.go
// Title: Core Complex Arithmetic
// Description: Side-effect-free arithmetic over Complex values: the four basic
//              operations with their reversed-operand and real-scalar variants,
//              negation, conjugation and reciprocal.
// Author: msto63
// Version: v0.1.1
// Created: 2026-09-14
// Modified: 2026-09-30
//
// Change History:
// - 2026-09-14 v0.1.0: Initial arithmetic functions
// - 2026-09-30 v0.1.1: Division computed directly instead of through Reciprocal

package complexx

// Add returns lhs + rhs
func Add(lhs, rhs Complex) Complex {
	return Complex{lhs.Real + rhs.Real, lhs.Imag + rhs.Imag}
}

// AddReal returns lhs + rhs for a real rhs
func AddReal(lhs Complex, rhs float64) Complex {
	return Complex{lhs.Real + rhs, lhs.Imag}
}

// Sub returns lhs - rhs
func Sub(lhs, rhs Complex) Complex {
	return Complex{lhs.Real - rhs.Real, lhs.Imag - rhs.Imag}
}

// SubRev returns rhs - lhs
func SubRev(lhs, rhs Complex) Complex {
	return Sub(rhs, lhs)
}

// SubReal returns lhs - rhs for a real rhs
func SubReal(lhs Complex, rhs float64) Complex {
	return Complex{lhs.Real - rhs, lhs.Imag}
}

// Mul returns lhs · rhs
func Mul(lhs, rhs Complex) Complex {
	return Complex{
		lhs.Real*rhs.Real - lhs.Imag*rhs.Imag,
		lhs.Real*rhs.Imag + lhs.Imag*rhs.Real,
	}
}

// MulReal returns lhs · rhs for a real rhs
func MulReal(lhs Complex, rhs float64) Complex {
	return Complex{lhs.Real * rhs, lhs.Imag * rhs}
}

// MulI returns z · i
func MulI(z Complex) Complex {
	return Complex{-z.Imag, z.Real}
}

// Div returns lhs / rhs.
// A divisor of zero magnitude yields NaN or infinite components, never a panic.
func Div(lhs, rhs Complex) Complex {
	denom := rhs.MagnitudeSquared()
	return Complex{
		(lhs.Real*rhs.Real + lhs.Imag*rhs.Imag) / denom,
		(lhs.Imag*rhs.Real - lhs.Real*rhs.Imag) / denom,
	}
}

// DivRev returns rhs / lhs
func DivRev(lhs, rhs Complex) Complex {
	return Div(rhs, lhs)
}

// DivReal returns lhs / rhs for a real rhs
func DivReal(lhs Complex, rhs float64) Complex {
	return Complex{lhs.Real / rhs, lhs.Imag / rhs}
}

// Negate returns -z
func Negate(z Complex) Complex {
	return Complex{-z.Real, -z.Imag}
}

// Conjugate returns the complex conjugate of z
func Conjugate(z Complex) Complex {
	return Complex{z.Real, -z.Imag}
}

// Reciprocal returns 1 / z
func Reciprocal(z Complex) Complex {
	denom := z.MagnitudeSquared()
	return Complex{z.Real / denom, -z.Imag / denom}
}

// Square returns z²
func Square(z Complex) Complex {
	return Complex{
		z.Real*z.Real - z.Imag*z.Imag,
		2 * z.Real * z.Imag,
	}
}

// Cube returns z³
func Cube(z Complex) Complex {
	return Mul(Square(z), z)
}

// Magnitude returns |z|
func Magnitude(z Complex) float64 {
	return z.Magnitude()
}

// MagnitudeSquared returns |z|²
func MagnitudeSquared(z Complex) float64 {
	return z.MagnitudeSquared()
}

// Argument returns the phase of z in (-π, π]
func Argument(z Complex) float64 {
	return z.Argument()
}
