// File: special.go
// Title: Statistical and Special Functions
// Description: Compositions of the arithmetic and transcendental primitives:
//              normal and log-normal densities, the butterfly curve and the
//              Fibonacci sequence extended to complex indices.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-19
// Modified: 2026-09-19
//
// Change History:
// - 2026-09-19 v0.1.0: Initial special functions

package complexx

import "math"

// Phi is the golden ratio (1 + √5) / 2
const Phi = 1.618033988749894848204586834365638117720309179805762862135

var (
	sqrt2Pi = math.Sqrt(2 * math.Pi)
	sqrt5   = math.Sqrt(5)
	psi     = FromReal(1 - Phi)
	phi     = FromReal(Phi)
)

// Normal returns the normal probability density at z:
// exp(-(z - mean)² / (2σ²)) / (σ·√(2π))
func Normal(z, mean, sigma Complex) Complex {
	dev := Sub(z, mean)
	exponent := Div(Negate(Square(dev)), MulReal(Square(sigma), 2))
	return Div(Exp(exponent), MulReal(sigma, sqrt2Pi))
}

// LogNormal returns the log-normal probability density at z:
// exp(-(log z - mean)² / (2σ²)) / (z·σ·√(2π))
func LogNormal(z, mean, sigma Complex) Complex {
	dev := Sub(Log(z), mean)
	exponent := Div(Negate(Square(dev)), MulReal(Square(sigma), 2))
	return Div(Exp(exponent), MulReal(Mul(z, sigma), sqrt2Pi))
}

// Butterfly evaluates Fay's butterfly curve at parameter t:
// (e^cos t - 2cos 4t - sin⁵(t/12))·e^(it). Real t traces the planar curve.
func Butterfly(t Complex) Complex {
	r := Sub(Exp(Cos(t)), MulReal(Cos(MulReal(t, 4)), 2))
	r = Sub(r, PowInt(Sin(DivReal(t, 12)), 5))
	return Mul(r, Exp(MulI(t)))
}

// NthFibonacci returns Binet's formula (φⁿ - ψⁿ) / √5 for a complex index n,
// with ψ = 1 - φ. Integer n give the Fibonacci numbers up to rounding.
func NthFibonacci(n Complex) Complex {
	return DivReal(Sub(Pow(phi, n), Pow(psi, n)), sqrt5)
}
