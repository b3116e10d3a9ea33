// File: power.go
// Title: Powers, Roots, Exponentials and Logarithms
// Description: Implements the exponential and logarithm families together with
//              powers and roots. Powers, roots and LogBase special-case a zero
//              operand so that the exp(log(0)) path never manufactures a NaN.
// Author: msto63
// Version: v0.1.2
// Created: 2026-09-15
// Modified: 2026-10-19
//
// Change History:
// - 2026-09-15 v0.1.0: Initial exponential, logarithm and power functions
// - 2026-09-30 v0.1.1: Zero-guard for Pow, PowReal, NthRoot, Root and LogBase
// - 2026-10-19 v0.1.2: LogBase guards a zero base as well as a zero argument

package complexx

import "math"

// Exp returns e^z
func Exp(z Complex) Complex {
	e := math.Exp(z.Real)
	sin, cos := math.Sincos(z.Imag)
	return Complex{e * cos, e * sin}
}

// Exp2 returns 2^z
func Exp2(z Complex) Complex {
	return Exp(MulReal(z, math.Ln2))
}

// Exp10 returns 10^z
func Exp10(z Complex) Complex {
	return Exp(MulReal(z, math.Ln10))
}

// Log returns the principal natural logarithm of z.
// Log(0) is (-Inf, 0).
func Log(z Complex) Complex {
	return Complex{math.Log(z.Magnitude()), z.Argument()}
}

// Log2 returns the principal base-2 logarithm of z
func Log2(z Complex) Complex {
	return DivReal(Log(z), math.Ln2)
}

// Log10 returns the principal base-10 logarithm of z
func Log10(z Complex) Complex {
	return DivReal(Log(z), math.Ln10)
}

// LogBase returns log(z) / log(base), or (0, 0) when z or base is zero
func LogBase(z, base Complex) Complex {
	if z.IsZero() || base.IsZero() {
		return Zero
	}
	return Div(Log(z), Log(base))
}

// Pow returns base^exponent computed as exp(exponent · log(base)).
// A zero base yields exactly (0, 0) for every exponent.
func Pow(base, exponent Complex) Complex {
	if base.IsZero() {
		return Zero
	}
	return Exp(Mul(exponent, Log(base)))
}

// PowReal returns base^exponent for a real exponent
func PowReal(base Complex, exponent float64) Complex {
	if base.IsZero() {
		return Zero
	}
	return FromPolar(math.Pow(base.Magnitude(), exponent), base.Argument()*exponent)
}

// PowInt returns base^n by repeated squaring, keeping integer powers of
// Gaussian integers exact
func PowInt(base Complex, n int) Complex {
	if n < 0 {
		return Reciprocal(PowInt(base, -n))
	}
	result := One
	for n > 0 {
		if n&1 == 1 {
			result = Mul(result, base)
		}
		base = Square(base)
		n >>= 1
	}
	return result
}

// Sqrt returns the principal square root of z
func Sqrt(z Complex) Complex {
	if z.IsZero() {
		return Zero
	}
	if z.Imag == 0 {
		if z.Real > 0 {
			return Complex{math.Sqrt(z.Real), 0}
		}
		return Complex{0, math.Copysign(math.Sqrt(-z.Real), z.Imag)}
	}

	m := z.Magnitude()
	if z.Real >= 0 {
		t := math.Sqrt((m + z.Real) / 2)
		return Complex{t, z.Imag / (2 * t)}
	}
	t := math.Sqrt((m - z.Real) / 2)
	return Complex{math.Abs(z.Imag) / (2 * t), math.Copysign(t, z.Imag)}
}

// Cbrt returns the principal cube root of z
func Cbrt(z Complex) Complex {
	return NthRoot(z, 3)
}

// NthRoot returns the principal n-th root of z, or (0, 0) when z is zero
func NthRoot(z Complex, n int) Complex {
	if z.IsZero() {
		return Zero
	}
	inv := 1 / float64(n)
	return FromPolar(math.Pow(z.Magnitude(), inv), z.Argument()*inv)
}

// Root returns z^(1/n) for a complex n, or (0, 0) when z is zero
func Root(z, n Complex) Complex {
	if z.IsZero() {
		return Zero
	}
	return Pow(z, Reciprocal(n))
}
