// File: trig.go
// Title: Trigonometric and Hyperbolic Functions
// Description: Circular and hyperbolic functions and their inverses. The
//              forward functions are closed forms in the real exponential and
//              trigonometric functions of the components; the inverses use the
//              logarithm/square-root identities with explicit branch selection
//              on the cuts.
// Author: msto63
// Version: v0.2.1
// Created: 2026-09-18
// Modified: 2026-10-19
//
// Change History:
// - 2026-09-18 v0.1.0: sin, cos, tan and their inverses
// - 2026-10-05 v0.2.0: Hyperbolic family, reciprocal functions, overflow guards for tan/tanh
// - 2026-10-19 v0.2.1: Signed zero real part for asin on the imaginary axis

package complexx

import "math"

// Beyond this |2x| cosh(2x) overflows and tan/tanh have converged to ±1
const tanOverflow = 709

// Sin returns sin(z) = sin(a)cosh(b) + i·cos(a)sinh(b)
func Sin(z Complex) Complex {
	sin, cos := math.Sincos(z.Real)
	return Complex{sin * math.Cosh(z.Imag), cos * math.Sinh(z.Imag)}
}

// Cos returns cos(z) = cos(a)cosh(b) - i·sin(a)sinh(b)
func Cos(z Complex) Complex {
	sin, cos := math.Sincos(z.Real)
	return Complex{cos * math.Cosh(z.Imag), -sin * math.Sinh(z.Imag)}
}

// Tan returns tan(z) = (sin 2a + i·sinh 2b) / (cos 2a + cosh 2b)
func Tan(z Complex) Complex {
	sin2a, cos2a := math.Sincos(2 * z.Real)
	b2 := 2 * z.Imag
	if math.Abs(b2) > tanOverflow {
		return Complex{math.Copysign(0, sin2a), math.Copysign(1, z.Imag)}
	}
	denom := cos2a + math.Cosh(b2)
	return Complex{sin2a / denom, math.Sinh(b2) / denom}
}

// Sec returns 1 / cos(z)
func Sec(z Complex) Complex {
	return Reciprocal(Cos(z))
}

// Csc returns 1 / sin(z)
func Csc(z Complex) Complex {
	return Reciprocal(Sin(z))
}

// Cot returns cos(z) / sin(z)
func Cot(z Complex) Complex {
	return Div(Cos(z), Sin(z))
}

// Asin returns the principal arcsine -i·log(iz + sqrt(1 - z²)).
//
// On the cuts (real z with |z| > 1) the discriminant 1 - z² is a negative
// real and its square root is chosen explicitly: the result's imaginary part
// takes the sign of signum(re z) combined with the sign of the zero imaginary
// part, which keeps asin(x ± 0i) continuous with the half-plane it lies in.
// On the imaginary axis the real part is a zero carrying the sign of re z,
// so asin stays odd.
func Asin(z Complex) Complex {
	if z.Imag == 0 && math.Abs(z.Real) <= 1 {
		return Complex{math.Asin(z.Real), z.Imag}
	}

	d := Sub(One, Square(z))
	var w Complex
	if d.Imag == 0 && d.Real < 0 {
		w = Complex{0, -signum(z.Real) * math.Copysign(1, z.Imag) * math.Sqrt(-d.Real)}
	} else {
		w = Sqrt(d)
	}

	// (iz + w)(w - iz) = 1, so the larger of the two sums gives the same
	// logarithm without cancellation
	iz := MulI(z)
	sum, alt := Add(iz, w), Sub(w, iz)
	var l Complex
	if sum.MagnitudeSquared() >= alt.MagnitudeSquared() {
		l = Log(sum)
	} else {
		l = Negate(Log(alt))
	}
	if z.Real == 0 {
		return Complex{z.Real, -l.Real}
	}
	return Complex{l.Imag, -l.Real}
}

// Acos returns the principal arccosine π/2 - asin(z)
func Acos(z Complex) Complex {
	as := Asin(z)
	return Complex{math.Pi/2 - as.Real, -as.Imag}
}

// Atan returns the principal arctangent (i/2)·(log(1 - iz) - log(1 + iz)).
// On the cuts (imaginary z with |z| > 1) the real part of the result takes
// the sign of the (zero) real part of z.
func Atan(z Complex) Complex {
	if z.Imag == 0 {
		return Complex{math.Atan(z.Real), z.Imag}
	}
	iz := MulI(z)
	d := Sub(branchLog(Sub(One, iz), -z.Real), branchLog(Add(One, iz), z.Real))
	return Complex{-d.Imag / 2, d.Real / 2}
}

// Sinh returns sinh(z) = sinh(a)cos(b) + i·cosh(a)sin(b)
func Sinh(z Complex) Complex {
	sin, cos := math.Sincos(z.Imag)
	return Complex{math.Sinh(z.Real) * cos, math.Cosh(z.Real) * sin}
}

// Cosh returns cosh(z) = cosh(a)cos(b) + i·sinh(a)sin(b)
func Cosh(z Complex) Complex {
	sin, cos := math.Sincos(z.Imag)
	return Complex{math.Cosh(z.Real) * cos, math.Sinh(z.Real) * sin}
}

// Tanh returns tanh(z) = (sinh 2a + i·sin 2b) / (cosh 2a + cos 2b)
func Tanh(z Complex) Complex {
	sin2b, cos2b := math.Sincos(2 * z.Imag)
	a2 := 2 * z.Real
	if math.Abs(a2) > tanOverflow {
		return Complex{math.Copysign(1, z.Real), math.Copysign(0, sin2b)}
	}
	denom := math.Cosh(a2) + cos2b
	return Complex{math.Sinh(a2) / denom, sin2b / denom}
}

// Sech returns 1 / cosh(z)
func Sech(z Complex) Complex {
	return Reciprocal(Cosh(z))
}

// Csch returns 1 / sinh(z)
func Csch(z Complex) Complex {
	return Reciprocal(Sinh(z))
}

// Coth returns cosh(z) / sinh(z)
func Coth(z Complex) Complex {
	return Div(Cosh(z), Sinh(z))
}

// Asinh returns the principal inverse hyperbolic sine -i·asin(iz)
func Asinh(z Complex) Complex {
	as := Asin(MulI(z))
	return Complex{as.Imag, -as.Real}
}

// Acosh returns the principal inverse hyperbolic cosine log(z + sqrt(z+1)·sqrt(z-1))
func Acosh(z Complex) Complex {
	return Log(Add(z, Mul(Sqrt(AddReal(z, 1)), Sqrt(SubReal(z, 1)))))
}

// Atanh returns the principal inverse hyperbolic tangent -i·atan(iz)
func Atanh(z Complex) Complex {
	at := Atan(MulI(z))
	return Complex{at.Imag, -at.Real}
}

// branchLog is Log with the argument of a negative real operand set to ±π
// by the sign of side instead of the sign of the operand's zero imaginary part
func branchLog(w Complex, side float64) Complex {
	if w.Imag == 0 && w.Real < 0 {
		return Complex{math.Log(-w.Real), math.Copysign(math.Pi, side)}
	}
	return Log(w)
}

// signum returns -1, 0 or +1 following the sign of x (NaN for NaN)
func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}
