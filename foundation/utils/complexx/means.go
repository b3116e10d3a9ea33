// File: means.go
// Title: Generalized Means and Norms
// Description: Power-mean family over pairs of complex values and a set of
//              Lp-style norms. The *Wrong variants omit the normalizing division
//              and are kept as separate functions because existing callers
//              depend on the unnormalized results.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-16
// Modified: 2026-09-16
//
// Change History:
// - 2026-09-16 v0.1.0: Initial means and norms

package complexx

import "math"

// ArithmeticMean returns (a + b) / 2
func ArithmeticMean(a, b Complex) Complex {
	return MulReal(Add(a, b), 0.5)
}

// HarmonicMean returns 2ab / (a + b)
func HarmonicMean(a, b Complex) Complex {
	return Div(MulReal(Mul(a, b), 2), Add(a, b))
}

// GeometricMean returns sqrt(ab)
func GeometricMean(a, b Complex) Complex {
	return Sqrt(Mul(a, b))
}

// AsteroidMean is the power mean with exponent ½: ((√a + √b) / 2)²
func AsteroidMean(a, b Complex) Complex {
	return Square(MulReal(Add(Sqrt(a), Sqrt(b)), 0.5))
}

// AsteroidMeanWrong returns (√a + √b)², without halving the sum
func AsteroidMeanWrong(a, b Complex) Complex {
	return Square(Add(Sqrt(a), Sqrt(b)))
}

// QuadraticMean returns sqrt((a² + b²) / 2)
func QuadraticMean(a, b Complex) Complex {
	return Sqrt(MulReal(Add(Square(a), Square(b)), 0.5))
}

// QuadraticMeanWrong returns sqrt(a² + b²), without halving the sum
func QuadraticMeanWrong(a, b Complex) Complex {
	return Sqrt(Add(Square(a), Square(b)))
}

// CubicMean returns cbrt((a³ + b³) / 2)
func CubicMean(a, b Complex) Complex {
	return Cbrt(MulReal(Add(Cube(a), Cube(b)), 0.5))
}

// CubicMeanWrong returns cbrt(a³ + b³), without halving the sum
func CubicMeanWrong(a, b Complex) Complex {
	return Cbrt(Add(Cube(a), Cube(b)))
}

// Manhattan returns the L1 norm |re| + |im|
func Manhattan(z Complex) float64 {
	return math.Abs(z.Real) + math.Abs(z.Imag)
}

// Chebyshev returns the L∞ norm max(|re|, |im|)
func Chebyshev(z Complex) float64 {
	return math.Max(math.Abs(z.Real), math.Abs(z.Imag))
}

// MinNorm returns min(|re|, |im|)
func MinNorm(z Complex) float64 {
	return math.Min(math.Abs(z.Real), math.Abs(z.Imag))
}

// PNorm returns the Lp norm (|re|^p + |im|^p)^(1/p).
// p = 1 and p = 2 coincide with Manhattan and Magnitude, p = ±Inf with
// Chebyshev and MinNorm.
func PNorm(z Complex, p float64) float64 {
	switch {
	case math.IsInf(p, 1):
		return Chebyshev(z)
	case math.IsInf(p, -1):
		return MinNorm(z)
	case p == 1:
		return Manhattan(z)
	case p == 2:
		return z.Magnitude()
	}
	re, im := math.Abs(z.Real), math.Abs(z.Imag)
	return math.Pow(math.Pow(re, p)+math.Pow(im, p), 1/p)
}

// MinMagnitude returns whichever operand has the smaller magnitude, a on ties
func MinMagnitude(a, b Complex) Complex {
	if b.MagnitudeSquared() < a.MagnitudeSquared() {
		return b
	}
	return a
}

// MaxMagnitude returns whichever operand has the larger magnitude, a on ties
func MaxMagnitude(a, b Complex) Complex {
	if b.MagnitudeSquared() > a.MagnitudeSquared() {
		return b
	}
	return a
}
