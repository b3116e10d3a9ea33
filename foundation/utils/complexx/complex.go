// File: complex.go
// Title: Complex Value Type
// Description: Defines the immutable Complex value type together with its
//              predicates, norms, equality, hashing and the fixed textual
//              representation used by the rest of the library.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-14
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-14 v0.1.0: Initial value type with predicates and norms
// - 2026-10-02 v0.2.0: Dropped the in-place mutating methods, added Turns and Hash

package complexx

import (
	"fmt"
	"math"
)

// Complex represents the point Real + Imag·i in the complex plane.
// Values are never modified after construction; every operation returns a new value.
type Complex struct {
	Real float64
	Imag float64
}

// Frequently used constants
var (
	// Zero is the additive identity (0, 0)
	Zero = Complex{0, 0}

	// One is the multiplicative identity (1, 0)
	One = Complex{1, 0}

	// I is the imaginary unit (0, 1)
	I = Complex{0, 1}
)

// FNV-1a parameters used by Hash
const (
	hashSeed       uint32 = 0x811C9DC5
	hashMultiplier uint32 = 0x01000193
)

// New creates a complex value from its real and imaginary parts
func New(real, imag float64) Complex {
	return Complex{Real: real, Imag: imag}
}

// FromReal creates a complex value with a zero imaginary part
func FromReal(real float64) Complex {
	return Complex{Real: real}
}

// FromPolar creates a complex value from magnitude and argument (radians)
func FromPolar(magnitude, argument float64) Complex {
	sin, cos := math.Sincos(argument)
	return Complex{Real: magnitude * cos, Imag: magnitude * sin}
}

// FromComplex128 converts a builtin complex128
func FromComplex128(c complex128) Complex {
	return Complex{Real: real(c), Imag: imag(c)}
}

// Complex128 converts the value to the builtin complex128 type
func (c Complex) Complex128() complex128 {
	return complex(c.Real, c.Imag)
}

// Components returns the real and imaginary parts
func (c Complex) Components() (float64, float64) {
	return c.Real, c.Imag
}

// IsZero reports whether both components are zero (either sign)
func (c Complex) IsZero() bool {
	return c.Real == 0 && c.Imag == 0
}

// IsOne reports whether the value equals the multiplicative identity
func (c Complex) IsOne() bool {
	return c.Real == 1 && c.Imag == 0
}

// IsUnit reports whether the value lies exactly on the unit circle
func (c Complex) IsUnit() bool {
	return c.MagnitudeSquared() == 1
}

// IsReal reports whether the imaginary part is zero
func (c Complex) IsReal() bool {
	return c.Imag == 0
}

// IsImaginary reports whether the real part is zero and the imaginary part is not
func (c Complex) IsImaginary() bool {
	return c.Real == 0 && c.Imag != 0
}

// IsNaN reports whether either component is NaN
func (c Complex) IsNaN() bool {
	return math.IsNaN(c.Real) || math.IsNaN(c.Imag)
}

// IsInfinite reports whether either component is infinite
func (c Complex) IsInfinite() bool {
	return math.IsInf(c.Real, 0) || math.IsInf(c.Imag, 0)
}

// IsDegenerate reports whether the value is NaN or infinite
func (c Complex) IsDegenerate() bool {
	return c.IsNaN() || c.IsInfinite()
}

// MagnitudeSquared returns real² + imag².
// The result overflows to +Inf for large components; use Magnitude when that matters.
func (c Complex) MagnitudeSquared() float64 {
	return c.Real*c.Real + c.Imag*c.Imag
}

// Magnitude returns the Euclidean norm without intermediate overflow
func (c Complex) Magnitude() float64 {
	return math.Hypot(c.Real, c.Imag)
}

// Argument returns the phase angle in (-π, π]
func (c Complex) Argument() float64 {
	return math.Atan2(c.Imag, c.Real)
}

// Turns returns the argument as a fraction of a full turn in [0, 1)
func (c Complex) Turns() float64 {
	t := c.Argument() / (2 * math.Pi)
	if t < 0 {
		t++
	}
	// -tiny + 1 rounds to exactly 1
	if t >= 1 {
		t = 0
	}
	return t
}

// Equal reports bitwise equality of both components.
// Unlike ==, NaN equals an identical NaN and 0 differs from -0.
func (c Complex) Equal(other Complex) bool {
	return math.Float64bits(c.Real) == math.Float64bits(other.Real) &&
		math.Float64bits(c.Imag) == math.Float64bits(other.Imag)
}

// Hash returns an FNV-1a style hash over the bit patterns of both components
func (c Complex) Hash() uint32 {
	h := hashSeed
	h = hashStep(h, math.Float64bits(c.Real))
	h = hashStep(h, math.Float64bits(c.Imag))
	return h
}

// hashStep folds a 64-bit pattern into the running hash
func hashStep(h uint32, bits uint64) uint32 {
	h ^= uint32(bits ^ (bits >> 32))
	return h * hashMultiplier
}

// String renders both components in signed scientific notation with 16
// fractional digits, separated by a slash and followed by a tab:
// "+1.2340000000000000e+00/-5.0000000000000000e-01\t"
func (c Complex) String() string {
	return fmt.Sprintf("%+.16e/%+.16e\t", c.Real, c.Imag)
}
