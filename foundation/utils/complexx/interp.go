// File: interp.go
// Title: Interpolation and Magnitude Transfer
// Description: Linear and circular (polar) interpolation between complex
//              values, and transfer of magnitude between values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.1.0: Initial Lerp, Clerp and CopyMagnitude

package complexx

import "math"

// Lerp interpolates linearly: a + (b - a)·position
func Lerp(a, b Complex, position float64) Complex {
	return Add(a, MulReal(Sub(b, a), position))
}

// Clerp interpolates in polar form. The magnitude is interpolated linearly,
// the angle along the shorter arc. The angular difference is wrapped into
// (-π, π]: exactly opposite operands turn in the positive direction.
func Clerp(a, b Complex, position float64) Complex {
	magnA := a.Magnitude()
	magnB := b.Magnitude()
	argA := a.Argument()
	argB := b.Argument()

	diff := argB - argA
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff <= -math.Pi {
		diff += 2 * math.Pi
	}

	magn := magnA + (magnB-magnA)*position
	return FromPolar(magn, argA+diff*position)
}

// CopyMagnitude returns a value with the direction of lhs and the magnitude of rhs
func CopyMagnitude(lhs, rhs Complex) Complex {
	return FromPolar(rhs.Magnitude(), lhs.Argument())
}
