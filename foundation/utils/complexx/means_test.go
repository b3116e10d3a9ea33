// File: means_test.go
// Title: Unit Tests for Means and Norms
// Description: Tests the two-operand means, their unnormalized variants and
//              the component norms on values with closed-form results.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.1.0: Initial means and norms tests

package complexx

import (
	"math"
	"testing"
)

func TestMeans(t *testing.T) {
	tests := []struct {
		name string
		got  Complex
		want Complex
	}{
		{"arithmetic", ArithmeticMean(New(1, 2), New(3, 4)), New(2, 3)},
		{"harmonic equal", HarmonicMean(FromReal(2), FromReal(2)), FromReal(2)},
		{"harmonic", HarmonicMean(FromReal(1), FromReal(3)), FromReal(1.5)},
		{"geometric", GeometricMean(FromReal(4), FromReal(9)), FromReal(6)},
		{"geometric of i and -i", GeometricMean(I, New(0, -1)), One},
		{"asteroid", AsteroidMean(FromReal(4), FromReal(9)), FromReal(6.25)},
		{"asteroid wrong", AsteroidMeanWrong(FromReal(4), FromReal(9)), FromReal(25)},
		{"quadratic", QuadraticMean(FromReal(3), FromReal(4)), FromReal(math.Sqrt(12.5))},
		{"quadratic wrong", QuadraticMeanWrong(FromReal(3), FromReal(4)), FromReal(5)},
		{"cubic", CubicMean(FromReal(1), FromReal(2)), FromReal(math.Cbrt(4.5))},
		{"cubic wrong", CubicMeanWrong(FromReal(1), FromReal(2)), FromReal(math.Cbrt(9))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approxEqual(tt.got, tt.want, tolerance) {
				t.Errorf("%s mean = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestMeansOfEqualOperands(t *testing.T) {
	z := New(1.5, 0.5)
	means := map[string]func(a, b Complex) Complex{
		"arithmetic": ArithmeticMean,
		"harmonic":   HarmonicMean,
		"geometric":  GeometricMean,
		"asteroid":   AsteroidMean,
		"quadratic":  QuadraticMean,
		"cubic":      CubicMean,
	}

	for name, mean := range means {
		t.Run(name, func(t *testing.T) {
			if got := mean(z, z); !approxEqual(got, z, 1e-10) {
				t.Errorf("%s mean of (%v, %v) = %v, want %v", name, z, z, got, z)
			}
		})
	}
}

func TestNorms(t *testing.T) {
	z := New(3, -4)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"manhattan", Manhattan(z), 7},
		{"chebyshev", Chebyshev(z), 4},
		{"min", MinNorm(z), 3},
		{"p=1", PNorm(z, 1), 7},
		{"p=2", PNorm(z, 2), 5},
		{"p=+Inf", PNorm(z, math.Inf(1)), 4},
		{"p=-Inf", PNorm(z, math.Inf(-1)), 3},
		{"p=3", PNorm(z, 3), math.Cbrt(91)},
		{"p=0.5", PNorm(z, 0.5), math.Pow(math.Sqrt(3)+2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !closeTo(tt.got, tt.want, tolerance) {
				t.Errorf("%s norm of %v = %v, want %v", tt.name, z, tt.got, tt.want)
			}
		})
	}
}

func TestMinMaxMagnitude(t *testing.T) {
	small := New(1, 1)
	large := New(0, -3)
	tie := New(-1, 1)

	if got := MinMagnitude(small, large); !got.Equal(small) {
		t.Errorf("MinMagnitude = %v, want %v", got, small)
	}
	if got := MaxMagnitude(small, large); !got.Equal(large) {
		t.Errorf("MaxMagnitude = %v, want %v", got, large)
	}
	if got := MinMagnitude(small, tie); !got.Equal(small) {
		t.Errorf("MinMagnitude on tie = %v, want first operand %v", got, small)
	}
	if got := MaxMagnitude(tie, small); !got.Equal(tie) {
		t.Errorf("MaxMagnitude on tie = %v, want first operand %v", got, tie)
	}
}
