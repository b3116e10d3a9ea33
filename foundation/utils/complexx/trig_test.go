// File: trig_test.go
// Title: Unit Tests for Trigonometric and Hyperbolic Functions
// Description: Compares the circular and hyperbolic families with math/cmplx
//              away from the cuts and checks the principal values chosen on
//              the branch cuts explicitly, including the sign of zero.
// Author: msto63
// Version: v0.2.1
// Created: 2026-09-18
// Modified: 2026-10-19
//
// Change History:
// - 2026-09-18 v0.1.0: Circular functions and inverses
// - 2026-10-05 v0.2.0: Hyperbolic family, branch cut and overflow cases
// - 2026-10-19 v0.2.1: Signed zero cases for asin on the imaginary axis

package complexx

import (
	"math"
	"math/cmplx"
	"testing"
)

// acosh(2) = ln(2 + √3), the imaginary part of asin(±2)
var acoshTwo = math.Log(2 + math.Sqrt(3))

func TestTrigAgainstStdlib(t *testing.T) {
	funcs := []struct {
		name string
		fn   func(Complex) Complex
		ref  func(complex128) complex128
	}{
		{"Sin", Sin, cmplx.Sin},
		{"Cos", Cos, cmplx.Cos},
		{"Tan", Tan, cmplx.Tan},
		{"Cot", Cot, cmplx.Cot},
		{"Asin", Asin, cmplx.Asin},
		{"Acos", Acos, cmplx.Acos},
		{"Atan", Atan, cmplx.Atan},
		{"Sinh", Sinh, cmplx.Sinh},
		{"Cosh", Cosh, cmplx.Cosh},
		{"Tanh", Tanh, cmplx.Tanh},
		{"Asinh", Asinh, cmplx.Asinh},
		{"Acosh", Acosh, cmplx.Acosh},
		{"Atanh", Atanh, cmplx.Atanh},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			for _, z := range offCutSamples {
				got := f.fn(z)
				want := FromComplex128(f.ref(z.Complex128()))
				if !approxEqual(got, want, 1e-10) {
					t.Errorf("%s(%v) = %v, want %v", f.name, z, got, want)
				}
			}
		})
	}
}

func TestReciprocalTrig(t *testing.T) {
	for _, z := range offCutSamples {
		checks := []struct {
			name string
			got  Complex
			want Complex
		}{
			{"Sec", Sec(z), Reciprocal(Cos(z))},
			{"Csc", Csc(z), Reciprocal(Sin(z))},
			{"Cot", Cot(z), Reciprocal(Tan(z))},
			{"Sech", Sech(z), Reciprocal(Cosh(z))},
			{"Csch", Csch(z), Reciprocal(Sinh(z))},
			{"Coth", Coth(z), Reciprocal(Tanh(z))},
		}
		for _, c := range checks {
			if !approxEqual(c.got, c.want, 1e-10) {
				t.Errorf("%s(%v) = %v, want %v", c.name, z, c.got, c.want)
			}
		}
	}
}

func TestTrigExactValues(t *testing.T) {
	if got := Sin(Zero); got != Zero {
		t.Errorf("Sin(0) = %v, want (0, 0)", got)
	}
	if got := Cos(Zero); got != One {
		t.Errorf("Cos(0) = %v, want (1, 0)", got)
	}
	if got := Asin(FromReal(0.5)); !approxEqual(got, FromReal(math.Pi/6), tolerance) {
		t.Errorf("Asin(0.5) = %v, want π/6", got)
	}
	if got := Atan(One); !approxEqual(got, FromReal(math.Pi/4), tolerance) {
		t.Errorf("Atan(1) = %v, want π/4", got)
	}
	if got := Sinh(New(0, math.Pi/2)); !approxEqual(got, I, tolerance) {
		t.Errorf("Sinh(iπ/2) = %v, want i", got)
	}
}

func TestBranchCuts(t *testing.T) {
	negZero := math.Copysign(0, -1)
	atanhTwo := math.Log(3) / 2

	tests := []struct {
		name string
		fn   func(Complex) Complex
		z    Complex
		want Complex
	}{
		{"asin(2+0i)", Asin, New(2, 0), New(math.Pi/2, acoshTwo)},
		{"asin(2-0i)", Asin, New(2, negZero), New(math.Pi/2, -acoshTwo)},
		{"asin(-2+0i)", Asin, New(-2, 0), New(-math.Pi/2, acoshTwo)},
		{"asin(-2-0i)", Asin, New(-2, negZero), New(-math.Pi/2, -acoshTwo)},
		{"acos(2+0i)", Acos, New(2, 0), New(0, -acoshTwo)},
		{"acos(-2+0i)", Acos, New(-2, 0), New(math.Pi, -acoshTwo)},
		{"atan(+0+2i)", Atan, New(0, 2), New(math.Pi/2, atanhTwo)},
		{"atan(-0+2i)", Atan, New(negZero, 2), New(-math.Pi/2, atanhTwo)},
		{"atan(+0-2i)", Atan, New(0, -2), New(math.Pi/2, -atanhTwo)},
		{"atanh(2+0i)", Atanh, New(2, 0), New(atanhTwo, math.Pi/2)},
		{"asinh(+0+2i)", Asinh, New(0, 2), New(acoshTwo, math.Pi/2)},
		{"asin(+0+2i)", Asin, New(0, 2), New(0, math.Asinh(2))},
		{"asin(-0+2i)", Asin, New(negZero, 2), New(negZero, math.Asinh(2))},
		{"asin(+0-2i)", Asin, New(0, -2), New(0, -math.Asinh(2))},
		{"asin(-0-2i)", Asin, New(negZero, -2), New(negZero, -math.Asinh(2))},
		{"asin(+0+0.5i)", Asin, New(0, 0.5), New(0, math.Asinh(0.5))},
		{"asin(-0+0.5i)", Asin, New(negZero, 0.5), New(negZero, math.Asinh(0.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.z)
			if !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
			if tt.want.Real == 0 && got.Real == 0 && math.Signbit(got.Real) != math.Signbit(tt.want.Real) {
				t.Errorf("%s real part = %v, want sign of %v", tt.name, got.Real, tt.want.Real)
			}
		})
	}
}

func TestAsinOddOnImaginaryAxis(t *testing.T) {
	for _, y := range []float64{0.25, 0.5, 1, 2, 10} {
		for _, im := range []float64{y, -y} {
			z := New(0, im)
			pos, neg := Asin(z), Asin(Negate(z))
			if want := FromComplex128(cmplx.Asin(z.Complex128())); !approxEqual(pos, want, 1e-12) || math.Signbit(pos.Real) {
				t.Errorf("Asin(%v) = (%v, %v), want %v with real +0", z, pos.Real, pos.Imag, want)
			}
			if !math.Signbit(neg.Real) || !approxEqual(neg, Negate(pos), 1e-12) {
				t.Errorf("Asin(-%v) = (%v, %v), want -Asin(%v)", z, neg.Real, neg.Imag, z)
			}
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	small := []Complex{New(0.3, 0.2), New(-0.4, 0.1), New(0.25, -0.5), New(-0.1, -0.2)}

	for _, z := range small {
		if got := Asin(Sin(z)); !approxEqual(got, z, 1e-10) {
			t.Errorf("Asin(Sin(%v)) = %v", z, got)
		}
		if got := Atan(Tan(z)); !approxEqual(got, z, 1e-10) {
			t.Errorf("Atan(Tan(%v)) = %v", z, got)
		}
		if got := Asinh(Sinh(z)); !approxEqual(got, z, 1e-10) {
			t.Errorf("Asinh(Sinh(%v)) = %v", z, got)
		}
		if got := Atanh(Tanh(z)); !approxEqual(got, z, 1e-10) {
			t.Errorf("Atanh(Tanh(%v)) = %v", z, got)
		}
	}
}

func TestTangentOverflow(t *testing.T) {
	tests := []struct {
		name string
		got  Complex
		want Complex
	}{
		{"tan far above", Tan(New(0.5, 1000)), New(0, 1)},
		{"tan far below", Tan(New(0.5, -1000)), New(0, -1)},
		{"tanh far right", Tanh(New(1000, 0.5)), New(1, 0)},
		{"tanh far left", Tanh(New(-1000, 0.5)), New(-1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.IsNaN() {
				t.Fatalf("%s = %v, want finite result", tt.name, tt.got)
			}
			if !approxEqual(tt.got, tt.want, tolerance) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}
