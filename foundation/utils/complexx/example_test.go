// File: example_test.go
// Title: Examples for complexx
// Description: Executable examples shown in the package documentation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-22
// Modified: 2026-10-05
//
// Change History:
// - 2026-09-22 v0.1.0: Initial examples

package complexx_test

import (
	"fmt"
	"math"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/utils/complexx"
)

func ExampleMul() {
	a := complexx.New(1, 2)
	b := complexx.New(3, 4)

	fmt.Println(complexx.Mul(a, b).Text('f', 1))
	// Output:
	// -5.0+10.0i
}

func ExampleExp() {
	// Euler's identity, up to rounding in the imaginary part
	z := complexx.Exp(complexx.New(0, math.Pi))

	fmt.Println(z.Text('f', 4))
	// Output:
	// -1.0000+0.0000i
}

func ExampleAsin() {
	// Outside [-1, 1] the arcsine leaves the real axis
	fmt.Println(complexx.Asin(complexx.FromReal(2)).Text('f', 4))
	// Output:
	// 1.5708+1.3170i
}

func ExampleParse() {
	z, err := complexx.Parse("3-4i")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(z.Magnitude())

	_, err = complexx.Parse("3+")
	fmt.Println(cplxerror.HasCode(err, cplxerror.CodeInvalidFormat))
	// Output:
	// 5
	// true
}

func ExampleComplex_String() {
	fmt.Printf("%q\n", complexx.New(1.234, -0.5).String())
	// Output:
	// "+1.2340000000000000e+00/-5.0000000000000000e-01\t"
}

func ExampleNthFibonacci() {
	for _, n := range []float64{1, 2, 10, 20} {
		fmt.Printf("%.0f ", complexx.NthFibonacci(complexx.FromReal(n)).Real)
	}
	fmt.Println()
	// Output:
	// 1 1 55 6765
}

func ExamplePowInt() {
	fmt.Println(complexx.PowInt(complexx.New(2, 1), 5).Text('g', -1))
	// Output:
	// -38+41i
}
