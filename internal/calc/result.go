package calc

import (
	"math"
	"strconv"

	"github.com/msto63/cplx/foundation/utils/complexx"
)

// Kind tells which field of a Result holds the value
type Kind int

const (
	KindComplex Kind = iota
	KindReal
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindComplex:
		return "complex"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Result is the value of an evaluation
type Result struct {
	Kind  Kind
	Value complexx.Complex
	Real  float64
	Bool  bool
}

func complexResult(z complexx.Complex) Result { return Result{Kind: KindComplex, Value: z} }
func realResult(x float64) Result             { return Result{Kind: KindReal, Real: x} }
func boolResult(b bool) Result                { return Result{Kind: KindBool, Bool: b} }

// Complex returns the result as a complex value. Booleans map to 0 and 1.
func (r Result) Complex() complexx.Complex {
	switch r.Kind {
	case KindReal:
		return complexx.FromReal(r.Real)
	case KindBool:
		if r.Bool {
			return complexx.One
		}
		return complexx.Zero
	default:
		return r.Value
	}
}

// IsDegenerate reports a NaN or infinite numeric result
func (r Result) IsDegenerate() bool {
	switch r.Kind {
	case KindReal:
		return math.IsNaN(r.Real) || math.IsInf(r.Real, 0)
	case KindBool:
		return false
	default:
		return r.Value.IsDegenerate()
	}
}

// Format renders the result with strconv-style format and precision
func (r Result) Format(format byte, precision int) string {
	switch r.Kind {
	case KindReal:
		return strconv.FormatFloat(r.Real, format, precision, 64)
	case KindBool:
		return strconv.FormatBool(r.Bool)
	default:
		return r.Value.Text(format, precision)
	}
}

// String renders the shortest exact representation
func (r Result) String() string {
	return r.Format('g', -1)
}
