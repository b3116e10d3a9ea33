package calc

import (
	"math"
	"strconv"

	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/utils/complexx"
)

// Adapters from kernel signatures to callFunc. Arguments are already
// counted; real and integer parameters are checked here.

func unary(f func(complexx.Complex) complexx.Complex) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		return complexResult(f(args[0])), nil
	}
}

func binary(f func(a, b complexx.Complex) complexx.Complex) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		return complexResult(f(args[0], args[1])), nil
	}
}

func ternary(f func(a, b, c complexx.Complex) complexx.Complex) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		return complexResult(f(args[0], args[1], args[2])), nil
	}
}

func scalar(f func(complexx.Complex) float64) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		return realResult(f(args[0])), nil
	}
}

func predicate(f func(complexx.Complex) bool) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		return boolResult(f(args[0])), nil
	}
}

// withReal passes the last argument as a real number
func withReal(name string, f func(args []complexx.Complex, x float64) Result) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		last := len(args) - 1
		x, err := realArg(name, last, args[last])
		if err != nil {
			return Result{}, err
		}
		return f(args[:last], x), nil
	}
}

// reals passes both arguments as real numbers
func reals(name string, f func(x, y float64) complexx.Complex) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		x, err := realArg(name, 0, args[0])
		if err != nil {
			return Result{}, err
		}
		y, err := realArg(name, 1, args[1])
		if err != nil {
			return Result{}, err
		}
		return complexResult(f(x, y)), nil
	}
}

// withInt passes the last argument as an integer
func withInt(name string, f func(z complexx.Complex, n int) complexx.Complex) callFunc {
	return func(args []complexx.Complex) (Result, error) {
		n, err := intArg(name, 1, args[1])
		if err != nil {
			return Result{}, err
		}
		return complexResult(f(args[0], n)), nil
	}
}

func realArg(name string, index int, z complexx.Complex) (float64, error) {
	if z.Imag != 0 {
		return 0, errors.InvalidInput(errors.ModuleCalc, name, z.Text('g', -1), "real number").
			WithDetail("index", index)
	}
	return z.Real, nil
}

func intArg(name string, index int, z complexx.Complex) (int, error) {
	x, err := realArg(name, index, z)
	if err != nil {
		return 0, err
	}
	if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		return 0, errors.InvalidInput(errors.ModuleCalc, name, strconv.FormatFloat(x, 'g', -1, 64), "integer").
			WithDetail("index", index)
	}
	return int(x), nil
}

func fn(name string, cat Category, params []string, desc string, call callFunc, aliases ...string) *Function {
	return &Function{
		Name:        name,
		Category:    cat,
		Params:      params,
		Description: desc,
		Aliases:     aliases,
		call:        call,
	}
}

var (
	pz   = []string{"z"}
	pab  = []string{"a", "b"}
	pabt = []string{"a", "b", "t"}
)

func builtins() []*Function {
	return []*Function{
		// construct
		fn("complex", CategoryConstruct, []string{"re", "im"}, "value with the given components",
			reals("complex", complexx.New)),
		fn("polar", CategoryConstruct, []string{"magnitude", "argument"}, "value from magnitude and argument in radians",
			reals("polar", complexx.FromPolar)),

		// arithmetic
		fn("add", CategoryArithmetic, pab, "a + b", binary(complexx.Add), "plus"),
		fn("sub", CategoryArithmetic, pab, "a - b", binary(complexx.Sub), "minus"),
		fn("subrev", CategoryArithmetic, pab, "b - a", binary(complexx.SubRev)),
		fn("mul", CategoryArithmetic, pab, "a * b", binary(complexx.Mul), "times"),
		fn("div", CategoryArithmetic, pab, "a / b", binary(complexx.Div)),
		fn("divrev", CategoryArithmetic, pab, "b / a", binary(complexx.DivRev)),
		fn("negate", CategoryArithmetic, pz, "-z", unary(complexx.Negate), "neg"),
		fn("conjugate", CategoryArithmetic, pz, "complex conjugate", unary(complexx.Conjugate), "conj"),
		fn("reciprocal", CategoryArithmetic, pz, "1 / z", unary(complexx.Reciprocal), "recip", "inv"),
		fn("square", CategoryArithmetic, pz, "z * z", unary(complexx.Square), "sqr"),
		fn("cube", CategoryArithmetic, pz, "z * z * z", unary(complexx.Cube)),
		fn("muli", CategoryArithmetic, pz, "z * i", unary(complexx.MulI)),

		// properties
		fn("real", CategoryProperties, pz, "real part", scalar(func(z complexx.Complex) float64 { return z.Real }), "re"),
		fn("imag", CategoryProperties, pz, "imaginary part", scalar(func(z complexx.Complex) float64 { return z.Imag }), "im"),
		fn("magnitude", CategoryProperties, pz, "absolute value |z|", scalar(complexx.Magnitude), "magn", "abs"),
		fn("magnitudesquared", CategoryProperties, pz, "|z|^2", scalar(complexx.MagnitudeSquared), "norm", "magn2"),
		fn("argument", CategoryProperties, pz, "angle in (-pi, pi]", scalar(complexx.Argument), "arg", "phase"),
		fn("turns", CategoryProperties, pz, "angle as a fraction of a turn in [0, 1)", scalar(complexx.Complex.Turns)),
		fn("iszero", CategoryProperties, pz, "z is 0", predicate(complexx.Complex.IsZero)),
		fn("isone", CategoryProperties, pz, "z is 1", predicate(complexx.Complex.IsOne)),
		fn("isunit", CategoryProperties, pz, "|z|^2 is exactly 1", predicate(complexx.Complex.IsUnit)),
		fn("isreal", CategoryProperties, pz, "imaginary part is 0", predicate(complexx.Complex.IsReal)),
		fn("isimaginary", CategoryProperties, pz, "real part is 0", predicate(complexx.Complex.IsImaginary)),
		fn("isnan", CategoryProperties, pz, "a component is NaN", predicate(complexx.Complex.IsNaN)),
		fn("isinfinite", CategoryProperties, pz, "a component is infinite", predicate(complexx.Complex.IsInfinite), "isinf"),
		fn("isdegenerate", CategoryProperties, pz, "NaN or infinite", predicate(complexx.Complex.IsDegenerate)),

		// power
		fn("exp", CategoryPower, pz, "e^z", unary(complexx.Exp)),
		fn("exp2", CategoryPower, pz, "2^z", unary(complexx.Exp2)),
		fn("exp10", CategoryPower, pz, "10^z", unary(complexx.Exp10)),
		fn("log", CategoryPower, pz, "natural logarithm", unary(complexx.Log), "ln"),
		fn("log2", CategoryPower, pz, "base-2 logarithm", unary(complexx.Log2)),
		fn("log10", CategoryPower, pz, "base-10 logarithm", unary(complexx.Log10)),
		fn("logbase", CategoryPower, []string{"z", "base"}, "logarithm to an arbitrary base", binary(complexx.LogBase), "logb"),
		fn("pow", CategoryPower, []string{"base", "exponent"}, "base^exponent", binary(complexx.Pow), "power"),
		fn("powreal", CategoryPower, []string{"base", "exponent"}, "base^exponent for a real exponent",
			withReal("powreal", func(args []complexx.Complex, x float64) Result {
				return complexResult(complexx.PowReal(args[0], x))
			})),
		fn("powint", CategoryPower, []string{"base", "n"}, "base^n by repeated squaring", withInt("powint", complexx.PowInt)),
		fn("sqrt", CategoryPower, pz, "principal square root", unary(complexx.Sqrt)),
		fn("cbrt", CategoryPower, pz, "principal cube root", unary(complexx.Cbrt)),
		fn("nthroot", CategoryPower, []string{"z", "n"}, "principal n-th root", withInt("nthroot", complexx.NthRoot)),
		fn("root", CategoryPower, []string{"z", "n"}, "z^(1/n) for a complex n", binary(complexx.Root)),

		// trigonometric
		fn("sin", CategoryTrigonometric, pz, "sine", unary(complexx.Sin)),
		fn("cos", CategoryTrigonometric, pz, "cosine", unary(complexx.Cos)),
		fn("tan", CategoryTrigonometric, pz, "tangent", unary(complexx.Tan)),
		fn("sec", CategoryTrigonometric, pz, "secant", unary(complexx.Sec)),
		fn("csc", CategoryTrigonometric, pz, "cosecant", unary(complexx.Csc)),
		fn("cot", CategoryTrigonometric, pz, "cotangent", unary(complexx.Cot)),
		fn("asin", CategoryTrigonometric, pz, "inverse sine", unary(complexx.Asin), "arcsin"),
		fn("acos", CategoryTrigonometric, pz, "inverse cosine", unary(complexx.Acos), "arccos"),
		fn("atan", CategoryTrigonometric, pz, "inverse tangent", unary(complexx.Atan), "arctan"),

		// hyperbolic
		fn("sinh", CategoryHyperbolic, pz, "hyperbolic sine", unary(complexx.Sinh)),
		fn("cosh", CategoryHyperbolic, pz, "hyperbolic cosine", unary(complexx.Cosh)),
		fn("tanh", CategoryHyperbolic, pz, "hyperbolic tangent", unary(complexx.Tanh)),
		fn("sech", CategoryHyperbolic, pz, "hyperbolic secant", unary(complexx.Sech)),
		fn("csch", CategoryHyperbolic, pz, "hyperbolic cosecant", unary(complexx.Csch)),
		fn("coth", CategoryHyperbolic, pz, "hyperbolic cotangent", unary(complexx.Coth)),
		fn("asinh", CategoryHyperbolic, pz, "inverse hyperbolic sine", unary(complexx.Asinh), "arsinh"),
		fn("acosh", CategoryHyperbolic, pz, "inverse hyperbolic cosine", unary(complexx.Acosh), "arcosh"),
		fn("atanh", CategoryHyperbolic, pz, "inverse hyperbolic tangent", unary(complexx.Atanh), "artanh"),

		// means
		fn("arithmeticmean", CategoryMeans, pab, "(a + b) / 2", binary(complexx.ArithmeticMean), "mean", "amean"),
		fn("harmonicmean", CategoryMeans, pab, "2ab / (a + b)", binary(complexx.HarmonicMean), "hmean"),
		fn("geometricmean", CategoryMeans, pab, "sqrt(ab)", binary(complexx.GeometricMean), "gmean"),
		fn("asteroidmean", CategoryMeans, pab, "((sqrt(a) + sqrt(b)) / 2)^2", binary(complexx.AsteroidMean)),
		fn("asteroidmeanwrong", CategoryMeans, pab, "(sqrt(a) + sqrt(b))^2", binary(complexx.AsteroidMeanWrong)),
		fn("quadraticmean", CategoryMeans, pab, "sqrt((a^2 + b^2) / 2)", binary(complexx.QuadraticMean), "qmean", "rms"),
		fn("quadraticmeanwrong", CategoryMeans, pab, "sqrt(a^2 + b^2)", binary(complexx.QuadraticMeanWrong)),
		fn("cubicmean", CategoryMeans, pab, "cbrt((a^3 + b^3) / 2)", binary(complexx.CubicMean)),
		fn("cubicmeanwrong", CategoryMeans, pab, "cbrt(a^3 + b^3)", binary(complexx.CubicMeanWrong)),

		// norms
		fn("manhattan", CategoryNorms, pz, "|re| + |im|", scalar(complexx.Manhattan), "l1"),
		fn("chebyshev", CategoryNorms, pz, "max(|re|, |im|)", scalar(complexx.Chebyshev), "linf"),
		fn("minnorm", CategoryNorms, pz, "min(|re|, |im|)", scalar(complexx.MinNorm)),
		fn("pnorm", CategoryNorms, []string{"z", "p"}, "(|re|^p + |im|^p)^(1/p)",
			withReal("pnorm", func(args []complexx.Complex, p float64) Result {
				return realResult(complexx.PNorm(args[0], p))
			})),
		fn("minmagnitude", CategoryNorms, pab, "operand with the smaller magnitude", binary(complexx.MinMagnitude), "minmag"),
		fn("maxmagnitude", CategoryNorms, pab, "operand with the larger magnitude", binary(complexx.MaxMagnitude), "maxmag"),

		// rounding
		fn("floor", CategoryRounding, pz, "component-wise floor", unary(complexx.Floor)),
		fn("ceil", CategoryRounding, pz, "component-wise ceiling", unary(complexx.Ceil)),
		fn("round", CategoryRounding, pz, "component-wise rounding half away from zero", unary(complexx.Round)),
		fn("trunc", CategoryRounding, pz, "component-wise truncation", unary(complexx.Trunc)),
		fn("mod", CategoryRounding, pab, "a - b*floor(a/b)", binary(complexx.Mod), "modulo"),
		fn("remainder", CategoryRounding, pab, "a - b*trunc(a/b)", binary(complexx.Remainder), "rem"),
		fn("nearestremainder", CategoryRounding, pab, "a - b*round(a/b)", binary(complexx.NearestRemainder), "nrem"),
		fn("modreal", CategoryRounding, []string{"z", "m"}, "component-wise modulo by a real m",
			withReal("modreal", func(args []complexx.Complex, m float64) Result {
				return complexResult(complexx.ModReal(args[0], m))
			})),

		// interpolation
		fn("lerp", CategoryInterpolation, pabt, "linear interpolation",
			withReal("lerp", func(args []complexx.Complex, t float64) Result {
				return complexResult(complexx.Lerp(args[0], args[1], t))
			})),
		fn("clerp", CategoryInterpolation, pabt, "polar interpolation along the shorter arc",
			withReal("clerp", func(args []complexx.Complex, t float64) Result {
				return complexResult(complexx.Clerp(args[0], args[1], t))
			})),
		fn("copymagnitude", CategoryInterpolation, []string{"direction", "magnitude"}, "direction of the first, magnitude of the second",
			binary(complexx.CopyMagnitude), "copymag"),

		// special
		fn("normal", CategorySpecial, []string{"z", "mean", "sigma"}, "normal density", ternary(complexx.Normal), "gauss"),
		fn("lognormal", CategorySpecial, []string{"z", "mean", "sigma"}, "log-normal density", ternary(complexx.LogNormal)),
		fn("butterfly", CategorySpecial, []string{"t"}, "point on the butterfly curve", unary(complexx.Butterfly)),
		fn("fibonacci", CategorySpecial, []string{"n"}, "Binet's formula for complex n", unary(complexx.NthFibonacci), "fib"),
	}
}
