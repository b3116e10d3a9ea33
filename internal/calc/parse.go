package calc

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/utils/complexx"
	"github.com/msto63/cplx/foundation/utils/stringx"
)

// Call is a parsed input line: a function name and its arguments
type Call struct {
	Function string
	Args     []complexx.Complex
}

// constants accepted in place of a numeric argument
var constants = map[string]complexx.Complex{
	"pi":  complexx.FromReal(math.Pi),
	"tau": complexx.FromReal(2 * math.Pi),
	"e":   complexx.FromReal(math.E),
	"phi": complexx.FromReal(math.Phi),
}

// ParseLine splits "fn arg1 arg2" into a Call. Arguments are separated by
// whitespace or commas outside parentheses, so "(1, 2)" stays one argument.
// Each argument is a complex literal or one of pi, tau, e, phi with an
// optional sign.
func ParseLine(line string) (Call, error) {
	if stringx.IsBlank(line) {
		return Call{}, errors.CalcParseError(line, "empty input")
	}

	tokens, err := tokenize(line)
	if err != nil {
		return Call{}, err
	}
	if len(tokens) == 0 {
		return Call{}, errors.CalcParseError(line, "missing function name")
	}

	call := Call{Function: strings.ToLower(tokens[0])}
	if !isIdentifier(call.Function) {
		return Call{}, errors.CalcParseError(line, fmt.Sprintf("%q is not a function name", tokens[0]))
	}

	for i, tok := range tokens[1:] {
		z, err := ParseArg(tok)
		if err != nil {
			return Call{}, errors.CalcParseError(line, fmt.Sprintf("argument %d: cannot read %q", i+1, tok)).
				WithDetail("index", i)
		}
		call.Args = append(call.Args, z)
	}
	return call, nil
}

// ParseArg reads a single argument: a named constant or a complex literal
func ParseArg(s string) (complexx.Complex, error) {
	s = strings.TrimSpace(s)
	name, negate := strings.ToLower(s), false
	switch {
	case strings.HasPrefix(name, "-"):
		name, negate = name[1:], true
	case strings.HasPrefix(name, "+"):
		name = name[1:]
	}
	if z, ok := constants[name]; ok {
		if negate {
			return complexx.Negate(z), nil
		}
		return z, nil
	}
	return complexx.Parse(s)
}

func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		depth   int
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case r == '(':
			depth++
			current.WriteRune(r)
		case r == ')':
			if depth == 0 {
				return nil, errors.CalcParseError(line, "unbalanced parenthesis")
			}
			depth--
			current.WriteRune(r)
		case depth == 0 && (unicode.IsSpace(r) || r == ','):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, errors.CalcParseError(line, "unbalanced parenthesis")
	}
	flush()
	return tokens, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}
