// File: parse.go
// Title: Parsing and Alternative Formatting
// Description: Parses complex values from the algebraic form (a+bi), the tuple
//              form ((a, b) or (a b)) and the library's own slash form (a/b),
//              and renders values in algebraic form with configurable precision.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-22
// Modified: 2026-09-22
//
// Change History:
// - 2026-09-22 v0.1.0: Initial parser and Text formatting

package complexx

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/msto63/cplx/foundation/core/errors"
)

// Parse converts s to a complex value. Accepted forms:
//
//	3, -2.5e3           real only
//	4i, -i, i, 2j       imaginary only
//	3+4i, 1.5e-3-2i     algebraic
//	(3, 4), (3 4)       tuple
//	+3.0e+00/+4.0e+00   slash form as produced by String
func Parse(s string) (Complex, error) {
	input := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Complex{}, errors.ComplexxInvalidFormat(input)
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		fields := strings.FieldsFunc(s[1:len(s)-1], func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(fields) != 2 {
			return Complex{}, errors.ComplexxInvalidFormat(input)
		}
		return parsePair(input, fields[0], fields[1])
	}

	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		return parsePair(input, s[:idx], s[idx+1:])
	}

	last := s[len(s)-1]
	if last != 'i' && last != 'j' {
		re, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Complex{}, errors.ComplexxInvalidFormat(input)
		}
		return Complex{Real: re}, nil
	}

	body := s[:len(s)-1]
	split := -1
	for k := len(body) - 1; k > 0; k-- {
		if (body[k] == '+' || body[k] == '-') && body[k-1] != 'e' && body[k-1] != 'E' {
			split = k
			break
		}
	}

	reStr, imStr := "", body
	if split >= 0 {
		reStr, imStr = body[:split], body[split:]
	}

	var re float64
	if reStr != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(reStr), 64)
		if err != nil {
			return Complex{}, errors.ComplexxInvalidFormat(input)
		}
		re = v
	}

	im, err := parseImagCoefficient(strings.TrimSpace(imStr))
	if err != nil {
		return Complex{}, errors.ComplexxInvalidFormat(input)
	}
	return Complex{Real: re, Imag: im}, nil
}

// MustParse is like Parse but panics on malformed input.
// Use it for constants known to be valid.
func MustParse(s string) Complex {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Text renders the value as a+bi using strconv.FormatFloat's format byte and
// precision for both components
func (c Complex) Text(format byte, precision int) string {
	re := strconv.FormatFloat(c.Real, format, precision, 64)
	im := strconv.FormatFloat(c.Imag, format, precision, 64)
	if im[0] != '-' && im[0] != '+' {
		im = "+" + im
	}
	return re + im + "i"
}

func parsePair(input, reStr, imStr string) (Complex, error) {
	re, err := strconv.ParseFloat(strings.TrimSpace(reStr), 64)
	if err != nil {
		return Complex{}, errors.ComplexxInvalidFormat(input)
	}
	im, err := strconv.ParseFloat(strings.TrimSpace(imStr), 64)
	if err != nil {
		return Complex{}, errors.ComplexxInvalidFormat(input)
	}
	return Complex{Real: re, Imag: im}, nil
}

// parseImagCoefficient parses the coefficient in front of i; a bare sign means ±1
func parseImagCoefficient(s string) (float64, error) {
	switch s {
	case "", "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	return strconv.ParseFloat(s, 64)
}
