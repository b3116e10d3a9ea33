// File: parse_test.go
// Title: Unit Tests for Parsing and Text Formatting
// Description: Tests for the accepted input forms, malformed input reporting
//              and the algebraic text representation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-22
// Modified: 2026-09-22
//
// Change History:
// - 2026-09-22 v0.1.0: Initial parser tests

package complexx

import (
	"math"
	"testing"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Complex
	}{
		{"3", New(3, 0)},
		{"-2.5e3", New(-2500, 0)},
		{"  7  ", New(7, 0)},
		{"4i", New(0, 4)},
		{"i", New(0, 1)},
		{"-i", New(0, -1)},
		{"+i", New(0, 1)},
		{"2j", New(0, 2)},
		{"3+4i", New(3, 4)},
		{"3-4i", New(3, -4)},
		{"-3-i", New(-3, -1)},
		{"1.5e-3-2i", New(0.0015, -2)},
		{"1e+2+1e-2i", New(100, 0.01)},
		{"(3, 4)", New(3, 4)},
		{"(3 4)", New(3, 4)},
		{"( -1 ,  0.5 )", New(-1, 0.5)},
		{"+3.0e+00/-4.0e+00", New(3, -4)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"abc",
		"3+",
		"pi",
		"3+4k",
		"(1, 2, 3)",
		"(1)",
		"1/x",
		"3++4i",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", input)
			}
			if !cplxerror.HasCode(err, cplxerror.CodeInvalidFormat) {
				t.Errorf("Parse(%q) error code = %v, want INVALID_FORMAT", input, cplxerror.GetCode(err))
			}
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	values := []Complex{
		New(1.234, -0.5),
		New(-1e-300, 1e300),
		New(math.Pi, math.E),
		Zero,
		New(math.Inf(1), math.Inf(-1)),
	}

	for _, c := range values {
		got, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", c.String(), err)
		}
		if !got.Equal(c) {
			t.Errorf("Parse(String(%v)) = %v", c, got)
		}
	}
}

func TestMustParse(t *testing.T) {
	if got := MustParse("1-i"); got != New(1, -1) {
		t.Errorf("MustParse(1-i) = %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse(bogus) did not panic")
		}
	}()
	MustParse("bogus")
}

func TestText(t *testing.T) {
	tests := []struct {
		name      string
		c         Complex
		format    byte
		precision int
		want      string
	}{
		{"fixed negative imag", New(3, -4), 'f', 1, "3.0-4.0i"},
		{"fixed positive imag", New(-0.5, 2), 'f', 2, "-0.50+2.00i"},
		{"shortest", New(1.25, 0.1), 'g', -1, "1.25+0.1i"},
		{"exponent", New(1e10, -1e-10), 'e', 1, "1.0e+10-1.0e-10i"},
		{"infinite", New(math.Inf(1), math.Inf(-1)), 'g', -1, "+Inf-Infi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Text(tt.format, tt.precision); got != tt.want {
				t.Errorf("Text(%q, %d) = %q, want %q", tt.format, tt.precision, got, tt.want)
			}
		})
	}

	for _, c := range []Complex{New(3, -4), New(-0.5, 2), New(0, 1)} {
		got, err := Parse(c.Text('g', -1))
		if err != nil || got != c {
			t.Errorf("Parse(Text(%v)) = %v, %v", c, got, err)
		}
	}
}
