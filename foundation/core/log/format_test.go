// File: format_test.go
// Title: Formatter Tests
// Description: Tests for the JSON, text, console and logfmt formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Initial formatter tests
// - 2026-10-03 v0.2.0: Console styling, structured error details

package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

func testEntry() *Entry {
	e := NewEntry(LevelWarn, "degenerate result")
	e.Timestamp = time.Date(2026, 9, 8, 12, 30, 0, 0, time.UTC)
	e.Logger = "calc"
	e.SessionID = "s-1"
	e.RequestID = "r-7"
	e.Fields = Fields{"function": "log", "arg": "0+0i"}
	return e
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "text", "console", "logfmt"} {
		f, err := ParseFormat(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", name, err)
		}
		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f.String())
		}
	}

	if _, err := ParseFormat("xml"); !cplxerror.HasCode(err, cplxerror.CodeInvalidConfig) {
		t.Errorf("ParseFormat(xml) error = %v, want INVALID_CONFIG", err)
	}
	if got := Format(42).String(); got != "unknown" {
		t.Errorf("Format(42).String() = %q, want unknown", got)
	}
}

func TestJSONFormatter(t *testing.T) {
	e := testEntry()
	e.Duration = 1500 * time.Microsecond

	out, err := NewJSONFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasSuffix(string(out), "\n") {
		t.Error("JSON output lacks trailing newline")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	want := map[string]interface{}{
		"level":       "warn",
		"message":     "degenerate result",
		"logger":      "calc",
		"session_id":  "s-1",
		"request_id":  "r-7",
		"function":    "log",
		"duration_ms": 1.5,
	}
	for k, v := range want {
		if data[k] != v {
			t.Errorf("data[%q] = %v, want %v", k, data[k], v)
		}
	}
	if _, ok := data["correlation_id"]; ok {
		t.Error("empty correlation id should be omitted")
	}
}

func TestJSONFormatterStructuredError(t *testing.T) {
	e := testEntry()
	e.Error = cplxerror.Wrap(
		cplxerror.New("argument is NaN").WithCode(cplxerror.CodeDegenerateValue).WithOperation("calc.eval"),
		"evaluation failed",
	)

	out, err := NewJSONFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data struct {
		Error   string `json:"error"`
		Details struct {
			Code      string `json:"code"`
			Operation string `json:"operation"`
		} `json:"error_details"`
	}
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if data.Error != "evaluation failed: argument is NaN" {
		t.Errorf("error = %q", data.Error)
	}
	if data.Details.Code != "DEGENERATE_VALUE" || data.Details.Operation != "calc.eval" {
		t.Errorf("error_details = %+v", data.Details)
	}
}

func TestJSONFormatterErrorField(t *testing.T) {
	e := testEntry()
	e.Fields = Err(errors.New("disk full"))

	out, err := NewJSONFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), `"error":"disk full"`) {
		t.Errorf("error field not rendered as text: %s", out)
	}
}

func TestTextFormatter(t *testing.T) {
	f := NewTextFormatter()
	out, err := f.Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "12:30:00.000 [WRN] {calc} (session=s-1,req=r-7) degenerate result [arg=0+0i function=log]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}

	f.DisableTimestamp = true
	out, _ = f.Format(NewEntry(LevelInfo, "ready"))
	if string(out) != "[INF] ready\n" {
		t.Errorf("Format() without timestamp = %q", out)
	}
}

func TestConsoleFormatter(t *testing.T) {
	e := testEntry()

	plain := &ConsoleFormatter{DisableColors: true, TextFormatter: NewTextFormatter()}
	want, _ := NewTextFormatter().Format(e)
	got, err := plain.Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("console without colors = %q, want %q", got, want)
	}

	styled, err := NewConsoleFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	for _, part := range []string{"WRN", "degenerate result", "function=log"} {
		if !strings.Contains(string(styled), part) {
			t.Errorf("styled output %q missing %q", styled, part)
		}
	}
}

func TestLogfmtFormatter(t *testing.T) {
	e := testEntry()
	e.Error = errors.New("boom")

	out, err := NewLogfmtFormatter().Format(e)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	line := string(out)

	for _, part := range []string{
		"timestamp=2026-09-08T12:30:00Z",
		"level=warn",
		`message="degenerate result"`,
		"session_id=s-1",
		`function="log"`,
		`error="boom"`,
	} {
		if !strings.Contains(line, part) {
			t.Errorf("logfmt line %q missing %q", line, part)
		}
	}
	if strings.Index(line, "arg=") > strings.Index(line, "function=") {
		t.Error("field keys not sorted")
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*log.JSONFormatter"},
		{FormatText, "*log.TextFormatter"},
		{FormatConsole, "*log.ConsoleFormatter"},
		{FormatLogfmt, "*log.LogfmtFormatter"},
		{Format(9), "*log.JSONFormatter"},
	}

	for _, tt := range tests {
		got := typeName(GetFormatter(tt.format))
		if got != tt.want {
			t.Errorf("GetFormatter(%v) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(f Formatter) string {
	switch f.(type) {
	case *JSONFormatter:
		return "*log.JSONFormatter"
	case *TextFormatter:
		return "*log.TextFormatter"
	case *ConsoleFormatter:
		return "*log.ConsoleFormatter"
	case *LogfmtFormatter:
		return "*log.LogfmtFormatter"
	}
	return "?"
}
