// File: level_test.go
// Title: Log Level Tests
// Description: Tests for level names, filtering and parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-09-08
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-08 v0.1.0: Initial level tests

package log

import (
	"testing"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
)

func TestLevelStrings(t *testing.T) {
	tests := []struct {
		level Level
		name  string
		short string
	}{
		{LevelTrace, "trace", "TRC"},
		{LevelDebug, "debug", "DBG"},
		{LevelInfo, "info", "INF"},
		{LevelWarn, "warn", "WRN"},
		{LevelError, "error", "ERR"},
		{LevelFatal, "fatal", "FTL"},
		{LevelAudit, "audit", "AUD"},
		{Level(99), "unknown", "???"},
		{Level(-1), "unknown", "???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.level.ShortString(); got != tt.short {
				t.Errorf("ShortString() = %q, want %q", got, tt.short)
			}
		})
	}
}

func TestLevelShouldLog(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		min   Level
		want  bool
	}{
		{"below minimum", LevelDebug, LevelInfo, false},
		{"at minimum", LevelInfo, LevelInfo, true},
		{"above minimum", LevelError, LevelWarn, true},
		{"audit below fatal minimum", LevelAudit, LevelFatal, true},
		{"trace at trace", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.ShouldLog(tt.min); got != tt.want {
				t.Errorf("%v.ShouldLog(%v) = %v, want %v", tt.level, tt.min, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"  WARN ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"aud", LevelAudit, false},
		{"", LevelInfo, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err != nil && !cplxerror.HasCode(err, cplxerror.CodeInvalidConfig) {
				t.Errorf("ParseLevel(%q) error code = %v, want INVALID_CONFIG", tt.input, cplxerror.GetCode(err))
			}
		})
	}
}

func TestAllLevelsAscending(t *testing.T) {
	levels := AllLevels()
	if len(levels) != 7 {
		t.Fatalf("AllLevels() returned %d levels, want 7", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Errorf("levels not ascending at %d: %v <= %v", i, levels[i], levels[i-1])
		}
	}
}

func TestLevelForSeverity(t *testing.T) {
	tests := []struct {
		severity cplxerror.Severity
		want     Level
	}{
		{cplxerror.SeverityLow, LevelInfo},
		{cplxerror.SeverityMedium, LevelWarn},
		{cplxerror.SeverityHigh, LevelError},
		{cplxerror.SeverityCritical, LevelError},
	}

	for _, tt := range tests {
		if got := levelForSeverity(tt.severity); got != tt.want {
			t.Errorf("levelForSeverity(%v) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}
