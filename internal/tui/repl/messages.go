// ============================================================================
// cplx - Complex number toolkit
// ============================================================================
//
// Package:     repl
// Description: Message types for async operations in the REPL
// Author:      msto63
// Created:     2026-10-06
// License:     MIT
// ============================================================================

package repl

import (
	"time"

	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/internal/history"
)

// LineKind classifies scrollback lines
type LineKind int

const (
	LineInput LineKind = iota
	LineResult
	LineError
	LineInfo
)

// Line is one scrollback entry
type Line struct {
	Kind      LineKind
	Text      string
	Timestamp time.Time
}

// evalResultMsg is sent when an evaluation finishes
type evalResultMsg struct {
	line     string
	call     calc.Call
	result   calc.Result
	duration time.Duration
	err      error
}

// historyLoadedMsg is sent when history entries are loaded
type historyLoadedMsg struct {
	entries []*history.Entry
	err     error
}
