// File: stringx.go
// Title: String Helpers for Names and Tables
// Description: Blank checks, rune-aware truncation and padding for table
//              output, and edit-distance matching used to suggest function
//              names for unknown input.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-24
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-24 v0.1.0: Blank checks, truncation and padding
// - 2026-10-03 v0.2.0: Distance and Closest for name suggestions

package stringx

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/cplx/foundation/core/errors"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FirstNonBlank returns the first argument that is not blank, or "".
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if !IsBlank(v) {
			return v
		}
	}
	return ""
}

// Truncate shortens s to maxLen runes, ending with ellipsis when cut.
// An ellipsis that does not fit is dropped.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads s with pad up to width runes.
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + (width-n)*utf8.RuneLen(pad))
	b.WriteString(s)
	for i := n; i < width; i++ {
		b.WriteRune(pad)
	}
	return b.String()
}

// PadLeft pads s on the left with pad up to width runes.
func PadLeft(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}

// Distance returns the Levenshtein edit distance between a and b,
// compared case-insensitively.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Closest returns up to limit candidates within maxDistance edits of
// name, nearest first. Candidates that start with name always match.
// Ties are ordered alphabetically.
func Closest(name string, candidates []string, maxDistance, limit int) []string {
	type scored struct {
		value    string
		distance int
	}

	lower := strings.ToLower(name)
	var matches []scored
	for _, c := range candidates {
		d := Distance(name, c)
		if lower != "" && strings.HasPrefix(strings.ToLower(c), lower) {
			d = min(d, 1)
		}
		if d <= maxDistance {
			matches = append(matches, scored{c, d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].value < matches[j].value
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

// ValidateNotBlank returns an INVALID_INPUT error for blank values.
func ValidateNotBlank(field, s string) error {
	if IsBlank(s) {
		return errors.InvalidInput("stringx", "validate", field, "non-blank string")
	}
	return nil
}
