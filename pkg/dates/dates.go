// Package dates converts between the three date representations used across
// the system: ISO form for HTML date inputs, the legacy backend's dd/mm/yyyy
// wire form, and a human-readable display form. All comparisons go through
// time.Time; raw dd/mm/yyyy strings must never be ordered lexically.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the ISO layout used by HTML date inputs.
	InputLayout = "2006-01-02"
	// APILayout is the legacy backend's wire layout.
	APILayout = "02/01/2006"
	// DisplayLayout is the layout shown to users.
	DisplayLayout = "02 Jan 2006"
)

// ParseAPI parses a dd/mm/yyyy string from the backend.
func ParseAPI(s string) (time.Time, error) {
	t, err := time.Parse(APILayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid api date %q: %w", s, err)
	}
	return t, nil
}

// ParseInput parses an ISO yyyy-mm-dd string from a date input.
func ParseInput(s string) (time.Time, error) {
	t, err := time.Parse(InputLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid input date %q: %w", s, err)
	}
	return t, nil
}

// ToAPIFormat converts any of the three string forms to dd/mm/yyyy.
// Strings already in API form pass through unchanged, which makes repeated
// conversion idempotent. Empty and unparseable input yields "".
func ToAPIFormat(s string) string {
	t, ok := parseAny(s)
	if !ok {
		return ""
	}
	return t.Format(APILayout)
}

// ToInputFormat converts any of the three string forms to ISO yyyy-mm-dd.
// Empty and unparseable input yields "".
func ToInputFormat(s string) string {
	t, ok := parseAny(s)
	if !ok {
		return ""
	}
	return t.Format(InputLayout)
}

// ToDisplay converts any of the three string forms to the display form.
// Empty and unparseable input yields "".
func ToDisplay(s string) string {
	t, ok := parseAny(s)
	if !ok {
		return ""
	}
	return t.Format(DisplayLayout)
}

// Compare parses both values and returns -1, 0 or 1. Unparseable values sort
// first so incomplete records surface at a consistent position.
func Compare(a, b string) int {
	ta, okA := parseAny(a)
	tb, okB := parseAny(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// Before reports whether a is strictly earlier than b.
func Before(a, b string) bool {
	return Compare(a, b) < 0
}

// InRange reports whether s falls within [from, to]. An empty bound is open.
func InRange(s, from, to string) bool {
	t, ok := parseAny(s)
	if !ok {
		return false
	}
	if from != "" {
		f, ok := parseAny(from)
		if ok && t.Before(f) {
			return false
		}
	}
	if to != "" {
		u, ok := parseAny(to)
		if ok && t.After(u) {
			return false
		}
	}
	return true
}

func parseAny(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{APILayout, InputLayout, DisplayLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
