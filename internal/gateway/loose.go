package gateway

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The legacy backend is inconsistent about scalar types: ids arrive as
// numbers or quoted strings, amounts as numbers or "12,500.00". LooseID and
// LooseFloat absorb both so the mappers only deal with clean values.

// LooseID decodes a numeric or string-encoded identifier. Invalid input
// decodes to zero rather than failing the whole record.
type LooseID uint

func (l *LooseID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*l = 0
		return nil
	}
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		*l = 0
		return nil
	}
	*l = LooseID(v)
	return nil
}

// LooseFloat decodes a numeric or string-encoded amount, tolerating thousands
// separators. Invalid input decodes to zero.
type LooseFloat float64

func (l *LooseFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*l = 0
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*l = 0
		return nil
	}
	*l = LooseFloat(v)
	return nil
}

// firstString returns the first non-empty candidate, or fallback.
func firstString(fallback string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && strings.TrimSpace(*c) != "" {
			return strings.TrimSpace(*c)
		}
	}
	return fallback
}

// normalizeStatus lower-cases a backend status and maps it onto the known
// set, defaulting when the value is missing or unrecognized.
func normalizeStatus(raw *string, known []string, fallback string) string {
	if raw == nil {
		return fallback
	}
	s := strings.ToLower(strings.TrimSpace(*raw))
	for _, k := range known {
		if s == k {
			return k
		}
	}
	return fallback
}

var _ json.Unmarshaler = (*LooseID)(nil)
var _ json.Unmarshaler = (*LooseFloat)(nil)
