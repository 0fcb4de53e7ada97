package util

import "strings"

// NormalizeTicker trims whitespace and upper-cases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidTicker reports whether s looks like an exchange symbol: non-empty,
// at most 12 characters, letters/digits with '.' or '-' separators
// (e.g. BRK.B, RDS-A). Assumes the input is already normalized.
func IsValidTicker(s string) bool {
	if s == "" || len(s) > 12 {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
			// separators may not lead, trail, or repeat
			if i == 0 || i == len(s)-1 {
				return false
			}
			if s[i-1] == '.' || s[i-1] == '-' {
				return false
			}
		default:
			return false
		}
	}
	return true
}
