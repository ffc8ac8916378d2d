// Package soc normalizes Standard Occupational Classification codes. Both
// sides of the work-values join go through Normalize, so it is the join key.
package soc

import "strings"

// Normalize reformats a SOC code best-effort:
//
//	"131081"       → "13-1081"
//	"15125100"     → "15-12510-0"
//	"15-1252.00"   → "15-12520-0"
//	"11-1011"      → "11-1011"
//
// Digit counts other than 5, 6 or ≥7 return the trimmed input unchanged.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	digits := onlyDigits(s)
	switch {
	case len(digits) >= 7:
		out := digits[:2] + "-" + digits[2:7]
		if rest := digits[7:]; rest != "" {
			out += "-" + rest
		}
		return out
	case len(digits) == 5 || len(digits) == 6:
		return digits[:2] + "-" + digits[2:]
	default:
		return s
	}
}

// NormalizeAll applies Normalize to every value in place and returns vals.
func NormalizeAll(vals []string) []string {
	for i, v := range vals {
		vals[i] = Normalize(v)
	}
	return vals
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
