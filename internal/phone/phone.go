// Package phone normalizes phone numbers for landlord discovery. Numbers are
// compared by digit suffix so that country-code and leading-zero variants of
// the same number still match ("+8801712345678", "01712345678", "1712345678").
package phone

import "strings"

// matchDigits is how many trailing digits must agree for two numbers to be
// considered the same line.
const matchDigits = 9

// Normalize strips everything but digits.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Match reports whether a and b plausibly identify the same phone line.
// Shorter inputs fall back to an exact or substring comparison.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if len(na) >= matchDigits && len(nb) >= matchDigits {
		return na[len(na)-matchDigits:] == nb[len(nb)-matchDigits:]
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
