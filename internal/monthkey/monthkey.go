// Package monthkey handles the "YYYY-MM" billing period identifier.
package monthkey

import (
	"fmt"
	"regexp"
	"time"
)

var keyRegexp = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// Valid reports whether s is a well-formed month key.
func Valid(s string) bool {
	return keyRegexp.MatchString(s)
}

// For returns the month key for the given time.
func For(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Parse splits a month key into year and month.
func Parse(s string) (year int, month time.Month, err error) {
	if !Valid(s) {
		return 0, 0, fmt.Errorf("invalid month key %q", s)
	}
	var m int
	fmt.Sscanf(s, "%d-%d", &year, &m)
	return year, time.Month(m), nil
}

// Add shifts a month key by delta months, rolling over year boundaries in
// either direction. Add("2024-01", -1) == "2023-12".
func Add(s string, delta int) (string, error) {
	year, month, err := Parse(s)
	if err != nil {
		return "", err
	}
	// time.Date normalizes out-of-range months
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return For(t), nil
}

// Trailing returns the n month keys ending at s, oldest first.
func Trailing(s string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("trailing count must be positive, got %d", n)
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		k, err := Add(s, i-(n-1))
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}
