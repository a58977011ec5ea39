package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
// Out-of-range values such as "2024-13-40" are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// NormaliseDate parses s and re-formats it as YYYY-MM-DD.
func NormaliseDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// NormaliseSecurity title-cases each word of a security label,
// so "top secret" and "TOP SECRET" both become "Top Secret".
func NormaliseSecurity(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
