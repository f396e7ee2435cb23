// Package phone validates and normalizes recipient phone numbers.
package phone

import (
	"regexp"
	"strings"
)

// E.164: "+", a nonzero leading digit, then 1-14 more digits.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// NormalizeFunc coerces a loosely formatted number into E.164 form, or
// reports false when it cannot.
type NormalizeFunc func(raw, defaultCountryCode string) (string, bool)

// IsValidE164 reports whether number is a well-formed E.164 phone number.
func IsValidE164(number string) bool {
	return e164Pattern.MatchString(number)
}

// Normalize strips separators and prepends defaultCountryCode to numbers
// lacking a leading "+". This is a single-country heuristic, not a parser;
// the country code comes from configuration.
func Normalize(raw, defaultCountryCode string) (string, bool) {
	number := strings.TrimSpace(raw)
	number = strings.ReplaceAll(number, " ", "")
	number = strings.ReplaceAll(number, "-", "")
	if number == "" {
		return "", false
	}
	if !strings.HasPrefix(number, "+") {
		number = "+" + strings.TrimPrefix(defaultCountryCode, "+") + number
	}
	if !IsValidE164(number) {
		return "", false
	}
	return number, true
}
