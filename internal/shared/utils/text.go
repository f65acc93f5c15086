package utils

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from free-text input such as notes and
// trims surrounding whitespace.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeOptional applies SanitizeText to an optional field, keeping nil as nil.
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeText(*s)
	return &v
}

// NormalizePersonName trims, collapses inner whitespace and title-cases a name
// part ("  maría   JOSÉ " becomes "María José").
func NormalizePersonName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	// Casers keep state and must not be shared between goroutines.
	return cases.Title(language.Spanish).String(strings.Join(fields, " "))
}

// DigitsOnly removes every non-digit rune, used to normalize phone numbers.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
