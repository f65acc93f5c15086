package utils

import "strings"

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "ana@example.com" becomes "a***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return "***"
	}
	if at == 0 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// MaskPhone keeps only the last four digits of a phone number.
func MaskPhone(phone string) string {
	digits := DigitsOnly(phone)
	if len(digits) <= 4 {
		return "***"
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
