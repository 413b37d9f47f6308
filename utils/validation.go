// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	digitsOnly = regexp.MustCompile(`\D`)
	emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

// NormalizePhone strips every non-digit character. The result is what
// gets stored and compared; original formatting is not preserved.
func NormalizePhone(phone string) string {
	return digitsOnly.ReplaceAllString(phone, "")
}

// ValidatePhone checks that a phone number normalizes to 10-15 digits
func ValidatePhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 10 && n <= 15
}

// ValidateEmail checks the basic local@domain shape
func ValidateEmail(email string) bool {
	return emailShape.MatchString(strings.TrimSpace(email))
}
