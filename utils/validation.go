// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?\d{6,15}$`)

// ValidatePhone accepts local and international numbers, trunk prefix
// included (e.g. "0471-2345678", "+91 98765 43210").
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")

	// Optional + prefix followed by 6-15 digits
	return phonePattern.MatchString(cleaned)
}

// PhoneDigits strips everything except digits, as wa.me links expect.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// E164 returns the phone with a leading + when it has none, for Twilio.
func E164(phone string) string {
	digits := PhoneDigits(phone)
	if digits == "" {
		return ""
	}
	return "+" + digits
}
