package utils

import "strings"

// NormalizePhone converts a locally entered phone number into the fixed
// international-dialing-prefix form the messaging gateway expects.
// Separators and a leading trunk zero are stripped; numbers already
// carrying the country code are left alone.
func NormalizePhone(phone, countryCode string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, countryCode) {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "00") {
		return "+" + cleaned[2:]
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "0")
	return countryCode + cleaned
}
