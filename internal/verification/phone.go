package verification

import "strings"

// NormalizePhone strips every non-digit character from value.
func NormalizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePhone checks that value normalizes to exactly 10 digits and
// returns the normalized number.
func ValidatePhone(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrPhoneRequired
	}
	digits := NormalizePhone(value)
	if len(digits) != 10 {
		return "", ErrInvalidPhone
	}
	return digits, nil
}
