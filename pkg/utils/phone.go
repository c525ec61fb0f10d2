package utils

import "strings"

// NormalizePhone strips everything but digits and accepts 9-12 digit numbers,
// matching what the booking API itself will accept. Returns "" when the
// number cannot be valid.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 9 || len(digits) > 12 {
		return ""
	}
	return digits
}
