package normalize

import "strings"

// PhoneDigits strips every non-digit character from a phone number.
// This is the comparable form used by the phone-equality strategy.
func PhoneDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// E164 returns the canonical +1-prefixed form of a North American phone
// number, or "" when the digits cannot be canonicalized. The transform
// is idempotent: feeding back an already-canonical number returns the
// same value.
//
//	(305) 391-4414 -> +13053914414
//	13053914414    -> +13053914414
//	391-4414       -> ""
func E164(raw string) string {
	digits := PhoneDigits(raw)
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits
	}
	return ""
}
