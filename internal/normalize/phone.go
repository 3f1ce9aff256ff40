package normalize

import "strings"

// Phone reduces a phone number to its comparison key: digits only, the
// US/Canada trunk prefix dropped from 11-digit numbers, then the last
// 10 digits when available, else the last 7, else whatever remains.
// This models variable area-code and extension presence across
// address-book exports.
//
//	Phone("+1 (650) 555-1234") == "6505551234"
//	Phone("555-1234")          == "5551234"
func Phone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}

	switch {
	case len(digits) >= 10:
		return digits[len(digits)-10:]
	case len(digits) >= 7:
		return digits[len(digits)-7:]
	default:
		return digits
	}
}

// PhonesMatch compares two already-normalized numbers. An exact match
// on 10 digits is worth confidence 100; agreement on the trailing 7
// digits only (area code unknown or differently recorded) is the
// weaker 90. No match is (false, 0, "").
func PhonesMatch(norm1, norm2 string) (bool, int, string) {
	if norm1 == "" || norm2 == "" {
		return false, 0, ""
	}
	if len(norm1) >= 10 && len(norm2) >= 10 && norm1 == norm2 {
		return true, 100, "Phone exact match (10 digits)"
	}
	if len(norm1) >= 7 && len(norm2) >= 7 && norm1[len(norm1)-7:] == norm2[len(norm2)-7:] {
		return true, 90, "Phone match (last 7 digits)"
	}
	return false, 0, ""
}

// AreaCode returns the leading 3 digits of a normalized 10-digit
// number, or "" when the area code is absent.
func AreaCode(normPhone string) string {
	if len(normPhone) >= 10 {
		return normPhone[:3]
	}
	return ""
}
