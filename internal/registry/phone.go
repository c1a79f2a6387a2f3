package registry

import "strings"

// CountryCallingCode is prepended to numbers that don't carry it yet.
const CountryCallingCode = "55"

// NormalizePhone reduces free-text phone input to its canonical dialable
// form: digits only, always starting with the country calling code.
// Empty input (or input without any digit) normalizes to "" and must be
// treated as invalid by callers. The prefix check is a literal substring
// test, so a local number that happens to start with "55" is never
// double-prefixed.
func NormalizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, CountryCallingCode) {
		return digits
	}
	return CountryCallingCode + digits
}
