package phone

import "strings"

// defaultCountryPrefix replaces a leading zero on locally formatted numbers.
const defaultCountryPrefix = "+251"

// Normalize maps raw phone input to its canonical form. A leading "0" is
// swapped for the default country prefix, a bare international number gains
// a "+", and anything already prefixed passes through untouched. The
// function is total and idempotent; every component that touches phone
// strings must compare canonical values only.
func Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(p, "0"):
		return defaultCountryPrefix + p[1:]
	case !strings.HasPrefix(p, "+"):
		return "+" + p
	default:
		return p
	}
}
