// Package phone canonicalizes Kazakhstan customer numbers.
package phone

import "strings"

func digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize returns the number as "+7XXXXXXXXXX". The second result is false
// when the input does not look like a local or international KZ number.
func Normalize(raw string) (string, bool) {
	d := digits(raw)
	switch {
	case len(d) == 11 && d[0] == '8':
		return "+7" + d[1:], true
	case len(d) == 11 && d[0] == '7':
		return "+" + d, true
	case len(d) == 10:
		return "+7" + d, true
	case len(d) == 12 && strings.HasPrefix(d, "77"):
		return "+" + d, true
	}
	return "", false
}

// Repair applies the light fix-up done when an order is ingested: a 10 digit
// number starting with 7 gets the country code. Everything else is kept as
// digits only.
func Repair(raw string) string {
	d := digits(raw)
	if len(d) == 10 && d[0] == '7' {
		return "7" + d
	}
	return d
}
