package client

import (
	"strings"
	"unicode"
)

const kenyaCountryCode = "254"

// NormalizePhone turns local Kenyan formats (07.., 7.., +254..) into 2547.. digits.
// It is best effort: anything it does not recognise is returned with whitespace removed.
func NormalizePhone(raw string) string {
	p := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	p = strings.TrimLeft(p, "+")

	if strings.HasPrefix(p, "0") {
		p = kenyaCountryCode + p[1:]
	}
	if strings.HasPrefix(p, "7") || strings.HasPrefix(p, "1") {
		p = kenyaCountryCode + p
	}
	return p
}
