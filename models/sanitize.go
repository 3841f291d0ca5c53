package models

import "strings"

// SanitizeXML strips characters that are not allowed to appear in XML 1.0
// documents (control characters other than tab, newline and carriage return,
// and the noncharacter range). Feed text passes through here once at
// normalization time so the serializer can never emit an invalid document.
func SanitizeXML(s string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20:
			return -1
		case r >= 0xD800 && r <= 0xDFFF:
			return -1
		case r == 0xFFFE || r == 0xFFFF:
			return -1
		default:
			return r
		}
	}, s)
	return strings.TrimSpace(clean)
}
