// Package naming converts wire field names into identifiers for generated
// declarations.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToLocalIdentifier converts a wire name into a snake_case identifier: an
// underscore goes before every uppercase letter other than the first
// character, and every letter is lower-cased. Inputs already in snake_case
// are returned unchanged.
func ToLocalIdentifier(wireName string) string {
	if wireName == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(wireName) + 4)
	for i, r := range wireName {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToRecordName upper-cases the first character of a wire name and leaves the
// rest untouched.
func ToRecordName(wireName string) string {
	if wireName == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(wireName)
	return string(unicode.ToUpper(r)) + wireName[size:]
}
