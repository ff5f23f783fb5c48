package naming

import (
	"strings"
	"unicode"
)

// ToLabel turns a wire name into a human label: words split on underscores,
// dashes, spaces and case or digit boundaries, each title-cased.
// "streetName" becomes "Street Name", "address_line2" becomes
// "Address Line 2".
func ToLabel(wireName string) string {
	words := strings.FieldsFunc(wireName, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	segments := make([]string, 0, len(words))
	for _, word := range words {
		for _, part := range splitBoundaries(word) {
			segments = append(segments, titleWord(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitBoundaries(word string) []string {
	runes := []rune(word)
	var (
		parts []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		if (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	return append(parts, string(runes[start:]))
}

func titleWord(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
