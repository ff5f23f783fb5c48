package naming

import (
	"fmt"
	"strings"
)

// EscapePython escapes s for the body of a double-quoted Python string
// literal. Control characters without a short escape become \xNN.
func EscapePython(s string) string {
	if strings.IndexFunc(s, needsPythonEscape) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsPythonEscape(r rune) bool {
	return r == '\\' || r == '"' || r < 0x20 || r == 0x7f
}
