package locator

import (
	"fmt"
	"strings"
	"unicode"
)

const cssSpecial = "!\"#$%&'()*+,./:;<=>?@[\\]^`{|}~ "

// EscapeCSS escapes s for use as a CSS identifier or inside a double-quoted
// attribute value. The same escaping is used for synthesis and validation.
func EscapeCSS(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == 0:
			sb.WriteString(`\fffd `)
		case unicode.IsControl(r):
			fmt.Fprintf(&sb, `\%x `, r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&sb, `\%x `, r)
		case i == 1 && r >= '0' && r <= '9' && s[0] == '-':
			fmt.Fprintf(&sb, `\%x `, r)
		case strings.ContainsRune(cssSpecial, r):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// xpathLiteral quotes s as an XPath 1.0 string literal.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
