package render

import "strings"

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	return escape(s, false)
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute
// value. Whitespace that could break attribute parsing is escaped as well.
func escapeAttr(s string) string {
	return escape(s, true)
}

func escape(s string, attr bool) string {
	if !strings.ContainsAny(s, "&<>\"'\n\r\t") {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n', '\r', '\t':
			if attr {
				buf.WriteString(whitespaceEntities[r])
			} else {
				buf.WriteRune(r)
			}
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var whitespaceEntities = map[rune]string{
	'\t': "&#9;",
	'\n': "&#10;",
	'\r': "&#13;",
}

// EscapeHTML is escapeHTML for other packages that write markup by hand.
func EscapeHTML(s string) string { return escapeHTML(s) }
