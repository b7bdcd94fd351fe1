package sitemap

import "strings"

var specialChars = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML makes s safe for XML text and attribute content. An ampersand
// that already starts an entity reference (&name;, &#123;, &#x1F;) is kept,
// so escaping is idempotent on already-escaped text.
func EscapeXML(s string) string {
	if s == "" {
		return ""
	}
	return specialChars.Replace(escapeAmpersands(s))
}

// EscapeXMLPtr is EscapeXML for optional values; nil yields "".
func EscapeXMLPtr(s *string) string {
	if s == nil {
		return ""
	}
	return EscapeXML(*s)
}

func escapeAmpersands(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && !isEntityRef(s[i+1:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// isEntityRef reports whether rest (the text after '&') begins with #?\w+;
func isEntityRef(rest string) bool {
	i := 0
	if i < len(rest) && rest[i] == '#' {
		i++
	}
	start := i
	for i < len(rest) && isWordByte(rest[i]) {
		i++
	}
	return i > start && i < len(rest) && rest[i] == ';'
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
