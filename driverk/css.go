package driverk

import "strings"

// QuoteCSS wraps value in single quotes for use in an attribute selector,
// escaping backslashes and single quotes.
func QuoteCSS(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\\', '\'':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

// EscapeCSSIdent escapes characters that are not valid in a css identifier
func EscapeCSSIdent(ident string) string {
	var b strings.Builder
	for i, r := range ident {
		switch {
		case r == '-' || r == '_' || r >= 0x80:
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				// leading digits must be hex escaped
				b.WriteString("\\3")
				b.WriteRune(r)
				b.WriteByte(' ')
				continue
			}
		default:
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AttributeEquals builds tag[attr='value'] pairs, attrs is a flat list of name, value
func AttributeEquals(tag string, attrs ...string) string {
	var b strings.Builder
	b.WriteString(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		b.WriteByte('[')
		b.WriteString(attrs[i])
		b.WriteByte('=')
		b.WriteString(QuoteCSS(attrs[i+1]))
		b.WriteByte(']')
	}
	return b.String()
}
