// Package sanitize escapes raw strings for safe inclusion in the string literals
// of a target syntax.
//
// Escape is defined over raw, unescaped input only, the pipeline applies it exactly
// once to every value that ends up inside a literal.
package sanitize

import (
	"fmt"
	"net/url"
	"strings"
)

// Context is the kind of literal an escaped string is destined for.
type Context int

const (
	// DoubleQuoted is a C family double quoted string literal e.g. Java, Go, C#, Swift, JSON.
	DoubleQuoted Context = iota

	// SingleQuoted is a single quoted string literal as in JavaScript or PHP.
	SingleQuoted

	// ShellSingleQuoted is a POSIX shell single quoted word, where nothing
	// but the single quote itself needs handling.
	ShellSingleQuoted

	// ShellDoubleQuoted is a shell double quoted word, as used by Windows cmd.
	ShellDoubleQuoted

	// URLComponent is a single key or value of a form or query string.
	URLComponent

	// Header is a double quoted literal holding a header key or value, line
	// breaks are folded to a single space as they are illegal in a header.
	Header

	// HeaderLine is a header key or value written bare on its own line, as in a
	// raw HTTP message. Nothing is quoted but line breaks are folded to a single
	// space so a value can never start a new header.
	HeaderLine

	// SwiftDoubleQuoted is a Swift string literal, which spells unicode escapes
	// as "\u{XXXX}".
	SwiftDoubleQuoted

	// Verbatim performs no quoting, for destinations without literals.
	Verbatim
)

// String implements [fmt.Stringer] for [Context].
func (c Context) String() string {
	switch c {
	case DoubleQuoted:
		return "DoubleQuoted"
	case SingleQuoted:
		return "SingleQuoted"
	case ShellSingleQuoted:
		return "ShellSingleQuoted"
	case ShellDoubleQuoted:
		return "ShellDoubleQuoted"
	case URLComponent:
		return "URLComponent"
	case Header:
		return "Header"
	case HeaderLine:
		return "HeaderLine"
	case SwiftDoubleQuoted:
		return "SwiftDoubleQuoted"
	case Verbatim:
		return "Verbatim"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// Quote returns the quote character that delimits literals in the context, or
// the empty string if the context has no delimiters.
func (c Context) Quote() string {
	switch c {
	case DoubleQuoted, Header, ShellDoubleQuoted, SwiftDoubleQuoted:
		return `"`
	case SingleQuoted, ShellSingleQuoted:
		return "'"
	default:
		return ""
	}
}

// Escaping tables, built once.
//
//nolint:gochecknoglobals // Effectively constant
var (
	shellSingle = strings.NewReplacer(`'`, `'\''`)

	// cmd has no escape for a line break inside quotes, so the quotes are closed
	// and the break is escaped with a caret, which keeps the break that follows
	// it as part of the word
	shellDouble = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"`", "\\`",
		"\r\n", "\"^\n\n\"",
		"\r", "\"^\n\n\"",
		"\n", "\"^\n\n\"",
	)

	lineFolder = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

// Escape escapes v for inclusion in a literal of the given context.
//
// If v is not a string, Escape returns the empty string. If trim is true,
// leading and trailing whitespace is removed from the value before escaping.
func Escape(v any, ctx Context, trim bool) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}

	if trim {
		s = strings.TrimSpace(s)
	}

	switch ctx {
	case DoubleQuoted:
		return escapeLiteral(s, '"', `\u%04x`)
	case SwiftDoubleQuoted:
		return escapeLiteral(s, '"', `\u{%x}`)
	case SingleQuoted:
		return escapeLiteral(s, '\'', `\u%04x`)
	case ShellSingleQuoted:
		return shellSingle.Replace(s)
	case ShellDoubleQuoted:
		return shellDouble.Replace(s)
	case URLComponent:
		return url.QueryEscape(s)
	case Header:
		return escapeLiteral(lineFolder.Replace(s), '"', `\u%04x`)
	case HeaderLine:
		return lineFolder.Replace(s)
	case Verbatim:
		return s
	default:
		return s
	}
}

// escapeLiteral escapes s for a backslash escaped literal delimited by quote.
//
// Backslash, the quote character and any control characters are escaped so the
// literal can never be terminated early or span lines. Characters without a
// short escape are written with the unicode format.
func escapeLiteral(s string, quote rune, unicode string) string {
	builder := &strings.Builder{}
	builder.Grow(len(s))

	for _, char := range s {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case quote:
			builder.WriteByte('\\')
			builder.WriteRune(char)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			if char < 0x20 || char == 0x7f || char == '\u2028' || char == '\u2029' {
				fmt.Fprintf(builder, unicode, char)
				continue
			}

			builder.WriteRune(char)
		}
	}

	return builder.String()
}
