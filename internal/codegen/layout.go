package codegen

import (
	"strings"

	"go.followtheprocess.codes/snip/internal/options"
)

// Layout is the indentation and line joining strategy of a snippet.
type Layout struct {
	// One level of indentation e.g. "  " or "\t"
	Indent string

	// Marks a command as continuing on the next line e.g. "\"
	Continuation string

	// Whether [Layout.Join] splits fragments across lines
	MultiLine bool
}

// NewLayout derives a layout from normalised option values.
//
// The indent unit is a tab if indentType is "tab" and a space otherwise, repeated
// indentCount times. Options missing from the target's schema take their zero value.
func NewLayout(values options.Values) Layout {
	unit := " "
	if values.String(options.IndentType) == "tab" {
		unit = "\t"
	}

	return Layout{
		Indent:       strings.Repeat(unit, values.Int(options.IndentCount)),
		Continuation: values.String(options.LineContinuationCharacter),
		MultiLine:    values.Bool(options.MultiLine),
	}
}

// Level returns n levels of indentation.
func (l Layout) Level(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(l.Indent, n)
}

// Join joins the non empty fragments into one command.
//
// In multiline mode successive fragments are separated by a space, the continuation
// marker, a newline and one level of indentation. Otherwise they are separated by
// a single space.
func (l Layout) Join(fragments ...string) string {
	kept := make([]string, 0, len(fragments))

	for _, fragment := range fragments {
		if fragment != "" {
			kept = append(kept, fragment)
		}
	}

	separator := " "
	if l.MultiLine {
		separator = " " + l.Continuation + "\n" + l.Indent
	}

	return strings.Join(kept, separator)
}

// Indent prefixes every non empty line of s with prefix, empty lines stay empty.
func Indent(s, prefix string) string {
	if prefix == "" || s == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}

// Wrap places snippet between header and footer, indenting every line of the
// snippet by prefix.
//
// Header and footer are written as given, so must carry their own line breaks.
func Wrap(snippet, header, footer, prefix string) string {
	return header + Indent(snippet, prefix) + footer
}
