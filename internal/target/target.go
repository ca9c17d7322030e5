// Package target implements a [codegen.Renderer] for every supported snippet target.
//
// Renderers are thin, they only know their own syntax. Escaping, body encoding,
// content type injection and option handling all happen in the shared engine.
package target

import (
	"strconv"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// All returns a renderer for every supported target.
func All() []codegen.Renderer {
	return []codegen.Renderer{
		Curl{},
		HTTP{},
		HTTPie{},
		OkHTTP{},
		NodeNative{},
		Unirest{},
		JQuery{},
		Swift{},
		RestSharp{},
		GoNative{},
	}
}

// Registry returns a registry of every supported target.
func Registry() (*codegen.Registry, error) {
	return codegen.NewRegistry(All()...)
}

// seconds formats a duration in milliseconds as a decimal number of seconds e.g. 1500 -> "1.5".
func seconds(ms int) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64)
}

// quoted wraps s in the quote character of the context the encoder escapes
// body literals for.
func quoted(c *codegen.Context, s string) string {
	quote := c.Encoder.Quote.Quote()
	return quote + s + quote
}

// word returns s as a single shell word, it is left bare when it holds only
// letters, digits, "-", "_" or "." and quoted for the shell otherwise.
func word(c *codegen.Context, s string) string {
	if strings.IndexFunc(s, needsShellQuote) == -1 {
		return s
	}

	return quoted(c, sanitize.Escape(s, c.Encoder.Quote, false))
}

// needsShellQuote reports whether r may not appear in a bare shell word.
func needsShellQuote(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', '0' <= r && r <= '9':
		return false
	default:
		return !strings.ContainsRune("-_.", r)
	}
}

// pairs splits an encoded form into its "key=value" pairs.
func pairs(body encode.URLEncoded) []string {
	return strings.Split(body.Encoded, "&")
}

// lines joins non empty lines with newlines.
func lines(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, "\n")
}
