package sanitize_test

import (
	"strings"
	"testing"

	"go.followtheprocess.codes/snip/internal/sanitize"
	"go.followtheprocess.codes/test"
)

//nolint:gochecknoglobals // Shared by tests and fuzzers
var contexts = []sanitize.Context{
	sanitize.DoubleQuoted,
	sanitize.SingleQuoted,
	sanitize.ShellSingleQuoted,
	sanitize.ShellDoubleQuoted,
	sanitize.URLComponent,
	sanitize.Header,
	sanitize.HeaderLine,
	sanitize.SwiftDoubleQuoted,
	sanitize.Verbatim,
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name string           // Name of the test case
		in   string           // Raw input
		want string           // Expected escaped output
		ctx  sanitize.Context // Context to escape for
		trim bool             // Whether to trim
	}{
		{name: "double plain", in: "hello", ctx: sanitize.DoubleQuoted, want: "hello"},
		{name: "double quote", in: `say "hi"`, ctx: sanitize.DoubleQuoted, want: `say \"hi\"`},
		{name: "double single quote untouched", in: `it's`, ctx: sanitize.DoubleQuoted, want: `it's`},
		{name: "double backslash", in: `C:\dir`, ctx: sanitize.DoubleQuoted, want: `C:\\dir`},
		{name: "double newline", in: "a\nb\r\n", ctx: sanitize.DoubleQuoted, want: `a\nb\r\n`},
		{name: "double tab", in: "a\tb", ctx: sanitize.DoubleQuoted, want: `a\tb`},
		{name: "double control", in: "a\x00b\x1b", ctx: sanitize.DoubleQuoted, want: `a\u0000b\u001b`},
		{name: "double unicode", in: "héllo 世界", ctx: sanitize.DoubleQuoted, want: "héllo 世界"},
		{name: "single quote", in: `it's`, ctx: sanitize.SingleQuoted, want: `it\'s`},
		{name: "single double quote untouched", in: `"x"`, ctx: sanitize.SingleQuoted, want: `"x"`},
		{name: "shell single", in: `it's`, ctx: sanitize.ShellSingleQuoted, want: `it'\''s`},
		{name: "shell single keeps newline", in: "a\nb", ctx: sanitize.ShellSingleQuoted, want: "a\nb"},
		{name: "shell single keeps dollar", in: "$HOME", ctx: sanitize.ShellSingleQuoted, want: "$HOME"},
		{name: "shell double", in: "\"$HOME\" `id` \\", ctx: sanitize.ShellDoubleQuoted, want: "\\\"\\$HOME\\\" \\`id\\` \\\\"},
		{name: "shell double newline", in: "line1\nline2 & del x", ctx: sanitize.ShellDoubleQuoted, want: "line1\"^\n\n\"line2 & del x"},
		{name: "shell double crlf", in: "a\r\nb\rc", ctx: sanitize.ShellDoubleQuoted, want: "a\"^\n\n\"b\"^\n\n\"c"},
		{name: "swift control", in: "a\x01b", ctx: sanitize.SwiftDoubleQuoted, want: `a\u{1}b`},
		{name: "swift line separator", in: "a\u2028b\x7f", ctx: sanitize.SwiftDoubleQuoted, want: `a\u{2028}b\u{7f}`},
		{name: "swift short escapes", in: "say \"hi\"\n\t\\", ctx: sanitize.SwiftDoubleQuoted, want: `say \"hi\"\n\t\\`},
		{name: "url component", in: "a b&c=d", ctx: sanitize.URLComponent, want: "a+b%26c%3Dd"},
		{name: "header folds newlines", in: "a\r\nb\nc", ctx: sanitize.Header, want: "a b c"},
		{name: "header quote", in: `W/"etag"`, ctx: sanitize.Header, want: `W/\"etag\"`},
		{name: "header line folds newlines", in: "1\r\nEvil: yes", ctx: sanitize.HeaderLine, want: "1 Evil: yes"},
		{name: "header line no quoting", in: `W/"etag"`, ctx: sanitize.HeaderLine, want: `W/"etag"`},
		{name: "verbatim", in: `"'\`, ctx: sanitize.Verbatim, want: `"'\`},
		{name: "trim", in: "  padded\n", ctx: sanitize.DoubleQuoted, trim: true, want: "padded"},
		{name: "no trim", in: "  padded ", ctx: sanitize.Verbatim, trim: false, want: "  padded "},
		{name: "trim verbatim", in: "\t body \n", ctx: sanitize.Verbatim, trim: true, want: "body"},
		{name: "empty", in: "", ctx: sanitize.DoubleQuoted, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitize.Escape(tt.in, tt.ctx, tt.trim)
			test.Equal(t, got, tt.want)
		})
	}
}

func TestEscapeNonString(t *testing.T) {
	inputs := []any{nil, 42, 3.14, true, []byte("bytes"), []string{"a"}, map[string]string{}, struct{}{}}

	for _, ctx := range contexts {
		for _, input := range inputs {
			test.Equal(t, sanitize.Escape(input, ctx, true), "", test.Context("%s: Escape(%#v)", ctx, input))
			test.Equal(t, sanitize.Escape(input, ctx, false), "", test.Context("%s: Escape(%#v)", ctx, input))
		}
	}
}

func TestEscapeFixedPoint(t *testing.T) {
	// Strings with nothing special in them come out untouched, so running them
	// through twice is a no-op
	plain := []string{"hello", "application/json", "Bearer abc123", "x-request-id"}

	for _, ctx := range contexts {
		for _, s := range plain {
			once := sanitize.Escape(s, ctx, false)
			twice := sanitize.Escape(once, ctx, false)
			test.Equal(t, once, s, test.Context("%s changed a plain string", ctx))
			test.Equal(t, twice, once, test.Context("%s is not a fixed point on %q", ctx, s))
		}
	}
}

func FuzzEscapeQuotes(f *testing.F) {
	corpus := []string{
		"",
		`"`,
		`'`,
		`\"`,
		`\\'`,
		"line\nbreak",
		`{"key": "value"}`,
		"it's a \"test\"",
		"\x00\x1f\x7f",
	}

	for _, item := range corpus {
		f.Add(item)
	}

	f.Fuzz(func(t *testing.T, s string) {
		for _, ctx := range []sanitize.Context{sanitize.DoubleQuoted, sanitize.SingleQuoted, sanitize.Header, sanitize.SwiftDoubleQuoted} {
			got := sanitize.Escape(s, ctx, false)
			quote := ctx.Quote()

			// Every quote must be preceded by an odd number of backslashes
			for index := strings.Index(got, quote); index >= 0; {
				backslashes := 0
				for j := index - 1; j >= 0 && got[j] == '\\'; j-- {
					backslashes++
				}

				if backslashes%2 == 0 {
					t.Fatalf("%s: unescaped quote at %d in %q (from %q)", ctx, index, got, s)
				}

				next := strings.Index(got[index+1:], quote)
				if next < 0 {
					break
				}

				index += next + 1
			}

			if strings.ContainsAny(got, "\r\n") {
				t.Fatalf("%s: raw line break in %q (from %q)", ctx, got, s)
			}
		}

		if line := sanitize.Escape(s, sanitize.HeaderLine, false); strings.ContainsAny(line, "\r\n") {
			t.Fatalf("HeaderLine: raw line break in %q (from %q)", line, s)
		}

		// A shell single quoted word can only be closed by a single quote, each
		// of which is re-opened immediately
		shell := sanitize.Escape(s, sanitize.ShellSingleQuoted, false)
		if strings.Count(shell, "'") != 4*strings.Count(s, "'") {
			t.Fatalf("shell single quoting of %q produced %q", s, shell)
		}
	})
}
