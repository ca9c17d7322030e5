package target

import (
	"net/http"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// Curl renders requests as a curl command line.
type Curl struct{}

// Target implements [codegen.Renderer] for [Curl].
func (Curl) Target() codegen.Target {
	return codegen.Target{
		ID:          "curl",
		Label:       "cURL",
		Language:    "shell",
		Quote:       sanitize.ShellSingleQuoted,
		HeaderQuote: sanitize.ShellSingleQuoted,
		Inject:      encode.InjectFile | encode.InjectGraphQL,
	}
}

// Options implements [codegen.Renderer] for [Curl].
func (Curl) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.MultiLine, true),
		options.Describe(options.LongFormat, true),
		options.Describe(options.LineContinuationCharacter, `\`),
		options.Describe(options.ShellType, "posix"),
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
		options.Describe(options.Silent, false),
	}
}

// Quoting implements [codegen.Quoter] for [Curl], Windows cmd has no single quotes.
func (Curl) Quoting(values options.Values) (body, header sanitize.Context) {
	if values.String(options.ShellType) == "windows" {
		return sanitize.ShellDoubleQuoted, sanitize.ShellDoubleQuoted
	}

	return sanitize.ShellSingleQuoted, sanitize.ShellSingleQuoted
}

// EmitHeader implements [codegen.Renderer] for [Curl].
func (Curl) EmitHeader(c *codegen.Context, header encode.Header) string {
	return flag(c, "-H", "--header") + " " + quoted(c, header.Key+": "+header.Value)
}

// RawBody implements [codegen.BodyEmitter] for [Curl].
func (Curl) RawBody(c *codegen.Context, body encode.Raw) string {
	return "--data-raw " + quoted(c, body.Content)
}

// URLEncodedBody implements [codegen.BodyEmitter] for [Curl].
func (Curl) URLEncodedBody(c *codegen.Context, body encode.URLEncoded) string {
	return flag(c, "-d", "--data") + " " + quoted(c, body.Encoded)
}

// FormDataBody implements [codegen.BodyEmitter] for [Curl].
func (Curl) FormDataBody(c *codegen.Context, body encode.FormData) string {
	fragments := make([]string, 0, len(body.Parts))

	// --form reads a value starting with "@" or "<" from a file, text parts
	// use --form-string so they are always sent as written
	for _, part := range body.Parts {
		if !part.File {
			fragments = append(fragments, "--form-string "+quoted(c, part.Key+"="+part.Value))
			continue
		}

		field := part.Key + "=@" + part.Src
		if part.ContentType != "" {
			field += ";type=" + part.ContentType
		}

		fragments = append(fragments, flag(c, "-F", "--form")+" "+quoted(c, field))
	}

	return c.Layout.Join(fragments...)
}

// FileBody implements [codegen.BodyEmitter] for [Curl].
func (Curl) FileBody(c *codegen.Context, body encode.File) string {
	return "--data-binary " + quoted(c, "@"+body.Src)
}

// GraphQLBody implements [codegen.BodyEmitter] for [Curl].
func (Curl) GraphQLBody(c *codegen.Context, body encode.GraphQL) string {
	return "--data-raw " + quoted(c, body.Payload)
}

// EmitAssembly implements [codegen.Renderer] for [Curl].
func (Curl) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	command := []string{"curl"}

	if c.Options.Bool(options.Silent) {
		command = append(command, flag(c, "-s", "--silent"))
	}

	if c.Options.Bool(options.FollowRedirect) {
		command = append(command, flag(c, "-L", "--location"))
	}

	if timeout := c.Options.Int(options.RequestTimeout); timeout > 0 {
		command = append(command, flag(c, "-m", "--max-time")+" "+seconds(timeout))
	}

	if c.Method == http.MethodHead {
		command = append(command, flag(c, "-I", "--head"))
	} else {
		command = append(command, flag(c, "-X", "--request")+" "+word(c, c.Method))
	}

	command = append(command, quoted(c, c.URL()))

	fragments := []string{strings.Join(command, " ")}
	fragments = append(fragments, sections.Headers...)
	fragments = append(fragments, sections.Body)

	return c.Layout.Join(fragments...) + "\n"
}

// flag returns the short or long form of a command line flag.
func flag(c *codegen.Context, short, long string) string {
	if c.Options.Bool(options.LongFormat) {
		return long
	}

	return short
}
