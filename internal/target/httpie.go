package target

import (
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// HTTPie renders requests as a HTTPie command line.
type HTTPie struct{}

// Target implements [codegen.Renderer] for [HTTPie].
func (HTTPie) Target() codegen.Target {
	return codegen.Target{
		ID:          "httpie",
		Label:       "HTTPie",
		Language:    "shell",
		Quote:       sanitize.ShellSingleQuoted,
		HeaderQuote: sanitize.ShellSingleQuoted,
		Inject:      encode.InjectFile | encode.InjectGraphQL,
	}
}

// Options implements [codegen.Renderer] for [HTTPie].
func (HTTPie) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.MultiLine, true),
		options.Describe(options.LineContinuationCharacter, `\`, `\`),
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [HTTPie].
func (HTTPie) EmitHeader(c *codegen.Context, header encode.Header) string {
	return quoted(c, header.Key+":"+header.Value)
}

// RawBody implements [codegen.BodyEmitter] for [HTTPie], the body is piped on stdin.
func (HTTPie) RawBody(c *codegen.Context, body encode.Raw) string {
	return "printf '%s' " + quoted(c, body.Content) + " |"
}

// URLEncodedBody implements [codegen.BodyEmitter] for [HTTPie].
func (HTTPie) URLEncodedBody(c *codegen.Context, body encode.URLEncoded) string {
	items := make([]string, 0, len(body.Pairs))
	for _, pair := range body.Pairs {
		items = append(items, quoted(c, pair.Key+"="+pair.Value))
	}

	return c.Layout.Join(items...)
}

// FormDataBody implements [codegen.BodyEmitter] for [HTTPie].
func (HTTPie) FormDataBody(c *codegen.Context, body encode.FormData) string {
	items := make([]string, 0, len(body.Parts))

	for _, part := range body.Parts {
		if part.File {
			items = append(items, quoted(c, part.Key+"@"+part.Src))
			continue
		}

		items = append(items, quoted(c, part.Key+"="+part.Value))
	}

	return c.Layout.Join(items...)
}

// FileBody implements [codegen.BodyEmitter] for [HTTPie], the file is redirected to stdin.
func (HTTPie) FileBody(c *codegen.Context, body encode.File) string {
	return "< " + quoted(c, body.Src)
}

// GraphQLBody implements [codegen.BodyEmitter] for [HTTPie], the payload is piped on stdin.
func (HTTPie) GraphQLBody(c *codegen.Context, body encode.GraphQL) string {
	return "printf '%s' " + quoted(c, body.Payload) + " |"
}

// EmitAssembly implements [codegen.Renderer] for [HTTPie].
func (HTTPie) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	var pipe, items, redirect string

	command := []string{"http"}

	switch c.Body.(type) {
	case encode.Raw, encode.GraphQL:
		pipe = sections.Body + " "
	case encode.File:
		redirect = sections.Body
	case encode.URLEncoded:
		command = append(command, "--ignore-stdin", "--form")
		items = sections.Body
	case encode.FormData:
		command = append(command, "--ignore-stdin", "--multipart")
		items = sections.Body
	default:
		command = append(command, "--ignore-stdin")
	}

	if c.Options.Bool(options.FollowRedirect) {
		command = append(command, "--follow")
	}

	if timeout := c.Options.Int(options.RequestTimeout); timeout > 0 {
		command = append(command, "--timeout="+seconds(timeout))
	}

	command = append(command, word(c, c.Method), quoted(c, c.URL()))

	fragments := []string{pipe + strings.Join(command, " ")}
	fragments = append(fragments, sections.Headers...)
	fragments = append(fragments, items, redirect)

	return c.Layout.Join(fragments...) + "\n"
}
