package target

import (
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// HTTP renders requests as a raw HTTP/1.1 message.
type HTTP struct{}

// Target implements [codegen.Renderer] for [HTTP].
func (HTTP) Target() codegen.Target {
	return codegen.Target{
		ID:          "http",
		Label:       "HTTP",
		Language:    "http",
		Quote:       sanitize.Verbatim,
		HeaderQuote: sanitize.HeaderLine,
		Inject:      encode.InjectAll,
	}
}

// Options implements [codegen.Renderer] for [HTTP].
func (HTTP) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.Protocol, "HTTP/1.1"),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [HTTP].
func (HTTP) EmitHeader(_ *codegen.Context, header encode.Header) string {
	return header.Key + ": " + header.Value
}

// RawBody implements [codegen.BodyEmitter] for [HTTP].
func (HTTP) RawBody(_ *codegen.Context, body encode.Raw) string {
	return body.Content
}

// URLEncodedBody implements [codegen.BodyEmitter] for [HTTP].
func (HTTP) URLEncodedBody(_ *codegen.Context, body encode.URLEncoded) string {
	return body.Encoded
}

// FormDataBody implements [codegen.BodyEmitter] for [HTTP].
func (HTTP) FormDataBody(_ *codegen.Context, body encode.FormData) string {
	// Line endings are displayed as plain newlines like the rest of the message
	return strings.ReplaceAll(body.Multipart, "\r\n", "\n")
}

// FileBody implements [codegen.BodyEmitter] for [HTTP].
func (HTTP) FileBody(_ *codegen.Context, body encode.File) string {
	return body.Placeholder
}

// GraphQLBody implements [codegen.BodyEmitter] for [HTTP].
func (HTTP) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return body.Payload
}

// EmitAssembly implements [codegen.Renderer] for [HTTP].
func (HTTP) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	s := &strings.Builder{}

	path := sanitize.Escape(c.Request.URL.PathString(), sanitize.HeaderLine, false)
	s.WriteString(c.Method + " " + path + " " + c.Options.String(options.Protocol) + "\n")

	if host := c.Request.URL.HostString(); host != "" {
		s.WriteString("Host: " + sanitize.Escape(host, sanitize.HeaderLine, false) + "\n")
	}

	for _, header := range sections.Headers {
		s.WriteString(header + "\n")
	}

	if sections.Body != "" {
		s.WriteString("\n")
		s.WriteString(strings.TrimSuffix(sections.Body, "\n") + "\n")
	}

	return s.String()
}
