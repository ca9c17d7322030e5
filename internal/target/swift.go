package target

import (
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// Swift renders requests as Swift using Foundation's URLSession.
type Swift struct{}

// Target implements [codegen.Renderer] for [Swift].
func (Swift) Target() codegen.Target {
	return codegen.Target{
		ID:          "swift-urlsession",
		Label:       "Swift - URLSession",
		Language:    "swift",
		Quote:       sanitize.SwiftDoubleQuoted,
		HeaderQuote: sanitize.SwiftDoubleQuoted,
		Inject:      encode.InjectAll,
	}
}

// Options implements [codegen.Renderer] for [Swift].
func (Swift) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [Swift].
func (Swift) EmitHeader(_ *codegen.Context, header encode.Header) string {
	return `request.addValue("` + header.Value + `", forHTTPHeaderField: "` + header.Key + `")`
}

// RawBody implements [codegen.BodyEmitter] for [Swift].
func (Swift) RawBody(_ *codegen.Context, body encode.Raw) string {
	return swiftParameters(body.Content)
}

// URLEncodedBody implements [codegen.BodyEmitter] for [Swift].
func (Swift) URLEncodedBody(_ *codegen.Context, body encode.URLEncoded) string {
	return swiftParameters(body.Encoded)
}

// FormDataBody implements [codegen.BodyEmitter] for [Swift], the multipart
// stream is sent as is.
func (Swift) FormDataBody(_ *codegen.Context, body encode.FormData) string {
	return swiftParameters(body.Multipart)
}

// FileBody implements [codegen.BodyEmitter] for [Swift].
func (Swift) FileBody(_ *codegen.Context, body encode.File) string {
	return swiftParameters(body.Placeholder)
}

// GraphQLBody implements [codegen.BodyEmitter] for [Swift].
func (Swift) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return swiftParameters(body.Payload)
}

// EmitAssembly implements [codegen.Renderer] for [Swift].
func (Swift) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	l1, l2 := c.Layout.Level(1), c.Layout.Level(2)

	timeout := "Double.infinity"
	if ms := c.Options.Int(options.RequestTimeout); ms > 0 {
		timeout = seconds(ms)
	}

	s := &strings.Builder{}
	s.WriteString("import Foundation\n")
	s.WriteString("#if canImport(FoundationNetworking)\n")
	s.WriteString("import FoundationNetworking\n")
	s.WriteString("#endif\n\n")

	if c.HasBody() {
		s.WriteString(sections.Body + "\n\n")
	}

	s.WriteString(`var request = URLRequest(url: URL(string: "` + c.URL() + `")!, timeoutInterval: ` + timeout + ")\n")

	for _, header := range sections.Headers {
		s.WriteString(header + "\n")
	}

	s.WriteString("\n")
	s.WriteString(`request.httpMethod = "` + c.Escape(c.Method) + `"` + "\n")

	if c.HasBody() {
		s.WriteString("request.httpBody = postData\n")
	}

	s.WriteString("\n")
	s.WriteString("let task = URLSession.shared.dataTask(with: request) { data, response, error in\n")
	s.WriteString(l1 + "guard let data = data else {\n")
	s.WriteString(l2 + "print(String(describing: error))\n")
	s.WriteString(l2 + "return\n")
	s.WriteString(l1 + "}\n")
	s.WriteString(l1 + "print(String(data: data, encoding: .utf8)!)\n")
	s.WriteString("}\n\n")
	s.WriteString("task.resume()\n")

	return s.String()
}

// swiftParameters declares the body literal and its UTF-8 data.
func swiftParameters(literal string) string {
	return `let parameters = "` + literal + `"` + "\n" + "let postData = parameters.data(using: .utf8)"
}
