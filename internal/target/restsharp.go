package target

import (
	"strconv"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// RestSharp renders requests as C# using the RestSharp client.
type RestSharp struct{}

// Target implements [codegen.Renderer] for [RestSharp].
func (RestSharp) Target() codegen.Target {
	return codegen.Target{
		ID:          "csharp-restsharp",
		Label:       "C# - RestSharp",
		Language:    "csharp",
		Quote:       sanitize.DoubleQuoted,
		HeaderQuote: sanitize.DoubleQuoted,
		Inject:      encode.InjectFile | encode.InjectGraphQL,
	}
}

// Options implements [codegen.Renderer] for [RestSharp].
func (RestSharp) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IncludeBoilerplate, false),
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [RestSharp].
func (RestSharp) EmitHeader(_ *codegen.Context, header encode.Header) string {
	return `request.AddHeader("` + header.Key + `", "` + header.Value + `");`
}

// RawBody implements [codegen.BodyEmitter] for [RestSharp].
func (RestSharp) RawBody(_ *codegen.Context, body encode.Raw) string {
	return restsharpBody(body.ContentType, body.Content)
}

// URLEncodedBody implements [codegen.BodyEmitter] for [RestSharp].
func (RestSharp) URLEncodedBody(_ *codegen.Context, body encode.URLEncoded) string {
	params := make([]string, 0, len(body.Pairs))
	for _, pair := range body.Pairs {
		params = append(params, `request.AddParameter("`+pair.Key+`", "`+pair.Value+`");`)
	}

	return strings.Join(params, "\n")
}

// FormDataBody implements [codegen.BodyEmitter] for [RestSharp].
func (RestSharp) FormDataBody(_ *codegen.Context, body encode.FormData) string {
	params := make([]string, 0, len(body.Parts))

	for _, part := range body.Parts {
		if part.File {
			params = append(params, `request.AddFile("`+part.Key+`", "`+part.Src+`");`)
			continue
		}

		params = append(params, `request.AddParameter("`+part.Key+`", "`+part.Value+`");`)
	}

	return "request.AlwaysMultipartFormData = true;\n" + strings.Join(params, "\n")
}

// FileBody implements [codegen.BodyEmitter] for [RestSharp].
func (RestSharp) FileBody(_ *codegen.Context, body encode.File) string {
	return restsharpBody(body.ContentType, body.Placeholder)
}

// GraphQLBody implements [codegen.BodyEmitter] for [RestSharp].
func (RestSharp) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return restsharpBody(body.ContentType, body.Payload)
}

// EmitAssembly implements [codegen.Renderer] for [RestSharp].
func (RestSharp) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	timeout := "-1"
	if ms := c.Options.Int(options.RequestTimeout); ms > 0 {
		timeout = strconv.Itoa(ms)
	}

	s := &strings.Builder{}
	s.WriteString(`var client = new RestClient("` + c.URL() + `");` + "\n")
	s.WriteString("client.Timeout = " + timeout + ";\n")

	if !c.Options.Bool(options.FollowRedirect) {
		s.WriteString("client.FollowRedirects = false;\n")
	}

	s.WriteString("var request = new RestRequest(Method." + c.Escape(c.Method) + ");\n")

	for _, header := range sections.Headers {
		s.WriteString(header + "\n")
	}

	if c.HasBody() {
		s.WriteString(sections.Body + "\n")
	}

	s.WriteString("IRestResponse response = client.Execute(request);\n")
	s.WriteString("Console.WriteLine(response.Content);\n")

	snippet := s.String()

	if !c.Options.Bool(options.IncludeBoilerplate) {
		return snippet
	}

	l1 := c.Layout.Level(1)
	header := "using System;\nusing RestSharp;\n\nclass Program\n{\n" + l1 + "static void Main(string[] args)\n" + l1 + "{\n"
	footer := l1 + "}\n}\n"

	return codegen.Wrap(snippet, header, footer, c.Layout.Level(2))
}

// restsharpBody adds a literal request body with its content type.
func restsharpBody(contentType, literal string) string {
	return `request.AddParameter("` + contentType + `", "` + literal + `", ParameterType.RequestBody);`
}
