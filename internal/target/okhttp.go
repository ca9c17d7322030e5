package target

import (
	"fmt"
	"strconv"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
	"go.followtheprocess.codes/snip/internal/spec"
)

// OkHTTP renders requests as Java using the OkHttp client.
type OkHTTP struct{}

// Target implements [codegen.Renderer] for [OkHTTP].
func (OkHTTP) Target() codegen.Target {
	return codegen.Target{
		ID:          "java-okhttp",
		Label:       "Java - OkHttp",
		Language:    "java",
		Quote:       sanitize.DoubleQuoted,
		HeaderQuote: sanitize.DoubleQuoted,
		Inject:      encode.InjectFile | encode.InjectGraphQL,
	}
}

// Options implements [codegen.Renderer] for [OkHTTP].
func (OkHTTP) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IncludeBoilerplate, false),
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [OkHTTP].
func (OkHTTP) EmitHeader(c *codegen.Context, header encode.Header) string {
	return fmt.Sprintf("%s.addHeader(\"%s\", \"%s\")", c.Layout.Level(1), header.Key, header.Value)
}

// RawBody implements [codegen.BodyEmitter] for [OkHTTP].
func (OkHTTP) RawBody(_ *codegen.Context, body encode.Raw) string {
	return okhttpBody(body.ContentType, `"`+body.Content+`"`)
}

// URLEncodedBody implements [codegen.BodyEmitter] for [OkHTTP].
func (OkHTTP) URLEncodedBody(_ *codegen.Context, body encode.URLEncoded) string {
	return okhttpBody(body.ContentType, `"`+body.Encoded+`"`)
}

// FormDataBody implements [codegen.BodyEmitter] for [OkHTTP].
func (OkHTTP) FormDataBody(c *codegen.Context, body encode.FormData) string {
	indent := c.Layout.Level(1)

	s := &strings.Builder{}
	s.WriteString("RequestBody body = new MultipartBody.Builder().setType(MultipartBody.FORM)\n")

	for _, part := range body.Parts {
		if !part.File {
			fmt.Fprintf(s, "%s.addFormDataPart(\"%s\", \"%s\")\n", indent, part.Key, part.Value)
			continue
		}

		contentType := part.ContentType
		if contentType == "" {
			contentType = encode.OctetStream
		}

		fmt.Fprintf(s, "%s.addFormDataPart(\"%s\", \"%s\",\n", indent, part.Key, part.Filename)
		fmt.Fprintf(s, "%sRequestBody.create(MediaType.parse(\"%s\"),\n", c.Layout.Level(2), contentType)
		fmt.Fprintf(s, "%snew File(\"%s\")))\n", c.Layout.Level(2), part.Src)
	}

	s.WriteString(indent + ".build();")

	return s.String()
}

// FileBody implements [codegen.BodyEmitter] for [OkHTTP].
func (OkHTTP) FileBody(_ *codegen.Context, body encode.File) string {
	return okhttpBody(body.ContentType, `new File("`+body.Src+`")`)
}

// GraphQLBody implements [codegen.BodyEmitter] for [OkHTTP].
func (OkHTTP) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return okhttpBody(body.ContentType, `"`+body.Payload+`"`)
}

// EmitAssembly implements [codegen.Renderer] for [OkHTTP].
func (OkHTTP) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	indent := c.Layout.Level(1)

	s := &strings.Builder{}
	s.WriteString("OkHttpClient client = new OkHttpClient().newBuilder()\n")

	if timeout := c.Options.Int(options.RequestTimeout); timeout > 0 {
		s.WriteString(indent + ".connectTimeout(" + strconv.Itoa(timeout) + ", TimeUnit.MILLISECONDS)\n")
	}

	if !c.Options.Bool(options.FollowRedirect) {
		s.WriteString(indent + ".followRedirects(false)\n")
	}

	s.WriteString(indent + ".build();\n")

	body := "null"

	if spec.MethodAllowsBody(c.Method) {
		body = "body"

		if sections.Body != "" {
			s.WriteString(sections.Body + "\n")
		} else {
			// OkHttp refuses a nil body for methods that expect one
			s.WriteString(okhttpBody(encode.DefaultContentType, `""`) + "\n")
		}
	}

	s.WriteString("Request request = new Request.Builder()\n")
	s.WriteString(indent + ".url(\"" + c.URL() + "\")\n")
	s.WriteString(indent + ".method(\"" + c.Escape(c.Method) + "\", " + body + ")\n")

	for _, header := range sections.Headers {
		s.WriteString(header + "\n")
	}

	s.WriteString(indent + ".build();\n")
	s.WriteString("Response response = client.newCall(request).execute();\n")

	snippet := s.String()

	if !c.Options.Bool(options.IncludeBoilerplate) {
		return snippet
	}

	header := "import java.io.*;\nimport okhttp3.*;\n\npublic class Main {\n" +
		indent + "public static void main(String[] args) throws IOException {\n"
	footer := c.Layout.Level(2) + "System.out.println(response.body().string());\n" + indent + "}\n}\n"

	return codegen.Wrap(snippet, header, footer, c.Layout.Level(2))
}

// okhttpBody declares the media type and a request body built from expr.
func okhttpBody(contentType, expr string) string {
	return "MediaType mediaType = MediaType.parse(\"" + contentType + "\");\n" +
		"RequestBody body = RequestBody.create(mediaType, " + expr + ");"
}
