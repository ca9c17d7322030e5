package target

import (
	"strconv"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// GoNative renders requests as Go using net/http.
type GoNative struct{}

// Target implements [codegen.Renderer] for [GoNative].
func (GoNative) Target() codegen.Target {
	return codegen.Target{
		ID:          "go-native",
		Label:       "Go - Native",
		Language:    "go",
		Quote:       sanitize.DoubleQuoted,
		HeaderQuote: sanitize.DoubleQuoted,
		Inject:      encode.InjectAll,
	}
}

// Options implements [codegen.Renderer] for [GoNative].
func (GoNative) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IncludeBoilerplate, false),
		options.Describe(options.IndentType, "tab"),
		options.Describe(options.IndentCount, 1),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [GoNative].
func (GoNative) EmitHeader(_ *codegen.Context, header encode.Header) string {
	return `req.Header.Add("` + header.Key + `", "` + header.Value + `")`
}

// RawBody implements [codegen.BodyEmitter] for [GoNative].
func (GoNative) RawBody(_ *codegen.Context, body encode.Raw) string {
	return goPayload(body.Content)
}

// URLEncodedBody implements [codegen.BodyEmitter] for [GoNative].
func (GoNative) URLEncodedBody(_ *codegen.Context, body encode.URLEncoded) string {
	return goPayload(body.Encoded)
}

// FormDataBody implements [codegen.BodyEmitter] for [GoNative], the multipart
// stream is sent as is.
func (GoNative) FormDataBody(_ *codegen.Context, body encode.FormData) string {
	return goPayload(body.Multipart)
}

// FileBody implements [codegen.BodyEmitter] for [GoNative].
func (GoNative) FileBody(_ *codegen.Context, body encode.File) string {
	return goPayload(body.Placeholder)
}

// GraphQLBody implements [codegen.BodyEmitter] for [GoNative].
func (GoNative) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return goPayload(body.Payload)
}

// EmitAssembly implements [codegen.Renderer] for [GoNative].
func (GoNative) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	l1, l2 := c.Layout.Level(1), c.Layout.Level(2)
	timeout := c.Options.Int(options.RequestTimeout)
	follow := c.Options.Bool(options.FollowRedirect)

	s := &strings.Builder{}
	s.WriteString(`url := "` + c.URL() + `"` + "\n")
	s.WriteString(`method := "` + c.Escape(c.Method) + `"` + "\n\n")

	payload := "nil"
	if c.HasBody() {
		payload = "payload"

		s.WriteString(sections.Body + "\n\n")
	}

	if timeout > 0 || !follow {
		s.WriteString("client := &http.Client{\n")

		if timeout > 0 {
			// Aligned the way gofmt would with CheckRedirect below it
			key := "Timeout: "
			if !follow {
				key = "Timeout:       "
			}

			s.WriteString(l1 + key + strconv.Itoa(timeout) + " * time.Millisecond,\n")
		}

		if !follow {
			s.WriteString(l1 + "CheckRedirect: func(req *http.Request, via []*http.Request) error {\n")
			s.WriteString(l2 + "return http.ErrUseLastResponse\n")
			s.WriteString(l1 + "},\n")
		}

		s.WriteString("}\n")
	} else {
		s.WriteString("client := &http.Client{}\n")
	}

	s.WriteString("req, err := http.NewRequest(method, url, " + payload + ")\n")
	s.WriteString(goCheck(l1))

	for _, header := range sections.Headers {
		s.WriteString(header + "\n")
	}

	s.WriteString("\nres, err := client.Do(req)\n")
	s.WriteString(goCheck(l1))
	s.WriteString("defer res.Body.Close()\n\n")
	s.WriteString("body, err := io.ReadAll(res.Body)\n")
	s.WriteString(goCheck(l1))
	s.WriteString("fmt.Println(string(body))\n")

	snippet := s.String()

	if !c.Options.Bool(options.IncludeBoilerplate) {
		return snippet
	}

	imports := []string{"fmt", "io", "net/http"}
	if c.HasBody() {
		imports = append(imports, "strings")
	}

	if timeout > 0 {
		imports = append(imports, "time")
	}

	header := &strings.Builder{}
	header.WriteString("package main\n\nimport (\n")

	for _, path := range imports {
		header.WriteString(l1 + strconv.Quote(path) + "\n")
	}

	header.WriteString(")\n\nfunc main() {\n")

	return codegen.Wrap(snippet, header.String(), "}\n", l1)
}

// goPayload declares the request body reader.
func goPayload(literal string) string {
	return `payload := strings.NewReader("` + literal + `")`
}

// goCheck is the error check after every fallible call.
func goCheck(indent string) string {
	return "if err != nil {\n" + indent + "fmt.Println(err)\n" + indent + "return\n}\n"
}
