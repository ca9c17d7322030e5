package target

import (
	"strconv"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// JQuery renders requests as JavaScript using jQuery's $.ajax.
type JQuery struct{}

// Target implements [codegen.Renderer] for [JQuery].
func (JQuery) Target() codegen.Target {
	return codegen.Target{
		ID:          "js-jquery",
		Label:       "JavaScript - jQuery",
		Language:    "javascript",
		Quote:       sanitize.DoubleQuoted,
		HeaderQuote: sanitize.DoubleQuoted,
		Inject:      encode.InjectFile | encode.InjectGraphQL,
	}
}

// Options implements [codegen.Renderer] for [JQuery].
func (JQuery) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [JQuery].
func (JQuery) EmitHeader(c *codegen.Context, header encode.Header) string {
	return c.Layout.Level(2) + `"` + header.Key + `": "` + header.Value + `"`
}

// RawBody implements [codegen.BodyEmitter] for [JQuery].
func (JQuery) RawBody(_ *codegen.Context, body encode.Raw) string {
	return `"` + body.Content + `"`
}

// URLEncodedBody implements [codegen.BodyEmitter] for [JQuery].
func (JQuery) URLEncodedBody(c *codegen.Context, body encode.URLEncoded) string {
	fields := make([]string, 0, len(body.Pairs))
	for _, pair := range body.Pairs {
		fields = append(fields, c.Layout.Level(2)+`"`+pair.Key+`": "`+pair.Value+`"`)
	}

	return "{\n" + strings.Join(fields, ",\n") + "\n" + c.Layout.Level(1) + "}"
}

// FormDataBody implements [codegen.BodyEmitter] for [JQuery], the fields are
// appended to a FormData declared ahead of the settings.
func (JQuery) FormDataBody(_ *codegen.Context, body encode.FormData) string {
	s := &strings.Builder{}
	s.WriteString("var form = new FormData();\n")

	for _, part := range body.Parts {
		if part.File {
			s.WriteString(`form.append("` + part.Key + `", fileInput.files[0], "` + part.Filename + `");` + "\n")
			continue
		}

		s.WriteString(`form.append("` + part.Key + `", "` + part.Value + `");` + "\n")
	}

	return s.String()
}

// FileBody implements [codegen.BodyEmitter] for [JQuery].
func (JQuery) FileBody(_ *codegen.Context, body encode.File) string {
	return `"` + body.Placeholder + `"`
}

// GraphQLBody implements [codegen.BodyEmitter] for [JQuery].
func (JQuery) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return `"` + body.Payload + `"`
}

// EmitAssembly implements [codegen.Renderer] for [JQuery].
func (JQuery) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	l1 := c.Layout.Level(1)

	var prelude string

	settings := []string{
		l1 + `"url": "` + c.URL() + `"`,
		l1 + `"method": "` + c.Escape(c.Method) + `"`,
		l1 + `"timeout": ` + strconv.Itoa(c.Options.Int(options.RequestTimeout)),
	}

	if len(sections.Headers) != 0 {
		settings = append(settings, l1+`"headers": {`+"\n"+strings.Join(sections.Headers, ",\n")+"\n"+l1+"}")
	}

	if c.HasBody() {
		if _, ok := c.Body.(encode.FormData); ok {
			prelude = sections.Body + "\n"
			settings = append(settings,
				l1+`"processData": false`,
				l1+`"mimeType": "multipart/form-data"`,
				l1+`"contentType": false`,
				l1+`"data": form`,
			)
		} else {
			settings = append(settings, l1+`"data": `+sections.Body)
		}
	}

	s := &strings.Builder{}
	s.WriteString(prelude)
	s.WriteString("var settings = {\n" + strings.Join(settings, ",\n") + "\n};\n\n")
	s.WriteString("$.ajax(settings).done(function (response) {\n")
	s.WriteString(l1 + "console.log(response);\n")
	s.WriteString("});\n")

	return s.String()
}
