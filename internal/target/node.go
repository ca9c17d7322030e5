package target

import (
	"strconv"
	"strings"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
)

// NodeNative renders requests as Node.js using the built in http and https modules.
type NodeNative struct{}

// Target implements [codegen.Renderer] for [NodeNative].
func (NodeNative) Target() codegen.Target {
	return codegen.Target{
		ID:          "nodejs-native",
		Label:       "NodeJs - Native",
		Language:    "javascript",
		Quote:       sanitize.SingleQuoted,
		HeaderQuote: sanitize.SingleQuoted,
		Inject:      encode.InjectAll,
	}
}

// Options implements [codegen.Renderer] for [NodeNative].
func (NodeNative) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [NodeNative].
func (NodeNative) EmitHeader(c *codegen.Context, header encode.Header) string {
	return c.Layout.Level(2) + "'" + header.Key + "': '" + header.Value + "'"
}

// RawBody implements [codegen.BodyEmitter] for [NodeNative].
func (NodeNative) RawBody(_ *codegen.Context, body encode.Raw) string {
	return "'" + body.Content + "'"
}

// URLEncodedBody implements [codegen.BodyEmitter] for [NodeNative].
func (NodeNative) URLEncodedBody(_ *codegen.Context, body encode.URLEncoded) string {
	return "'" + body.Encoded + "'"
}

// FormDataBody implements [codegen.BodyEmitter] for [NodeNative], the multipart
// stream is written as is.
func (NodeNative) FormDataBody(_ *codegen.Context, body encode.FormData) string {
	return "'" + body.Multipart + "'"
}

// FileBody implements [codegen.BodyEmitter] for [NodeNative].
func (NodeNative) FileBody(_ *codegen.Context, body encode.File) string {
	return "'" + body.Placeholder + "'"
}

// GraphQLBody implements [codegen.BodyEmitter] for [NodeNative].
func (NodeNative) GraphQLBody(_ *codegen.Context, body encode.GraphQL) string {
	return "'" + body.Payload + "'"
}

// EmitAssembly implements [codegen.Renderer] for [NodeNative].
func (NodeNative) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	l1, l2 := c.Layout.Level(1), c.Layout.Level(2)
	follow := c.Options.Bool(options.FollowRedirect)

	module := "https"
	if c.Request.URL.Protocol == "http" {
		module = "http"
	}

	s := &strings.Builder{}

	if follow {
		s.WriteString("var " + module + " = require('follow-redirects')." + module + ";\n\n")
	} else {
		s.WriteString("var " + module + " = require('" + module + "');\n\n")
	}

	entries := []string{
		l1 + "'method': '" + c.Escape(c.Method) + "'",
		l1 + "'hostname': '" + c.Escape(strings.Join(c.Request.URL.Host, ".")) + "'",
	}

	if port := c.Request.URL.Port; port != "" {
		entries = append(entries, l1+"'port': "+port)
	}

	entries = append(entries, l1+"'path': '"+c.Escape(c.Request.URL.PathString())+"'")

	if len(sections.Headers) == 0 {
		entries = append(entries, l1+"'headers': {}")
	} else {
		entries = append(entries, l1+"'headers': {\n"+strings.Join(sections.Headers, ",\n")+"\n"+l1+"}")
	}

	if follow {
		entries = append(entries, l1+"'maxRedirects': 20")
	}

	s.WriteString("var options = {\n" + strings.Join(entries, ",\n") + "\n};\n\n")

	s.WriteString("var req = " + module + ".request(options, function (res) {\n")
	s.WriteString(l1 + "var chunks = [];\n\n")
	s.WriteString(l1 + "res.on(\"data\", function (chunk) {\n")
	s.WriteString(l2 + "chunks.push(chunk);\n")
	s.WriteString(l1 + "});\n\n")
	s.WriteString(l1 + "res.on(\"end\", function (chunk) {\n")
	s.WriteString(l2 + "var body = Buffer.concat(chunks);\n")
	s.WriteString(l2 + "console.log(body.toString());\n")
	s.WriteString(l1 + "});\n\n")
	s.WriteString(l1 + "res.on(\"error\", function (error) {\n")
	s.WriteString(l2 + "console.error(error);\n")
	s.WriteString(l1 + "});\n")
	s.WriteString("});\n\n")

	if c.HasBody() {
		s.WriteString("var postData = " + sections.Body + ";\n\n")
		s.WriteString("req.write(postData);\n\n")
	}

	if timeout := c.Options.Int(options.RequestTimeout); timeout > 0 {
		s.WriteString("req.setTimeout(" + strconv.Itoa(timeout) + ", function() {\n")
		s.WriteString(l1 + "req.abort();\n")
		s.WriteString("});\n\n")
	}

	s.WriteString("req.end();\n")

	return s.String()
}

// Unirest renders requests as Node.js using the unirest library.
type Unirest struct{}

// Target implements [codegen.Renderer] for [Unirest].
func (Unirest) Target() codegen.Target {
	return codegen.Target{
		ID:          "nodejs-unirest",
		Label:       "NodeJs - Unirest",
		Language:    "javascript",
		Quote:       sanitize.SingleQuoted,
		HeaderQuote: sanitize.SingleQuoted,
		Inject:      encode.InjectFile | encode.InjectGraphQL,
	}
}

// Options implements [codegen.Renderer] for [Unirest].
func (Unirest) Options() []options.Descriptor {
	return []options.Descriptor{
		options.Describe(options.IndentType, "space"),
		options.Describe(options.IndentCount, 2),
		options.Describe(options.RequestTimeout, 0),
		options.Describe(options.FollowRedirect, true),
		options.Describe(options.TrimRequestBody, false),
	}
}

// EmitHeader implements [codegen.Renderer] for [Unirest].
func (Unirest) EmitHeader(c *codegen.Context, header encode.Header) string {
	return c.Layout.Level(2) + "'" + header.Key + "': '" + header.Value + "'"
}

// RawBody implements [codegen.BodyEmitter] for [Unirest].
func (Unirest) RawBody(c *codegen.Context, body encode.Raw) string {
	return c.Layout.Level(1) + ".send('" + body.Content + "')"
}

// URLEncodedBody implements [codegen.BodyEmitter] for [Unirest].
func (Unirest) URLEncodedBody(c *codegen.Context, body encode.URLEncoded) string {
	sends := make([]string, 0, len(body.Pairs))
	for _, pair := range pairs(body) {
		sends = append(sends, c.Layout.Level(1)+".send('"+c.Escape(pair)+"')")
	}

	return strings.Join(sends, "\n")
}

// FormDataBody implements [codegen.BodyEmitter] for [Unirest].
func (Unirest) FormDataBody(c *codegen.Context, body encode.FormData) string {
	calls := make([]string, 0, len(body.Parts))

	for _, part := range body.Parts {
		if part.File {
			calls = append(calls, c.Layout.Level(1)+".attach('"+part.Key+"', '"+part.Src+"')")
			continue
		}

		calls = append(calls, c.Layout.Level(1)+".field('"+part.Key+"', '"+part.Value+"')")
	}

	return strings.Join(calls, "\n")
}

// FileBody implements [codegen.BodyEmitter] for [Unirest].
func (Unirest) FileBody(c *codegen.Context, body encode.File) string {
	return c.Layout.Level(1) + ".send('" + body.Placeholder + "')"
}

// GraphQLBody implements [codegen.BodyEmitter] for [Unirest].
func (Unirest) GraphQLBody(c *codegen.Context, body encode.GraphQL) string {
	return c.Layout.Level(1) + ".send('" + body.Payload + "')"
}

// EmitAssembly implements [codegen.Renderer] for [Unirest].
func (Unirest) EmitAssembly(c *codegen.Context, sections codegen.Sections) string {
	l1, l2 := c.Layout.Level(1), c.Layout.Level(2)

	chain := []string{"var req = unirest('" + c.Escape(c.Method) + "', '" + c.URL() + "')"}

	if len(sections.Headers) != 0 {
		chain = append(chain, l1+".headers({\n"+strings.Join(sections.Headers, ",\n")+"\n"+l1+"})")
	}

	if c.HasBody() {
		chain = append(chain, sections.Body)
	}

	if timeout := c.Options.Int(options.RequestTimeout); timeout > 0 {
		chain = append(chain, l1+".timeout("+strconv.Itoa(timeout)+")")
	}

	if !c.Options.Bool(options.FollowRedirect) {
		chain = append(chain, l1+".followRedirect(false)")
	}

	chain = append(chain, l1+".end(function (res) {\n"+
		l2+"if (res.error) throw new Error(res.error);\n"+
		l2+"console.log(res.raw_body);\n"+
		l1+"});")

	return "var unirest = require('unirest');\n" + lines(chain...) + "\n"
}
