// Package codegen implements the snippet assembler and the contract every target
// renderer implements.
//
// A conversion normalises the options against the renderer's schema, applies the
// renderer's content type injection rules, encodes the headers and body, hands the
// encoded fragments to the renderer one at a time and finally asks it to assemble
// the snippet. Conversions share no state and may run concurrently as long as each
// works on its own request.
package codegen

import (
	"errors"

	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/sanitize"
	"go.followtheprocess.codes/snip/internal/spec"
)

var (
	// ErrNoCompletion is returned by [Convert] when it is given no completion.
	ErrNoCompletion = errors.New("completion callback must not be nil")

	// ErrNoRenderer is returned when a conversion is given no renderer.
	ErrNoRenderer = errors.New("renderer must not be nil")
)

// Target describes a snippet target.
type Target struct {
	// Unique identifier e.g. "curl"
	ID string `json:"id" toml:"id" yaml:"id"`

	// Display name e.g. "cURL"
	Label string `json:"label" toml:"label" yaml:"label"`

	// Language of the snippet e.g. "shell"
	Language string `json:"language" toml:"language" yaml:"language"`

	// Literal context body fragments are escaped for
	Quote sanitize.Context `json:"-" toml:"-" yaml:"-"`

	// Literal context header keys and values are escaped for
	HeaderQuote sanitize.Context `json:"-" toml:"-" yaml:"-"`

	// Content type injection rules, renderers that hand multipart bodies to a
	// library leave out [encode.InjectMultipart]
	Inject encode.Injection `json:"-" toml:"-" yaml:"-"`
}

// Renderer turns encoded request fragments into the syntax of one target.
type Renderer interface {
	BodyEmitter

	// Target describes the target the renderer produces.
	Target() Target

	// Options returns the renderer's option schema.
	Options() []options.Descriptor

	// EmitHeader returns the fragment for a single encoded header, or "" to
	// leave it out.
	EmitHeader(c *Context, header encode.Header) string

	// EmitAssembly assembles the final snippet from the emitted sections.
	EmitAssembly(c *Context, sections Sections) string
}

// BodyEmitter has one method per encoded body variant, each returning the
// body fragment of the snippet.
type BodyEmitter interface {
	RawBody(c *Context, body encode.Raw) string
	URLEncodedBody(c *Context, body encode.URLEncoded) string
	FormDataBody(c *Context, body encode.FormData) string
	FileBody(c *Context, body encode.File) string
	GraphQLBody(c *Context, body encode.GraphQL) string
}

// Quoter is implemented by renderers whose literal contexts depend on the
// option values, such as a command line quoted for different shells.
type Quoter interface {
	// Quoting returns the literal contexts for body fragments and headers.
	Quoting(values options.Values) (body, header sanitize.Context)
}

// Context is everything a renderer needs to emit one snippet.
type Context struct {
	// The request after content type injection
	Request *spec.Request

	// The encoded body, nil if there is none
	Body encode.Body

	// Normalised option values
	Options options.Values

	// The request method, GET if unset
	Method string

	// Indentation and line joining
	Layout Layout

	// The encoded enabled headers in source order
	Headers []encode.Header

	// The encoder that produced Headers and Body
	Encoder encode.Encoder
}

// Escape escapes s for a body literal of the target, without trimming.
func (c *Context) Escape(s string) string {
	return sanitize.Escape(s, c.Encoder.Quote, false)
}

// URL returns the request URL escaped for a body literal of the target.
func (c *Context) URL() string {
	return c.Escape(c.Request.URL.String())
}

// HasBody reports whether a body was encoded and the method allows sending it.
func (c *Context) HasBody() bool {
	return c.Body != nil && spec.MethodAllowsBody(c.Method)
}

// Sections are the emitted fragments of a snippet, ready for assembly.
type Sections struct {
	// The emitted body, "" if there is none
	Body string

	// One emitted fragment per header
	Headers []string
}

// Completion receives the result of a [Convert].
type Completion func(snippet string, err error)

// Generate converts req into a snippet using r.
//
// raw holds the user's options, missing or invalid values take the defaults of
// the renderer's schema. A nil request is treated as an empty GET request. The
// request's headers may be modified by content type injection, pass a
// [spec.Request.Clone] if the request is shared.
//
// Generate only fails if r is nil.
func Generate(r Renderer, req *spec.Request, raw map[string]any) (string, error) {
	if r == nil {
		return "", ErrNoRenderer
	}

	if req == nil {
		req = &spec.Request{}
	}

	target := r.Target()
	values := options.Normalize(raw, r.Options())

	quote, headerQuote := target.Quote, target.HeaderQuote
	if quoter, ok := r.(Quoter); ok {
		quote, headerQuote = quoter.Quoting(values)
	}

	encoder := encode.Encoder{
		Quote:       quote,
		HeaderQuote: headerQuote,
		Trim:        values.Bool(options.TrimRequestBody),
	}

	// Injection must happen before the headers are encoded
	encode.InjectContentType(req, target.Inject)

	c := &Context{
		Request: req,
		Method:  req.MethodOrDefault(),
		Options: values,
		Layout:  NewLayout(values),
		Encoder: encoder,
		Headers: encoder.Headers(req.Headers),
		Body:    encoder.Body(req.Body, req.Headers),
	}

	sections := Sections{
		Headers: make([]string, 0, len(c.Headers)),
		Body:    emitBody(r, c),
	}

	for _, header := range c.Headers {
		if fragment := r.EmitHeader(c, header); fragment != "" {
			sections.Headers = append(sections.Headers, fragment)
		}
	}

	return r.EmitAssembly(c, sections), nil
}

// Convert is the callback form of [Generate].
//
// If done is nil, Convert returns [ErrNoCompletion] immediately. Otherwise it calls
// done exactly once with the snippet and a nil error, returning any precondition
// error from [Generate] without calling done.
func Convert(r Renderer, req *spec.Request, raw map[string]any, done Completion) error {
	if done == nil {
		return ErrNoCompletion
	}

	snippet, err := Generate(r, req, raw)
	if err != nil {
		return err
	}

	done(snippet, nil)

	return nil
}

// emitBody dispatches the encoded body to the matching emitter method.
func emitBody(r BodyEmitter, c *Context) string {
	switch body := c.Body.(type) {
	case encode.Raw:
		return r.RawBody(c, body)
	case encode.URLEncoded:
		return r.URLEncodedBody(c, body)
	case encode.FormData:
		return r.FormDataBody(c, body)
	case encode.File:
		return r.FileBody(c, body)
	case encode.GraphQL:
		return r.GraphQLBody(c, body)
	default:
		return ""
	}
}
