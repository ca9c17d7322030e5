// Package encode turns the headers and body of a [spec.Request] into escaped
// fragments ready for a target renderer to place into its syntax.
//
// Encoding never fails, malformed or absent data degrades to an empty fragment.
package encode

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"go.followtheprocess.codes/snip/internal/sanitize"
	"go.followtheprocess.codes/snip/internal/spec"
)

// Default content types by body mode.
const (
	DefaultContentType    = "text/plain"
	URLEncodedContentType = "application/x-www-form-urlencoded"
	FormDataContentType   = "multipart/form-data"
	GraphQLContentType    = "application/json"
	OctetStream           = "application/octet-stream"
)

// Encoder encodes request headers and bodies for a target syntax.
type Encoder struct {
	// Literal context for body fragments
	Quote sanitize.Context

	// Literal context for header keys and values
	HeaderQuote sanitize.Context

	// Whether to trim surrounding whitespace from every value before escaping
	Trim bool
}

// Header is an encoded request header.
type Header struct {
	Key   string
	Value string
}

// Body is an encoded request body, one of [Raw], [URLEncoded], [FormData], [File]
// or [GraphQL].
//
// The set of variants is closed, renderers handle every one through a dedicated
// method so a new variant is a compile time change everywhere.
type Body interface {
	// Mode returns the body mode the variant encodes.
	Mode() spec.Mode

	sealed()
}

// Raw is an encoded raw text body.
type Raw struct {
	// The whole body as one escaped literal
	Content string

	// The request's content type, or text/plain
	ContentType string
}

// Pair is an escaped key value pair.
type Pair struct {
	Key   string
	Value string
}

// URLEncoded is an encoded application/x-www-form-urlencoded body.
type URLEncoded struct {
	// The request's content type, or application/x-www-form-urlencoded
	ContentType string

	// The enabled pairs joined as a form e.g. "a=1&b=2"
	Encoded string

	// The enabled pairs, each escaped for the literal context, for targets
	// that add fields one at a time
	Pairs []Pair
}

// Part is a single encoded multipart form-data part.
type Part struct {
	// Field name
	Key string

	// Value of a text part
	Value string

	// Source path of a file part
	Src string

	// Base name of Src
	Filename string

	// Explicit content type of the part, may be empty
	ContentType string

	// Whether the part is a file
	File bool
}

// FormData is an encoded multipart/form-data body.
type FormData struct {
	// The request's content type, including the boundary
	ContentType string

	// The canonical multipart stream as one escaped literal, for targets that
	// send the body bytes themselves
	Multipart string

	// One part per enabled field, file fields with several sources already expanded
	Parts []Part
}

// File is an encoded single file upload.
type File struct {
	// Source path of the file, never read
	Src string

	// Stand in for the file's bytes
	Placeholder string

	// The request's content type, or text/plain
	ContentType string
}

// GraphQL is an encoded GraphQL body.
type GraphQL struct {
	// The JSON document {"query": ..., "variables": ...} as one escaped literal
	Payload string

	// The request's content type, or application/json
	ContentType string
}

func (Raw) Mode() spec.Mode        { return spec.ModeRaw }
func (URLEncoded) Mode() spec.Mode { return spec.ModeURLEncoded }
func (FormData) Mode() spec.Mode   { return spec.ModeFormData }
func (File) Mode() spec.Mode       { return spec.ModeFile }
func (GraphQL) Mode() spec.Mode    { return spec.ModeGraphQL }

func (Raw) sealed()        {}
func (URLEncoded) sealed() {}
func (FormData) sealed()   {}
func (File) sealed()       {}
func (GraphQL) sealed()    {}

// Headers encodes the enabled headers, preserving their order.
func (e Encoder) Headers(headers []spec.Header) []Header {
	encoded := make([]Header, 0, len(headers))

	for _, header := range headers {
		if header.Disabled {
			continue
		}

		encoded = append(encoded, Header{
			Key:   sanitize.Escape(header.Key, e.HeaderQuote, e.Trim),
			Value: sanitize.Escape(header.Value, e.HeaderQuote, e.Trim),
		})
	}

	return encoded
}

// Body encodes body, taking content types from headers.
//
// Body returns nil if there is nothing to send: the body is absent, of an unknown
// mode, or every field in it is empty or disabled.
func (e Encoder) Body(body *spec.Body, headers []spec.Header) Body {
	if body == nil {
		return nil
	}

	switch body.Mode {
	case spec.ModeRaw:
		return e.raw(body.Raw, headers)
	case spec.ModeURLEncoded:
		return e.urlEncoded(body.URLEncoded, headers)
	case spec.ModeFormData:
		return e.formData(body.FormData, headers)
	case spec.ModeFile:
		return e.file(body.File, headers)
	case spec.ModeGraphQL:
		return e.graphQL(body.GraphQL, headers)
	default:
		return nil
	}
}

func (e Encoder) raw(content string, headers []spec.Header) Body {
	if e.value(content) == "" {
		return nil
	}

	return Raw{
		Content:     e.escape(content),
		ContentType: e.contentType(headers, DefaultContentType),
	}
}

func (e Encoder) urlEncoded(params []spec.Param, headers []spec.Header) Body {
	var (
		pairs   []Pair
		encoded []string
	)

	for _, param := range params {
		if param.Disabled {
			continue
		}

		pairs = append(pairs, Pair{Key: e.escape(param.Key), Value: e.escape(param.Value)})
		encoded = append(encoded, url.QueryEscape(e.value(param.Key))+"="+url.QueryEscape(e.value(param.Value)))
	}

	if len(pairs) == 0 {
		return nil
	}

	return URLEncoded{
		Pairs:       pairs,
		Encoded:     strings.Join(encoded, "&"),
		ContentType: e.contentType(headers, URLEncodedContentType),
	}
}

func (e Encoder) formData(params []spec.FormParam, headers []spec.Header) Body {
	var enabled []spec.FormParam

	for _, param := range params {
		if !param.Disabled {
			enabled = append(enabled, param)
		}
	}

	if len(enabled) == 0 {
		return nil
	}

	// Expand multi source file fields first so every param is exactly one part
	flat := Flatten(enabled)

	raw := make([]Part, 0, len(flat))
	for _, param := range flat {
		raw = append(raw, e.part(param))
	}

	parts := make([]Part, 0, len(raw))
	for _, part := range raw {
		parts = append(parts, Part{
			Key:         e.escape(part.Key),
			Value:       e.escape(part.Value),
			Src:         e.escape(part.Src),
			Filename:    e.escape(part.Filename),
			ContentType: e.escape(part.ContentType),
			File:        part.File,
		})
	}

	return FormData{
		Parts:       parts,
		Multipart:   sanitize.Escape(Multipart(raw), e.Quote, false),
		ContentType: e.contentType(headers, FormDataContentType+"; boundary="+Boundary),
	}
}

func (e Encoder) file(source spec.FileSource, headers []spec.Header) Body {
	if e.value(source.Src) == "" {
		return nil
	}

	return File{
		Src:         e.escape(source.Src),
		Placeholder: e.escape(FilePlaceholder),
		ContentType: e.contentType(headers, DefaultContentType),
	}
}

func (e Encoder) graphQL(graphql spec.GraphQL, headers []spec.Header) Body {
	query := e.value(graphql.Query)
	if query == "" && strings.TrimSpace(graphql.Variables) == "" {
		return nil
	}

	payload := struct {
		Query     string          `json:"query"`
		Variables json.RawMessage `json:"variables"`
	}{
		Query:     query,
		Variables: variables(graphql.Variables),
	}

	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	// Can't fail, both fields are known to be valid
	_ = encoder.Encode(payload)

	return GraphQL{
		Payload:     e.escape(strings.TrimSuffix(buf.String(), "\n")),
		ContentType: e.contentType(headers, GraphQLContentType),
	}
}

// part converts a flattened form param into an unescaped part.
func (e Encoder) part(param spec.FormParam) Part {
	part := Part{
		Key:         e.value(param.Key),
		ContentType: e.value(param.ContentType),
		File:        param.IsFile(),
	}

	if !part.File {
		part.Value = e.value(param.Value)
		return part
	}

	if len(param.Src) != 0 {
		part.Src = e.value(param.Src[0])
	}

	part.Filename = Filename(part.Src)

	return part
}

// contentType returns the escaped content type from the first enabled
// Content-Type header, or fallback.
func (e Encoder) contentType(headers []spec.Header, fallback string) string {
	request := spec.Request{Headers: headers}
	if value, ok := request.HeaderValue(spec.ContentType); ok && strings.TrimSpace(value) != "" {
		return sanitize.Escape(strings.TrimSpace(value), e.Quote, false)
	}

	return sanitize.Escape(fallback, e.Quote, false)
}

// value applies the encoder's trimming to a raw value without escaping it.
func (e Encoder) value(s string) string {
	return sanitize.Escape(s, sanitize.Verbatim, e.Trim)
}

// escape escapes s for a body literal.
func (e Encoder) escape(s string) string {
	return sanitize.Escape(s, e.Quote, e.Trim)
}

// variables returns the compacted JSON document in s, or an empty object if s
// is empty or not valid JSON.
func variables(s string) json.RawMessage {
	buf := &bytes.Buffer{}
	if strings.TrimSpace(s) == "" || json.Compact(buf, []byte(s)) != nil {
		return json.RawMessage(`{}`)
	}

	return buf.Bytes()
}
