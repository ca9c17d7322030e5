package encode

import (
	"strings"

	"go.followtheprocess.codes/snip/internal/spec"
)

// Boundary is the fixed multipart boundary token, fixed so that generating the
// same request twice gives byte identical snippets.
const Boundary = "----WebKitFormBoundary7MA4YWxkTrZu0gW"

// FilePlaceholder stands in for file contents, which are never read.
const FilePlaceholder = "<file contents here>"

// dispositionEscaper percent-encodes the characters that would end a quoted
// Content-Disposition parameter or the header itself, the way browsers do.
//
//nolint:gochecknoglobals // Effectively constant
var dispositionEscaper = strings.NewReplacer(`"`, "%22", "\r", "%0D", "\n", "%0A")

// Flatten expands every file param naming more than one source path into one
// param per path, each keeping the original key.
//
// A file param with no source paths yields a single param with no source. Text
// params and their order are unchanged.
func Flatten(params []spec.FormParam) []spec.FormParam {
	flat := make([]spec.FormParam, 0, len(params))

	for _, param := range params {
		if !param.IsFile() || len(param.Src) <= 1 {
			flat = append(flat, param)
			continue
		}

		for _, src := range param.Src {
			single := param
			single.Src = []string{src}
			flat = append(flat, single)
		}
	}

	return flat
}

// Filename returns the last element of a source path.
//
// The path is treated as an opaque string, both "/" and "\" separate elements
// regardless of the host platform since the path is never used to open a file.
func Filename(src string) string {
	if index := strings.LastIndexAny(src, `/\`); index >= 0 {
		return src[index+1:]
	}

	return src
}

// Multipart renders parts as the canonical multipart/form-data stream delimited
// by [Boundary].
//
// Parts must be unescaped, the stream is escaped as a whole by the caller.
func Multipart(parts []Part) string {
	builder := &strings.Builder{}

	for _, part := range parts {
		builder.WriteString("--" + Boundary + "\r\n")
		builder.WriteString(`Content-Disposition: form-data; name="` + dispositionEscaper.Replace(part.Key) + `"`)

		if part.File {
			contentType := part.ContentType
			if contentType == "" {
				contentType = OctetStream
			}

			builder.WriteString(`; filename="` + dispositionEscaper.Replace(part.Filename) + `"` + "\r\n")
			builder.WriteString("Content-Type: " + contentType + "\r\n\r\n")
			builder.WriteString(FilePlaceholder + "\r\n")

			continue
		}

		builder.WriteString("\r\n\r\n")
		builder.WriteString(part.Value + "\r\n")
	}

	builder.WriteString("--" + Boundary + "--\r\n")

	return builder.String()
}
