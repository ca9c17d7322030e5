package format

import (
	_ "embed"
	"io"
	"text/template"
)

//go:embed templates/text.txt.tmpl
var textTempl string

// textTemplate is the parsed text export template.
//
//nolint:gochecknoglobals // Having the template as a global means it's parsed only once
var textTemplate = template.Must(template.New("text").Parse(textTempl))

// TextExporter is an [Exporter] that writes generated snippets as plain text, each
// under a heading naming its request and target.
type TextExporter struct{}

// Export implements [Exporter] for [TextExporter].
func (t TextExporter) Export(w io.Writer, doc Document) error {
	return textTemplate.Execute(w, doc)
}
