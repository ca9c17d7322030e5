package format

import (
	"encoding/json"
	"fmt"
	"io"

	"go.followtheprocess.codes/snip/internal/spec"
)

// JSONExporter is an [Exporter] that writes generated snippets as JSON documents.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given document
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, doc Document) error {
	return encodeJSON(w, doc)
}

// JSONImporter is an [Importer] that reads request files written in JSON.
type JSONImporter struct{}

// Import implements [Importer] for [JSONImporter] and imports the given
// JSON document into a [spec.File].
func (j JSONImporter) Import(r io.Reader) (spec.File, error) {
	var file spec.File

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&file); err != nil {
		return spec.File{}, fmt.Errorf("could not decode JSON: %w", err)
	}

	return file, nil
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(v)
}
