package format

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/snip/internal/spec"
)

// TOMLExporter is an [Exporter] that writes generated snippets as TOML documents.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given document
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, doc Document) error {
	return encodeTOML(w, doc)
}

// TOMLImporter is an [Importer] that reads request files written in TOML.
type TOMLImporter struct{}

// Import implements [Importer] for [TOMLImporter] and imports the given
// TOML document into a [spec.File].
func (t TOMLImporter) Import(r io.Reader) (spec.File, error) {
	var file spec.File

	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return spec.File{}, fmt.Errorf("could not decode TOML: %w", err)
	}

	return file, nil
}

func encodeTOML(w io.Writer, v any) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(v)
}
