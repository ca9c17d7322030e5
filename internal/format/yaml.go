package format

import (
	"fmt"
	"io"

	"go.followtheprocess.codes/snip/internal/spec"
	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that writes generated snippets as YAML documents.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given document as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, doc Document) error {
	return encodeYAML(w, doc)
}

// YAMLImporter is an [Importer] that reads request files written in YAML.
type YAMLImporter struct{}

// Import implements [Importer] for [YAMLImporter] and imports the given
// YAML document into a [spec.File].
func (y YAMLImporter) Import(r io.Reader) (spec.File, error) {
	var file spec.File

	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return spec.File{}, fmt.Errorf("could not decode YAML: %w", err)
	}

	return file, nil
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
