// Package format provides mechanisms for reading request files and writing generated
// snippets in external formats.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way, along with the built in JSON, YAML, TOML and text formats.
package format

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/snip/internal/spec"
)

// ErrUnknownFormat is returned when asking for an importer or exporter that does not exist.
var ErrUnknownFormat = errors.New("unknown format")

// Format names.
const (
	JSON = "json"
	YAML = "yaml"
	TOML = "toml"
	Text = "text"
)

// Snippet is a single generated snippet.
type Snippet struct {
	// Label of the request it was generated from, its name or "#n"
	Request string `json:"request" toml:"request" yaml:"request"`

	// Id of the target that generated it
	Target string `json:"target" toml:"target" yaml:"target"`

	// The generated code
	Code string `json:"code" toml:"code" yaml:"code"`
}

// Document is the result of generating snippets for one request file.
type Document struct {
	// Name of the request file
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// Snippets in request then target order
	Snippets []Snippet `json:"snippets" toml:"snippets" yaml:"snippets"`
}

// Exporter is the interface defining a mechanism for writing a generated [Document]
// in an external format.
type Exporter interface {
	// Export writes the document to w.
	Export(w io.Writer, doc Document) error
}

// Importer is the interface defining a mechanism for reading request files from
// external formats.
type Importer interface {
	// Import reads a request file from r.
	Import(r io.Reader) (spec.File, error)
}

// ImporterFor returns the [Importer] for a request file, chosen by its extension.
func ImporterFor(path string) (Importer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSONImporter{}, nil
	case ".yaml", ".yml":
		return YAMLImporter{}, nil
	case ".toml":
		return TOMLImporter{}, nil
	default:
		return nil, fmt.Errorf("%w: no importer for %q files, expected .json, .yaml, .yml or .toml", ErrUnknownFormat, ext)
	}
}

// ExporterFor returns the named [Exporter].
func ExporterFor(name string) (Exporter, error) {
	switch name {
	case Text:
		return TextExporter{}, nil
	case JSON:
		return JSONExporter{}, nil
	case YAML:
		return YAMLExporter{}, nil
	case TOML:
		return TOMLExporter{}, nil
	default:
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
}

// Names returns the names of the export formats.
func Names() []string {
	return []string{Text, JSON, YAML, TOML}
}

// Encode writes v to w in the named structured format, one of json, yaml or toml.
//
// TOML documents must be tables so v should be a struct or a map.
func Encode(w io.Writer, name string, v any) error {
	switch name {
	case JSON:
		return encodeJSON(w, v)
	case YAML:
		return encodeYAML(w, v)
	case TOML:
		return encodeTOML(w, v)
	default:
		return fmt.Errorf("%w %q, expected one of json, yaml, toml", ErrUnknownFormat, name)
	}
}
