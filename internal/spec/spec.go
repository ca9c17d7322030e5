// Package spec provides the Request and File types, the concrete, canonical
// data structures describing a HTTP request that snippets are generated from.
//
// The data structures here are complete and concrete, they are produced by an
// upstream collaborator (an importer, an API client, a test fixture) and the
// generation engine only ever reads them, with the single exception of
// content type injection performed by package encode.
package spec

import (
	"fmt"
	"strings"
)

// File is a named collection of requests, typically as loaded from a
// JSON, YAML or TOML request definition file.
type File struct {
	// Name of the collection, optional
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// The HTTP requests described in the file
	Requests []Request `json:"requests,omitempty" toml:"requests,omitempty" yaml:"requests,omitempty"`
}

// String implements [fmt.Stringer] for a [File], it renders a short
// human readable summary of every request in the file.
func (f File) String() string {
	builder := &strings.Builder{}

	if f.Name != "" {
		fmt.Fprintf(builder, "# %s\n", f.Name)
	}

	for index, request := range f.Requests {
		builder.WriteString(request.Label(index))
		builder.WriteString(": ")
		builder.WriteString(request.String())
		builder.WriteByte('\n')
	}

	return builder.String()
}

// ContainsRequest reports whether a request with the given name is present
// in the file.
func (f File) ContainsRequest(name string) bool {
	for _, request := range f.Requests {
		if request.Name == name {
			return true
		}
	}

	return false
}
