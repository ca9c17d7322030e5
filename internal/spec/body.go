package spec

import "slices"

// Mode identifies which variant of a [Body] is in use.
type Mode string

const (
	ModeRaw        Mode = "raw"        // Raw text content
	ModeURLEncoded Mode = "urlencoded" // application/x-www-form-urlencoded params
	ModeFormData   Mode = "formdata"   // multipart/form-data params, possibly files
	ModeFile       Mode = "file"       // A single file upload
	ModeGraphQL    Mode = "graphql"    // A GraphQL query and variables
)

// Form param types.
const (
	FormText = "text" // A plain key value form field
	FormFile = "file" // A file form field referencing one or more paths
)

// Body is a HTTP request body, a union over the body modes where only the
// field matching Mode is meaningful.
type Body struct {
	// Which of the fields below is in use
	Mode Mode `json:"mode" toml:"mode" yaml:"mode"`

	// Raw content when Mode is raw
	Raw string `json:"raw,omitempty" toml:"raw,omitempty" yaml:"raw,omitempty"`

	// File source when Mode is file
	File FileSource `json:"file,omitzero" toml:"file,omitempty" yaml:"file,omitempty"`

	// Query and variables when Mode is graphql
	GraphQL GraphQL `json:"graphql,omitzero" toml:"graphql,omitempty" yaml:"graphql,omitempty"`

	// Params when Mode is urlencoded
	URLEncoded []Param `json:"urlencoded,omitempty" toml:"urlencoded,omitempty" yaml:"urlencoded,omitempty"`

	// Params when Mode is formdata
	FormData []FormParam `json:"formdata,omitempty" toml:"formdata,omitempty" yaml:"formdata,omitempty"`
}

// FileSource is the source of a file body, only the path is ever recorded.
type FileSource struct {
	Src string `json:"src,omitempty" toml:"src,omitempty" yaml:"src,omitempty"`
}

// GraphQL is a GraphQL body, Variables is a JSON document held as a string.
type GraphQL struct {
	Query     string `json:"query,omitempty"     toml:"query,omitempty"     yaml:"query,omitempty"`
	Variables string `json:"variables,omitempty" toml:"variables,omitempty" yaml:"variables,omitempty"`
}

// FormParam is a single multipart form field.
type FormParam struct {
	// Field name
	Key string `json:"key" toml:"key" yaml:"key"`

	// Either "text" or "file", empty is treated as "text"
	Type string `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`

	// Value of a text field
	Value string `json:"value,omitempty" toml:"value,omitempty" yaml:"value,omitempty"`

	// Optional explicit content type of the part
	ContentType string `json:"contentType,omitempty" toml:"contentType,omitempty" yaml:"contentType,omitempty"`

	// Source paths of a file field, one part is generated per path
	Src []string `json:"src,omitempty" toml:"src,omitempty" yaml:"src,omitempty"`

	// Whether the field is excluded
	Disabled bool `json:"disabled,omitempty" toml:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// IsFile reports whether the form param is a file field.
func (f FormParam) IsFile() bool {
	return f.Type == FormFile
}

// Clone returns a deep copy of the body.
func (b Body) Clone() Body {
	clone := b
	clone.URLEncoded = slices.Clone(b.URLEncoded)
	clone.FormData = make([]FormParam, 0, len(b.FormData))

	for _, param := range b.FormData {
		param.Src = slices.Clone(param.Src)
		clone.FormData = append(clone.FormData, param)
	}

	if b.FormData == nil {
		clone.FormData = nil
	}

	return clone
}
