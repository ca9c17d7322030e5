package options

import "slices"

// entry is the shared part of a descriptor, everything but the default.
type entry struct {
	name        string
	description string
	typ         Type
	available   []string
}

// catalogue holds the shared definition of every recognised option.
//
//nolint:gochecknoglobals // Lookup table, effectively constant
var catalogue = map[string]entry{
	IndentType: {
		name:        "Indent type",
		description: "Character used for indentation",
		typ:         Enum,
		available:   []string{"tab", "space"},
	},
	IndentCount: {
		name:        "Indent count",
		description: "Number of indentation characters to add per code level",
		typ:         PositiveInteger,
	},
	TrimRequestBody: {
		name:        "Trim request body fields",
		description: "Remove white space and additional lines that may affect the server's response",
		typ:         Boolean,
	},
	RequestTimeout: {
		name:        "Request timeout",
		description: "Set number of milliseconds the request should wait for a response before timing out (use 0 for infinity)",
		typ:         PositiveInteger,
	},
	FollowRedirect: {
		name:        "Follow redirects",
		description: "Automatically follow HTTP redirects",
		typ:         Boolean,
	},
	MultiLine: {
		name:        "Generate multiline snippet",
		description: "Split the command across multiple lines",
		typ:         Boolean,
	},
	LongFormat: {
		name:        "Use long form options",
		description: "Use the long form for command line options (--header instead of -H)",
		typ:         Boolean,
	},
	IncludeBoilerplate: {
		name:        "Include boilerplate",
		description: "Include class definition and import statements in snippet",
		typ:         Boolean,
	},
	Silent: {
		name:        "Silent mode",
		description: "Display the requested data without showing progress or errors",
		typ:         Boolean,
	},
	LineContinuationCharacter: {
		name:        "Line continuation character",
		description: "Set a character used to mark the continuation of a statement on the next line (generally, \\ for OSX/Linux, ^ for Windows cmd and ` for Powershell)",
		typ:         Enum,
		available:   []string{`\`, "^", "`"},
	},
	Protocol: {
		name:        "HTTP protocol version",
		description: "HTTP protocol version written in the request line",
		typ:         Enum,
		available:   []string{"HTTP/1.1", "HTTP/2"},
	},
	UseMimeType: {
		name:        "Use mime type",
		description: "Attach the part's content type to file uploads",
		typ:         Boolean,
	},
	ShellType: {
		name:        "Shell type",
		description: "Shell the generated command is quoted for",
		typ:         Enum,
		available:   []string{"posix", "windows"},
	},
}

// Known reports whether id is a recognised option id.
func Known(id string) bool {
	_, ok := catalogue[id]
	return ok
}

// Describe builds the descriptor for a recognised option with the given default.
//
// If available is given it replaces the catalogue's set of enum values, letting a
// target narrow the choices. An unrecognised id yields a descriptor carrying only
// the id and default, which [Validate] rejects.
func Describe(id string, def any, available ...string) Descriptor {
	shared, ok := catalogue[id]
	if !ok {
		return Descriptor{ID: id, Default: def}
	}

	descriptor := Descriptor{
		ID:          id,
		Name:        shared.name,
		Type:        shared.typ,
		Default:     def,
		Description: shared.description,
	}

	if shared.typ == Enum {
		descriptor.AvailableOptions = slices.Clone(shared.available)
		if len(available) != 0 {
			descriptor.AvailableOptions = available
		}
	}

	return descriptor
}
