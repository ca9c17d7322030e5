// Package options implements the typed generation option schema shared by every
// snippet target, along with the normaliser that resolves a sparse, possibly
// invalid set of user supplied options into a fully populated set of values.
package options

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Type is the type of an option value.
type Type string

const (
	Boolean         Type = "boolean"         // A Go bool
	Enum            Type = "enum"            // A string drawn from a fixed set
	PositiveInteger Type = "positiveInteger" // An integer >= 0
	String          Type = "string"          // Any string
)

// Recognised option ids, every target draws its schema from these so hosts can
// present the same configuration across all of them.
const (
	IndentType                = "indentType"
	IndentCount               = "indentCount"
	TrimRequestBody           = "trimRequestBody"
	RequestTimeout            = "requestTimeout"
	FollowRedirect            = "followRedirect"
	MultiLine                 = "multiLine"
	LongFormat                = "longFormat"
	IncludeBoilerplate        = "includeBoilerplate"
	Silent                    = "silent"
	LineContinuationCharacter = "lineContinuationCharacter"
	Protocol                  = "protocol"
	UseMimeType               = "useMimeType"
	ShellType                 = "shellType"
)

// Descriptor describes a single generation option.
type Descriptor struct {
	// The default value, used whenever the supplied value is missing or invalid
	Default any `json:"default" toml:"default" yaml:"default"`

	// Unique identifier of the option within a schema
	ID string `json:"id" toml:"id" yaml:"id"`

	// Human readable name
	Name string `json:"name" toml:"name" yaml:"name"`

	// Type of the value
	Type Type `json:"type" toml:"type" yaml:"type"`

	// What the option does
	Description string `json:"description" toml:"description" yaml:"description"`

	// The allowed values of an enum option, empty for every other type
	AvailableOptions []string `json:"availableOptions,omitempty" toml:"availableOptions,omitempty" yaml:"availableOptions,omitempty"`
}

// Values is a fully normalised set of option values, keyed by option id.
type Values map[string]any

// Normalize resolves raw against schema.
//
// For every descriptor in the schema, the value in raw is used if present and
// valid for the descriptor's type, otherwise the descriptor's default is used.
// Keys in raw not named by the schema are ignored. Normalize never fails.
func Normalize(raw map[string]any, schema []Descriptor) Values {
	values := make(Values, len(schema))

	for _, descriptor := range schema {
		if value, ok := raw[descriptor.ID]; ok {
			if coerced, valid := descriptor.coerce(value); valid {
				values[descriptor.ID] = coerced
				continue
			}
		}

		values[descriptor.ID] = descriptor.fallback()
	}

	return values
}

// Defaults returns the values of schema when no options are supplied.
func Defaults(schema []Descriptor) Values {
	return Normalize(nil, schema)
}

// Bool returns the boolean option with the given id, false if missing.
func (v Values) Bool(id string) bool {
	value, _ := v[id].(bool)
	return value
}

// Int returns the integer option with the given id, 0 if missing.
func (v Values) Int(id string) int {
	value, _ := v[id].(int)
	return value
}

// String returns the string or enum option with the given id, "" if missing.
func (v Values) String(id string) string {
	value, _ := v[id].(string)
	return value
}

// Validate checks that schema is well formed.
//
// Every id must be unique and drawn from the recognised set, every descriptor must
// carry a name, type and description, AvailableOptions must be present if and only
// if the type is enum, and the default must itself be a valid value.
func Validate(schema []Descriptor) error {
	var errs []error

	seen := make(map[string]bool, len(schema))

	for _, descriptor := range schema {
		if seen[descriptor.ID] {
			errs = append(errs, fmt.Errorf("duplicate option id %q", descriptor.ID))
		}

		seen[descriptor.ID] = true

		if !Known(descriptor.ID) {
			errs = append(errs, fmt.Errorf("option id %q is not a recognised option", descriptor.ID))
		}

		if descriptor.Name == "" || descriptor.Description == "" {
			errs = append(errs, fmt.Errorf("option %q must have a name and a description", descriptor.ID))
		}

		switch descriptor.Type {
		case Boolean, PositiveInteger, String:
			if len(descriptor.AvailableOptions) != 0 {
				errs = append(errs, fmt.Errorf("option %q of type %s must not declare available options", descriptor.ID, descriptor.Type))
			}
		case Enum:
			if len(descriptor.AvailableOptions) == 0 {
				errs = append(errs, fmt.Errorf("enum option %q has no available options", descriptor.ID))
			}
		default:
			errs = append(errs, fmt.Errorf("option %q has unknown type %q", descriptor.ID, descriptor.Type))
		}

		if _, ok := descriptor.coerce(descriptor.Default); !ok {
			errs = append(errs, fmt.Errorf("option %q has invalid default %v for type %s", descriptor.ID, descriptor.Default, descriptor.Type))
		}
	}

	return errors.Join(errs...)
}

// coerce checks value against the descriptor's type, returning the value in its
// canonical Go type and whether it was valid.
func (d Descriptor) coerce(value any) (any, bool) {
	switch d.Type {
	case Boolean:
		b, ok := value.(bool)
		return b, ok
	case PositiveInteger:
		n, ok := toInt(value)
		if !ok || n < 0 {
			return nil, false
		}

		return n, true
	case Enum:
		s, ok := value.(string)
		if !ok || !slices.Contains(d.AvailableOptions, s) {
			return nil, false
		}

		return s, true
	case String:
		s, ok := value.(string)
		return s, ok
	default:
		return nil, false
	}
}

// fallback returns the default in its canonical Go type.
func (d Descriptor) fallback() any {
	if value, ok := d.coerce(d.Default); ok {
		return value
	}

	return d.Default
}

// toInt converts any Go integer, or an integral float as produced by
// decoding JSON into an any, to an int.
func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), n <= math.MaxInt
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), n <= math.MaxInt
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}

	return int(f), true
}
