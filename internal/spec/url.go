package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"
)

// URL is a structured request URL.
//
// In request files a URL may be given either as a plain string, which is parsed
// with [ParseURL], or as an object naming each component. It always serialises
// back out as a string.
type URL struct {
	// Auth is the optional basic auth userinfo
	Auth Auth `json:"auth,omitzero" toml:"auth,omitempty" yaml:"auth,omitempty"`

	// Raw is the URL exactly as the user gave it, used when the structured
	// components are empty e.g. for templated URLs that do not parse
	Raw string `json:"raw,omitempty" toml:"raw,omitempty" yaml:"raw,omitempty"`

	// Protocol is the scheme without the trailing "://" e.g. "https"
	Protocol string `json:"protocol,omitempty" toml:"protocol,omitempty" yaml:"protocol,omitempty"`

	// Port, if explicitly set
	Port string `json:"port,omitempty" toml:"port,omitempty" yaml:"port,omitempty"`

	// Hash is the fragment without the leading "#"
	Hash string `json:"hash,omitempty" toml:"hash,omitempty" yaml:"hash,omitempty"`

	// Host segments e.g. ["api", "example", "com"]
	Host []string `json:"host,omitempty" toml:"host,omitempty" yaml:"host,omitempty"`

	// Path segments as they appear in the URL, percent-encoding intact e.g. ["v1", "a%20b"]
	Path []string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`

	// Query parameters in source order, keys and values as they appear in the URL
	Query []Param `json:"query,omitempty" toml:"query,omitempty" yaml:"query,omitempty"`
}

// Auth is basic auth userinfo embedded in a URL.
type Auth struct {
	User     string `json:"user,omitempty"     toml:"user,omitempty"     yaml:"user,omitempty"`
	Password string `json:"password,omitempty" toml:"password,omitempty" yaml:"password,omitempty"`
}

// Param is a single key value pair, used for query parameters and
// urlencoded bodies.
type Param struct {
	Key      string `json:"key"                toml:"key"                yaml:"key"`
	Value    string `json:"value"              toml:"value"              yaml:"value"`
	Disabled bool   `json:"disabled,omitempty" toml:"disabled,omitempty" yaml:"disabled,omitempty"`

	// Bare marks a query key given without an "=" e.g. "?verbose"
	Bare bool `json:"bare,omitempty" toml:"bare,omitempty" yaml:"bare,omitempty"`
}

// ParseURL parses raw into a structured [URL].
//
// ParseURL never fails, if raw cannot be parsed as an absolute URL the returned
// URL carries only the Raw field and renders as raw unchanged.
func ParseURL(raw string) URL {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return URL{Raw: raw}
	}

	u := URL{
		Raw:      raw,
		Protocol: parsed.Scheme,
		Port:     parsed.Port(),
		Hash:     sourceForm(parsed.RawFragment, parsed.EscapedFragment),
		Host:     strings.Split(parsed.Hostname(), "."),
	}

	if parsed.User != nil {
		u.Auth.User = parsed.User.Username()
		u.Auth.Password, _ = parsed.User.Password()
	}

	// Segments keep their escapes so "%2F" stays inside its segment
	if path := strings.TrimPrefix(sourceForm(parsed.RawPath, parsed.EscapedPath), "/"); path != "" {
		u.Path = strings.Split(path, "/")
	}

	// url.Values is a map so would lose the source order, it would also
	// decode the pairs and forget which keys had no "="
	for pair := range strings.SplitSeq(parsed.RawQuery, "&") {
		if pair == "" {
			continue
		}

		key, value, found := strings.Cut(pair, "=")
		u.Query = append(u.Query, Param{Key: key, Value: value, Bare: !found})
	}

	return u
}

// sourceForm returns raw, which net/url only sets when the source spelling of a
// component differs from its default encoding, falling back to that encoding.
//
// The Escaped methods are avoided when raw is set as they re-encode anything
// net/url considers invalid, such as the braces of "{{id}}".
func sourceForm(raw string, escaped func() string) string {
	if raw != "" {
		return raw
	}

	return escaped()
}

// HostString returns the host and optional port e.g. "api.example.com:8080".
func (u URL) HostString() string {
	host := strings.Join(u.Host, ".")
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	if u.Port != "" {
		host += ":" + u.Port
	}

	return host
}

// PathString returns the path and enabled query parameters, as they would
// appear in a HTTP request line e.g. "/v1/items?page=2".
//
// It always begins with a "/".
func (u URL) PathString() string {
	if len(u.Host) == 0 {
		// Best effort for unstructured URLs, take everything after the authority
		rest := u.Raw
		if _, after, found := strings.Cut(rest, "://"); found {
			rest = after
		}

		if index := strings.IndexAny(rest, "/?"); index >= 0 {
			rest = rest[index:]
		} else {
			rest = ""
		}

		if !strings.HasPrefix(rest, "/") {
			rest = "/" + rest
		}

		return rest
	}

	return "/" + u.path() + u.query()
}

// String implements [fmt.Stringer] for a [URL].
//
// Disabled query parameters are skipped. Path segments and query parameters
// are written as given, only characters that cannot appear there literally are
// percent-encoded. A URL with no structured host renders as its Raw value.
func (u URL) String() string {
	if len(u.Host) == 0 {
		return u.Raw
	}

	builder := &strings.Builder{}

	if u.Protocol != "" {
		builder.WriteString(u.Protocol)
		builder.WriteString("://")
	}

	if u.Auth.User != "" {
		builder.WriteString(url.UserPassword(u.Auth.User, u.Auth.Password).String())
		builder.WriteByte('@')
	}

	builder.WriteString(u.HostString())

	if len(u.Path) != 0 {
		builder.WriteByte('/')
		builder.WriteString(u.path())
	}

	builder.WriteString(u.query())

	if u.Hash != "" {
		builder.WriteByte('#')
		builder.WriteString(u.Hash)
	}

	return builder.String()
}

// Clone returns a deep copy of the URL.
func (u URL) Clone() URL {
	clone := u
	clone.Host = slices.Clone(u.Host)
	clone.Path = slices.Clone(u.Path)
	clone.Query = slices.Clone(u.Query)

	return clone
}

// MarshalText implements [encoding.TextMarshaler] for [URL].
func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalJSON implements [json.Unmarshaler] for [URL], accepting either
// a string or an object.
func (u *URL) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("could not decode URL string: %w", err)
		}

		*u = ParseURL(raw)

		return nil
	}

	// Alias drops the methods so we don't recurse
	type plain URL

	var structured plain
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("could not decode URL object: %w", err)
	}

	*u = URL(structured).resolve()

	return nil
}

// UnmarshalYAML implements [yaml.Unmarshaler] for [URL], accepting either
// a scalar or a mapping.
func (u *URL) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*u = ParseURL(node.Value)
		return nil
	}

	type plain URL

	var structured plain
	if err := node.Decode(&structured); err != nil {
		return fmt.Errorf("could not decode URL mapping: %w", err)
	}

	*u = URL(structured).resolve()

	return nil
}

// UnmarshalTOML implements [toml.Unmarshaler] for [URL], accepting either
// a string or a table.
func (u *URL) UnmarshalTOML(data any) error {
	switch value := data.(type) {
	case string:
		*u = ParseURL(value)
		return nil
	case map[string]any:
		// The decoded table has the same keys as the JSON form
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("could not re-encode URL table: %w", err)
		}

		return u.UnmarshalJSON(encoded)
	default:
		return fmt.Errorf("URL must be a string or a table, got %T", data)
	}
}

// resolve fills in the structured components from Raw when only Raw was given.
func (u URL) resolve() URL {
	if len(u.Host) == 0 && u.Raw != "" {
		return ParseURL(u.Raw)
	}

	return u
}

// path renders the path segments without the leading "/".
func (u URL) path() string {
	segments := make([]string, 0, len(u.Path))
	for _, segment := range u.Path {
		segments = append(segments, escapeURLPart(segment, "/?#"))
	}

	return strings.Join(segments, "/")
}

// query renders the enabled query parameters including the leading "?", or
// the empty string if there are none.
func (u URL) query() string {
	pairs := make([]string, 0, len(u.Query))

	for _, param := range u.Query {
		if param.Disabled {
			continue
		}

		key := escapeURLPart(param.Key, "&=#")
		if param.Bare && param.Value == "" {
			pairs = append(pairs, key)
			continue
		}

		pairs = append(pairs, key+"="+escapeURLPart(param.Value, "&#"))
	}

	if len(pairs) == 0 {
		return ""
	}

	return "?" + strings.Join(pairs, "&")
}

// escapeURLPart percent-encodes the bytes of s that cannot appear literally in
// a URL component, along with any in reserved.
//
// Existing escapes are left alone so a component taken from a URL renders
// exactly as it was given.
func escapeURLPart(s, reserved string) string {
	builder := &strings.Builder{}
	builder.Grow(len(s))

	for i := range len(s) {
		char := s[i]

		switch {
		case char == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				builder.WriteByte(char)
			} else {
				builder.WriteString("%25")
			}
		case char <= ' ' || char >= 0x7f, strings.IndexByte(`"<>`+"`"+reserved, char) >= 0:
			fmt.Fprintf(builder, "%%%02X", char)
		default:
			builder.WriteByte(char)
		}
	}

	return builder.String()
}

// isHex reports whether c is a hexadecimal digit.
func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
