package spec

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// ContentType is the canonical name of the Content-Type header.
const ContentType = "Content-Type"

// methodsWithoutBody are the methods for which generated code never attaches
// a request body.
//
//nolint:gochecknoglobals // Lookup table, effectively constant
var methodsWithoutBody = []string{
	http.MethodGet,
	http.MethodHead,
	"COPY",
	"UNLOCK",
	"UNLINK",
	"PURGE",
	"LINK",
	"VIEW",
}

// Request is a single HTTP request as a canonical, fully resolved representation.
type Request struct {
	// Optional body, nil means the request has no body
	Body *Body `json:"body,omitempty" toml:"body,omitempty" yaml:"body,omitempty"`

	// Optional name, if empty the request is named after it's index e.g. "#1"
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// The HTTP method, an empty method is treated as GET
	Method string `json:"method,omitempty" toml:"method,omitempty" yaml:"method,omitempty"`

	// Request headers in source order, order is significant as some
	// targets emit them exactly as given
	Headers []Header `json:"headers,omitempty" toml:"headers,omitempty" yaml:"headers,omitempty"`

	// The request URL
	URL URL `json:"url" toml:"url" yaml:"url"`
}

// Header is a single request header.
type Header struct {
	Key      string `json:"key"                toml:"key"                yaml:"key"`
	Value    string `json:"value"              toml:"value"              yaml:"value"`
	Disabled bool   `json:"disabled,omitempty" toml:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// String implements [fmt.Stringer] for a [Header].
func (h Header) String() string {
	return h.Key + ": " + h.Value
}

// MethodOrDefault returns the request method in upper case, falling back
// to GET if the method is empty or is not a valid HTTP token.
func (r Request) MethodOrDefault() string {
	method := strings.ToUpper(strings.TrimSpace(r.Method))
	if method == "" || strings.IndexFunc(method, isNotTokenChar) != -1 {
		return http.MethodGet
	}

	return method
}

// isNotTokenChar reports whether r may not appear in a HTTP token (RFC 9110 section 5.6.2).
func isNotTokenChar(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', '0' <= r && r <= '9':
		return false
	default:
		return !strings.ContainsRune("!#$%&'*+-.^_`|~", r)
	}
}

// Label returns the name of the request, or if it has none, a name derived
// from its index in a collection e.g. "#1".
func (r Request) Label(index int) string {
	if r.Name != "" {
		return r.Name
	}

	return fmt.Sprintf("#%d", index+1)
}

// HeaderIndex returns the index of the first enabled header whose key matches
// key (case insensitively), or -1 if there is no such header.
func (r Request) HeaderIndex(key string) int {
	return slices.IndexFunc(r.Headers, func(header Header) bool {
		return !header.Disabled && strings.EqualFold(strings.TrimSpace(header.Key), key)
	})
}

// HeaderValue returns the value of the first enabled header matching key, and
// a boolean indicating whether one was found.
func (r Request) HeaderValue(key string) (string, bool) {
	index := r.HeaderIndex(key)
	if index < 0 {
		return "", false
	}

	return r.Headers[index].Value, true
}

// Clone returns a deep copy of the request.
//
// Content type injection mutates the request it is given, callers converting
// the same request concurrently should hand each conversion its own clone.
func (r Request) Clone() Request {
	clone := r
	clone.Headers = slices.Clone(r.Headers)
	clone.URL = r.URL.Clone()

	if r.Body != nil {
		body := r.Body.Clone()
		clone.Body = &body
	}

	return clone
}

// String implements [fmt.Stringer] for a [Request], returning the
// request line e.g. "GET https://api.com/v1/items".
func (r Request) String() string {
	return r.MethodOrDefault() + " " + r.URL.String()
}

// MethodAllowsBody reports whether generated code should attach a body
// to a request with the given method.
func MethodAllowsBody(method string) bool {
	return !slices.Contains(methodsWithoutBody, strings.ToUpper(method))
}
