package encode

import (
	"strings"

	"go.followtheprocess.codes/snip/internal/spec"
)

// Injection is a set of content type injection rules.
type Injection uint8

const (
	// InjectMultipart adds a multipart Content-Type with the boundary to form-data
	// requests, and adds the boundary to a bare multipart/form-data header.
	InjectMultipart Injection = 1 << iota

	// InjectFile adds text/plain to file requests without a Content-Type.
	InjectFile

	// InjectGraphQL adds application/json to GraphQL requests without a Content-Type.
	InjectGraphQL

	// InjectNone applies no rules.
	InjectNone Injection = 0

	// InjectAll applies every rule.
	InjectAll = InjectMultipart | InjectFile | InjectGraphQL
)

// Has reports whether the set includes every rule in rule.
func (i Injection) Has(rule Injection) bool {
	return i&rule == rule
}

// InjectContentType adds or rewrites the Content-Type header of req according
// to its body mode and the rules in policy.
//
// It is the one place a request is modified, and must run before the headers are
// encoded so any injected header is part of the output. Callers converting the
// same request concurrently should inject into a [spec.Request.Clone].
func InjectContentType(req *spec.Request, policy Injection) {
	if req == nil || req.Body == nil {
		return
	}

	index := req.HeaderIndex(spec.ContentType)

	switch req.Body.Mode {
	case spec.ModeFormData:
		if !policy.Has(InjectMultipart) {
			return
		}

		if index < 0 {
			req.Headers = append(req.Headers, spec.Header{
				Key:   spec.ContentType,
				Value: FormDataContentType + "; boundary=" + Boundary,
			})

			return
		}

		value := strings.TrimSpace(req.Headers[index].Value)
		if strings.HasPrefix(strings.ToLower(value), FormDataContentType) && !strings.Contains(value, "boundary=") {
			req.Headers[index].Value = strings.TrimRight(value, "; ") + "; boundary=" + Boundary
		}
	case spec.ModeFile:
		if policy.Has(InjectFile) && index < 0 {
			req.Headers = append(req.Headers, spec.Header{Key: spec.ContentType, Value: DefaultContentType})
		}
	case spec.ModeGraphQL:
		if policy.Has(InjectGraphQL) && index < 0 {
			req.Headers = append(req.Headers, spec.Header{Key: spec.ContentType, Value: GraphQLContentType})
		}
	case spec.ModeRaw, spec.ModeURLEncoded:
		// Nothing to infer
	}
}
