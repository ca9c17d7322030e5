package codegen

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.followtheprocess.codes/snip/internal/options"
)

// ErrUnknownTarget is returned when looking up a target that is not registered.
var ErrUnknownTarget = errors.New("unknown target")

// Registry is a set of renderers keyed by target id.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry builds a registry from renderers.
//
// It returns an error if two renderers share a target id or any renderer
// declares an invalid option schema.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	registry := &Registry{renderers: make(map[string]Renderer, len(renderers))}

	for _, renderer := range renderers {
		if renderer == nil {
			return nil, ErrNoRenderer
		}

		id := renderer.Target().ID
		if _, exists := registry.renderers[id]; exists {
			return nil, fmt.Errorf("duplicate target %q", id)
		}

		if err := options.Validate(renderer.Options()); err != nil {
			return nil, fmt.Errorf("target %q has an invalid option schema: %w", id, err)
		}

		registry.renderers[id] = renderer
	}

	return registry, nil
}

// Lookup returns the renderer for the target with the given id.
func (r *Registry) Lookup(id string) (Renderer, error) {
	renderer, ok := r.renderers[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnknownTarget, id, strings.Join(r.Names(), ", "))
	}

	return renderer, nil
}

// Names returns the ids of every registered target in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Targets returns every registered target sorted by id.
func (r *Registry) Targets() []Target {
	names := r.Names()

	targets := make([]Target, 0, len(names))
	for _, name := range names {
		targets = append(targets, r.renderers[name].Target())
	}

	return targets
}

// Options returns the option schema of the target with the given id.
func (r *Registry) Options(id string) ([]options.Descriptor, error) {
	renderer, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}

	return renderer.Options(), nil
}
