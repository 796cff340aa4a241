package letterhead

import (
	"fmt"
	"sort"
)

// Registry is a read-only catalog of templates with a guaranteed default.
// It is safe for concurrent use because it is never mutated after creation;
// Overlay and WithDefault return new registries.
type Registry struct {
	templates  map[string]*Template
	defaultKey string
}

// NewRegistry builds a registry from templates. Later templates replace
// earlier ones with the same key. Returns ErrNoDefault if defaultKey does not
// name one of them.
func NewRegistry(defaultKey string, templates ...*Template) (*Registry, error) {
	r := &Registry{
		templates:  make(map[string]*Template, len(templates)),
		defaultKey: NormalizeKey(defaultKey),
	}
	for _, t := range templates {
		if t == nil {
			continue
		}
		r.templates[NormalizeKey(t.Key)] = t
	}
	if _, ok := r.templates[r.defaultKey]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDefault, defaultKey)
	}
	return r, nil
}

// Lookup returns the template for key, or the default template when the key
// is empty or unknown.
func (r *Registry) Lookup(key string) *Template {
	if t, ok := r.Get(key); ok {
		return t
	}
	return r.templates[r.defaultKey]
}

// Get returns the template for key and whether it is registered.
func (r *Registry) Get(key string) (*Template, bool) {
	t, ok := r.templates[NormalizeKey(key)]
	return t, ok
}

// Default returns the default template.
func (r *Registry) Default() *Template {
	return r.templates[r.defaultKey]
}

// DefaultKey returns the key of the default template.
func (r *Registry) DefaultKey() string {
	return r.defaultKey
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

// Overlay returns a new registry holding r's templates with templates
// replacing entries that share a key. The default key is unchanged.
func (r *Registry) Overlay(templates ...*Template) *Registry {
	merged := make(map[string]*Template, len(r.templates)+len(templates))
	for k, t := range r.templates {
		merged[k] = t
	}
	for _, t := range templates {
		if t == nil {
			continue
		}
		merged[NormalizeKey(t.Key)] = t
	}
	return &Registry{templates: merged, defaultKey: r.defaultKey}
}

// WithDefault returns a copy of r whose default is key.
// Returns ErrTemplateNotFound if key is not registered.
func (r *Registry) WithDefault(key string) (*Registry, error) {
	k := NormalizeKey(key)
	if _, ok := r.templates[k]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}
	return &Registry{templates: r.templates, defaultKey: k}, nil
}
