package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned by Get when neither a renderer nor an alias
// matches the requested name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry stores renderers by name. Lookups are case-insensitive and may go
// through aliases such as "md" for "markdown".
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	aliases   map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		aliases:   make(map[string]string),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a renderer by its Name(). Duplicate names, including names
// already taken by an alias, return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalize(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	if target, exists := r.aliases[name]; exists {
		return fmt.Errorf("render: renderer name %q is an alias of %q", name, target)
	}

	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Alias makes alias resolve to the registered renderer name. The target must
// already be registered.
func (r *Registry) Alias(alias, name string) error {
	alias, name = normalize(alias), normalize(name)
	if alias == "" {
		return fmt.Errorf("render: alias is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("%w %q (alias %q)", ErrUnknownRenderer, name, alias)
	}
	if _, exists := r.renderers[alias]; exists {
		return fmt.Errorf("render: alias %q shadows a renderer", alias)
	}
	if current, exists := r.aliases[alias]; exists && current != name {
		return fmt.Errorf("render: alias %q already points at %q", alias, current)
	}
	r.aliases[alias] = name
	return nil
}

// Get retrieves a renderer by name or alias.
func (r *Registry) Get(name string) (Renderer, error) {
	key := normalize(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.renderers[key]; ok {
		return renderer, nil
	}
	if target, ok := r.aliases[key]; ok {
		return r.renderers[target], nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
}

// List returns the sorted renderer names. Aliases are not included.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.aliases))
	for alias, name := range r.aliases {
		out[alias] = name
	}
	return out
}
