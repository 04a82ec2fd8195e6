package provider

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Generator is the minimal interface a registered provider must satisfy.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (Result, error)
}

// Factory creates a provider instance. Factories run lazily, so a backend
// that needs credentials only fails when it is actually selected.
type Factory func() (Generator, error)

type entry struct {
	summary string
	factory Factory
}

// Registry maps provider names to factories.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	entries map[string]entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a named provider factory with a one-line summary.
// Overwrites if name already exists. Panics if name is empty or f is nil.
func (r *Registry) Register(name, summary string, f Factory) {
	if name == "" {
		panic("provider: Register called with empty name")
	}
	if f == nil {
		panic("provider: Register called with nil factory")
	}
	r.entries[name] = entry{summary: summary, factory: f}
}

// NewProvider instantiates a provider by name.
func (r *Registry) NewProvider(name string) (Generator, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, &UnknownProviderError{
			Name:      name,
			Available: r.AvailableProviders(),
		}
	}
	p, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("provider factory %q: %w", name, err)
	}
	return p, nil
}

// AvailableProviders returns registered provider names in sorted order.
func (r *Registry) AvailableProviders() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Summary returns the one-line description registered for name.
func (r *Registry) Summary(name string) (string, bool) {
	e, ok := r.entries[name]
	return e.summary, ok
}

// UnknownProviderError indicates a provider name is not registered.
type UnknownProviderError struct {
	Name      string
	Available []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
