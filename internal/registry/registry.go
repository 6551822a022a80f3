// Package registry is the glue between manifest declarations and compiled
// component implementations: it maps component type names to the factories
// that build instances from a declaration's settings and wiring.
//
// The registry is populated at startup and then read-only. Registering the
// same type twice indicates a programmer error and panics.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hashicorp/hcl/v2"

	"github.com/leon-computer/alpha.component-async/component"
)

// Spec carries everything a factory gets from one manifest declaration.
type Spec struct {
	// Name is the system key the instance will be registered under.
	Name string
	// Settings is the declaration's remaining body for the factory to
	// decode into its own settings struct. May be nil.
	Settings hcl.Body
	// EvalContext is the expression context for decoding Settings. May be
	// nil for literal-only bodies.
	EvalContext *hcl.EvalContext
	// Uses is the declared dependency wiring: alias to system key.
	Uses []component.Dependency
}

// Factory builds one component instance from its declaration.
type Factory func(ctx context.Context, spec Spec) (component.Component, error)

// Module is implemented by each compiled-in component package; Register
// installs its factories into the registry.
type Module interface {
	Register(r *Registry)
}

// Registry maps component type names to factories.
type Registry struct {
	factories map[string]Factory
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register installs a factory for a component type. Duplicate registration
// panics.
func (r *Registry) Register(typeName string, f Factory) {
	if _, exists := r.factories[typeName]; exists {
		panic(fmt.Sprintf("component type %q already registered", typeName))
	}
	slog.Debug("registering component type", "type", typeName)
	r.factories[typeName] = f
}

// Factory looks up the factory for a component type.
func (r *Registry) Factory(typeName string) (Factory, bool) {
	f, ok := r.factories[typeName]
	return f, ok
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
