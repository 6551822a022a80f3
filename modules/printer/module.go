// Package printer provides a sink component that logs which dependencies
// it was wired to. It exists to make dependency injection visible in demo
// manifests, much like a smoke-test endpoint.
package printer

import (
	"context"
	"fmt"
	"sort"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

// Printer is the component. Its dependency set comes entirely from the
// manifest's uses/depends_on wiring.
type Printer struct {
	name string
	deps []component.Dependency

	// Sources holds the injected dependency values by alias.
	Sources map[string]component.Component
}

// New builds an unstarted Printer declaring the given dependencies.
func New(name string, deps []component.Dependency) *Printer {
	return &Printer{name: name, deps: deps}
}

// Dependencies implements component.DependencyAware.
func (p *Printer) Dependencies() []component.Dependency { return p.deps }

// WithDependencies implements component.DependencyAware.
func (p *Printer) WithDependencies(deps map[string]component.Component) component.Component {
	cp := *p
	cp.Sources = deps
	return &cp
}

// Start logs every wired dependency, sorted by alias for stable output.
func (p *Printer) Start(ctx context.Context) (component.Component, error) {
	logger := ctxlog.FromContext(ctx).With("component", p.name)

	aliases := make([]string, 0, len(p.Sources))
	for alias := range p.Sources {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		logger.Info("wired dependency", "alias", alias, "value_type", fmt.Sprintf("%T", p.Sources[alias]))
	}
	cp := *p
	return &cp, nil
}

// Module registers the printer component type.
type Module struct{}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.Register("printer", func(ctx context.Context, spec registry.Spec) (component.Component, error) {
		return New(spec.Name, spec.Uses), nil
	})
}
