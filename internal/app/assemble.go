package app

import (
	"context"
	"fmt"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/config"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

// assembleSystem turns manifest declarations into an unstarted
// component.System, preserving declaration order.
func (a *App) assembleSystem(ctx context.Context) (component.System, error) {
	sys := component.NewSystem()
	for _, decl := range a.model.Components {
		factory, ok := a.registry.Factory(decl.Type)
		if !ok {
			return sys, fmt.Errorf("component %q: unknown type %q (registered: %v)",
				decl.Name, decl.Type, a.registry.Types())
		}

		deps := wiring(decl)
		instance, err := factory(ctx, registry.Spec{
			Name:        decl.Name,
			Settings:    decl.Settings,
			EvalContext: a.model.EvalContext,
			Uses:        deps,
		})
		if err != nil {
			return sys, fmt.Errorf("building component %q: %w", decl.Name, err)
		}

		// A declared edge the executor cannot see would silently lose the
		// ordering the manifest asked for.
		if len(deps) > 0 {
			if _, ok := instance.(component.DependencyAware); !ok {
				return sys, fmt.Errorf("component %q: type %q ignores its uses/depends_on wiring",
					decl.Name, decl.Type)
			}
		}
		sys = sys.With(decl.Name, instance)
	}
	return sys, nil
}

// wiring merges a declaration's uses and depends_on into one dependency
// list. depends_on entries are ordering-only, so their alias is simply the
// target key.
func wiring(decl *config.Component) []component.Dependency {
	deps := make([]component.Dependency, 0, len(decl.Uses)+len(decl.DependsOn))
	for alias, key := range decl.Uses {
		deps = append(deps, component.Dependency{As: alias, Key: key})
	}
	for _, key := range decl.DependsOn {
		deps = append(deps, component.Dependency{As: key, Key: key})
	}
	return deps
}
