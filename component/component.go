package component

import "context"

// Component is an opaque value managed by a System. Lifecycle behavior is
// discovered through the capability interfaces below; a plain value with no
// capabilities is a valid component and passes through start/stop unchanged.
type Component any

// Starter is the synchronous start capability. Start returns the replacement
// instance for the component; the caller swaps it into the system.
type Starter interface {
	Start(ctx context.Context) (Component, error)
}

// Stopper is the synchronous stop capability.
type Stopper interface {
	Stop(ctx context.Context) (Component, error)
}

// AsyncStarter is the asynchronous start capability. The implementation must
// eventually invoke exactly one of the two callbacks, exactly once. Invoking
// both, or one of them twice, is a contract violation and is treated as a
// fatal defect by the executor.
type AsyncStarter interface {
	StartAsync(ctx context.Context, done func(Component), fail func(error))
}

// AsyncStopper is the asynchronous stop capability, with the same callback
// contract as AsyncStarter.
type AsyncStopper interface {
	StopAsync(ctx context.Context, done func(Component), fail func(error))
}

// Dependency names one thing a component needs from the system: Key is the
// name the target is registered under, As is the alias the depending
// component knows it by.
type Dependency struct {
	As  string
	Key string
}

// DependencyAware is implemented by components that depend on other
// components. WithDependencies receives the resolved values keyed by alias
// and returns a dependency-satisfied copy; it must not mutate the receiver.
type DependencyAware interface {
	Dependencies() []Dependency
	WithDependencies(deps map[string]Component) Component
}
