package async

import (
	"context"
	"fmt"

	"github.com/leon-computer/alpha.component-async/component"
)

// runNode resolves one component out of the system snapshot, injects its
// declared dependencies, and dispatches its lifecycle operation. The
// caller-visible contract is identical whether the component implements
// the asynchronous or the synchronous capability: eventually exactly one
// of done or fail is invoked.
func runNode(ctx context.Context, op Op, sys component.System, name string,
	done func(component.Component), fail func(error)) {

	c, ok := sys.Get(name)
	if !ok {
		fail(&MissingComponentError{Op: op, Name: name, System: sys})
		return
	}
	if c == nil {
		fail(&NilComponentError{Op: op, Name: name, System: sys})
		return
	}

	if aware, ok := c.(component.DependencyAware); ok {
		resolved := make(map[string]component.Component)
		for _, dep := range aware.Dependencies() {
			v, ok := sys.Get(dep.Key)
			if !ok || v == nil {
				fail(&MissingDependencyError{
					Op: op, Node: name, As: dep.As, Key: dep.Key, System: sys,
				})
				return
			}
			resolved[dep.As] = v
		}
		c = aware.WithDependencies(resolved)
	}

	// From here on, any failure is the component's own operation failing.
	guard := newOnceGuard(op, name, c, sys,
		done,
		func(err error) {
			fail(&OperationError{Op: op, Name: name, Component: c, System: sys, Err: err})
		})

	switch op {
	case OpStop:
		if a, ok := c.(component.AsyncStopper); ok {
			a.StopAsync(ctx, guard.Done, guard.Fail)
			return
		}
		if s, ok := c.(component.Stopper); ok {
			dispatchSync(guard, func() (component.Component, error) { return s.Stop(ctx) })
			return
		}
	default:
		if a, ok := c.(component.AsyncStarter); ok {
			a.StartAsync(ctx, guard.Done, guard.Fail)
			return
		}
		if s, ok := c.(component.Starter); ok {
			dispatchSync(guard, func() (component.Component, error) { return s.Start(ctx) })
			return
		}
	}

	// No lifecycle capability for this operation: the component passes
	// through unchanged (with dependencies injected).
	guard.Done(c)
}

// dispatchSync invokes a synchronous lifecycle method and routes its
// outcome through the guard, converting a panic inside the component into
// an ordinary operation failure. A ResolutionViolationError is never
// converted; it propagates as the fatal defect it is.
func dispatchSync(guard *onceGuard, call func() (component.Component, error)) {
	next, err := func() (next component.Component, err error) {
		defer func() {
			if r := recover(); r != nil {
				if violation, ok := r.(*ResolutionViolationError); ok {
					panic(violation)
				}
				if e, ok := r.(error); ok {
					err = fmt.Errorf("panic: %w", e)
					return
				}
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return call()
	}()
	if err != nil {
		guard.Fail(err)
		return
	}
	guard.Done(next)
}
