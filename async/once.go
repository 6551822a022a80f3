package async

import (
	"sync/atomic"

	"github.com/leon-computer/alpha.component-async/component"
)

// onceGuard wraps the done/fail callback pair handed to one component
// operation so that across both, combined, exactly one invocation is
// accepted. Any call beyond the first panics with a
// *ResolutionViolationError.
type onceGuard struct {
	op        Op
	name      string
	component component.Component
	system    component.System
	calls     atomic.Int32
	done      func(component.Component)
	fail      func(error)
}

func newOnceGuard(op Op, name string, c component.Component, sys component.System,
	done func(component.Component), fail func(error)) *onceGuard {
	return &onceGuard{op: op, name: name, component: c, system: sys, done: done, fail: fail}
}

// Done accepts the successful completion of the operation.
func (g *onceGuard) Done(c component.Component) {
	g.claim()
	g.done(c)
}

// Fail accepts the failed completion of the operation.
func (g *onceGuard) Fail(err error) {
	g.claim()
	g.fail(err)
}

func (g *onceGuard) claim() {
	if n := g.calls.Add(1); n > 1 {
		panic(&ResolutionViolationError{
			Op: g.op, Name: g.name,
			Component: g.component, System: g.system,
			Calls: int(n),
		})
	}
}
