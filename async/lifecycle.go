package async

import (
	"context"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/dag"
)

// Start brings the named components of sys up in dependency order:
// dependencies first, independent components concurrently. A nil or empty
// names slice targets every component in the system; a named component
// whose dependencies were not named still gets them started first.
//
// Exactly one of onDone/onError is eventually invoked: onDone with the
// fully updated system, or onError with the first failure. Start itself
// never blocks.
func Start(ctx context.Context, sys component.System, names []string,
	onDone func(component.System), onError func(error)) {
	execute(ctx, OpStart, dag.Forward, sys, names, onDone, onError)
}

// Stop brings the named components of sys down in reverse dependency
// order: dependents first. The callback contract matches Start.
func Stop(ctx context.Context, sys component.System, names []string,
	onDone func(component.System), onError func(error)) {
	execute(ctx, OpStop, dag.Reverse, sys, names, onDone, onError)
}

// outcome carries a settled run's result across the blocking bridge.
type outcome struct {
	sys component.System
	err error
}

// StartWait is a blocking convenience wrapper around Start for callers that
// prefer a plain return value over callbacks. It returns early with ctx's
// error if the context is cancelled while components are still starting;
// the run itself keeps its at-most-once settlement either way.
func StartWait(ctx context.Context, sys component.System, names ...string) (component.System, error) {
	return await(ctx, sys, names, Start)
}

// StopWait is the blocking counterpart of Stop.
func StopWait(ctx context.Context, sys component.System, names ...string) (component.System, error) {
	return await(ctx, sys, names, Stop)
}

func await(ctx context.Context, sys component.System, names []string,
	op func(context.Context, component.System, []string, func(component.System), func(error))) (component.System, error) {

	settled := make(chan outcome, 1)
	op(ctx, sys, names,
		func(next component.System) { settled <- outcome{sys: next} },
		func(err error) { settled <- outcome{err: err} })

	select {
	case out := <-settled:
		if out.err != nil {
			return sys, out.err
		}
		return out.sys, nil
	case <-ctx.Done():
		return sys, ctx.Err()
	}
}
