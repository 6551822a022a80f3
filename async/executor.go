package async

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
	"github.com/leon-computer/alpha.component-async/internal/dag"
)

// run holds the state of one graph-ordered lifecycle operation. All of it
// is created fresh per top-level call and owned exclusively by that call;
// mutations are serialized through mu because component callbacks may fire
// on arbitrary goroutines.
type run struct {
	ctx    context.Context
	op     Op
	logger *slog.Logger

	onDone  func(component.System)
	onError func(error)

	mu         sync.Mutex
	system     component.System
	graph      *dag.Graph
	unresolved map[string]struct{}
	inflight   map[string]struct{}
	// settled flips exactly once, on the first failure or on completion.
	// Once set, no later node completion may mutate shared state or reach
	// the outer callbacks.
	settled bool
}

// execute drives a system's components through op in graph order and
// reports the outcome through exactly one of onDone/onError.
func execute(ctx context.Context, op Op, dir dag.Direction, sys component.System,
	names []string, onDone func(component.System), onError func(error)) {

	graph, err := dag.Build(sys.Names(), declaredDeps(sys), names, dir)
	if err != nil {
		onError(&ConfigError{Op: op, Err: err})
		return
	}

	logger := ctxlog.FromContext(ctx).With(
		"op", string(op),
		"run_id", uuid.NewString(),
	)

	nodes := graph.Nodes()
	unresolved := make(map[string]struct{}, len(nodes))
	for _, id := range nodes {
		unresolved[id] = struct{}{}
	}
	logger.Debug("lifecycle run starting", "nodes", nodes)

	r := &run{
		ctx:        ctx,
		op:         op,
		logger:     logger,
		onDone:     onDone,
		onError:    onError,
		system:     sys,
		graph:      graph,
		unresolved: unresolved,
		inflight:   make(map[string]struct{}, len(nodes)),
	}
	r.step()
}

// declaredDeps exposes the system's declared dependency keys to the graph
// builder. Components without the DependencyAware capability declare none.
func declaredDeps(sys component.System) func(string) []string {
	return func(name string) []string {
		c, ok := sys.Get(name)
		if !ok || c == nil {
			return nil
		}
		aware, ok := c.(component.DependencyAware)
		if !ok {
			return nil
		}
		declared := aware.Dependencies()
		keys := make([]string, 0, len(declared))
		for _, dep := range declared {
			keys = append(keys, dep.Key)
		}
		return keys
	}
}

// step re-evaluates the ready frontier and dispatches every ready node not
// already in flight. An empty frontier is the sole terminal success
// condition. step never blocks; it returns as soon as dispatch is done and
// reacts to completions as they arrive.
func (r *run) step() {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		return
	}

	ready := r.graph.Ready(r.unresolved)
	if len(ready) == 0 {
		r.settled = true
		final := r.system
		r.mu.Unlock()
		r.logger.Debug("lifecycle run complete", "components", final.Len())
		r.onDone(final)
		return
	}

	var launch []string
	for _, name := range ready {
		if _, dispatched := r.inflight[name]; dispatched {
			continue
		}
		r.inflight[name] = struct{}{}
		launch = append(launch, name)
	}
	snapshot := r.system
	r.mu.Unlock()

	for _, name := range launch {
		r.logger.Debug("dispatching node", "node", name)
		go runNode(r.ctx, r.op, snapshot, name,
			func(next component.Component) { r.resolve(name, next) },
			func(err error) { r.abort(name, err) })
	}
}

// resolve records one node's successful completion: the produced instance
// replaces the component in a fresh system copy, the node's edges leave
// the graph, and the frontier is re-evaluated immediately so newly ready
// nodes launch without a synchronizing barrier.
func (r *run) resolve(name string, next component.Component) {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		return
	}
	r.system = r.system.With(name, next)
	r.graph = r.graph.MarkResolved(name)
	delete(r.unresolved, name)
	delete(r.inflight, name)
	r.mu.Unlock()

	r.logger.Debug("node resolved", "node", name)
	r.step()
}

// abort settles the run on its first failure. Later completions of
// in-flight siblings find the run settled and are discarded.
func (r *run) abort(name string, err error) {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		r.logger.Debug("ignoring failure after run settled", "node", name, "error", err)
		return
	}
	r.settled = true
	r.mu.Unlock()

	r.logger.Debug("node failed, cancelling run", "node", name, "error", err)
	r.onError(err)
}
