package dag

import "sort"

// Direction selects which way readiness flows through the graph.
type Direction int

const (
	// Forward order: a node is ready once all of its dependencies are
	// resolved. Used for startup.
	Forward Direction = iota
	// Reverse order: a node is ready once all of its dependents are
	// resolved. Used for shutdown.
	Reverse
)

// Graph is an immutable dependency view over a set of node names.
type Graph struct {
	dir   Direction
	nodes map[string]*node
}

// node holds the remaining (unresolved) edges for one name. Edge sets are
// never mutated after construction; MarkResolved builds replacements.
type node struct {
	id string
	// deps is the set of names this node depends on (predecessors).
	deps map[string]struct{}
	// dependents is the set of names depending on this node (successors).
	dependents map[string]struct{}
}

// Direction reports the readiness direction the graph was built for.
func (g *Graph) Direction() Direction {
	return g.dir
}

// Nodes returns every name in the graph, sorted. This is the initial
// unresolved set for an executor run.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Ready returns the names from unresolved whose ordering prerequisites are
// satisfied: no remaining dependency edge (Forward) or dependent edge
// (Reverse). The result is sorted for deterministic dispatch.
func (g *Graph) Ready(unresolved map[string]struct{}) []string {
	var ready []string
	for id := range unresolved {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		blocking := n.deps
		if g.dir == Reverse {
			blocking = n.dependents
		}
		if len(blocking) == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)
	return ready
}

// MarkResolved returns a new graph with every edge incident to name removed,
// so nodes blocked only by name become ready. The receiver is unchanged.
func (g *Graph) MarkResolved(name string) *Graph {
	resolved, ok := g.nodes[name]
	if !ok {
		return g
	}

	next := &Graph{dir: g.dir, nodes: make(map[string]*node, len(g.nodes))}
	for id, n := range g.nodes {
		// Untouched nodes are shared; only neighbors of the resolved node
		// get rebuilt edge sets.
		next.nodes[id] = n
	}

	for id := range resolved.deps {
		next.nodes[id] = next.nodes[id].without(name)
	}
	for id := range resolved.dependents {
		next.nodes[id] = next.nodes[id].without(name)
	}
	next.nodes[name] = &node{
		id:         name,
		deps:       map[string]struct{}{},
		dependents: map[string]struct{}{},
	}
	return next
}

// without returns a copy of the node with name removed from both edge sets.
func (n *node) without(name string) *node {
	cp := &node{
		id:         n.id,
		deps:       make(map[string]struct{}, len(n.deps)),
		dependents: make(map[string]struct{}, len(n.dependents)),
	}
	for id := range n.deps {
		if id != name {
			cp.deps[id] = struct{}{}
		}
	}
	for id := range n.dependents {
		if id != name {
			cp.dependents[id] = struct{}{}
		}
	}
	return cp
}
