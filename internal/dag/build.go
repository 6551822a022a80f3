package dag

import "fmt"

// Build constructs the dependency view for one executor run.
//
// universe is the full set of known names (the system's keys); depsOf
// reports the declared dependency keys of a name; subset is the requested
// target (nil or empty means the whole universe). The resulting graph
// covers the transitive closure of subset in the given direction, so a
// requested node whose prerequisites were not explicitly named still gets
// them resolved first.
//
// Edges are only created between names present in the universe. A declared
// dependency on an unknown key is not an error here; it surfaces as a
// missing-dependency failure when the node's action tries to resolve it.
func Build(universe []string, depsOf func(name string) []string, subset []string, dir Direction) (*Graph, error) {
	known := make(map[string]struct{}, len(universe))
	for _, id := range universe {
		known[id] = struct{}{}
	}

	if len(subset) == 0 {
		subset = universe
	}
	for _, id := range subset {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("unknown component %q in target subset", id)
		}
	}

	// Full adjacency over the universe, needed to walk the closure in
	// either direction.
	deps := make(map[string]map[string]struct{}, len(universe))
	dependents := make(map[string]map[string]struct{}, len(universe))
	for _, id := range universe {
		deps[id] = map[string]struct{}{}
		dependents[id] = map[string]struct{}{}
	}
	for _, id := range universe {
		for _, dep := range depsOf(id) {
			if dep == id {
				return nil, fmt.Errorf("component %q declares a dependency on itself", id)
			}
			if _, ok := known[dep]; !ok {
				continue
			}
			deps[id][dep] = struct{}{}
			dependents[dep][id] = struct{}{}
		}
	}

	closure := make(map[string]struct{}, len(subset))
	queue := append([]string(nil), subset...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, seen := closure[id]; seen {
			continue
		}
		closure[id] = struct{}{}
		follow := deps[id]
		if dir == Reverse {
			follow = dependents[id]
		}
		for next := range follow {
			queue = append(queue, next)
		}
	}

	g := &Graph{dir: dir, nodes: make(map[string]*node, len(closure))}
	for id := range closure {
		n := &node{
			id:         id,
			deps:       map[string]struct{}{},
			dependents: map[string]struct{}{},
		}
		for dep := range deps[id] {
			if _, ok := closure[dep]; ok {
				n.deps[dep] = struct{}{}
			}
		}
		for dependent := range dependents[id] {
			if _, ok := closure[dependent]; ok {
				n.dependents[dependent] = struct{}{}
			}
		}
		g.nodes[id] = n
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	return g, nil
}

// detectCycles checks for circular dependencies using DFS.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		visiting[n.id] = true
		for dep := range n.deps {
			if visiting[dep] {
				return fmt.Errorf("dependency cycle detected involving %q", dep)
			}
			if !visited[dep] {
				if err := visit(g.nodes[dep]); err != nil {
					return err
				}
			}
		}
		delete(visiting, n.id)
		visited[n.id] = true
		return nil
	}

	for _, n := range g.nodes {
		if !visited[n.id] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
