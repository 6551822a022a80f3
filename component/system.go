package component

// System is an ordered, immutable mapping from component name to component
// instance. Updates go through With, which returns a new System and leaves
// the receiver untouched, so intermediate snapshots taken during a lifecycle
// run stay consistent for diagnostics.
type System struct {
	names []string
	items map[string]Component
}

// NewSystem returns an empty System.
func NewSystem() System {
	return System{}
}

// With returns a copy of the system with name bound to c. A new name is
// appended to the iteration order; an existing name keeps its position.
func (s System) With(name string, c Component) System {
	next := System{
		names: make([]string, len(s.names), len(s.names)+1),
		items: make(map[string]Component, len(s.items)+1),
	}
	copy(next.names, s.names)
	for k, v := range s.items {
		next.items[k] = v
	}
	if _, exists := next.items[name]; !exists {
		next.names = append(next.names, name)
	}
	next.items[name] = c
	return next
}

// Get looks up a component by name.
func (s System) Get(name string) (Component, bool) {
	c, ok := s.items[name]
	return c, ok
}

// Names returns the component names in insertion order. The returned slice
// is a copy and safe to modify.
func (s System) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len reports the number of components in the system.
func (s System) Len() int {
	return len(s.names)
}
