package config

import "github.com/hashicorp/hcl/v2"

// Model is the parsed representation of a system manifest.
type Model struct {
	Components []*Component
	// EvalContext is the expression context the manifest was decoded with;
	// factories use the same context to decode their settings bodies.
	EvalContext *hcl.EvalContext
}

// Component is one `component "<type>" "<name>"` declaration.
type Component struct {
	// Type selects the registered factory that builds the instance.
	Type string
	// Name is the key the instance is registered under in the system.
	Name string
	// Uses maps dependency aliases (as the component sees them) to the
	// system keys they resolve against.
	Uses map[string]string
	// DependsOn lists system keys that must be started first without
	// being injected under a distinct alias.
	DependsOn []string
	// Settings is the remaining block body, decoded by the factory into
	// its own settings struct.
	Settings hcl.Body
}
