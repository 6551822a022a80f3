package async

import (
	"fmt"
	"strings"

	"github.com/leon-computer/alpha.component-async/component"
)

// Op identifies which lifecycle operation a run is performing.
type Op string

const (
	OpStart Op = "start"
	OpStop  Op = "stop"
)

// ConfigError reports a malformed run request: a cyclic dependency graph or
// a target subset naming an unknown component. It is raised before any node
// is dispatched.
type ConfigError struct {
	Op  Op
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// MissingComponentError reports a requested key absent from the system.
type MissingComponentError struct {
	Op     Op
	Name   string
	System component.System
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("%s %q: component missing from system (have: %s)",
		e.Op, e.Name, keyList(e.System))
}

// NilComponentError reports a component present under its key but nil,
// commonly caused by a lifecycle operation that returned nothing.
type NilComponentError struct {
	Op     Op
	Name   string
	System component.System
}

func (e *NilComponentError) Error() string {
	return fmt.Sprintf("%s %q: component is nil (did a lifecycle method return nothing?)",
		e.Op, e.Name)
}

// MissingDependencyError reports a declared dependency whose target key is
// absent or nil in the system at resolution time.
type MissingDependencyError struct {
	Op     Op
	Node   string
	As     string
	Key    string
	System component.System
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s %q: missing dependency %q expected under system key %q (have: %s)",
		e.Op, e.Node, e.As, e.Key, keyList(e.System))
}

// OperationError wraps a failure reported by a component's own start/stop
// operation, with enough context to diagnose without re-running. System is
// the snapshot at dispatch time; its resolved entries tell the caller which
// nodes had already completed, e.g. to decide on a compensating stop.
type OperationError struct {
	Op        Op
	Name      string
	Component component.Component
	System    component.System
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %q failed: %v", e.Op, e.Name, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// ResolutionViolationError is the fatal defect raised (via panic) when a
// component invokes its completion callbacks more than once in total. It is
// deliberately not a recoverable domain error: the component is broken.
// Component is the offending instance and System the snapshot it was
// dispatched against, for diagnosis from a crash report.
type ResolutionViolationError struct {
	Op        Op
	Name      string
	Component component.Component
	System    component.System
	Calls     int
}

func (e *ResolutionViolationError) Error() string {
	return fmt.Sprintf("%s %q: lifecycle callbacks resolved %d times, want exactly one",
		e.Op, e.Name, e.Calls)
}

func keyList(sys component.System) string {
	names := sys.Names()
	if len(names) == 0 {
		return "no components"
	}
	return strings.Join(names, ", ")
}
