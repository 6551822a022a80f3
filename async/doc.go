// Package async is the graph-ordered lifecycle executor. It walks the
// dependency graph of a component.System, dispatches each component's
// start or stop operation as soon as its prerequisites are resolved, runs
// independent components concurrently, and assembles the updated system
// from the individual results.
//
// The whole operation settles exactly once: Start and Stop invoke either
// the completion callback with the fully updated system, or the error
// callback with the first failure. After a failure, later completions of
// in-flight siblings are discarded; their operations are not forcibly
// aborted, but they can no longer mutate the shared state or re-trigger
// the outer callbacks.
//
// A component that resolves one of its lifecycle callbacks more than once
// has broken the at-most-once contract. That is treated as a programming
// defect, not a recoverable error: the executor panics with a
// *ResolutionViolationError.
package async
