// Package dag provides the dependency view consumed by the lifecycle
// executor: a directed acyclic graph over component names, restricted to
// the transitive closure of a requested subset, with frontier ("ready")
// queries and copy-on-write edge removal.
//
// Graphs are immutable once built. MarkResolved returns a new graph value
// rather than mutating the receiver, so concurrently completing nodes can
// keep computing readiness against a stable prior snapshot.
package dag
