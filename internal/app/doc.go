// Package app wires the demo runner together: it loads a system manifest,
// builds the component.System through the registry, starts it with the
// async executor, waits for a shutdown signal, and stops it again in
// reverse order.
package app
