// Package component defines the building blocks managed by the async
// lifecycle executor: the System container holding named components, and
// the capability interfaces a component may implement to take part in
// startup and shutdown.
//
// A component is an opaque value. It opts into lifecycle handling by
// implementing Starter/Stopper (synchronous) or AsyncStarter/AsyncStopper
// (callback-based), and declares what it needs from the rest of the system
// by implementing DependencyAware.
package component
