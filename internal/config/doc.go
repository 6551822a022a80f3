// Package config holds the format-agnostic model of a system manifest: the
// set of component declarations the CLI assembles into a component.System.
// Parsing lives in the hcl package; consumers of the model never touch
// manifest syntax.
package config
