// Package orchestrator wires the loader → decoder → model builder →
// decorators → renderer pipeline behind a single entry point, with every
// stage replaceable through options.
package orchestrator
