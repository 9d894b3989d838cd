// Package orchestrator wires the loader → parser → compiler → renderer
// pipeline, providing dependency injection friendly helpers for consumers
// that prefer a single entry point.
package orchestrator
