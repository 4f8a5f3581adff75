// Package orchestrator wires the read → scan → build → render pipeline behind
// a single entry point with dependency injection friendly options.
package orchestrator
