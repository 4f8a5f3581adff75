// Package model implements the field model builder and validator synthesis.
// Builders accept the raw attributes produced by the template scanner and
// return immutable Field values; pkg/model re-exports the types.
package model
