// Package model exposes the field model produced from a template grid. A Page
// is an ordered list of immutable Field values; each Field carries its
// derived caption (placeholder or options caption), price ceiling, visibility
// expression and synthesised validators. Builders reside in internal/model.
// Values are read through accessor methods and optional attributes report
// presence with a second boolean result so renderers can omit them.
package model
