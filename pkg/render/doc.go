// Package render defines the renderer contract and a name keyed registry.
// Concrete renderers live under pkg/renderers.
package render
