// Package openapi renders the answer schema of a Page as an OpenAPI 3
// document, ready to be merged into a service description.
package openapi
