// Package converr defines the terminal error value returned by a template
// conversion. Every failure carries a discriminated Kind, a diagnostic detail
// (usually the offending cell text) and, when known, the grid location of the
// defect so template authors can find it.
package converr
