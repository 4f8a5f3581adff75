// Package document renders a Page as the JSON form document. Keys keep a
// fixed order and absent attributes are omitted.
package document
