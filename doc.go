// Package sheetform converts spreadsheet form templates into the JSON form
// document consumed by the form runtime.
//
// A template is a worksheet whose column 0 holds subject labels (表示, タイプ,
// ラベル, ...) and whose remaining columns hold one value/companion column pair
// per field. The pipeline reads the workbook (excelize), scans field blocks,
// derives captions, validators and visibility rules, and hands the resulting
// Page to a renderer:
//
//	out, err := sheetform.Convert(ctx, sheet.SourceFromFile("form.xlsx"), "document")
//
// Other renderers emit an OpenAPI schema for submissions ("openapi") or walk
// the form interactively in a terminal ("tui").
package sheetform
