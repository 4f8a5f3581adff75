// Package scan classifies template row labels, coerces spreadsheet cells into
// strict domain values and walks a grid field by field to produce raw field
// attributes for the model builder.
//
// The template has one subject label column followed by a value/companion
// column pair per field. Field i reads column (i-1)*2+1 and its companion
// column. A Required row with an empty value marks the end of the last field
// block and stops the scan.
package scan
