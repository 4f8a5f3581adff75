// Package xlsx reads template worksheets from Office Open XML workbooks using
// excelize. Numbers are read as raw values so that the scanner sees integers
// and fractions rather than display strings.
package xlsx
