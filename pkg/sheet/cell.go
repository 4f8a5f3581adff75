package sheet

import (
	"fmt"
	"strconv"
)

// CellKind enumerates the shapes a spreadsheet cell can take.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellString
	CellInt
	CellFloat
	CellDateTime
	CellBool
	CellError
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellString:
		return "string"
	case CellInt:
		return "int"
	case CellFloat:
		return "float"
	case CellDateTime:
		return "datetime"
	case CellBool:
		return "bool"
	case CellError:
		return "error"
	default:
		return "unknown"
	}
}

// Cell is a closed union over the generic cell shapes. Exactly one payload is
// meaningful for a given Kind: Text for String and Error, Int for Int, Float
// for Float and DateTime (the spreadsheet serial date), Bool for Bool.
type Cell struct {
	Kind  CellKind
	Text  string
	Int   int64
	Float float64
	Bool  bool
}

// Empty returns a cell with no value.
func Empty() Cell { return Cell{Kind: CellEmpty} }

// String returns a text cell.
func String(s string) Cell { return Cell{Kind: CellString, Text: s} }

// Int returns a whole number cell.
func Int(i int64) Cell { return Cell{Kind: CellInt, Int: i} }

// Float returns a floating point cell.
func Float(f float64) Cell { return Cell{Kind: CellFloat, Float: f} }

// DateTime returns a date cell holding a spreadsheet serial value.
func DateTime(serial float64) Cell { return Cell{Kind: CellDateTime, Float: serial} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// Error returns a cell holding a spreadsheet error literal such as #N/A.
func Error(code string) Cell { return Cell{Kind: CellError, Text: code} }

// IsEmpty reports whether the cell is empty or an empty string.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellString && c.Text == "")
}

// Describe renders the cell for diagnostics, e.g. `float 1.5`.
func (c Cell) Describe() string {
	switch c.Kind {
	case CellEmpty:
		return "empty cell"
	case CellString, CellError:
		return fmt.Sprintf("%s %q", c.Kind, c.Text)
	case CellInt:
		return fmt.Sprintf("int %d", c.Int)
	case CellFloat, CellDateTime:
		return fmt.Sprintf("%s %s", c.Kind, strconv.FormatFloat(c.Float, 'f', -1, 64))
	case CellBool:
		return fmt.Sprintf("bool %t", c.Bool)
	default:
		return c.Kind.String()
	}
}
