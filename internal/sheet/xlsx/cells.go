package xlsx

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheetform/pkg/sheet"
)

// toCell maps a raw cell value and its declared type onto the cell union.
// Numeric text without a fraction or exponent becomes an Int.
func toCell(kind excelize.CellType, raw string) sheet.Cell {
	if raw == "" {
		return sheet.Empty()
	}
	switch kind {
	case excelize.CellTypeBool:
		return sheet.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return sheet.Error(raw)
	case excelize.CellTypeDate:
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			return sheet.DateTime(serial)
		}
		return sheet.String(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return numeric(raw)
	default:
		return sheet.String(raw)
	}
}

func numeric(raw string) sheet.Cell {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return sheet.Int(i)
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return sheet.String(raw)
	}
	return sheet.Float(f)
}
