package scan

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-sheetform/internal/model"
	"github.com/goliatone/go-sheetform/pkg/converr"
	"github.com/goliatone/go-sheetform/pkg/sheet"
)

// Coercions are strict: every cell shape maps to a value, an absent value or
// a typed error. Errors carry the offending cell in their detail.

// FieldNumber reads a back-reference such as "field3" or a bare integer.
func FieldNumber(c sheet.Cell) (int, error) {
	switch c.Kind {
	case sheet.CellString:
		n, err := strconv.ParseUint(strings.TrimPrefix(c.Text, fieldNumberPrefix), 10, 31)
		if err != nil {
			return 0, converr.New(converr.KindUnparseableFieldNumber, strconv.Quote(c.Text))
		}
		return int(n), nil
	case sheet.CellInt:
		if c.Int < 0 || c.Int > math.MaxInt32 {
			return 0, converr.New(converr.KindUnparseableFieldNumber, c.Describe())
		}
		return int(c.Int), nil
	default:
		return 0, converr.New(converr.KindExpectedIntOrString, c.Describe())
	}
}

// RequiredFlag reads the required marker. A nil result marks a field
// boundary.
func RequiredFlag(c sheet.Cell) (*bool, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	if c.Kind != sheet.CellString {
		return nil, converr.New(converr.KindExpectedString, c.Describe())
	}
	required, err := ParseRequired(c.Text)
	if err != nil {
		return nil, err
	}
	return &required, nil
}

// Variant reads the field type.
func Variant(c sheet.Cell) (model.FieldVariant, error) {
	if c.Kind != sheet.CellString {
		return "", converr.New(converr.KindExpectedString, c.Describe())
	}
	return ParseVariant(c.Text)
}

// InputSpec reads an optional input specification.
func InputSpec(c sheet.Cell) (*model.InputSpec, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	if c.Kind != sheet.CellString {
		return nil, converr.New(converr.KindExpectedString, c.Describe())
	}
	spec, err := ParseInputSpec(c.Text)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// NumInputSpec reads an optional numeric range.
func NumInputSpec(c sheet.Cell) (*model.NumInputSpec, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	if c.Kind != sheet.CellString {
		return nil, converr.New(converr.KindExpectedString, c.Describe())
	}
	spec, err := ParseNumInputSpec(c.Text)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Label reads a field label. An empty string is a valid label, a missing
// cell is not.
func Label(c sheet.Cell) (string, error) {
	if c.Kind == sheet.CellEmpty {
		return "", converr.New(converr.KindExpectedString, c.Describe())
	}
	s, err := OptionalString(c)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

// OptionalString reads text verbatim and formats numeric and date cells.
func OptionalString(c sheet.Cell) (*string, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	var s string
	switch c.Kind {
	case sheet.CellString:
		s = c.Text
	case sheet.CellInt:
		s = strconv.FormatInt(c.Int, 10)
	case sheet.CellFloat, sheet.CellDateTime:
		s = strconv.FormatFloat(c.Float, 'f', -1, 64)
	default:
		return nil, converr.New(converr.KindUnparseableCell, c.Describe())
	}
	return &s, nil
}

// OptionalUint64 reads a non-negative bound. Fractional numbers truncate.
func OptionalUint64(c sheet.Cell) (*uint64, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	var n uint64
	switch c.Kind {
	case sheet.CellString:
		v, err := strconv.ParseUint(c.Text, 10, 64)
		if err != nil {
			return nil, converr.Wrap(converr.KindExpectedInt, err)
		}
		n = v
	case sheet.CellInt:
		if c.Int < 0 {
			return nil, converr.New(converr.KindExpectedInt, c.Describe())
		}
		n = uint64(c.Int)
	case sheet.CellFloat, sheet.CellDateTime:
		if c.Float < 0 || math.IsNaN(c.Float) {
			return nil, converr.New(converr.KindExpectedInt, c.Describe())
		}
		if c.Float >= math.MaxUint64 {
			n = math.MaxUint64
		} else {
			n = uint64(c.Float)
		}
	default:
		return nil, converr.New(converr.KindUnparseableCell, c.Describe())
	}
	return &n, nil
}
