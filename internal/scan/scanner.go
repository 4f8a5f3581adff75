package scan

import (
	"errors"

	"github.com/goliatone/go-sheetform/internal/model"
	"github.com/goliatone/go-sheetform/pkg/converr"
	"github.com/goliatone/go-sheetform/pkg/sheet"
)

// DefaultMaxFields is the exclusive upper bound of the field index, so at most
// 99 field blocks are read from one grid.
const DefaultMaxFields = 100

// Options configures a Scanner.
type Options struct {
	// MaxFields is the exclusive upper bound of the field index. Zero or
	// negative selects DefaultMaxFields.
	MaxFields int
}

// Scanner walks a template grid field by field.
type Scanner struct {
	maxFields int
}

// New constructs a Scanner.
func New(options Options) *Scanner {
	maxFields := options.MaxFields
	if maxFields <= 0 {
		maxFields = DefaultMaxFields
	}
	return &Scanner{maxFields: maxFields}
}

// Result holds the raw attributes of every completed field block.
type Result struct {
	Fields []model.RawField

	// Capped is set when the field cap was reached before a boundary.
	Capped bool
}

// Step tells the field loop how to proceed after a row.
type Step uint8

const (
	StepContinue Step = iota
	StepFieldBoundary
)

// Scan reads field blocks 1..MaxFields-1. The first error aborts the scan and no
// partial result is returned.
func (s *Scanner) Scan(grid sheet.Grid) (Result, error) {
	var result Result
	for index := 1; index < s.maxFields; index++ {
		raw, step, err := scanField(grid, index)
		if err != nil {
			return Result{}, err
		}
		if step == StepFieldBoundary {
			return result, nil
		}
		result.Fields = append(result.Fields, raw)
	}
	result.Capped = true
	return result, nil
}

// fieldScan is the transient state for one field block.
type fieldScan struct {
	raw           model.RawField
	column        int
	sawRequired   bool
	ignoreOptions bool
	optionsDone   bool
}

// Column returns the value column of the field at a 1-based index. The
// companion column follows it.
func Column(index int) int {
	return (index-1)*2 + 1
}

func scanField(grid sheet.Grid, index int) (model.RawField, Step, error) {
	fs := &fieldScan{
		raw:    model.RawField{Index: index, Variant: model.FieldVariantText},
		column: Column(index),
	}

	for rowIndex, row := range grid.Rows {
		step, err := fs.visit(row)
		if err != nil {
			return model.RawField{}, StepContinue, locate(err, index, rowIndex, fs.column)
		}
		if step == StepFieldBoundary {
			return model.RawField{}, StepFieldBoundary, nil
		}
	}

	// A block without any required marker cannot be a field.
	if !fs.sawRequired {
		return model.RawField{}, StepFieldBoundary, nil
	}
	return fs.raw, StepContinue, nil
}

func (fs *fieldScan) visit(row sheet.Row) (Step, error) {
	head := row.Cell(0)
	// Blank or non-text label cells carry annotations between blocks.
	if head.Kind != sheet.CellString || head.Text == "" {
		return StepContinue, nil
	}
	subject, err := ParseSubject(head.Text)
	if err != nil {
		return StepContinue, columnError{err: err, column: 0}
	}

	cell := row.Cell(fs.column)
	switch subject {
	case SubjectRequired:
		required, err := RequiredFlag(cell)
		if err != nil {
			return StepContinue, err
		}
		if required == nil {
			return StepFieldBoundary, nil
		}
		fs.sawRequired = true
		fs.raw.Required = *required

	case SubjectType:
		variant, err := Variant(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.Variant = variant
		if variant.IsFreeText() {
			fs.ignoreOptions = true
		}

	case SubjectMax:
		bound, err := OptionalUint64(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.Max = bound

	case SubjectMin:
		bound, err := OptionalUint64(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.Min = bound

	case SubjectLabel:
		label, err := Label(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.Label = label

	case SubjectPlaceholder:
		if number, refErr := FieldNumber(row.Cell(fs.column + 1)); refErr == nil {
			key := model.FieldName(number)
			fs.raw.OptionsFromKey = &key
			fs.raw.Placeholder = nil
			fs.raw.Options = nil
			fs.ignoreOptions = true
			return StepContinue, nil
		}
		placeholder, err := OptionalString(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.Placeholder = placeholder

	case SubjectInputSpec:
		spec, err := InputSpec(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.InputSpec = spec

	case SubjectNumInputSpec:
		spec, err := NumInputSpec(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.NumInputSpec = spec

	case SubjectNumInputSpecError:
		text, err := OptionalString(cell)
		if err != nil {
			return StepContinue, err
		}
		fs.raw.NumInputSpecError = text

	case SubjectOptions:
		if fs.ignoreOptions || fs.optionsDone {
			return StepContinue, nil
		}
		option, err := OptionalString(cell)
		if err != nil {
			return StepContinue, err
		}
		if option == nil {
			fs.optionsDone = true
			return StepContinue, nil
		}
		fs.raw.Options = append(fs.raw.Options, *option)

	default:
		// Paging and display conditions are recognised but not read yet.
	}

	return StepContinue, nil
}

// columnError overrides the column reported for an error raised while
// reading the label column.
type columnError struct {
	err    error
	column int
}

func (e columnError) Error() string { return e.err.Error() }

func (e columnError) Unwrap() error { return e.err }

func locate(err error, index, row, column int) error {
	var ce columnError
	if errors.As(err, &ce) {
		column = ce.column
		err = ce.err
	}
	var convErr *converr.Error
	if errors.As(err, &convErr) {
		return convErr.At(converr.Location{Field: index, Row: row, Column: column})
	}
	return err
}
