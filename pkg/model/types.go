package model

import "github.com/goliatone/go-sheetform/internal/model"

// Entity types are defined next to the builder so that their derived
// attributes can only be set at construction time.
type (
	Field        = model.Field
	Page         = model.Page
	RawField     = model.RawField
	Validator    = model.Validator
	OptionType   = model.OptionType
	Caption      = model.Caption
	CaptionKind  = model.CaptionKind
	FieldVariant = model.FieldVariant
	InputSpec    = model.InputSpec
	NumInputSpec = model.NumInputSpec

	ValidatorType = model.ValidatorType
	Messages      = model.Messages
)

const (
	FieldVariantDropdown    = model.FieldVariantDropdown
	FieldVariantText        = model.FieldVariantText
	FieldVariantTextArea    = model.FieldVariantTextArea
	FieldVariantRadio       = model.FieldVariantRadio
	FieldVariantMultiselect = model.FieldVariantMultiselect

	InputSpecHalfWidthNumber = model.InputSpecHalfWidthNumber
	InputSpecHalfWidthKanji  = model.InputSpecHalfWidthKanji

	ValidatorTypeText        = model.ValidatorTypeText
	ValidatorTypeExpression  = model.ValidatorTypeExpression
	ValidatorTypeAnswerCount = model.ValidatorTypeAnswerCount

	CaptionNone        = model.CaptionNone
	CaptionPlaceholder = model.CaptionPlaceholder
	CaptionOptions     = model.CaptionOptions
)

// FieldName returns the question key for the field at a 1-based position.
func FieldName(index int) string {
	return model.FieldName(index)
}

// NewPage wraps an ordered field list.
func NewPage(fields []Field) Page {
	return model.NewPage(fields)
}

// NewOption builds an option whose label mirrors its value.
func NewOption(value string) OptionType {
	return model.NewOption(value)
}

// DefaultMessages returns the built-in validator message catalog.
func DefaultMessages() Messages {
	return model.DefaultMessages()
}
