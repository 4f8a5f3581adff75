package model

import "fmt"

// FieldVariant is the closed set of input kinds a template field can declare.
// Values are the output document tokens.
type FieldVariant string

const (
	FieldVariantDropdown    FieldVariant = "dropdown"
	FieldVariantText        FieldVariant = "text"
	FieldVariantTextArea    FieldVariant = "textarea"
	FieldVariantRadio       FieldVariant = "radio"
	FieldVariantMultiselect FieldVariant = "checkbox"
)

// IsFreeText reports whether the variant takes typed input rather than a
// choice from an option list.
func (v FieldVariant) IsFreeText() bool {
	return v == FieldVariantText || v == FieldVariantTextArea
}

// InputSpec refines Text fields with a character class restriction.
type InputSpec string

const (
	InputSpecHalfWidthNumber InputSpec = "HalfWidthNumber"
	InputSpecHalfWidthKanji  InputSpec = "HalfWidthKanji"
)

// NumInputSpec is a numeric range parsed from a "<min>~<max>" cell.
type NumInputSpec struct {
	Min uint32
	Max uint32
}

// OptionType is a selectable option. Two options are equal when their values
// match; the label is presentation only.
type OptionType struct {
	Value string
	Label string
}

// NewOption builds an option whose label mirrors its value.
func NewOption(value string) OptionType {
	return OptionType{Value: value, Label: value}
}

// Is reports whether the option carries value v.
func (o OptionType) Is(v string) bool {
	return o.Value == v
}

// ValidatorType identifies how a renderer applies a Validator.
type ValidatorType string

const (
	ValidatorTypeText        ValidatorType = "text"
	ValidatorTypeExpression  ValidatorType = "expression"
	ValidatorTypeAnswerCount ValidatorType = "answercount"
)

// Validator is a synthesized client-side rule. It is immutable: the zero
// value is never produced by the builder and accessors return copies.
type Validator struct {
	kind       ValidatorType
	text       string
	expression *string
	minLength  *uint64
	maxLength  *uint64
}

func (v Validator) Type() ValidatorType { return v.kind }

// Text returns the human readable message.
func (v Validator) Text() string { return v.text }

func (v Validator) Expression() (string, bool) { return deref(v.expression) }

func (v Validator) MinLength() (uint64, bool) { return deref(v.minLength) }

func (v Validator) MaxLength() (uint64, bool) { return deref(v.maxLength) }

// CaptionKind discriminates Caption.
type CaptionKind uint8

const (
	CaptionNone CaptionKind = iota
	CaptionPlaceholder
	CaptionOptions
)

// Caption holds either a text placeholder or a dropdown options caption,
// never both.
type Caption struct {
	kind CaptionKind
	text string
}

func (c Caption) Kind() CaptionKind { return c.kind }

// Placeholder returns the placeholder text when the caption is one.
func (c Caption) Placeholder() (string, bool) {
	if c.kind != CaptionPlaceholder {
		return "", false
	}
	return c.text, true
}

// OptionsCaption returns the dropdown caption when the caption is one.
func (c Caption) OptionsCaption() (string, bool) {
	if c.kind != CaptionOptions {
		return "", false
	}
	return c.text, true
}

// RawField carries the attributes scanned for one field block before any
// derivation. It only lives for the duration of a single field's scan.
type RawField struct {
	Index             int
	Required          bool
	Variant           FieldVariant
	Label             string
	Placeholder       *string
	InputSpec         *InputSpec
	NumInputSpec      *NumInputSpec
	NumInputSpecError *string
	Options           []string
	OptionsFromKey    *string
	Max               *uint64
	Min               *uint64

	DisplayConditionFirst  []string
	DisplayConditionSecond []string
	DisplayConditionThird  []string
}

// FieldName derives the question key of the field at a 1-based position.
func FieldName(index int) string {
	return fmt.Sprintf("field%d", index)
}

// Field is a normalized form field. All derived attributes are computed once
// by Builder.Build; the type exposes read-only accessors.
type Field struct {
	name              string
	required          bool
	variant           FieldVariant
	label             string
	placeholderText   *string
	inputSpec         *InputSpec
	numInputSpec      *NumInputSpec
	numInputSpecError *string
	options           []OptionType
	optionsFromKey    *string
	max               *uint64
	min               *uint64

	displayConditionFirst  []string
	displayConditionSecond []string
	displayConditionThird  []string

	caption    Caption
	validators []Validator
	priceMax   *uint64
	visible    *string
}

func (f Field) Name() string { return f.name }

func (f Field) Required() bool { return f.required }

func (f Field) Variant() FieldVariant { return f.variant }

func (f Field) Label() string { return f.label }

// PlaceholderText returns the raw placeholder cell, before the variant split.
func (f Field) PlaceholderText() (string, bool) { return deref(f.placeholderText) }

func (f Field) InputSpec() (InputSpec, bool) { return deref(f.inputSpec) }

func (f Field) NumInputSpec() (NumInputSpec, bool) { return deref(f.numInputSpec) }

func (f Field) NumInputSpecError() (string, bool) { return deref(f.numInputSpecError) }

// Options returns a copy of the option list, nil when the field has none.
func (f Field) Options() []OptionType { return cloneSlice(f.options) }

func (f Field) OptionsFromKey() (string, bool) { return deref(f.optionsFromKey) }

func (f Field) Max() (uint64, bool) { return deref(f.max) }

func (f Field) Min() (uint64, bool) { return deref(f.min) }

func (f Field) DisplayConditionFirst() []string { return cloneSlice(f.displayConditionFirst) }

func (f Field) DisplayConditionSecond() []string { return cloneSlice(f.displayConditionSecond) }

func (f Field) DisplayConditionThird() []string { return cloneSlice(f.displayConditionThird) }

// Caption returns the placeholder or options caption derived for the variant.
func (f Field) Caption() Caption { return f.caption }

// Validators returns a copy of the synthesized rules, nil when there are none.
func (f Field) Validators() []Validator { return cloneSlice(f.validators) }

func (f Field) PriceMax() (uint64, bool) { return deref(f.priceMax) }

// Visible returns the visibility expression, if any.
func (f Field) Visible() (string, bool) { return deref(f.visible) }

// Page is the ordered field sequence of one template. Order matches the
// column order of the source grid.
type Page struct {
	fields []Field
}

// NewPage wraps fields in scan order.
func NewPage(fields []Field) Page {
	return Page{fields: cloneSlice(fields)}
}

// Fields returns the fields in order.
func (p Page) Fields() []Field { return cloneSlice(p.fields) }

func (p Page) Len() int { return len(p.fields) }

// Field looks a field up by question key.
func (p Page) Field(name string) (Field, bool) {
	for _, field := range p.fields {
		if field.name == name {
			return field, true
		}
	}
	return Field{}, false
}

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}

func ptr[T any](v T) *T {
	return &v
}

func cloneSlice[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	return append([]T(nil), in...)
}
