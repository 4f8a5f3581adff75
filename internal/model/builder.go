package model

import (
	"errors"

	"github.com/goliatone/go-sheetform/pkg/converr"
)

// Builder turns scanned field attributes into immutable Field values.
type Builder struct {
	messages *catalog
	sanitize bool
}

// New creates a Builder with the supplied options. It fails when a message
// template does not compile.
func New(options Options) (*Builder, error) {
	opts := defaultOptions()
	opts.Messages = options.Messages.Merge(opts.Messages)
	opts.SanitizeText = options.SanitizeText

	messages, err := compileMessages(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &Builder{messages: messages, sanitize: opts.SanitizeText}, nil
}

// Build derives the placeholder/caption split, price ceiling, visibility
// expression and validators for raw. Fields wired to another field's options
// drop any scanned options and placeholder.
func (b *Builder) Build(raw RawField) (Field, error) {
	name := FieldName(raw.Index)

	placeholder := raw.Placeholder
	optionValues := raw.Options
	if raw.OptionsFromKey != nil {
		placeholder = nil
		optionValues = nil
	}
	raw.Placeholder = placeholder
	raw.Options = optionValues

	options := b.options(optionValues)

	validators, err := b.synthesize(name, raw, options)
	if err != nil {
		var convErr *converr.Error
		if errors.As(err, &convErr) {
			return Field{}, convErr.At(converr.Location{Field: raw.Index, Row: -1, Column: -1})
		}
		return Field{}, err
	}
	if len(validators) == 0 {
		validators = nil
	}

	field := Field{
		name:              name,
		required:          raw.Required,
		variant:           raw.Variant,
		label:             b.text(raw.Label),
		placeholderText:   clonePtr(placeholder),
		inputSpec:         clonePtr(raw.InputSpec),
		numInputSpec:      clonePtr(raw.NumInputSpec),
		numInputSpecError: clonePtr(raw.NumInputSpecError),
		options:           options,
		optionsFromKey:    clonePtr(raw.OptionsFromKey),
		max:               clonePtr(raw.Max),
		min:               clonePtr(raw.Min),

		displayConditionFirst:  cloneSlice(raw.DisplayConditionFirst),
		displayConditionSecond: cloneSlice(raw.DisplayConditionSecond),
		displayConditionThird:  cloneSlice(raw.DisplayConditionThird),

		caption:    captionFor(raw.Variant, placeholder),
		validators: validators,
	}

	if raw.Variant == FieldVariantTextArea {
		field.priceMax = clonePtr(raw.Max)
	}
	if raw.OptionsFromKey != nil {
		field.visible = ptr(visibleExpression(*raw.OptionsFromKey))
	}

	return field, nil
}

// BuildPage builds every field in order. The first failure aborts.
func (b *Builder) BuildPage(raws []RawField) (Page, error) {
	fields := make([]Field, 0, len(raws))
	for _, raw := range raws {
		field, err := b.Build(raw)
		if err != nil {
			return Page{}, err
		}
		fields = append(fields, field)
	}
	return Page{fields: fields}, nil
}

func (b *Builder) options(values []string) []OptionType {
	if len(values) == 0 {
		return nil
	}
	out := make([]OptionType, len(values))
	for i, value := range values {
		out[i] = OptionType{Value: value, Label: b.text(value)}
	}
	return out
}

func (b *Builder) text(s string) string {
	if !b.sanitize {
		return s
	}
	return sanitizeText(s)
}

func captionFor(variant FieldVariant, placeholder *string) Caption {
	if placeholder == nil {
		return Caption{}
	}
	switch variant {
	case FieldVariantText, FieldVariantTextArea:
		return Caption{kind: CaptionPlaceholder, text: *placeholder}
	case FieldVariantDropdown:
		return Caption{kind: CaptionOptions, text: *placeholder}
	default:
		return Caption{}
	}
}
