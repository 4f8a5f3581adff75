package model

import (
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-sheetform/pkg/converr"
)

// synthesize generates the ordered validator list for one field.
func (b *Builder) synthesize(name string, raw RawField, options []OptionType) ([]Validator, error) {
	switch raw.Variant {
	case FieldVariantText:
		return b.textValidators(name, raw)
	case FieldVariantTextArea:
		return b.textAreaValidators(raw)
	case FieldVariantMultiselect:
		return b.multiselectValidators(name, raw, options)
	default:
		return nil, nil
	}
}

func (b *Builder) textValidators(name string, raw RawField) ([]Validator, error) {
	var validators []Validator

	// Length and numeric range rules need both bounds.
	if raw.Min != nil && raw.Max != nil {
		if *raw.Min == *raw.Max {
			text, err := b.message(msgExactLength, pongo2.Context{"length": formatUint(*raw.Max)})
			if err != nil {
				return nil, err
			}
			validators = append(validators, Validator{
				kind:      ValidatorTypeText,
				text:      text,
				minLength: ptr(*raw.Min),
				maxLength: ptr(*raw.Max),
			})
		}

		if raw.NumInputSpec != nil && raw.NumInputSpecError != nil {
			validators = append(validators, Validator{
				kind:       ValidatorTypeExpression,
				text:       *raw.NumInputSpecError,
				expression: ptr(rangeExpression(name, *raw.NumInputSpec)),
			})
		}
	}

	if raw.InputSpec != nil {
		switch *raw.InputSpec {
		case InputSpecHalfWidthNumber:
			// Only the 1..2 length template gets the digit pattern.
			if raw.Min != nil && raw.Max != nil && *raw.Min == 1 && *raw.Max == 2 {
				text, err := b.message(msgHalfWidthNumber, nil)
				if err != nil {
					return nil, err
				}
				validators = append(validators, Validator{
					kind:       ValidatorTypeExpression,
					text:       text,
					expression: ptr(digitsExpression(name)),
				})
			}
		case InputSpecHalfWidthKanji:
			text, err := b.message(msgHalfWidthAlpha, nil)
			if err != nil {
				return nil, err
			}
			validators = append(validators, Validator{
				kind:       ValidatorTypeExpression,
				text:       text,
				expression: ptr(lettersExpression(name)),
			})
		}
	}

	return validators, nil
}

func (b *Builder) textAreaValidators(raw RawField) ([]Validator, error) {
	if raw.Min == nil {
		return nil, nil
	}
	text, err := b.message(msgMinLength, pongo2.Context{"min": formatUint(*raw.Min)})
	if err != nil {
		return nil, err
	}
	return []Validator{{
		kind:      ValidatorTypeText,
		text:      text,
		minLength: ptr(*raw.Min),
	}}, nil
}

func (b *Builder) multiselectValidators(name string, raw RawField, options []OptionType) ([]Validator, error) {
	var validators []Validator

	var (
		id   messageID
		data = pongo2.Context{}
	)
	switch {
	case raw.Min != nil && raw.Max != nil:
		id = msgAnswerCountRange
		data["min"], data["max"] = formatUint(*raw.Min), formatUint(*raw.Max)
	case raw.Min != nil:
		id = msgAnswerCountMin
		data["min"] = formatUint(*raw.Min)
	case raw.Max != nil:
		id = msgAnswerCountMax
		data["max"] = formatUint(*raw.Max)
	}
	if id != "" {
		text, err := b.message(id, data)
		if err != nil {
			return nil, err
		}
		validators = append(validators, Validator{
			kind:      ValidatorTypeAnswerCount,
			text:      text,
			minLength: clonePtr(raw.Min),
			maxLength: clonePtr(raw.Max),
		})
	}

	if raw.Placeholder == nil {
		return validators, nil
	}

	exceptions := strings.Split(*raw.Placeholder, ",")
	for _, exc := range exceptions {
		if !containsOption(options, exc) {
			return nil, converr.New(converr.KindPlaceholderNotInOptions, strconv.Quote(exc))
		}
	}

	if len(exceptions) == 1 {
		text, err := b.message(msgExclusiveOne, pongo2.Context{"exception": exceptions[0]})
		if err != nil {
			return nil, err
		}
		return append(validators, Validator{
			kind:       ValidatorTypeExpression,
			text:       text,
			expression: ptr(exclusiveExpression(name, exceptions[0])),
		}), nil
	}

	text, err := b.message(msgExclusiveMany, pongo2.Context{"exceptions": exceptions})
	if err != nil {
		return nil, err
	}
	return append(validators, Validator{
		kind:       ValidatorTypeExpression,
		text:       text,
		expression: ptr(exclusiveSetExpression(name, exceptions)),
	}), nil
}

func (b *Builder) message(id messageID, data pongo2.Context) (string, error) {
	if data == nil {
		data = pongo2.Context{}
	}
	text, err := b.messages.render(id, data)
	if err != nil {
		return "", converr.Wrap(converr.KindMessageTemplate, err)
	}
	return text, nil
}

func containsOption(options []OptionType, value string) bool {
	for _, opt := range options {
		if opt.Is(value) {
			return true
		}
	}
	return false
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	return ptr(*v)
}
