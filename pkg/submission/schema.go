package submission

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-sheetform/pkg/model"
)

// Schema builds the OpenAPI object schema for answers to page. Fields gated
// by a visibility rule are never listed as required: whether they must be
// answered depends on other answers.
func Schema(page model.Page) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	for _, field := range page.Fields() {
		obj.WithProperty(field.Name(), FieldSchema(field))
		if _, gated := field.Visible(); field.Required() && !gated {
			obj.Required = append(obj.Required, field.Name())
		}
	}
	return obj
}

// FieldSchema builds the schema of a single answer.
func FieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema

	switch field.Variant() {
	case model.FieldVariantMultiselect:
		items := openapi3.NewStringSchema()
		if enum := optionValues(field); len(enum) > 0 {
			items.WithEnum(enum...)
		}
		schema = openapi3.NewArraySchema().WithItems(items)
	case model.FieldVariantDropdown, model.FieldVariantRadio:
		schema = openapi3.NewStringSchema()
		if _, wired := field.OptionsFromKey(); !wired {
			if enum := optionValues(field); len(enum) > 0 {
				schema.WithEnum(enum...)
			}
		}
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label()

	for _, v := range field.Validators() {
		switch v.Type() {
		case model.ValidatorTypeText:
			if n, ok := v.MinLength(); ok {
				schema.WithMinLength(int64(n))
			}
			if n, ok := v.MaxLength(); ok {
				schema.WithMaxLength(int64(n))
			}
		case model.ValidatorTypeAnswerCount:
			if n, ok := v.MinLength(); ok {
				schema.WithMinItems(int64(n))
			}
			if n, ok := v.MaxLength(); ok {
				schema.WithMaxItems(int64(n))
			}
		case model.ValidatorTypeExpression:
			expression, _ := v.Expression()
			if pattern, ok := matchPattern(expression); ok && schema.Pattern == "" {
				schema.WithPattern(pattern)
			}
		}
	}
	return schema
}

func optionValues(field model.Field) []any {
	options := field.Options()
	if len(options) == 0 {
		return nil
	}
	out := make([]any, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}

// matchPattern extracts the regular expression of a `.match(/re/)` rule.
func matchPattern(expression string) (string, bool) {
	const open, close = ".match(/", "/)"
	start := strings.Index(expression, open)
	if start < 0 {
		return "", false
	}
	rest := expression[start+len(open):]
	end := strings.Index(rest, close)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
