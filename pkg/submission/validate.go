package submission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/visibility"
	"github.com/goliatone/go-sheetform/pkg/visibility/expr"
)

// Issue is a validation failure for one answer.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating an answer set.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validator checks answers against the schema and expression validators of a
// page.
type Validator struct {
	page      model.Page
	schema    *openapi3.Schema
	evaluator visibility.Evaluator
}

// Option configures a Validator.
type Option func(*Validator)

// WithEvaluator overrides the expression evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(v *Validator) {
		if evaluator != nil {
			v.evaluator = evaluator
		}
	}
}

// New constructs a Validator for page.
func New(page model.Page, options ...Option) *Validator {
	v := &Validator{
		page:      page,
		schema:    Schema(page),
		evaluator: expr.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate is shorthand for New(page).Validate(answers).
func Validate(page model.Page, answers map[string]any) Result {
	return New(page).Validate(answers)
}

// Schema returns the answer schema.
func (v *Validator) Schema() *openapi3.Schema {
	return v.schema
}

// Visible reports whether field is shown for the given answers.
func (v *Validator) Visible(field model.Field, answers map[string]any) (bool, error) {
	rule, ok := field.Visible()
	if !ok {
		return true, nil
	}
	return v.evaluator.Eval(field.Name(), rule, visibility.Context{Values: normalize(answers)})
}

// Validate checks every visible field. Empty strings and empty selections
// count as unanswered. Issues are reported in page order.
func (v *Validator) Validate(answers map[string]any) Result {
	values := normalize(answers)
	byField := make(map[string][]Issue)

	if err := v.schema.VisitJSON(toJSON(values), openapi3.MultiErrors()); err != nil {
		for _, schemaErr := range flatten(err) {
			name, path := pointer(schemaErr)
			field, ok := v.page.Field(name)
			if !ok {
				continue
			}
			byField[name] = append(byField[name], Issue{Field: name, Path: path, Message: messageFor(field, schemaErr)})
		}
	}

	for _, field := range v.page.Fields() {
		name := field.Name()
		visible, err := v.Visible(field, values)
		if err != nil {
			byField[name] = append(byField[name], Issue{Field: name, Message: err.Error()})
			continue
		}
		if !visible {
			delete(byField, name)
			continue
		}
		_, answered := values[name]
		if _, gated := field.Visible(); gated && field.Required() && !answered {
			byField[name] = append(byField[name], Issue{Field: name, Message: requiredMessage(name)})
		}
		if answered {
			byField[name] = append(byField[name], v.expressionIssues(field, values)...)
		}
	}

	result := Result{Valid: true}
	for _, field := range v.page.Fields() {
		result.Issues = append(result.Issues, dedupe(byField[field.Name()])...)
	}
	result.Valid = len(result.Issues) == 0
	return result
}

// ValidateField checks a single answer in the context of answers. Unknown
// fields report an issue.
func (v *Validator) ValidateField(name string, value any, answers map[string]any) []Issue {
	field, ok := v.page.Field(name)
	if !ok {
		return []Issue{{Field: name, Message: fmt.Sprintf("unknown field %q", name)}}
	}

	values := normalize(answers)
	delete(values, name)
	if normalized, present := normalizeValue(value); present {
		values[name] = normalized
	}

	visible, err := v.Visible(field, values)
	if err != nil {
		return []Issue{{Field: name, Message: err.Error()}}
	}
	if !visible {
		return nil
	}

	current, answered := values[name]
	if !answered {
		if field.Required() {
			return []Issue{{Field: name, Message: requiredMessage(name)}}
		}
		return nil
	}

	var issues []Issue
	if err := FieldSchema(field).VisitJSON(toJSONValue(current), openapi3.MultiErrors()); err != nil {
		for _, schemaErr := range flatten(err) {
			_, path := pointer(schemaErr)
			issues = append(issues, Issue{Field: name, Path: path, Message: messageFor(field, schemaErr)})
		}
	}
	issues = append(issues, v.expressionIssues(field, values)...)
	return dedupe(issues)
}

func (v *Validator) expressionIssues(field model.Field, values map[string]any) []Issue {
	var issues []Issue
	for _, validator := range field.Validators() {
		expression, ok := validator.Expression()
		if !ok {
			continue
		}
		passed, err := v.evaluator.Eval(field.Name(), expression, visibility.Context{Values: values})
		if err != nil {
			issues = append(issues, Issue{Field: field.Name(), Message: err.Error()})
			continue
		}
		if !passed {
			issues = append(issues, Issue{Field: field.Name(), Message: validator.Text()})
		}
	}
	return issues
}

// messageFor prefers the synthesised validator text for the failed keyword.
func messageFor(field model.Field, err *openapi3.SchemaError) string {
	for _, v := range field.Validators() {
		switch err.SchemaField {
		case "minLength", "maxLength":
			if v.Type() == model.ValidatorTypeText {
				return v.Text()
			}
		case "minItems", "maxItems":
			if v.Type() == model.ValidatorTypeAnswerCount {
				return v.Text()
			}
		case "pattern":
			if expression, ok := v.Expression(); ok {
				if p, ok := matchPattern(expression); ok && p == err.Schema.Pattern {
					return v.Text()
				}
			}
		}
	}
	return err.Reason
}

func requiredMessage(name string) string {
	return fmt.Sprintf("property %q is missing", name)
}

func flatten(err error) []*openapi3.SchemaError {
	var out []*openapi3.SchemaError
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			out = append(out, flatten(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return append(out, schemaErr)
	}
	return out
}

func pointer(err *openapi3.SchemaError) (string, string) {
	segments := err.JSONPointer()
	if len(segments) == 0 {
		return "", ""
	}
	return segments[0], "/" + strings.Join(segments, "/")
}

func dedupe(issues []Issue) []Issue {
	if len(issues) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(issues))
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		key := issue.Field + "\x00" + issue.Message
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, issue)
	}
	return out
}
