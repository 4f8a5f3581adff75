package document

import "github.com/goliatone/go-sheetform/pkg/model"

// Wire structs fix the key order of the output document. Optional attributes
// are pointers or slices so absent values are omitted rather than null.

type page struct {
	Elements []element `json:"Elements"`
}

type element struct {
	QuestionKey            string      `json:"QuestionKey"`
	Required               bool        `json:"Required"`
	Type                   string      `json:"Type"`
	Label                  string      `json:"Label"`
	Options                []option    `json:"Options,omitempty"`
	OptionsFromKey         *string     `json:"OptionsFromKey,omitempty"`
	DisplayConditionFirst  []string    `json:"DisplayConditionFirst,omitempty"`
	DisplayConditionSecond []string    `json:"DisplayConditionSecond,omitempty"`
	DisplayConditionThird  []string    `json:"DisplayConditionThird,omitempty"`
	Placeholder            *string     `json:"Placeholder,omitempty"`
	OptionsCaption         *string     `json:"OptionsCaption,omitempty"`
	Validators             []validator `json:"Validators,omitempty"`
	PriceMax               *uint64     `json:"PriceMax,omitempty"`
	Visible                *string     `json:"Visible,omitempty"`
}

type option struct {
	Value string `json:"Value"`
	Label string `json:"Label"`
}

type validator struct {
	Type       string  `json:"Type"`
	Text       string  `json:"Text"`
	Expression *string `json:"Expression,omitempty"`
	MinLength  *uint64 `json:"MinLength,omitempty"`
	MaxLength  *uint64 `json:"MaxLength,omitempty"`
}

func toPage(p model.Page) page {
	fields := p.Fields()
	out := page{Elements: make([]element, 0, len(fields))}
	for _, field := range fields {
		out.Elements = append(out.Elements, toElement(field))
	}
	return out
}

func toElement(field model.Field) element {
	el := element{
		QuestionKey:            field.Name(),
		Required:               field.Required(),
		Type:                   string(field.Variant()),
		Label:                  field.Label(),
		OptionsFromKey:         optional(field.OptionsFromKey()),
		DisplayConditionFirst:  field.DisplayConditionFirst(),
		DisplayConditionSecond: field.DisplayConditionSecond(),
		DisplayConditionThird:  field.DisplayConditionThird(),
		PriceMax:               optional(field.PriceMax()),
		Visible:                optional(field.Visible()),
	}

	for _, opt := range field.Options() {
		el.Options = append(el.Options, option{Value: opt.Value, Label: opt.Label})
	}

	caption := field.Caption()
	el.Placeholder = optional(caption.Placeholder())
	el.OptionsCaption = optional(caption.OptionsCaption())

	for _, v := range field.Validators() {
		el.Validators = append(el.Validators, validator{
			Type:       string(v.Type()),
			Text:       v.Text(),
			Expression: optional(v.Expression()),
			MinLength:  optional(v.MinLength()),
			MaxLength:  optional(v.MaxLength()),
		})
	}
	return el
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
