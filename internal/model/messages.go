package model

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Messages holds the pongo2 templates used for validator text. Empty entries
// fall back to the defaults.
type Messages struct {
	ExactLength      string `json:"exactLength,omitempty" yaml:"exact_length"`
	MinLength        string `json:"minLength,omitempty" yaml:"min_length"`
	HalfWidthNumber  string `json:"halfWidthNumber,omitempty" yaml:"half_width_number"`
	HalfWidthAlpha   string `json:"halfWidthAlpha,omitempty" yaml:"half_width_alpha"`
	AnswerCountRange string `json:"answerCountRange,omitempty" yaml:"answer_count_range"`
	AnswerCountMin   string `json:"answerCountMin,omitempty" yaml:"answer_count_min"`
	AnswerCountMax   string `json:"answerCountMax,omitempty" yaml:"answer_count_max"`
	ExclusiveOne     string `json:"exclusiveOne,omitempty" yaml:"exclusive_one"`
	ExclusiveMany    string `json:"exclusiveMany,omitempty" yaml:"exclusive_many"`
}

// DefaultMessages returns the built-in Japanese message catalog.
func DefaultMessages() Messages {
	return Messages{
		ExactLength:      "{{ length }}文字で入力してください",
		MinLength:        "{{ min }}文字以上で入力してください",
		HalfWidthNumber:  "入力できるのは半角数字のみです",
		HalfWidthAlpha:   "入力できるのは半角英字のみです",
		AnswerCountRange: "選択肢は{{ min }}個以上{{ max }}以下",
		AnswerCountMin:   "選択肢は{{ min }}個以上",
		AnswerCountMax:   "選択肢は{{ max }}個以下",
		ExclusiveOne:     "[{{ exception }}]が選択されています。",
		ExclusiveMany:    "{% for e in exceptions %}{% if not forloop.First %}または{% endif %}[{{ e }}]{% endfor %}が選択されています。",
	}
}

// Merge returns m with every empty entry taken from fallback.
func (m Messages) Merge(fallback Messages) Messages {
	pick := func(value, def string) string {
		if value != "" {
			return value
		}
		return def
	}
	return Messages{
		ExactLength:      pick(m.ExactLength, fallback.ExactLength),
		MinLength:        pick(m.MinLength, fallback.MinLength),
		HalfWidthNumber:  pick(m.HalfWidthNumber, fallback.HalfWidthNumber),
		HalfWidthAlpha:   pick(m.HalfWidthAlpha, fallback.HalfWidthAlpha),
		AnswerCountRange: pick(m.AnswerCountRange, fallback.AnswerCountRange),
		AnswerCountMin:   pick(m.AnswerCountMin, fallback.AnswerCountMin),
		AnswerCountMax:   pick(m.AnswerCountMax, fallback.AnswerCountMax),
		ExclusiveOne:     pick(m.ExclusiveOne, fallback.ExclusiveOne),
		ExclusiveMany:    pick(m.ExclusiveMany, fallback.ExclusiveMany),
	}
}

type messageID string

const (
	msgExactLength      messageID = "exact_length"
	msgMinLength        messageID = "min_length"
	msgHalfWidthNumber  messageID = "half_width_number"
	msgHalfWidthAlpha   messageID = "half_width_alpha"
	msgAnswerCountRange messageID = "answer_count_range"
	msgAnswerCountMin   messageID = "answer_count_min"
	msgAnswerCountMax   messageID = "answer_count_max"
	msgExclusiveOne     messageID = "exclusive_one"
	msgExclusiveMany    messageID = "exclusive_many"
)

// catalog holds compiled message templates. Templates render with
// autoescaping disabled: messages are plain text, not HTML.
type catalog struct {
	templates map[messageID]*pongo2.Template
}

func compileMessages(m Messages) (*catalog, error) {
	sources := map[messageID]string{
		msgExactLength:      m.ExactLength,
		msgMinLength:        m.MinLength,
		msgHalfWidthNumber:  m.HalfWidthNumber,
		msgHalfWidthAlpha:   m.HalfWidthAlpha,
		msgAnswerCountRange: m.AnswerCountRange,
		msgAnswerCountMin:   m.AnswerCountMin,
		msgAnswerCountMax:   m.AnswerCountMax,
		msgExclusiveOne:     m.ExclusiveOne,
		msgExclusiveMany:    m.ExclusiveMany,
	}

	c := &catalog{templates: make(map[messageID]*pongo2.Template, len(sources))}
	for id, src := range sources {
		tpl, err := pongo2.FromString("{% autoescape off %}" + src + "{% endautoescape %}")
		if err != nil {
			return nil, fmt.Errorf("model builder: message %s: %w", id, err)
		}
		c.templates[id] = tpl
	}
	return c, nil
}

func (c *catalog) render(id messageID, data pongo2.Context) (string, error) {
	tpl, ok := c.templates[id]
	if !ok {
		return "", fmt.Errorf("model builder: message %s not registered", id)
	}
	out, err := tpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("model builder: render message %s: %w", id, err)
	}
	return out, nil
}
