package model

import (
	"github.com/goliatone/go-sheetform/internal/model"
)

// Builder converts scanned field attributes into immutable fields.
type Builder interface {
	Build(raw RawField) (Field, error)
	BuildPage(raws []RawField) (Page, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	messages Messages
	sanitize bool
}

// WithMessages overrides validator message templates. Empty entries keep the
// defaults.
func WithMessages(messages Messages) BuilderOption {
	return func(opts *builderOptions) {
		opts.messages = messages
	}
}

// WithSanitizeText strips markup from labels and option labels.
func WithSanitizeText(enabled bool) BuilderOption {
	return func(opts *builderOptions) {
		opts.sanitize = enabled
	}
}

// NewBuilder returns a Builder backed by the internal implementation. It fails
// when a message template does not compile.
func NewBuilder(options ...BuilderOption) (Builder, error) {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	builder, err := model.New(model.Options{
		Messages:     cfg.messages,
		SanitizeText: cfg.sanitize,
	})
	if err != nil {
		return nil, err
	}
	return builder, nil
}
