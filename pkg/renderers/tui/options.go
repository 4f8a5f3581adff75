package tui

import "github.com/goliatone/go-sheetform/pkg/visibility"

// OutputFormat controls how collected answers are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one key=value line per answer.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied to prompts and messages.
type Theme struct {
	ErrorPrefix string
	// SkipLabel is the extra choice offered on optional single-choice fields.
	SkipLabel string
}

const defaultSkipLabel = "(未回答)"

// SubmitTransformer mutates collected answers before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected answers prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes and labels.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		if theme.SkipLabel == "" {
			theme.SkipLabel = defaultSkipLabel
		}
		r.theme = theme
	}
}

// WithEvaluator overrides the evaluator used for visibility and expression
// validators.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(r *Renderer) {
		r.evaluator = evaluator
	}
}

// WithMaxAttempts bounds how often a field is re-prompted after failing
// validation. Zero means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}
