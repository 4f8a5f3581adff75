package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-sheetform/pkg/converr"
	"github.com/goliatone/go-sheetform/pkg/model"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/submission"
	"github.com/goliatone/go-sheetform/pkg/visibility"
)

// Name is the registry key of the TUI renderer.
const Name = "tui"

// Renderer walks a Page in the terminal, validating each answer as it is
// given, and emits the collected answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	evaluator         visibility.Evaluator
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (render.Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        Theme{SkipLabel: defaultSkipLabel},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every visible field in page order. Prefilled answers in
// opts.Values that pass validation are kept without prompting. Answers to
// fields hidden by their visibility rule are dropped.
func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	var validatorOpts []submission.Option
	if r.evaluator != nil {
		validatorOpts = append(validatorOpts, submission.WithEvaluator(r.evaluator))
	}
	validator := submission.New(page, validatorOpts...)
	state := NewState(opts.Values)

	for _, field := range page.Fields() {
		name := field.Name()
		visible, err := validator.Visible(field, state.Values())
		if err != nil {
			return nil, fmt.Errorf("tui: visibility of %s: %w", name, err)
		}
		if !visible {
			state.Delete(name)
			continue
		}
		if current, ok := state.Get(name); ok && len(validator.ValidateField(name, current, state.Values())) == 0 {
			continue
		}
		if err := r.promptField(ctx, page, field, state, validator); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(page, values)
}

func (r *Renderer) promptField(ctx context.Context, page model.Page, field model.Field, state *State, validator *submission.Validator) error {
	name := field.Name()
	choices := choicesFor(page, field)

	for attempt := 1; ; attempt++ {
		answer, err := r.ask(ctx, field, choices, state)
		if err != nil {
			return err
		}

		issues := validator.ValidateField(name, answer, state.Values())
		if len(issues) == 0 {
			state.Set(name, answer)
			return nil
		}

		for _, issue := range issues {
			if err := r.driver.Notify(ctx, r.theme.ErrorPrefix+issue.Message); err != nil {
				return err
			}
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, name)
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, choices []string, state *State) (any, error) {
	current, _ := state.Get(field.Name())
	q := Question{
		Message: displayLabel(field),
		Help:    displayHelp(field),
		Choices: choices,
	}

	switch {
	case field.Variant() == model.FieldVariantMultiselect && len(choices) > 0:
		q.Defaults = stringList(current)
		return r.driver.ChooseMany(ctx, q)

	case (field.Variant() == model.FieldVariantDropdown || field.Variant() == model.FieldVariantRadio) && len(choices) > 0:
		if !field.Required() {
			q.Choices = append([]string{r.theme.SkipLabel}, choices...)
		}
		q.Default = stringValue(current)
		answer, err := r.driver.Choose(ctx, q)
		if err != nil {
			return nil, err
		}
		// The skip choice and anything off the list leave the field unanswered.
		if !slices.Contains(choices, answer) {
			return "", nil
		}
		return answer, nil

	case field.Variant() == model.FieldVariantTextArea:
		q.Default = stringValue(current)
		return r.driver.Paragraph(ctx, q)

	default:
		q.Default = stringValue(current)
		return r.driver.Line(ctx, q)
	}
}

// choicesFor resolves the option values of field. Fields wired to another
// question borrow that question's options.
func choicesFor(page model.Page, field model.Field) []string {
	options := field.Options()
	if key, ok := field.OptionsFromKey(); ok {
		if source, found := page.Field(key); found {
			options = source.Options()
		}
	}
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}

func displayLabel(field model.Field) string {
	label := field.Label()
	if label == "" {
		label = field.Name()
	}
	if field.Required() {
		label += " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	caption := field.Caption()
	if text, ok := caption.Placeholder(); ok {
		return text
	}
	if text, ok := caption.OptionsCaption(); ok {
		return text
	}
	return ""
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func (r *Renderer) serialize(page model.Page, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(page, values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, converr.Wrap(converr.KindSerializeError, err)
		}
		return out, nil
	}
}

func formEncode(values map[string]any) string {
	encoded := url.Values{}
	for key, value := range values {
		if list, ok := value.([]string); ok {
			for _, item := range list {
				encoded.Add(key+"[]", item)
			}
			continue
		}
		encoded.Set(key, stringValue(value))
	}
	return encoded.Encode()
}

// prettyPrint lists answers in page order, then any extra keys a transformer
// added.
func prettyPrint(page model.Page, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(values))
	write := func(key string, value any) {
		seen[key] = struct{}{}
		if list, ok := value.([]string); ok {
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(list, ", "))
			return
		}
		fmt.Fprintf(&b, "%s=%v\n", key, value)
	}
	for _, field := range page.Fields() {
		if value, ok := values[field.Name()]; ok {
			write(field.Name(), value)
		}
	}
	for _, key := range sortedKeys(values) {
		if _, ok := seen[key]; !ok {
			write(key, values[key])
		}
	}
	return b.String()
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
