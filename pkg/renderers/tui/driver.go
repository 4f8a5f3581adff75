package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Question is one prompt derived from a field. Message carries the label and
// Help the placeholder or options caption.
type Question struct {
	Message string
	Help    string
	// Choices lists option values for dropdown, radio and checkbox fields.
	Choices []string
	// Default preselects an answer. Defaults preselects several on checkbox
	// fields. Values outside Choices are ignored.
	Default  string
	Defaults []string
}

// PromptDriver asks questions on behalf of the renderer, one method per
// prompt style a field variant needs. Answers are option values, not
// positions.
type PromptDriver interface {
	// Line asks for a single line of text.
	Line(ctx context.Context, q Question) (string, error)
	// Paragraph asks for free text spanning several lines.
	Paragraph(ctx context.Context, q Question) (string, error)
	// Choose picks one of q.Choices.
	Choose(ctx context.Context, q Question) (string, error)
	// ChooseMany picks any subset of q.Choices.
	ChooseMany(ctx context.Context, q Question) ([]string, error)
	// Notify shows a validation message for the question just asked.
	Notify(ctx context.Context, msg string) error
}

// surveyDriver draws prompts on stderr so stdout stays reserved for the
// collected answers.
type surveyDriver struct {
	out   io.Writer
	stdio survey.AskOpt
}

var _ PromptDriver = (*surveyDriver)(nil)

func newSurveyDriver() PromptDriver {
	return &surveyDriver{
		out:   os.Stderr,
		stdio: survey.WithStdio(os.Stdin, os.Stderr, os.Stderr),
	}
}

func (d *surveyDriver) Line(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) Paragraph(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, q Question) (string, error) {
	prompt := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Choices}
	// survey rejects a default that is not one of the options.
	if slices.Contains(q.Choices, q.Default) {
		prompt.Default = q.Default
	}
	var answer string
	err := d.ask(ctx, prompt, &answer)
	return answer, err
}

func (d *surveyDriver) ChooseMany(ctx context.Context, q Question) ([]string, error) {
	prompt := &survey.MultiSelect{Message: q.Message, Help: q.Help, Options: q.Choices}
	var defaults []string
	for _, value := range q.Defaults {
		if slices.Contains(q.Choices, value) {
			defaults = append(defaults, value)
		}
	}
	if len(defaults) > 0 {
		prompt.Default = defaults
	}
	var answer []string
	err := d.ask(ctx, prompt, &answer)
	return answer, err
}

func (d *surveyDriver) Notify(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, answer, d.stdio)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
