package vbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/oshokin/installer-helpers/internal/logger"
)

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(message string, defaultAnswer bool) (bool, error)
	// Select returns the index of the chosen option.
	Select(message string, options []string) (int, error)
}

// SurveyPrompter asks on the terminal.
type SurveyPrompter struct{}

// Confirm implements Prompter.
func (SurveyPrompter) Confirm(message string, defaultAnswer bool) (bool, error) {
	answer := defaultAnswer

	prompt := &survey.Confirm{
		Message: message,
		Default: defaultAnswer,
	}

	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, promptError(err)
	}

	return answer, nil
}

// Select implements Prompter.
func (SurveyPrompter) Select(message string, options []string) (int, error) {
	var index int

	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: len(options),
	}

	if err := survey.AskOne(prompt, &index); err != nil {
		return 0, promptError(err)
	}

	return index, nil
}

// promptError turns Ctrl+C at a prompt into a cancellation.
func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return fmt.Errorf("%w: %w", context.Canceled, err)
	}

	return err
}

// confirm asks before the privileged steps start.
func (r *runner) confirm(ctx context.Context) error {
	if r.opts.Yes {
		return nil
	}

	if r.prompter == nil {
		logger.Info(ctx, "Standard input is not a terminal, continuing without confirmation")
		return nil
	}

	message := fmt.Sprintf("Install VirtualBox %s from %s? Privileged steps run with sudo.",
		r.version, r.artifacts.Package)

	ok, err := r.prompter.Confirm(message, true)
	if err != nil {
		return err
	}

	if !ok {
		return ErrAborted
	}

	return nil
}
