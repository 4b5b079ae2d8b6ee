package cli

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted is returned when the user interrupts a prompt.
var errAborted = errors.New("aborted")

type prompter interface {
	Input(ctx context.Context, message, def string, validate func(string) error) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, def string, validate func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: message, Default: def}
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errAborted
		}
		return "", err
	}
	return out, nil
}
