package cli

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/pkg/errors"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// Prompter asks the user for form input.
type Prompter interface {
	Input(message string) (string, error)
	Password(message string) (string, error)
	Confirm(message string) (bool, error)
	Select(message string, options []string) (int, error)
}

// LineReader is the REPL input; *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

type surveyPrompter struct{}

func NewSurveyPrompter() Prompter {
	return surveyPrompter{}
}

func (surveyPrompter) Input(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer)
	return strings.TrimSpace(answer), surveyErr(err)
}

func (surveyPrompter) Password(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Password{Message: message}, &answer)
	return answer, surveyErr(err)
}

func (surveyPrompter) Confirm(message string) (bool, error) {
	confirm := false
	err := survey.AskOne(&survey.Confirm{Message: message}, &confirm)
	return confirm, surveyErr(err)
}

func (surveyPrompter) Select(message string, options []string) (int, error) {
	var index int
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &index)
	return index, surveyErr(err)
}

func surveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
