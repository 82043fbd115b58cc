package cli

import (
	"errors"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

// SurveyPrompter implements ports.Prompter with interactive terminal widgets.
type SurveyPrompter struct{}

// Input is a regular text input.
func (SurveyPrompter) Input(message string) (string, error) {
	var ans string
	err := survey.AskOne(&survey.Input{Message: message}, &ans)
	return ans, translateSurveyErr(err)
}

// MultiSelect presents the options as a checklist; the description of the
// highlighted entry is shown below the list.
func (SurveyPrompter) MultiSelect(message string, options []ports.SelectOption) ([]string, error) {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	prompt := &survey.MultiSelect{
		Message: message,
		Options: labels,
		Description: func(_ string, index int) string {
			return options[index].Description
		},
		PageSize: 10,
	}
	var ans []string
	err := survey.AskOne(prompt, &ans)
	return ans, translateSurveyErr(err)
}

// Confirm is a yes/no question defaulting to no.
func (SurveyPrompter) Confirm(message string) (bool, error) {
	ans := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ans)
	if err != nil {
		return false, translateSurveyErr(err)
	}
	return ans, nil
}

func translateSurveyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return domain.ErrCancelled
	}
	return err
}

// NewPrompter picks survey widgets when stdin and stdout are terminals and a
// line prompter otherwise.
func NewPrompter() ports.Prompter {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return SurveyPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var _ ports.Prompter = SurveyPrompter{}
