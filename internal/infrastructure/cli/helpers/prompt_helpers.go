package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user interrupts a wizard question.
var ErrAborted = errors.New("aborted")

// WizardPrompter asks setup questions. On a terminal it uses survey widgets;
// otherwise answers are read one per line, so `clio init < answers.txt` works.
type WizardPrompter struct {
	out         io.Writer
	reader      *bufio.Reader
	interactive bool
}

// NewWizardPrompter reads answers from in and writes questions to out.
func NewWizardPrompter(in io.Reader, out io.Writer) *WizardPrompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd())
	}
	return &WizardPrompter{out: out, reader: bufio.NewReader(in), interactive: interactive}
}

// AskString asks for free text. An empty answer keeps def.
func (p *WizardPrompter) AskString(question, def string) (string, error) {
	if p.interactive {
		answer := def
		err := survey.AskOne(&survey.Input{Message: question, Default: def}, &answer)
		return strings.TrimSpace(answer), surveyAbort(err)
	}

	fmt.Fprintf(p.out, "%s ", question)
	if def != "" {
		fmt.Fprintf(p.out, "(default: %s)", def)
	}
	fmt.Fprint(p.out, ": ")

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// AskYesNo asks a yes/no question. An empty answer keeps def.
func (p *WizardPrompter) AskYesNo(question string, def bool) (bool, error) {
	if p.interactive {
		answer := def
		err := survey.AskOne(&survey.Confirm{Message: question, Default: def}, &answer)
		return answer, surveyAbort(err)
	}

	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine treats end of input as an empty answer so defaults apply.
func (p *WizardPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func surveyAbort(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
