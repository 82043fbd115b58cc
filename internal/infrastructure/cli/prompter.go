package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

// LinePrompter implements ports.Prompter on plain line-oriented stdio.
// It serves pipes and dumb terminals where survey cannot draw.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter constructs a prompter referencing stdio.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Input reads one line and returns it without its line terminator.
// End of input counts as cancellation.
func (p *LinePrompter) Input(message string) (string, error) {
	fmt.Fprintf(p.out, "%s ", message)
	return p.readRawLine()
}

// MultiSelect lists the options and reads a comma or space separated list of
// their numbers. An empty answer selects nothing.
func (p *LinePrompter) MultiSelect(message string, options []ports.SelectOption) ([]string, error) {
	fmt.Fprintln(p.out, message)
	for _, opt := range options {
		fmt.Fprintf(p.out, "  %s\n", opt.Label)
		if opt.Description != "" {
			fmt.Fprintf(p.out, "      %s\n", opt.Description)
		}
	}
	for {
		fmt.Fprint(p.out, "Numbers to run (e.g. 1,3; empty for none): ")
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		selected, err := pickOptions(line, options)
		if err == nil {
			return selected, nil
		}
		fmt.Fprintln(p.out, err)
	}
}

// Confirm asks a yes/no question defaulting to no.
func (p *LinePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.readRawLine()
	return strings.TrimSpace(line), err
}

func (p *LinePrompter) readRawLine() (string, error) {
	line, err := p.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", domain.ErrCancelled
		}
		return "", err
	}
	return line, nil
}

func pickOptions(line string, options []ports.SelectOption) ([]string, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	selected := make([]string, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(options) {
			return nil, fmt.Errorf("%q is not a number between 1 and %d", field, len(options))
		}
		selected = append(selected, options[n-1].Label)
	}
	return selected, nil
}

var _ ports.Prompter = (*LinePrompter)(nil)
