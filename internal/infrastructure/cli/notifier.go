package cli

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/doeshing/clio-go/internal/ports"
)

// Notifier renders notices with pterm prefixes.
type Notifier struct {
	info    pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

// NewNotifier writes notices to w (stderr when nil).
func NewNotifier(w io.Writer) *Notifier {
	if w == nil {
		w = os.Stderr
	}
	return &Notifier{
		info:    *pterm.Info.WithWriter(w),
		failure: *pterm.Error.WithWriter(w),
	}
}

func (n *Notifier) Info(msg string)  { n.info.Println(msg) }
func (n *Notifier) Error(msg string) { n.failure.Println(msg) }

// Spinner shows a pterm spinner while generation runs.
type Spinner struct {
	writer  io.Writer
	enabled bool
}

// NewSpinner animates on terminals only; elsewhere Start is a no-op.
func NewSpinner(w io.Writer) *Spinner {
	if w == nil {
		w = os.Stderr
	}
	enabled := false
	if f, isFile := w.(*os.File); isFile {
		enabled = isTerminal(f)
	}
	return &Spinner{writer: w, enabled: enabled}
}

// Start begins the animation and returns a func that stops it.
func (s *Spinner) Start(msg string) func() {
	if !s.enabled {
		return func() {}
	}
	spinner, err := pterm.DefaultSpinner.
		WithWriter(s.writer).
		WithRemoveWhenDone(true).
		Start(msg)
	if err != nil {
		return func() {}
	}
	return func() { _ = spinner.Stop() }
}

var (
	_ ports.Notifier = (*Notifier)(nil)
	_ ports.Progress = (*Spinner)(nil)
)
