package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/doeshing/clio-go/internal/ports"
)

// Logrus adapts a logrus logger to ports.Logger.
type Logrus struct {
	log *logrus.Logger
}

// New creates a logger writing to stderr. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func New(verbose bool) *Logrus {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, verbose bool) *Logrus {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !verbose})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &Logrus{log: l}
}

func (l *Logrus) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Debug(msg)
}

func (l *Logrus) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Info(msg)
}

func (l *Logrus) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Warn(msg)
}

func (l *Logrus) Error(msg string, err error, fields map[string]interface{}) {
	l.log.WithFields(fields).WithError(err).Error(msg)
}

var _ ports.Logger = (*Logrus)(nil)
