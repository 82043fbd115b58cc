package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/mattn/go-shellwords"

	"github.com/doeshing/clio-go/internal/pkg/filesystem"
	"github.com/doeshing/clio-go/internal/ports"
)

// waitDelay bounds how long Run waits for output pipes after the generator is
// killed, in case a grandchild still holds them open.
const waitDelay = 2 * time.Second

// ProcessRunner runs the external generator as a child process.
// The query is always passed as a single argv element, never through a shell.
type ProcessRunner struct {
	argv []string
}

// NewProcessRunner tokenizes a command line such as "python3 ~/.clio/clio.py".
func NewProcessRunner(commandLine string) (*ProcessRunner, error) {
	args, err := shellwords.Parse(commandLine)
	if err != nil {
		return nil, fmt.Errorf("parse generator command %q: %w", commandLine, err)
	}
	if len(args) == 0 {
		return nil, errors.New("generator command is empty")
	}
	for i, arg := range args {
		if strings.HasPrefix(arg, "~") {
			args[i] = filesystem.ExpandPath(arg)
		}
	}
	return &ProcessRunner{argv: args}, nil
}

// Program returns the executable the runner starts.
func (r *ProcessRunner) Program() string {
	return r.argv[0]
}

// Args returns the static arguments following the program.
func (r *ProcessRunner) Args() []string {
	return append([]string(nil), r.argv[1:]...)
}

// Run implements ports.GeneratorRunner.
func (r *ProcessRunner) Run(ctx context.Context, inv ports.GeneratorInvocation) (ports.GeneratorOutput, error) {
	argv := r.argvFor(inv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), inv.Env...)
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	out := ports.GeneratorOutput{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("generator interrupted: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	if err != nil {
		return out, err
	}
	out.ExitCode = 0
	return out, nil
}

// Describe renders the invocation as a copy-pasteable shell command line.
func (r *ProcessRunner) Describe(inv ports.GeneratorInvocation) string {
	return shellescape.QuoteCommand(r.argvFor(inv))
}

func (r *ProcessRunner) argvFor(inv ports.GeneratorInvocation) []string {
	argv := make([]string, 0, len(r.argv)+2)
	argv = append(argv, r.argv...)
	argv = append(argv, inv.Query)
	if inv.Flag != "" {
		argv = append(argv, inv.Flag)
	}
	return argv
}

var _ ports.GeneratorRunner = (*ProcessRunner)(nil)
