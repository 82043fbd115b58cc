package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/app"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

const shellPrompt = "clio>"

// Invoker runs one workflow invocation.
type Invoker interface {
	Invoke(ctx context.Context, query string) (domain.Outcome, error)
}

func newShellCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Answer queries in a loop that shares one shell session",
		Long: `Reads one query per line. Each query runs as an independent invocation;
selected commands go to the same shell session. Type "exit" or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellLoop(cmd.Context(), container.Workflow, container.Workflow.Prompter, container.Logger)
		},
	}
}

// runShellLoop keeps the host alive across invocations. Failures end only the
// invocation they belong to; their notices are already rendered.
func runShellLoop(ctx context.Context, invoker Invoker, prompter ports.Prompter, log ports.Logger) error {
	for ctx.Err() == nil {
		line, err := prompter.Input(shellPrompt)
		if err != nil {
			if domain.IsKind(err, domain.KindUserCancelled) {
				return nil
			}
			return err
		}
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		outcome, err := invoker.Invoke(ctx, line)
		if err != nil {
			log.Debug("invocation ended", map[string]interface{}{
				"query": line,
				"state": string(outcome.Final()),
				"kind":  string(domain.KindOf(err)),
			})
		}
	}
	return nil
}
