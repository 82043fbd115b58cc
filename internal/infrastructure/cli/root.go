package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/app"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/infrastructure/cli/commands"
)

// ErrReported marks failures whose notice was already shown to the user.
var ErrReported = errors.New("error already reported")

const (
	// annotationNoContainer marks commands that run without loading configuration.
	annotationNoContainer = "clio/no-container"
	// annotationRecovery marks commands that still run when the config is broken.
	annotationRecovery = "clio/recovery"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Execute runs the command line and drains the shell session afterwards, so
// commands queued by a one-shot invocation finish before clio exits.
func Execute(ctx context.Context, opts Options) error {
	container := &app.Container{}
	root := NewRootCmd(container, opts)
	err := root.ExecuteContext(ctx)
	if closeErr := container.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// NewRootCmd wires the cobra root command. The container is populated before
// any subcommand runs.
func NewRootCmd(container *app.Container, opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "clio [query]",
		Short: "clio - turn a request into shell commands",
		Long: `clio asks an external generator for shell commands that fulfil a
natural-language request, lets you pick which ones to run, and queues the
picked commands into a persistent shell session.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoContainer] != "" {
				return nil
			}
			buildOpts := app.Options{Verbose: opts.Verbose, ConfigPath: opts.ConfigPath}
			built, err := app.BuildContainer(cmd.Context(), buildOpts)
			if err != nil {
				if !hasAnnotation(cmd, annotationRecovery) {
					return err
				}
				built = app.RecoveryContainer(buildOpts)
			}
			*container = *built
			container.AttachUI(NewPrompter(), NewNotifier(os.Stderr), NewSpinner(os.Stderr))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd.Context(), container, strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&opts.Verbose, "debug", opts.Verbose, "Enable verbose logging")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.clio/config.yaml)")

	version := commands.NewVersionCommand()
	version.Annotations = map[string]string{annotationNoContainer: "true"}
	recovery := []*cobra.Command{
		commands.NewInitCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
	}
	for _, c := range recovery {
		c.Annotations = map[string]string{annotationRecovery: "true"}
	}

	root.AddCommand(recovery...)
	root.AddCommand(
		newShellCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewGuardrailCommand(container),
		commands.NewAuthCommand(container),
		version,
	)
	return root
}

// hasAnnotation reports whether cmd or one of its parents carries key.
func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] != "" {
			return true
		}
	}
	return false
}

// runWorkflow runs a single invocation. Outcomes the user chose or that carry
// no failure (cancel, blank input, nothing found) exit cleanly.
func runWorkflow(ctx context.Context, container *app.Container, query string) error {
	outcome, err := container.Workflow.Invoke(ctx, query)
	if err != nil {
		container.Logger.Debug("invocation ended", map[string]interface{}{
			"state": string(outcome.Final()),
			"error": err.Error(),
		})
	}
	return exitStatus(err)
}

// exitStatus maps an invocation error to the process result. Invoke has
// already rendered a notice for every error it returns.
func exitStatus(err error) error {
	if err == nil {
		return nil
	}
	switch domain.KindOf(err) {
	case domain.KindUserCancelled, domain.KindEmptyInput, domain.KindNoCommandFound:
		return nil
	default:
		return ErrReported
	}
}
