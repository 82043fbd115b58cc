package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/app"
	"github.com/doeshing/clio-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/clio-go/internal/pkg/filesystem"
)

// NewGuardrailCommand creates the guardrail command with its subcommands
func NewGuardrailCommand(container *app.Container) *cobra.Command {
	guardrailCmd := &cobra.Command{
		Use:   "guardrail",
		Short: "Manage the local safety guardrail",
	}

	guardrailCmd.AddCommand(
		newGuardrailEnableCommand(container),
		newGuardrailDisableCommand(container),
		newGuardrailStatusCommand(container),
		newGuardrailCheckCommand(container),
	)

	return guardrailCmd
}

func newGuardrailEnableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Escalate generator safety labels with local rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, true)
		},
	}
}

func newGuardrailDisableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Trust generator safety labels as-is (not recommended)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, false)
		},
	}
}

func newGuardrailStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show guardrail status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showGuardrailStatus(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newGuardrailCheckCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "check <command>",
		Short: "Rate a command against the guardrail rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Guardrail == nil {
				return errors.New("guardrail unavailable")
			}
			assessment, err := container.Guardrail.Classify(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Level: %s (%s)\n", assessment.Level, assessment.Level.Describe())
			for _, reason := range assessment.Reasons {
				fmt.Fprintf(out, " - %s\n", reason)
			}
			return nil
		},
	}
}

func setGuardrailState(ctx context.Context, out io.Writer, container *app.Container, enabled bool) error {
	cfg, err := loadConfig(ctx, container)
	if err != nil {
		return err
	}

	cfg.Security.Enabled = enabled

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "Guardrail %s.\n", formatEnabledStatus(enabled))
	return nil
}

func showGuardrailStatus(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := loadConfig(ctx, container)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Guardrail is currently %s.\n", formatEnabledStatus(cfg.Security.Enabled))
	if cfg.Security.Enabled {
		fmt.Fprintf(out, "Rules file: %s\n", filesystem.ExpandPath(cfg.Security.RulesFile))
		if container.Guardrail != nil {
			fmt.Fprintf(out, "Rules loaded: %d\n", container.Guardrail.RuleCount())
		}
	}

	return nil
}

func formatEnabledStatus(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
