package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/app"
	configapp "github.com/doeshing/clio-go/internal/application/config"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/clio-go/internal/infrastructure/config"
	"github.com/doeshing/clio-go/internal/infrastructure/security"
	"github.com/doeshing/clio-go/internal/pkg/filesystem"
)

// NewInitCommand creates the init command to initialize clio configuration.
// It writes ~/.clio/config.yaml and an editable copy of the guardrail rules.
func NewInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize clio configuration",
		Long: `Initialize clio configuration with default settings.

This command writes ~/.clio/config.yaml and ~/.clio/guardrail.yaml.
After initialization, you should:
  1. Make sure the generator script exists (default: python3 ~/.clio/clio.py)
  2. Store the API key with 'clio auth set' or export it in your shell
  3. Run 'clio doctor' to verify your setup
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitWizard(cmd, container, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files without prompting")

	return cmd
}

// runInitWizard runs the configuration initialization wizard
func runInitWizard(cmd *cobra.Command, container *app.Container, force bool) error {
	loader, err := helpers.GetConfigLoader(container)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prompter := helpers.NewWizardPrompter(cmd.InOrStdin(), out)

	if !force {
		proceed, err := prompter.AskYesNo(fmt.Sprintf("Rewrite %s?", loader.Path()), false)
		if err != nil && !errors.Is(err, helpers.ErrAborted) {
			return err
		}
		if !proceed || err != nil {
			fmt.Fprintln(out, MsgInitCancelled)
			return nil
		}
	}

	cfg, err := promptForUserPreferences(out, prompter, configinfra.DefaultConfig())
	if errors.Is(err, helpers.ErrAborted) {
		fmt.Fprintln(out, MsgInitCancelled)
		return nil
	}
	if err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	backupPath, err := helpers.BackupIfExists(loader)
	if err != nil {
		return err
	}
	if backupPath != "" {
		fmt.Fprintf(out, "Existing config backed up to: %s\n", backupPath)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	rulesPath := filesystem.ExpandPath(cfg.Security.RulesFile)
	wrote, err := security.InstallDefaultRules(rulesPath, force)
	if err != nil {
		return fmt.Errorf("failed to write guardrail rules: %w", err)
	}
	if !wrote {
		fmt.Fprintf(out, "Keeping existing guardrail rules at %s\n", rulesPath)
	}

	displayCompletionInstructions(out, loader.Path(), cfg)
	return nil
}

// promptForUserPreferences asks for the settings most users change
func promptForUserPreferences(out io.Writer, prompter *helpers.WizardPrompter, cfg domain.Config) (domain.Config, error) {
	fmt.Fprintln(out, "\nConfiguration preferences:")

	var err error
	if cfg.Generator.Command, err = prompter.AskString("Generator command", cfg.Generator.Command); err != nil {
		return cfg, err
	}
	if cfg.Generator.APIKeyEnv, err = prompter.AskString("Environment variable holding the API key", cfg.Generator.APIKeyEnv); err != nil {
		return cfg, err
	}
	if cfg.Execution.ConfirmDangerous, err = prompter.AskYesNo("Ask again before running dangerous commands?", cfg.Execution.ConfirmDangerous); err != nil {
		return cfg, err
	}
	if cfg.History.Enabled, err = prompter.AskYesNo("Record submitted commands in history?", cfg.History.Enabled); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// displayCompletionInstructions displays instructions after successful initialization
func displayCompletionInstructions(out io.Writer, configPath string, cfg domain.Config) {
	fmt.Fprintf(out, "\nConfiguration initialized: %s\n\n", configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Store your API key:")
	fmt.Fprintf(out, "     clio auth set   (or export %s=...)\n\n", cfg.GetAPIKeyEnv())
	fmt.Fprintln(out, "  2. Verify your setup:")
	fmt.Fprintln(out, "     clio doctor")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  3. Try a query:")
	fmt.Fprintln(out, "     clio \"list docker containers\"")
	if _, err := os.Stat(filesystem.ExpandPath(cfg.Security.RulesFile)); err == nil {
		fmt.Fprintf(out, "\nGuardrail rules: %s\n", cfg.Security.RulesFile)
	}
}
