package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/app"
	"github.com/doeshing/clio-go/internal/infrastructure/keychain"
)

// NewAuthCommand creates the auth command managing the generator credential
func NewAuthCommand(container *app.Container) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the generator API key in the OS keyring",
	}

	authCmd.AddCommand(
		newAuthSetCommand(container),
		newAuthClearCommand(container),
		newAuthStatusCommand(container),
	)

	return authCmd
}

// newAuthSetCommand creates the 'auth set' subcommand
func newAuthSetCommand(container *app.Container) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key in the keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, name, err := credentialTarget(container)
			if err != nil {
				return err
			}
			secret, err := readSecret(cmd.InOrStdin(), fmt.Sprintf("%s:", name), fromStdin)
			if err != nil {
				return err
			}
			if secret == "" {
				return errors.New("empty key not stored")
			}
			if err := store.Set(name, secret); err != nil {
				return fmt.Errorf("failed to store %s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s stored in the keyring.\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the key from stdin instead of prompting")
	return cmd
}

// newAuthClearCommand creates the 'auth clear' subcommand
func newAuthClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the API key from the keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, name, err := credentialTarget(container)
			if err != nil {
				return err
			}
			if err := store.Remove(name); err != nil {
				return fmt.Errorf("failed to remove %s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed from the keyring.\n", name)
			return nil
		},
	}
}

// newAuthStatusCommand creates the 'auth status' subcommand
func newAuthStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API key is read from",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, name, err := credentialTarget(container)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if os.Getenv(name) != "" {
				fmt.Fprintf(out, "%s: set in environment\n", name)
				return nil
			}
			value, err := store.Get(name)
			switch {
			case err != nil:
				fmt.Fprintf(out, "%s: not set (keyring unavailable: %v)\n", name, err)
			case value != "":
				fmt.Fprintf(out, "%s: stored in keyring\n", name)
			default:
				fmt.Fprintf(out, "%s: not set\n", name)
			}
			return nil
		},
	}
}

func credentialTarget(container *app.Container) (*keychain.Store, string, error) {
	if container == nil || container.Keychain == nil {
		return nil, "", errors.New(ErrKeychainUnavailable)
	}
	return container.Keychain, container.Config.GetAPIKeyEnv(), nil
}

func readSecret(in io.Reader, message string, fromStdin bool) (string, error) {
	if !fromStdin && in == os.Stdin && isatty.IsTerminal(os.Stdin.Fd()) {
		var secret string
		if err := survey.AskOne(&survey.Password{Message: message}, &secret); err != nil {
			return "", err
		}
		return strings.TrimSpace(secret), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
