package config

import (
	"errors"
	"fmt"

	"github.com/mattn/go-shellwords"

	"github.com/doeshing/clio-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateGenerator(cfg.Generator); err != nil {
		return err
	}
	if err := validateSecurity(cfg.Security); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	return nil
}

func validateGenerator(gen domain.GeneratorSettings) error {
	if gen.Command == "" {
		return errors.New("generator.command must be set")
	}
	args, err := shellwords.Parse(gen.Command)
	if err != nil {
		return fmt.Errorf("generator.command invalid: %w", err)
	}
	if len(args) == 0 {
		return errors.New("generator.command must name a program")
	}
	if gen.TimeoutSeconds < 0 {
		return fmt.Errorf("generator.timeout must be >= 0")
	}
	for _, code := range gen.SoftExitCodes {
		if code <= 0 || code > 255 {
			return fmt.Errorf("generator.soft_exit_codes must be within 1..255, got %d", code)
		}
	}
	return nil
}

func validateSecurity(sec domain.SecuritySettings) error {
	if sec.Enabled && sec.RulesFile == "" {
		return fmt.Errorf("security.rules_file must be set when security is enabled")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}
