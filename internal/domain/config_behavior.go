package domain

import (
	"os"
	"time"
)

// IsSoftExitCode reports whether the generator exit code still carries structured output.
// Exit code 0 always does.
func (c *Config) IsSoftExitCode(code int) bool {
	if code == 0 {
		return true
	}
	for _, soft := range c.Generator.SoftExitCodes {
		if soft == code {
			return true
		}
	}
	return false
}

// GetStructuredOutputFlag returns the flag asking the generator for machine-readable output.
func (c *Config) GetStructuredOutputFlag() string {
	if c.Generator.StructuredOutputFlag == "" {
		return DefaultStructuredOutputFlag
	}
	return c.Generator.StructuredOutputFlag
}

// GetGeneratorTimeout returns how long a single generator call may run.
func (c *Config) GetGeneratorTimeout() time.Duration {
	if c.Generator.TimeoutSeconds <= 0 {
		return DefaultGeneratorTimeout
	}
	return time.Duration(c.Generator.TimeoutSeconds) * time.Second
}

// GetAPIKeyEnv returns the environment variable the generator reads its credential from.
func (c *Config) GetAPIKeyEnv() string {
	if c.Generator.APIKeyEnv == "" {
		return DefaultAPIKeyEnv
	}
	return c.Generator.APIKeyEnv
}

// GetExecutionShell resolves the shell for the session.
// "auto" or empty falls back to $SHELL, then /bin/sh.
func (c *Config) GetExecutionShell() string {
	if c.Execution.Shell != "" && c.Execution.Shell != ShellAuto {
		return c.Execution.Shell
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return DefaultShell
}

// ShouldConfirmDangerous checks if dangerous selections need an extra confirmation.
func (c *Config) ShouldConfirmDangerous() bool {
	return c.Execution.ConfirmDangerous
}

// IsSecurityEnabled checks if guardrail escalation is enabled.
func (c *Config) IsSecurityEnabled() bool {
	return c.Security.Enabled
}

// IsHistoryEnabled checks if submitted commands are recorded.
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled
}

// GetHistoryRetentionDays returns the number of days to retain history
func (c *Config) GetHistoryRetentionDays() int {
	if c.History.RetentionDays <= 0 {
		return DefaultHistoryRetainDays
	}
	return c.History.RetentionDays
}
