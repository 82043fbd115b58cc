package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/clio-go/internal/domain"
)

// TestConfig_IsSoftExitCode tests the generator exit status contract
func TestConfig_IsSoftExitCode(t *testing.T) {
	tests := []struct {
		name   string
		config domain.Config
		code   int
		want   bool
	}{
		{name: "zero is always soft", config: domain.Config{}, code: 0, want: true},
		{name: "configured code is soft", config: domain.Config{Generator: domain.GeneratorSettings{SoftExitCodes: []int{1}}}, code: 1, want: true},
		{name: "other code is hard", config: domain.Config{Generator: domain.GeneratorSettings{SoftExitCodes: []int{1}}}, code: 2, want: false},
		{name: "empty list makes one hard", config: domain.Config{Generator: domain.GeneratorSettings{SoftExitCodes: []int{}}}, code: 1, want: false},
		{name: "custom codes", config: domain.Config{Generator: domain.GeneratorSettings{SoftExitCodes: []int{3, 4}}}, code: 4, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.IsSoftExitCode(tt.code); got != tt.want {
				t.Errorf("IsSoftExitCode(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

// TestConfig_GeneratorDefaults tests fallbacks for unset generator fields
func TestConfig_GeneratorDefaults(t *testing.T) {
	var cfg domain.Config

	if got := cfg.GetStructuredOutputFlag(); got != domain.DefaultStructuredOutputFlag {
		t.Errorf("GetStructuredOutputFlag() = %q", got)
	}
	if got := cfg.GetGeneratorTimeout(); got != domain.DefaultGeneratorTimeout {
		t.Errorf("GetGeneratorTimeout() = %v", got)
	}
	if got := cfg.GetAPIKeyEnv(); got != domain.DefaultAPIKeyEnv {
		t.Errorf("GetAPIKeyEnv() = %q", got)
	}
	if got := cfg.GetHistoryRetentionDays(); got != domain.DefaultHistoryRetainDays {
		t.Errorf("GetHistoryRetentionDays() = %d", got)
	}

	cfg.Generator = domain.GeneratorSettings{StructuredOutputFlag: "--json", TimeoutSeconds: 5, APIKeyEnv: "MY_KEY"}
	if got := cfg.GetStructuredOutputFlag(); got != "--json" {
		t.Errorf("GetStructuredOutputFlag() = %q", got)
	}
	if got := cfg.GetGeneratorTimeout(); got != 5*time.Second {
		t.Errorf("GetGeneratorTimeout() = %v", got)
	}
	if got := cfg.GetAPIKeyEnv(); got != "MY_KEY" {
		t.Errorf("GetAPIKeyEnv() = %q", got)
	}
}

// TestConfig_GetExecutionShell tests shell resolution
func TestConfig_GetExecutionShell(t *testing.T) {
	tests := []struct {
		name     string
		shell    string
		envShell string
		want     string
	}{
		{name: "explicit shell wins", shell: "/bin/bash", envShell: "/bin/zsh", want: "/bin/bash"},
		{name: "auto uses $SHELL", shell: "auto", envShell: "/bin/zsh", want: "/bin/zsh"},
		{name: "empty uses $SHELL", shell: "", envShell: "/bin/fish", want: "/bin/fish"},
		{name: "falls back to /bin/sh", shell: "auto", envShell: "", want: domain.DefaultShell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.envShell)
			cfg := domain.Config{Execution: domain.ExecutionSettings{Shell: tt.shell}}
			if got := cfg.GetExecutionShell(); got != tt.want {
				t.Errorf("GetExecutionShell() = %q, want %q", got, tt.want)
			}
		})
	}
}
