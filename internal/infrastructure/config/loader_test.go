package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/clio-go/internal/domain"
)

func TestFileLoaderWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Generator.Command != "python3 ~/.clio/clio.py" {
		t.Errorf("unexpected default command %q", cfg.Generator.Command)
	}
	if !cfg.IsSoftExitCode(1) || cfg.GetStructuredOutputFlag() != "--json-only" {
		t.Errorf("defaults not hydrated: %+v", cfg.Generator)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != domain.SecureFilePermissions {
		t.Errorf("config permissions = %o, want %o", perm, domain.SecureFilePermissions)
	}
}

func TestFileLoaderHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "generator:\n  command: ./gen --fast\nsecurity:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Generator.Command != "./gen --fast" {
		t.Errorf("command = %q", cfg.Generator.Command)
	}
	if cfg.Generator.TimeoutSeconds != 60 || cfg.Generator.APIKeyEnv != domain.DefaultAPIKeyEnv {
		t.Errorf("generator defaults missing: %+v", cfg.Generator)
	}
	if cfg.Execution.Shell != domain.ShellAuto {
		t.Errorf("shell = %q, want auto", cfg.Execution.Shell)
	}
}

func TestFileLoaderKeepsBooleanDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "generator:\n  command: ./gen\nexecution:\n  shell: /bin/bash\nhistory:\n  retention_days: 7\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.ShouldConfirmDangerous() {
		t.Error("execution.confirm_dangerous should default to true")
	}
	if !cfg.IsSecurityEnabled() || cfg.Security.RulesFile == "" {
		t.Errorf("security should default to enabled with rules, got %+v", cfg.Security)
	}
	if !cfg.IsHistoryEnabled() {
		t.Error("history.enabled should default to true")
	}
	if cfg.Execution.Shell != "/bin/bash" || cfg.History.RetentionDays != 7 {
		t.Errorf("explicit values lost: %+v %+v", cfg.Execution, cfg.History)
	}
}

func TestFileLoaderExplicitFalseWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "execution:\n  confirm_dangerous: false\nhistory:\n  enabled: false\ngenerator:\n  soft_exit_codes: []\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ShouldConfirmDangerous() || cfg.IsHistoryEnabled() {
		t.Errorf("explicit false overridden: %+v %+v", cfg.Execution, cfg.History)
	}
	if !cfg.IsSecurityEnabled() {
		t.Error("security.enabled should keep its default")
	}
	if cfg.IsSoftExitCode(1) {
		t.Error("an explicit empty soft_exit_codes list makes exit 1 a failure")
	}
}

func TestFileLoaderRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "bad yaml", raw: "generator: [unterminated", wantErr: "parse"},
		{name: "blank command", raw: "generator:\n  command: \"\"\n", wantErr: "generator.command"},
		{name: "negative retention", raw: "history:\n  retention_days: -1\n", wantErr: "history.retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := NewFileLoader(path).Load(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestFileLoaderPathPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")

	if got := NewFileLoader("").Path(); got != filepath.Join(home, ".clio", "config.yaml") {
		t.Errorf("default path = %q", got)
	}

	t.Setenv(EnvConfigPath, "~/custom.yaml")
	if got := NewFileLoader("").Path(); got != filepath.Join(home, "custom.yaml") {
		t.Errorf("env path = %q", got)
	}

	if got := NewFileLoader("/tmp/flag.yaml").Path(); got != "/tmp/flag.yaml" {
		t.Errorf("flag path = %q", got)
	}
}

func TestFileLoaderBackupAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg := DefaultConfig()
	cfg.Generator.Command = "node gen.js"
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	backup, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup() error: %v", err)
	}
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(data), "node gen.js") {
		t.Errorf("backup does not contain saved config:\n%s", data)
	}

	reset, err := loader.Reset()
	if err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	loaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Generator.Command != reset.Generator.Command || loaded.Generator.Command == "node gen.js" {
		t.Errorf("reset did not restore defaults, got %q", loaded.Generator.Command)
	}
}
