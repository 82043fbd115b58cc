package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/clio-go/assets"
	configapp "github.com/doeshing/clio-go/internal/application/config"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/pkg/filesystem"
	"github.com/doeshing/clio-go/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "CLIO_CONFIG"

// FileLoader loads YAML configuration from ~/.clio/config.yaml (overridable via CLIO_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	// Start from the defaults so keys absent from the file, notably the
	// booleans, keep their default instead of the zero value.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := configapp.Validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to the config path.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Backup copies the current config next to itself with a timestamp suffix.
func (l *FileLoader) Backup() (string, error) {
	data, err := os.ReadFile(l.Path())
	if err != nil {
		return "", err
	}
	dest := fmt.Sprintf("%s.%s.bak", l.Path(), time.Now().Format("20060102-150405"))
	if err := os.WriteFile(dest, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return dest, nil
}

// Reset overwrites the config with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.ClioDir(), "config.yaml")
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return hydrateDefaults(cfg)
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Generator.StructuredOutputFlag == "" {
		cfg.Generator.StructuredOutputFlag = domain.DefaultStructuredOutputFlag
	}
	if cfg.Generator.SoftExitCodes == nil {
		cfg.Generator.SoftExitCodes = []int{domain.DefaultSoftExitCode}
	}
	if cfg.Generator.TimeoutSeconds == 0 {
		cfg.Generator.TimeoutSeconds = int(domain.DefaultGeneratorTimeout / time.Second)
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = domain.DefaultAPIKeyEnv
	}
	if cfg.Execution.Shell == "" {
		cfg.Execution.Shell = domain.ShellAuto
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = domain.DefaultHistoryRetainDays
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
