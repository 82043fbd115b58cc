package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

// GeneratorProbe exposes the resolved generator program.
type GeneratorProbe interface {
	Program() string
}

// RuleCounter reports how many guardrail rules are loaded.
type RuleCounter interface {
	RuleCount() int
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Generator      GeneratorProbe
	Classifier     ports.SafetyClassifier
	History        ports.HistoryRepository
	Credentials    ports.CredentialSource

	// LookPath resolves executables; defaults to exec.LookPath.
	LookPath func(string) (string, error)
	// Getenv reads the environment; defaults to os.Getenv.
	Getenv func(string) string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	checks = append(checks, s.generatorCheck())
	checks = append(checks, s.shellCheck(cfg))
	checks = append(checks, s.guardrailCheck(cfg))
	checks = append(checks, s.historyCheck(cfg))
	checks = append(checks, s.apiKeyCheck(cfg))

	report := domain.HealthReport{Checks: checks}
	if report.HasErrors() {
		return report, fmt.Errorf("one or more checks failed")
	}
	return report, nil
}

func (s *Service) generatorCheck() domain.HealthCheck {
	if s.Generator == nil {
		return fail("Generator", "generator command could not be parsed")
	}
	program := s.Generator.Program()
	path, err := s.lookPath(program)
	if err != nil {
		return fail("Generator", fmt.Sprintf("%s not found: %v", program, err))
	}
	return ok("Generator", path)
}

func (s *Service) shellCheck(cfg domain.Config) domain.HealthCheck {
	shell := cfg.GetExecutionShell()
	path, err := s.lookPath(shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not found: %v", shell, err))
	}
	return ok("Shell", path)
}

func (s *Service) guardrailCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsSecurityEnabled() {
		return warn("Guardrail", "disabled; generator safety labels are used as-is")
	}
	if s.Classifier == nil {
		return warn("Guardrail", "guardrail not initialized")
	}
	if _, err := s.Classifier.Classify("ls"); err != nil {
		return fail("Guardrail", err.Error())
	}
	if counter, isCounter := s.Classifier.(RuleCounter); isCounter {
		return ok("Guardrail", fmt.Sprintf("%d rules loaded", counter.RuleCount()))
	}
	return ok("Guardrail", "rules loaded")
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsHistoryEnabled() {
		return warn("History", "disabled")
	}
	if s.History == nil {
		return warn("History", "history store not initialized")
	}
	if _, err := s.History.Records(1, ""); err != nil {
		return fail("History", fmt.Sprintf("%s: %v", s.History.Path(), err))
	}
	return ok("History", s.History.Path())
}

func (s *Service) apiKeyCheck(cfg domain.Config) domain.HealthCheck {
	name := cfg.GetAPIKeyEnv()
	if s.getenv(name) != "" {
		return ok("API key", fmt.Sprintf("%s set in environment", name))
	}
	if s.Credentials != nil {
		value, err := s.Credentials.Get(name)
		if err != nil {
			return warn("API key", fmt.Sprintf("%s not set; keyring unavailable: %v", name, err))
		}
		if value != "" {
			return ok("API key", fmt.Sprintf("%s stored in keyring", name))
		}
	}
	return warn("API key", fmt.Sprintf("%s missing; run `clio auth set`", name))
}

func (s *Service) lookPath(name string) (string, error) {
	if s.LookPath != nil {
		return s.LookPath(name)
	}
	return exec.LookPath(name)
}

func (s *Service) getenv(name string) string {
	if s.Getenv != nil {
		return s.Getenv(name)
	}
	return os.Getenv(name)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
