// Package dispatch turns a free-text query into a normalized GenerationResult by
// invoking the external generator exactly once.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

// Service is the query dispatcher.
type Service struct {
	Runner      ports.GeneratorRunner
	Classifier  ports.SafetyClassifier
	Credentials ports.CredentialSource
	Logger      ports.Logger
	Config      domain.Config
}

// Generate invokes the generator for query and normalizes its result.
// The caller must reject blank queries; Generate reports them as EmptyInput.
func (s *Service) Generate(ctx context.Context, query string) (domain.GenerationResult, error) {
	if s.Runner == nil || s.Logger == nil {
		return domain.GenerationResult{}, errors.New("dispatch.Service dependencies not satisfied")
	}
	if strings.TrimSpace(query) == "" {
		return domain.GenerationResult{}, domain.NewError(domain.KindEmptyInput, "query is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.Config.GetGeneratorTimeout())
	defer cancel()

	inv := ports.GeneratorInvocation{
		Query: query,
		Flag:  s.Config.GetStructuredOutputFlag(),
		Env:   s.credentialEnv(),
	}
	s.Logger.Debug("invoking generator", map[string]interface{}{
		"command": s.Runner.Describe(inv),
	})

	out, err := s.Runner.Run(ctx, inv)
	if err != nil {
		e := domain.WrapError(domain.KindProcessFailure, "generator could not be run", err)
		e.ExitCode = out.ExitCode
		e.Detail = diagnostic(out)
		return domain.GenerationResult{}, e
	}

	if !s.Config.IsSoftExitCode(out.ExitCode) {
		return domain.GenerationResult{}, processFailure(out, fmt.Sprintf("generator exited with status %d", out.ExitCode))
	}
	if out.ExitCode != 0 && len(strings.TrimSpace(string(out.Stdout))) == 0 {
		return domain.GenerationResult{}, processFailure(out, fmt.Sprintf("generator exited with status %d and no output", out.ExitCode))
	}

	result, err := Normalize(out.Stdout)
	if err != nil {
		s.Logger.Warn("generator output malformed", map[string]interface{}{
			"exit_code": out.ExitCode,
			"bytes":     len(out.Stdout),
		})
		return domain.GenerationResult{}, err
	}

	if result.Kind() == domain.ResultSuccess {
		result = s.vet(result)
	}
	s.Logger.Debug("generator finished", map[string]interface{}{
		"exit_code": out.ExitCode,
		"result":    result.Kind().String(),
	})
	return result, nil
}

// vet escalates candidate labels the guardrail rates more severe than the generator did.
func (s *Service) vet(result domain.GenerationResult) domain.GenerationResult {
	if s.Classifier == nil || !s.Config.IsSecurityEnabled() {
		return result
	}
	candidates := result.Candidates()
	for i, c := range candidates {
		assessment, err := s.Classifier.Classify(c.Command)
		if err != nil {
			s.Logger.Warn("guardrail classify failed", map[string]interface{}{"error": err.Error()})
			continue
		}
		if assessment.Level.MoreSevereThan(c.SafetyLevel) {
			s.Logger.Info("escalated safety level", map[string]interface{}{
				"command": c.Command,
				"from":    string(c.SafetyLevel),
				"to":      string(assessment.Level),
				"reasons": strings.Join(assessment.Reasons, "; "),
			})
			candidates[i].SafetyLevel = assessment.Level
		}
	}
	return domain.Success(candidates)
}

func (s *Service) credentialEnv() []string {
	name := s.Config.GetAPIKeyEnv()
	if s.Credentials == nil || os.Getenv(name) != "" {
		return nil
	}
	value, err := s.Credentials.Get(name)
	if err != nil {
		s.Logger.Debug("keychain lookup skipped", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if value == "" {
		return nil
	}
	return []string{name + "=" + value}
}

func processFailure(out ports.GeneratorOutput, msg string) *domain.Error {
	e := domain.NewError(domain.KindProcessFailure, msg)
	e.ExitCode = out.ExitCode
	e.Detail = diagnostic(out)
	return e
}

// diagnostic prefers stderr and falls back to stdout.
func diagnostic(out ports.GeneratorOutput) string {
	if msg := strings.TrimSpace(string(out.Stderr)); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(out.Stdout))
}
