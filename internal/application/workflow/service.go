// Package workflow composes the per-invocation pipeline: query input, generation,
// confirmation and dispatch into the shell session.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

const (
	msgQueryPrompt = "What do you want to do?"
	msgGenerating  = "Generating commands..."
)

// Generator produces a normalized result for a query.
type Generator interface {
	Generate(ctx context.Context, query string) (domain.GenerationResult, error)
}

// Service runs one independent workflow per Invoke call.
type Service struct {
	Generator  Generator
	Controller *Controller
	Prompter   ports.Prompter
	Notifier   ports.Notifier
	Progress   ports.Progress
	Logger     ports.Logger
}

// Invoke runs the workflow for query, prompting for one when query is empty.
// Notices are rendered before returning; the error reports how the invocation
// ended (see domain.ErrorKind) and is nil when commands were dispatched.
func (s *Service) Invoke(ctx context.Context, query string) (domain.Outcome, error) {
	outcome := domain.Outcome{}
	if s.Generator == nil || s.Controller == nil || s.Prompter == nil || s.Notifier == nil || s.Logger == nil {
		return outcome, errors.New("workflow.Service dependencies not satisfied")
	}

	outcome.Enter(domain.StateAwaitingQuery)
	if strings.TrimSpace(query) == "" {
		input, err := s.Prompter.Input(msgQueryPrompt)
		if err != nil {
			if domain.IsKind(err, domain.KindUserCancelled) {
				return outcome, err
			}
			s.Notifier.Error(fmt.Sprintf("Could not read the query: %v", err))
			return outcome, fmt.Errorf("read query: %w", err)
		}
		query = input
	}
	// The generator receives the text exactly as typed; trimming only decides emptiness.
	outcome.Query = query
	if strings.TrimSpace(query) == "" {
		return outcome, domain.NewError(domain.KindEmptyInput, "query is empty")
	}

	outcome.Enter(domain.StateGenerating)
	result, err := s.generate(ctx, query)
	if err != nil {
		outcome.Enter(domain.StateGenerationError)
		s.report(err)
		return outcome, err
	}

	controlled, err := s.Controller.Run(ctx, query, result)
	outcome.States = append(outcome.States, controlled.States...)
	outcome.Submitted = controlled.Submitted
	return outcome, err
}

func (s *Service) generate(ctx context.Context, query string) (domain.GenerationResult, error) {
	if s.Progress != nil {
		stop := s.Progress.Start(msgGenerating)
		defer stop()
	}
	return s.Generator.Generate(ctx, query)
}

func (s *Service) report(err error) {
	var werr *domain.Error
	if !errors.As(err, &werr) {
		s.Logger.Error("generation failed", err, nil)
		s.Notifier.Error(err.Error())
		return
	}
	s.Logger.Error("generation failed", err, map[string]interface{}{
		"kind":      string(werr.Kind),
		"exit_code": werr.ExitCode,
	})
	switch werr.Kind {
	case domain.KindProcessFailure:
		msg := "Command generator failed: " + werr.Message
		if werr.Detail != "" {
			msg += "\n" + werr.Detail
		}
		s.Notifier.Error(msg)
	case domain.KindMalformedOutput:
		s.Notifier.Error("Command generator returned output that is not valid JSON:\n" + werr.Detail)
	default:
		s.Notifier.Error(werr.Message)
	}
}
