package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

const (
	msgSelectCommands   = "Select commands to run"
	msgConfirmDangerous = "The selection contains potentially destructive commands. Run them?"
)

// Controller presents generated commands, collects a selection and queues the
// selected commands into the host's shell session.
type Controller struct {
	Prompter ports.Prompter
	Notifier ports.Notifier
	Sessions ports.SessionProvider
	History  ports.HistoryRepository
	Logger   ports.Logger

	ConfirmDangerous bool
	now              func() time.Time
}

// Run drives one result through the confirmation and dispatch steps.
// Every notice is rendered here; the returned error only classifies how the
// invocation ended and never needs to be shown again.
func (c *Controller) Run(ctx context.Context, query string, result domain.GenerationResult) (domain.Outcome, error) {
	outcome := domain.Outcome{Query: query}
	if c.Prompter == nil || c.Notifier == nil || c.Sessions == nil || c.Logger == nil {
		return outcome, errors.New("workflow.Controller dependencies not satisfied")
	}

	switch result.Kind() {
	case domain.ResultEmpty:
		outcome.Enter(domain.StateNoCommand)
		c.Notifier.Info(domain.NoCommandFound)
		return outcome, domain.NewError(domain.KindNoCommandFound, domain.NoCommandFound)
	case domain.ResultFailure:
		outcome.Enter(domain.StateGenerationError)
		c.Notifier.Error(result.Message())
		return outcome, domain.NewError(domain.KindGenerationError, result.Message())
	}

	candidates := result.Candidates()
	outcome.Enter(domain.StateAwaitingSelection)

	sess, err := c.Sessions.Acquire(ctx)
	if err != nil {
		outcome.Enter(domain.StateIdle)
		c.Notifier.Error(fmt.Sprintf("Could not open a shell session: %v", err))
		return outcome, fmt.Errorf("acquire session: %w", err)
	}
	sess.Show()

	labels, err := c.Prompter.MultiSelect(msgSelectCommands, BuildOptions(candidates))
	if err != nil || len(labels) == 0 {
		outcome.Enter(domain.StateIdle)
		if err != nil && !domain.IsKind(err, domain.KindUserCancelled) {
			c.Notifier.Error(fmt.Sprintf("Selection failed: %v", err))
			return outcome, fmt.Errorf("select commands: %w", err)
		}
		return outcome, domain.ErrCancelled
	}

	positions, err := ResolveSelection(labels, candidates)
	if err != nil {
		outcome.Enter(domain.StateIdle)
		c.Notifier.Error(err.Error())
		return outcome, err
	}

	if c.ConfirmDangerous && anyDangerous(candidates, positions) {
		ok, err := c.Prompter.Confirm(msgConfirmDangerous)
		if err != nil || !ok {
			outcome.Enter(domain.StateIdle)
			return outcome, domain.ErrCancelled
		}
	}

	outcome.Enter(domain.StateDispatching)
	err = c.dispatch(query, sess, candidates, positions, &outcome)
	outcome.Enter(domain.StateIdle)
	return outcome, err
}

// dispatch queues the selected commands in candidate order. Nothing already
// submitted is rolled back when a later submission fails.
func (c *Controller) dispatch(query string, sess ports.Session, candidates []domain.CommandCandidate, positions []int, outcome *domain.Outcome) error {
	for _, pos := range positions {
		candidate := candidates[pos]
		if err := sess.Submit(candidate.Command); err != nil {
			c.Notifier.Error(fmt.Sprintf("Could not submit %q: %v", candidate.Command, err))
			return fmt.Errorf("submit %q: %w", candidate.Command, err)
		}
		outcome.Submitted = append(outcome.Submitted, candidate)
		c.Logger.Debug("command submitted", map[string]interface{}{
			"session": sess.ID(),
			"command": candidate.Command,
			"safety":  string(candidate.SafetyLevel),
		})
		c.record(query, sess.ID(), candidate)
	}
	return nil
}

func (c *Controller) record(query, sessionID string, candidate domain.CommandCandidate) {
	if c.History == nil {
		return
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	err := c.History.Save(domain.HistoryRecord{
		Timestamp:   now(),
		Query:       query,
		Command:     candidate.Command,
		Description: candidate.Description,
		SafetyLevel: candidate.SafetyLevel,
		SessionID:   sessionID,
	})
	if err != nil {
		c.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func anyDangerous(candidates []domain.CommandCandidate, positions []int) bool {
	for _, pos := range positions {
		if candidates[pos].SafetyLevel.IsDangerous() {
			return true
		}
	}
	return false
}
