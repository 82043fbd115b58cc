package workflow

import (
	"context"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/doeshing/clio-go/internal/domain"
)

// Scenario: a successful query leads to one submitted command.
func TestInvokeSuccessfulQuery(t *testing.T) {
	h := newHarness()
	h.prompter.selected = []string{"1: docker ps -a"}
	gen := &fakeGenerator{result: domain.Success([]domain.CommandCandidate{
		{Command: "docker ps -a", Description: "List all containers", SafetyLevel: domain.SafetySafe},
	})}
	progress := &fakeProgress{}

	outcome, err := h.service(gen, progress).Invoke(context.Background(), "list docker containers")
	assert.NilError(t, err)
	assert.DeepEqual(t, h.session.submitted, []string{"docker ps -a"})
	assert.DeepEqual(t, gen.queries, []string{"list docker containers"})
	assert.Equal(t, progress.started, 1)
	assert.Equal(t, progress.stopped, 1)
	assert.DeepEqual(t, outcome.States, []domain.State{
		domain.StateAwaitingQuery,
		domain.StateGenerating,
		domain.StateAwaitingSelection,
		domain.StateDispatching,
		domain.StateIdle,
	})
}

// Scenario: blank input never reaches the generator.
func TestInvokeBlankInputNeverGenerates(t *testing.T) {
	h := newHarness()
	h.prompter.input = "   "
	gen := &fakeGenerator{}

	_, err := h.service(gen, &fakeProgress{}).Invoke(context.Background(), "")
	assert.Assert(t, domain.IsKind(err, domain.KindEmptyInput))
	assert.Equal(t, h.prompter.inputs, 1)
	assert.Equal(t, gen.calls, 0)
	assert.Equal(t, h.provider.acquired, 0)
}

func TestInvokeCancelledInput(t *testing.T) {
	h := newHarness()
	h.prompter.inputErr = domain.ErrCancelled
	gen := &fakeGenerator{}

	_, err := h.service(gen, nil).Invoke(context.Background(), "")
	assert.Assert(t, domain.IsKind(err, domain.KindUserCancelled))
	assert.Equal(t, gen.calls, 0)
	assert.Equal(t, len(h.notifier.errors), 0)
}

func TestInvokePromptsWhenQueryMissing(t *testing.T) {
	h := newHarness()
	h.prompter.input = "  show disk usage  "
	gen := &fakeGenerator{result: domain.Empty()}

	outcome, _ := h.service(gen, nil).Invoke(context.Background(), "")
	assert.Equal(t, h.prompter.inputs, 1)
	assert.DeepEqual(t, gen.queries, []string{"  show disk usage  "})
	assert.Equal(t, outcome.Query, "  show disk usage  ")
}

func TestInvokePassesQueryVerbatim(t *testing.T) {
	h := newHarness()
	gen := &fakeGenerator{result: domain.Empty()}

	_, err := h.service(gen, nil).Invoke(context.Background(), " find *.go  files\t")
	assert.Assert(t, domain.IsKind(err, domain.KindNoCommandFound))
	assert.Equal(t, h.prompter.inputs, 0)
	assert.DeepEqual(t, gen.queries, []string{" find *.go  files\t"})
}

// A missing progress indicator is allowed; generation still runs.
func TestInvokeWithoutProgress(t *testing.T) {
	h := newHarness()
	h.prompter.selected = []string{"1: ls"}
	gen := &fakeGenerator{result: domain.Success(candidates("ls"))}

	outcome, err := h.service(gen, nil).Invoke(context.Background(), "list files")
	assert.NilError(t, err)
	assert.Equal(t, gen.calls, 1)
	assert.Equal(t, outcome.Final(), domain.StateIdle)
	assert.DeepEqual(t, h.session.submitted, []string{"ls"})
}

// Scenario: an explicit "No Command Found" becomes an info notice.
func TestInvokeNoCommandFound(t *testing.T) {
	h := newHarness()
	gen := &fakeGenerator{result: domain.Empty()}

	outcome, err := h.service(gen, nil).Invoke(context.Background(), "make me a sandwich")
	assert.Assert(t, domain.IsKind(err, domain.KindNoCommandFound))
	assert.DeepEqual(t, h.notifier.infos, []string{"No Command Found"})
	assert.Equal(t, outcome.Final(), domain.StateNoCommand)
	assert.Equal(t, h.prompter.selects, 0)
}

// Scenario: a generator error message is surfaced as an error notice.
func TestInvokeGenerationError(t *testing.T) {
	h := newHarness()
	gen := &fakeGenerator{result: domain.Failure("OPENROUTER_API_KEY not set")}

	outcome, err := h.service(gen, nil).Invoke(context.Background(), "list files")
	assert.Assert(t, domain.IsKind(err, domain.KindGenerationError))
	assert.DeepEqual(t, h.notifier.errors, []string{"OPENROUTER_API_KEY not set"})
	assert.Equal(t, outcome.Final(), domain.StateGenerationError)
	assert.Equal(t, len(h.session.submitted), 0)
}

func TestInvokeProcessFailureIncludesDiagnostic(t *testing.T) {
	h := newHarness()
	gen := &fakeGenerator{err: &domain.Error{
		Kind:     domain.KindProcessFailure,
		Message:  "generator exited with code 2",
		Detail:   "Traceback: network timeout",
		ExitCode: 2,
	}}

	outcome, err := h.service(gen, &fakeProgress{}).Invoke(context.Background(), "list files")
	assert.Assert(t, domain.IsKind(err, domain.KindProcessFailure))
	assert.Equal(t, outcome.Final(), domain.StateGenerationError)
	assert.Equal(t, len(h.notifier.errors), 1)
	assert.Assert(t, strings.Contains(h.notifier.errors[0], "network timeout"))
	assert.Equal(t, h.prompter.selects, 0)
}

func TestInvokeMalformedOutputIncludesRawText(t *testing.T) {
	h := newHarness()
	gen := &fakeGenerator{err: &domain.Error{
		Kind:    domain.KindMalformedOutput,
		Message: "generator output is not valid JSON",
		Detail:  "Segmentation fault",
	}}

	_, err := h.service(gen, nil).Invoke(context.Background(), "list files")
	assert.Assert(t, domain.IsKind(err, domain.KindMalformedOutput))
	assert.Assert(t, strings.Contains(h.notifier.errors[0], "Segmentation fault"))
}
