package workflow

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/pkg/logger"
	"github.com/doeshing/clio-go/internal/ports"
)

type fakePrompter struct {
	input       string
	inputErr    error
	selected    []string
	selectErr   error
	confirm     bool
	confirmErr  error
	inputs      int
	selects     int
	confirms    int
	lastOptions []ports.SelectOption
}

func (p *fakePrompter) Input(string) (string, error) {
	p.inputs++
	return p.input, p.inputErr
}

func (p *fakePrompter) MultiSelect(_ string, options []ports.SelectOption) ([]string, error) {
	p.selects++
	p.lastOptions = options
	return p.selected, p.selectErr
}

func (p *fakePrompter) Confirm(string) (bool, error) {
	p.confirms++
	return p.confirm, p.confirmErr
}

type fakeNotifier struct {
	infos  []string
	errors []string
}

func (n *fakeNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *fakeNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

type fakeSession struct {
	submitted []string
	shown     int
	failAfter int
}

func (s *fakeSession) ID() string   { return "session-1" }
func (s *fakeSession) Show()        { s.shown++ }
func (s *fakeSession) Alive() bool  { return true }
func (s *fakeSession) Close() error { return nil }

func (s *fakeSession) Submit(cmd string) error {
	if s.failAfter > 0 && len(s.submitted) >= s.failAfter {
		return errors.New("session closed")
	}
	s.submitted = append(s.submitted, cmd)
	return nil
}

type fakeProvider struct {
	session  *fakeSession
	err      error
	acquired int
}

func (p *fakeProvider) Acquire(context.Context) (ports.Session, error) {
	p.acquired++
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

type fakeHistory struct {
	records []domain.HistoryRecord
	err     error
}

func (h *fakeHistory) Save(r domain.HistoryRecord) error {
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, r)
	return nil
}

func (h *fakeHistory) Records(int, string) ([]domain.HistoryRecord, error) { return h.records, nil }
func (h *fakeHistory) Clear() error                                        { return nil }
func (h *fakeHistory) ExportJSON(string) error                             { return nil }
func (h *fakeHistory) PruneOlderThan(time.Duration) (int, error)           { return 0, nil }
func (h *fakeHistory) Path() string                                        { return "" }

type fakeGenerator struct {
	result  domain.GenerationResult
	err     error
	calls   int
	queries []string
}

func (g *fakeGenerator) Generate(_ context.Context, query string) (domain.GenerationResult, error) {
	g.calls++
	g.queries = append(g.queries, query)
	return g.result, g.err
}

type fakeProgress struct {
	started int
	stopped int
}

func (p *fakeProgress) Start(string) func() {
	p.started++
	return func() { p.stopped++ }
}

type harness struct {
	prompter *fakePrompter
	notifier *fakeNotifier
	session  *fakeSession
	provider *fakeProvider
	history  *fakeHistory
}

func newHarness() *harness {
	sess := &fakeSession{}
	return &harness{
		prompter: &fakePrompter{},
		notifier: &fakeNotifier{},
		session:  sess,
		provider: &fakeProvider{session: sess},
		history:  &fakeHistory{},
	}
}

func (h *harness) controller() *Controller {
	return &Controller{
		Prompter:         h.prompter,
		Notifier:         h.notifier,
		Sessions:         h.provider,
		History:          h.history,
		Logger:           logger.NewWithWriter(io.Discard, false),
		ConfirmDangerous: true,
		now:              func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func (h *harness) service(gen *fakeGenerator, progress ports.Progress) *Service {
	return &Service{
		Generator:  gen,
		Controller: h.controller(),
		Prompter:   h.prompter,
		Notifier:   h.notifier,
		Progress:   progress,
		Logger:     logger.NewWithWriter(io.Discard, false),
	}
}

func candidates(commands ...string) []domain.CommandCandidate {
	out := make([]domain.CommandCandidate, len(commands))
	for i, cmd := range commands {
		out[i] = domain.CommandCandidate{Command: cmd, Description: "desc " + cmd, SafetyLevel: domain.SafetySafe}
	}
	return out
}
