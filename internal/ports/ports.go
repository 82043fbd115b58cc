// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The workflow core depends only on these interfaces, so
// the external generator, the terminal prompts and the shell session can each be
// replaced by fakes in tests.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., GeneratorRunner, SessionProvider)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/clio-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.clio/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// GeneratorInvocation is one call of the external generator.
type GeneratorInvocation struct {
	Query string
	Flag  string
	Env   []string
}

// GeneratorOutput is what the external generator left behind.
// ExitCode is -1 when the process never produced one.
type GeneratorOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// GeneratorRunner starts the external generator process and waits for it to exit.
// A non-zero exit is reported through GeneratorOutput.ExitCode, not as an error;
// the error is reserved for failures to run the process at all.
type GeneratorRunner interface {
	Run(ctx context.Context, inv GeneratorInvocation) (GeneratorOutput, error)
	Describe(inv GeneratorInvocation) string
}

// CredentialSource supplies the generator credential when it is not in the environment.
type CredentialSource interface {
	Get(name string) (string, error)
}

// SafetyClassifier rates a command against local guardrail rules.
type SafetyClassifier interface {
	Classify(command string) (domain.SafetyAssessment, error)
}

// Session is a persistent interactive shell the user watches commands run in.
type Session interface {
	ID() string
	// Show brings the session to the user's attention.
	Show()
	// Submit queues a command for execution and returns without waiting for it.
	Submit(command string) error
	// Alive reports whether the session still accepts submissions.
	Alive() bool
	// Close drains pending submissions and ends the shell.
	Close() error
}

// SessionProvider owns the host's single session and hands it out on demand.
type SessionProvider interface {
	Acquire(ctx context.Context) (Session, error)
}

// SelectOption is one entry of a multi-select prompt.
type SelectOption struct {
	Label       string
	Description string
}

// Prompter handles interactive user input. Implementations return
// domain.ErrCancelled when the user dismisses a prompt.
type Prompter interface {
	Input(message string) (string, error)
	MultiSelect(message string, options []SelectOption) ([]string, error)
	Confirm(message string) (bool, error)
}

// Notifier renders user-facing notices.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Progress shows an indicator while a blocking step runs. The returned func stops it.
type Progress interface {
	Start(msg string) func()
}

// HistoryRepository records submitted commands for auditing.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	PruneOlderThan(age time.Duration) (int, error)
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
