package app

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/clio-go/internal/application/dispatch"
	"github.com/doeshing/clio-go/internal/application/doctor"
	"github.com/doeshing/clio-go/internal/application/workflow"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/infrastructure/config"
	"github.com/doeshing/clio-go/internal/infrastructure/generator"
	"github.com/doeshing/clio-go/internal/infrastructure/history"
	"github.com/doeshing/clio-go/internal/infrastructure/keychain"
	"github.com/doeshing/clio-go/internal/infrastructure/security"
	"github.com/doeshing/clio-go/internal/infrastructure/session"
	"github.com/doeshing/clio-go/internal/pkg/logger"
	"github.com/doeshing/clio-go/internal/ports"
)

// Options selects how the container is built.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
// Terminal-facing adapters are attached by the CLI through AttachUI.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Dispatcher     *dispatch.Service
	Workflow       *workflow.Service
	Sessions       *session.Provider
	DoctorService  *doctor.Service
	HistoryStore   *history.SQLiteStore
	Guardrail      *security.Guardrail
	Keychain       *keychain.Store
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(opts.Verbose)

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("guardrail rules unreadable, using defaults", map[string]interface{}{
			"path":  cfg.Security.RulesFile,
			"error": err.Error(),
		})
		guardrail, err = security.NewGuardrail("")
		if err != nil {
			return nil, err
		}
	}

	runner, err := generator.NewProcessRunner(cfg.Generator.Command)
	if err != nil {
		return nil, fmt.Errorf("generator command: %w", err)
	}

	store := keychain.NewStore()
	historyStore := history.NewSQLiteStore("")
	pruneHistory(cfg, historyStore, log)

	dispatcher := &dispatch.Service{
		Runner:      runner,
		Classifier:  guardrail,
		Credentials: store,
		Logger:      log,
		Config:      cfg,
	}

	sessions := session.NewShellProvider(cfg.GetExecutionShell(), log)

	controller := &workflow.Controller{
		Sessions:         sessions,
		Logger:           log,
		ConfirmDangerous: cfg.ShouldConfirmDangerous(),
	}
	if cfg.IsHistoryEnabled() {
		controller.History = historyStore
	}

	workflowService := &workflow.Service{
		Generator:  dispatcher,
		Controller: controller,
		Logger:     log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Generator:      runner,
		Classifier:     guardrail,
		History:        historyStore,
		Credentials:    store,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Dispatcher:     dispatcher,
		Workflow:       workflowService,
		Sessions:       sessions,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		Guardrail:      guardrail,
		Keychain:       store,
		Logger:         log,
	}, nil
}

// RecoveryContainer is used when BuildContainer fails on a broken config. It
// carries only what doctor and the config commands need to report and repair
// the file.
func RecoveryContainer(opts Options) *Container {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	return &Container{
		Config:         config.DefaultConfig(),
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		DoctorService:  &doctor.Service{ConfigProvider: cfgLoader},
		Logger:         logger.New(opts.Verbose),
	}
}

// AttachUI injects the terminal adapters into the workflow.
func (c *Container) AttachUI(prompter ports.Prompter, notifier ports.Notifier, progress ports.Progress) {
	if c.Workflow == nil {
		return
	}
	c.Workflow.Prompter = prompter
	c.Workflow.Notifier = notifier
	c.Workflow.Progress = progress
	c.Workflow.Controller.Prompter = prompter
	c.Workflow.Controller.Notifier = notifier
}

// Close drains the shell session and releases the history database.
func (c *Container) Close() error {
	var firstErr error
	if c.Sessions != nil {
		if err := c.Sessions.Close(); err != nil {
			firstErr = err
		}
	}
	if c.HistoryStore != nil {
		if err := c.HistoryStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func pruneHistory(cfg domain.Config, store ports.HistoryRepository, log ports.Logger) {
	days := cfg.GetHistoryRetentionDays()
	if !cfg.IsHistoryEnabled() || days <= 0 {
		return
	}
	removed, err := store.PruneOlderThan(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		log.Warn("history prune failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if removed > 0 {
		log.Debug("history pruned", map[string]interface{}{"removed": removed, "retention_days": days})
	}
}
