// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"path/filepath"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/infrastructure/ai"
	"github.com/wtf-sh/wtf/internal/infrastructure/cache"
	"github.com/wtf-sh/wtf/internal/infrastructure/collector"
	"github.com/wtf-sh/wtf/internal/infrastructure/config"
	"github.com/wtf-sh/wtf/internal/infrastructure/events"
	"github.com/wtf-sh/wtf/internal/infrastructure/executor"
	"github.com/wtf-sh/wtf/internal/infrastructure/guardrail"
	"github.com/wtf-sh/wtf/internal/infrastructure/history"
	"github.com/wtf-sh/wtf/internal/infrastructure/hook"
	"github.com/wtf-sh/wtf/internal/infrastructure/policy"
	"github.com/wtf-sh/wtf/internal/infrastructure/prefs"
	"github.com/wtf-sh/wtf/internal/pkg/filesystem"
	"github.com/wtf-sh/wtf/internal/pkg/logger"
	"github.com/wtf-sh/wtf/internal/services"
	"github.com/wtf-sh/wtf/internal/ports"
)

// Container holds the wired dependency graph.
type Container struct {
	QueryService *services.QueryService
	GateService  *services.GateService
	UndoService  *services.UndoService

	ConfigLoader *config.FileLoader
	Preferences  *prefs.FileStore
	Ledger       *policy.FileLedger
	HookManager  ports.HookManager
	EventSink    *events.FileSink
	HistoryStore *history.SQLiteStore
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph. All state lives under
// ~/.wtf/ except the shell startup files the hook manager edits.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)

	home := filesystem.UserHomeDir()
	stateDir := filepath.Join(home, ".wtf")

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	prefStore := prefs.NewFileStore(filepath.Join(stateDir, "memories.yaml"), log)
	ledger := policy.NewFileLedger(filepath.Join(stateDir, "policy.yaml"), log)
	eventSink := events.NewFileSink(filepath.Join(stateDir, "events.jsonl"))

	historyStore, err := history.NewSQLiteStore(filepath.Join(stateDir, "history.db"), cfg.History.MaxRecords)
	if err != nil {
		return nil, err
	}

	rail, err := guardrail.NewFromFile(cfg.Security.RulesFile)
	if err != nil {
		return nil, err
	}

	shells := domain.ShellContext{
		ZshRC:      filepath.Join(home, ".zshrc"),
		BashRC:     filepath.Join(home, ".bashrc"),
		FishConfig: filepath.Join(home, ".config", "fish", "config.fish"),
	}
	hookManager := hook.NewManager(shells, log)

	exec := executor.NewLocalExecutor(cfg.Execution.Shell)

	gate := &services.GateService{Ledger: ledger, Guardrail: rail, Logger: log}
	undo := &services.UndoService{
		History:  historyStore,
		Gate:     gate,
		Executor: exec,
		Logger:   log,
	}
	query := &services.QueryService{
		ConfigProvider:   cfgLoader,
		ContextCollector: collector.NewBasicCollector(prefStore, eventSink, log),
		ProviderFactory:  ai.NewFactory(),
		Gate:             gate,
		Undo:             undo,
		Executor:         exec,
		Cache:            cache.NewFileCache(filepath.Join(stateDir, "cache", "responses")),
		Logger:           log,
	}

	return &Container{
		QueryService: query,
		GateService:  gate,
		UndoService:  undo,
		ConfigLoader: cfgLoader,
		Preferences:  prefStore,
		Ledger:       ledger,
		HookManager:  hookManager,
		EventSink:    eventSink,
		HistoryStore: historyStore,
		Logger:       log,
	}, nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.HistoryStore != nil {
		return c.HistoryStore.Close()
	}
	return nil
}
