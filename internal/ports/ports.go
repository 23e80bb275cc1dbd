// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces keep the application independent of specific
// implementations like file stores, HTTP clients, or CLI frameworks.
package ports

import (
	"context"

	"github.com/wtf-sh/wtf/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.wtf/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// PreferenceStore persists confidence-weighted user preferences ("memories").
// Failures surface as domain.ErrStoreUnavailable so callers can degrade and
// run without memory context instead of aborting.
type PreferenceStore interface {
	Set(key, value string, source domain.PreferenceSource) (domain.PreferenceEntry, error)
	Get(key string) (domain.PreferenceEntry, bool, error)
	Remove(key string) error
	All() ([]domain.PreferenceEntry, error)
	Clear() error
}

// PolicyLedger persists allow/deny command patterns and classifies proposed
// commands against them. Classify never mutates state.
type PolicyLedger interface {
	Classify(command string) (domain.ClassifyResult, error)
	RecordDecision(pattern string, disposition domain.RuleDisposition) error
	RemovePattern(pattern string) error
	Rules() (allow, deny []domain.PolicyRule, err error)
	Reset() error
}

// SecurityService evaluates commands against guardrail rules. A Block verdict
// overrides any ledger Allow.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// HistoryStore persists the bounded undo history.
type HistoryStore interface {
	Save(record domain.ExecutionRecord) error
	Recent(limit int) ([]domain.ExecutionRecord, error)
	MarkInverseApplied(id string) error
	Clear() error
}

// HookManager installs and removes marked hook blocks in shell startup files.
type HookManager interface {
	Install(dialect domain.ShellDialect, kind domain.HookKind) (changed bool, err error)
	Remove(dialect domain.ShellDialect, kind domain.HookKind) (changed bool, err error)
	Status(dialect domain.ShellDialect) (domain.HookStatus, error)
}

// EventSink records command outcomes reported by installed shell hooks.
type EventSink interface {
	Record(event domain.HookEvent) error
	LatestFailure() (*domain.HookEvent, error)
}

// ContextCollector gathers environmental context to enrich provider prompts.
type ContextCollector interface {
	Collect(context.Context, domain.Config) (domain.ContextSnapshot, error)
}

// ProviderFactory builds AI provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider defines the model-call collaborator: prompt context in, proposed
// command and explanation out.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest contains all data needed to generate a proposal.
type ProviderRequest struct {
	Prompt  string
	Context domain.ContextSnapshot
	Model   domain.ModelDefinition
	Debug   bool
}

// ProviderResponse contains the proposed command and explanatory text.
type ProviderResponse struct {
	Command     string
	Explanation string
}

// CommandExecutor runs shell commands in the configured shell environment.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// ConfirmationPrompter collects the user's answer when the gate asks for
// confirmation. Enabled reports whether interaction is possible at all.
type ConfirmationPrompter interface {
	Confirm(decision domain.GateDecision) (domain.ConfirmAnswer, error)
	Enabled() bool
}

// CacheStore persists provider responses keyed by prompt digest.
type CacheStore interface {
	Get(key string) (ProviderResponse, bool, error)
	Set(key string, resp ProviderResponse) error
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
