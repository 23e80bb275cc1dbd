package services

import (
	"context"
	"time"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

type stubLedger struct {
	result    domain.ClassifyResult
	err       error
	recorded  []string
	removed   []string
	resetDone bool
}

func (s *stubLedger) Classify(string) (domain.ClassifyResult, error) {
	if s.err != nil {
		return domain.ClassifyResult{}, s.err
	}
	if s.result.Class == "" {
		return domain.ClassifyResult{Class: domain.ClassUnknown}, nil
	}
	return s.result, nil
}

func (s *stubLedger) RecordDecision(pattern string, disposition domain.RuleDisposition) error {
	s.recorded = append(s.recorded, pattern+":"+string(disposition))
	return nil
}

func (s *stubLedger) RemovePattern(pattern string) error {
	s.removed = append(s.removed, pattern)
	return nil
}

func (s *stubLedger) Rules() ([]domain.PolicyRule, []domain.PolicyRule, error) {
	return nil, nil, nil
}

func (s *stubLedger) Reset() error {
	s.resetDone = true
	return nil
}

type stubGuardrail struct {
	risk domain.RiskAssessment
	err  error
}

func (s *stubGuardrail) Evaluate(string) (domain.RiskAssessment, error) {
	if s.err != nil {
		return domain.RiskAssessment{}, s.err
	}
	return s.risk, nil
}

type stubPrompter struct {
	answer  domain.ConfirmAnswer
	enabled bool
	asked   []domain.GateDecision
}

func (s *stubPrompter) Confirm(decision domain.GateDecision) (domain.ConfirmAnswer, error) {
	s.asked = append(s.asked, decision)
	return s.answer, nil
}

func (s *stubPrompter) Enabled() bool {
	return s.enabled
}

type stubExecutor struct {
	commands []string
	result   domain.ExecutionResult
	err      error
}

func (s *stubExecutor) Execute(_ context.Context, command string) (domain.ExecutionResult, error) {
	s.commands = append(s.commands, command)
	if s.err != nil {
		return domain.ExecutionResult{}, s.err
	}
	result := s.result
	result.Ran = true
	return result, nil
}

type stubHistory struct {
	records []domain.ExecutionRecord
	applied []string
}

func (s *stubHistory) Save(record domain.ExecutionRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *stubHistory) Recent(limit int) ([]domain.ExecutionRecord, error) {
	out := make([]domain.ExecutionRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *stubHistory) MarkInverseApplied(id string) error {
	s.applied = append(s.applied, id)
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].InverseApplied = true
		}
	}
	return nil
}

func (s *stubHistory) Clear() error {
	s.records = nil
	return nil
}

type stubProvider struct {
	resp ports.ProviderResponse
	err  error
}

func (s *stubProvider) Name() string                  { return "stub" }
func (s *stubProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{} }

func (s *stubProvider) Generate(context.Context, ports.ProviderRequest) (ports.ProviderResponse, error) {
	if s.err != nil {
		return ports.ProviderResponse{}, s.err
	}
	return s.resp, nil
}

type stubFactory struct {
	provider ports.Provider
}

func (s *stubFactory) ForModel(domain.ModelDefinition) (ports.Provider, error) {
	return s.provider, nil
}

type stubConfig struct {
	cfg domain.Config
}

func (s *stubConfig) Load(context.Context) (domain.Config, error) {
	return s.cfg, nil
}

type stubCollector struct {
	snapshot domain.ContextSnapshot
}

func (s *stubCollector) Collect(context.Context, domain.Config) (domain.ContextSnapshot, error) {
	return s.snapshot, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func testConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "stub"},
		Models:      []domain.ModelDefinition{{Name: "stub"}},
	}
}

func allowRule(pattern string) domain.ClassifyResult {
	return domain.ClassifyResult{
		Class: domain.ClassAllowed,
		Rule:  domain.PolicyRule{Pattern: pattern, Disposition: domain.DispositionAllow, CreatedAt: time.Now()},
	}
}

func denyRule(pattern string) domain.ClassifyResult {
	return domain.ClassifyResult{
		Class: domain.ClassDenied,
		Rule:  domain.PolicyRule{Pattern: pattern, Disposition: domain.DispositionDeny, CreatedAt: time.Now()},
	}
}
