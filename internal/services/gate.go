// Package services holds the application use cases: query orchestration, the
// execution gate and undo. Services depend on ports only.
package services

import (
	"errors"
	"fmt"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// GateService decides whether a proposed command may run. Evaluation merges
// the policy ledger with the guardrail rules and never mutates either.
type GateService struct {
	Ledger    ports.PolicyLedger
	Guardrail ports.SecurityService
	Logger    ports.Logger
}

// Evaluate classifies a proposed command. A guardrail Block or a ledger Deny
// yields Denied; a ledger Allow (absent a Block) yields AutoApproved;
// everything else needs user confirmation.
func (s *GateService) Evaluate(command string) (domain.GateDecision, error) {
	if s.Ledger == nil || s.Guardrail == nil {
		return domain.GateDecision{}, errors.New("services.GateService dependencies not satisfied")
	}

	decision := domain.GateDecision{Command: command}

	risk, err := s.Guardrail.Evaluate(command)
	if err != nil {
		return domain.GateDecision{}, fmt.Errorf("guardrail evaluate: %w", err)
	}

	result, err := s.Ledger.Classify(command)
	if err != nil {
		return domain.GateDecision{}, fmt.Errorf("policy classify: %w", err)
	}

	if risk.Block {
		decision.Outcome = domain.GateDenied
		decision.Reasons = append(decision.Reasons, risk.Reasons...)
		return decision, nil
	}

	switch result.Class {
	case domain.ClassDenied:
		decision.Outcome = domain.GateDenied
		decision.MatchedRule = result.Rule.Pattern
		decision.Reasons = append(decision.Reasons, fmt.Sprintf("matches deny rule %q", result.Rule.Pattern))
	case domain.ClassAllowed:
		decision.Outcome = domain.GateAutoApproved
		decision.MatchedRule = result.Rule.Pattern
		decision.Reasons = append(decision.Reasons, fmt.Sprintf("matches allow rule %q", result.Rule.Pattern))
	default:
		decision.Outcome = domain.GateNeedsConfirmation
		decision.Reasons = append(decision.Reasons, "no matching policy rule")
	}
	decision.Reasons = append(decision.Reasons, risk.Reasons...)
	return decision, nil
}

// ConcludeConfirmation applies the user's answer to a NeedsConfirmation
// decision. Only AnswerAlways writes policy: it records an Allow rule for the
// pattern derived from the command. A rejection never records a Deny rule.
// Returns the persisted pattern, if any.
func (s *GateService) ConcludeConfirmation(command string, answer domain.ConfirmAnswer) (string, error) {
	if answer != domain.AnswerAlways {
		return "", nil
	}
	pattern := domain.DerivePattern(command)
	if pattern == "" {
		return "", nil
	}
	if err := s.Ledger.RecordDecision(pattern, domain.DispositionAllow); err != nil {
		return "", fmt.Errorf("record allow rule: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("recorded allow rule", map[string]interface{}{"pattern": pattern})
	}
	return pattern, nil
}
