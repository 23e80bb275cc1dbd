package domain

import "time"

// RuleDisposition says which list a policy rule lives on.
type RuleDisposition string

const (
	DispositionAllow RuleDisposition = "allow"
	DispositionDeny  RuleDisposition = "deny"
)

// PolicyRule is one allow or deny pattern. Patterns are whitespace-delimited
// token sequences ("git status", "rm -rf"); matching semantics are defined by
// MatchPattern.
type PolicyRule struct {
	Pattern     string          `yaml:"pattern"`
	Disposition RuleDisposition `yaml:"-"`
	CreatedAt   time.Time       `yaml:"created_at"`
}

// Classification is the outcome of testing a command against the ledger.
type Classification string

const (
	ClassAllowed Classification = "allowed"
	ClassDenied  Classification = "denied"
	ClassUnknown Classification = "unknown"
)

// ClassifyResult carries the classification plus the rule that produced it
// (zero-valued for ClassUnknown).
type ClassifyResult struct {
	Class Classification
	Rule  PolicyRule
}
