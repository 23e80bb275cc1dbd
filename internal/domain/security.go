package domain

// RiskLevel enumerates guardrail outcomes.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment aggregates guardrail evaluation data. Block means the
// command may not run regardless of any ledger Allow rule.
type RiskAssessment struct {
	Level        RiskLevel
	Block        bool
	Reasons      []string
	MatchedRules []string
}
