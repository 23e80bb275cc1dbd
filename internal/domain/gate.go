package domain

// GateOutcome enumerates the states a proposed command can land in before any
// user interaction.
type GateOutcome string

const (
	GateDenied            GateOutcome = "denied"
	GateAutoApproved      GateOutcome = "auto_approved"
	GateNeedsConfirmation GateOutcome = "needs_confirmation"
)

// GateDecision is the result of evaluating a proposed command against the
// policy ledger and the guardrail rules. Evaluation never mutates state.
type GateDecision struct {
	Outcome     GateOutcome
	Command     string
	MatchedRule string
	Reasons     []string
}

// ConfirmAnswer is a user's response to a NeedsConfirmation decision.
type ConfirmAnswer string

const (
	AnswerYes ConfirmAnswer = "yes"
	AnswerNo  ConfirmAnswer = "no"
	// AnswerAlways approves the command and asks for a matching Allow rule to
	// be persisted. This is the only path that writes policy automatically.
	AnswerAlways ConfirmAnswer = "always"
)

// Approved reports whether the answer permits execution.
func (a ConfirmAnswer) Approved() bool {
	return a == AnswerYes || a == AnswerAlways
}
