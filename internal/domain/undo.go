package domain

import "time"

// ExecutionRecord captures one executed command with enough metadata to
// compute and apply its inverse later. Records are append-only; once
// InverseApplied is set the record is never mutated again.
type ExecutionRecord struct {
	ID             string    `json:"id"`
	Command        string    `json:"command"`
	WorkingDir     string    `json:"cwd"`
	StartedAt      time.Time `json:"started_at"`
	ExitCode       int       `json:"exit_code"`
	StdoutDigest   string    `json:"stdout_digest"`
	StderrDigest   string    `json:"stderr_digest"`
	Inverse        string    `json:"inverse,omitempty"`
	InverseApplied bool      `json:"inverse_applied"`
}

// Invertible reports whether the record still has an unapplied inverse.
func (r ExecutionRecord) Invertible() bool {
	return r.Inverse != "" && !r.InverseApplied
}
