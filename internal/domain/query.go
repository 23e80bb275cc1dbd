package domain

import "context"

// QueryRequest captures user intent originating from the CLI or a shell hook.
type QueryRequest struct {
	Context       context.Context
	Prompt        string
	ModelOverride string
	PreviewOnly   bool
	Debug         bool
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	Command         string
	Explanation     string
	Decision        GateDecision
	Executed        bool
	ExecutionResult *ExecutionResult
	Record          *ExecutionRecord
	FromCache       bool
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Ran        bool
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
	Err        error
}
