package domain

import "time"

// ContextSnapshot aggregates everything handed to the provider alongside the
// user's prompt: environment basics, remembered preferences and the most
// recent failure reported by a shell hook.
type ContextSnapshot struct {
	WorkingDir  string
	Shell       string
	OS          string
	User        string
	Memories    []PreferenceEntry
	LastFailure *HookEvent
}

// HookEvent is one command outcome reported by an installed shell hook.
type HookEvent struct {
	Command    string    `json:"command"`
	ExitCode   int       `json:"exit_code"`
	WorkingDir string    `json:"cwd"`
	Shell      string    `json:"shell"`
	Timestamp  time.Time `json:"timestamp"`
}
