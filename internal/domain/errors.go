package domain

import "errors"

// Sentinel errors shared across the application. Callers classify with
// errors.Is and decide whether to degrade or abort.
var (
	// ErrStoreUnavailable signals that a persisted store (memories, policy,
	// history) could not be read or written. Query handling degrades and
	// continues without that context instead of aborting.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrShellConfigNotFound is returned when the target shell startup file
	// does not exist.
	ErrShellConfigNotFound = errors.New("shell config file not found")

	// ErrShellConfigUnwritable is returned when the shell startup file exists
	// but cannot be replaced.
	ErrShellConfigUnwritable = errors.New("shell config file not writable")

	// ErrModelFailure wraps provider call failures. No command is proposed.
	ErrModelFailure = errors.New("model call failed")

	// ErrProcessSpawn is returned when a command could not be started at all
	// (as opposed to starting and exiting non-zero).
	ErrProcessSpawn = errors.New("process failed to start")

	// ErrNotInvertible is returned when undo is requested for a command with
	// no known safe inverse, or one whose inverse already ran.
	ErrNotInvertible = errors.New("command has no safe inverse")

	// ErrNoHistory is returned when undo is requested with an empty history.
	ErrNoHistory = errors.New("no command history")

	// ErrPolicyConflict indicates a pattern was found on both the allow and
	// deny lists. Deny is treated as authoritative when this occurs.
	ErrPolicyConflict = errors.New("pattern present on both policy lists")
)
