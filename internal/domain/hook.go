package domain

// ShellDialect enumerates shells with hook support.
type ShellDialect string

const (
	DialectZsh  ShellDialect = "zsh"
	DialectBash ShellDialect = "bash"
	DialectFish ShellDialect = "fish"
)

// Dialects lists every supported dialect in display order.
func Dialects() []ShellDialect {
	return []ShellDialect{DialectZsh, DialectBash, DialectFish}
}

// HookKind enumerates the shell events a hook block reacts to.
type HookKind string

const (
	HookError           HookKind = "error"
	HookCommandNotFound HookKind = "command-not-found"
)

// HookKinds lists every supported kind.
func HookKinds() []HookKind {
	return []HookKind{HookError, HookCommandNotFound}
}

// ShellContext carries the resolved startup-file locations for each dialect.
// It is built once at wiring time and passed into the hook manager explicitly
// so the manager never consults ambient state.
type ShellContext struct {
	ZshRC      string
	BashRC     string
	FishConfig string
}

// RCPath returns the startup file targeted for a dialect, or "" when the
// dialect is unknown.
func (c ShellContext) RCPath(dialect ShellDialect) string {
	switch dialect {
	case DialectZsh:
		return c.ZshRC
	case DialectBash:
		return c.BashRC
	case DialectFish:
		return c.FishConfig
	default:
		return ""
	}
}

// HookStatus reports which hook kinds are installed for a dialect.
type HookStatus struct {
	Dialect   ShellDialect
	RCFile    string
	Installed map[HookKind]bool
}
