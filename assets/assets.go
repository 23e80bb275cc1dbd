// Package assets embeds the canonical hook templates and default rule files.
package assets

import (
	_ "embed"
)

// DefaultGuardrailYAML contains the embedded default guardrail rules.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// Hook bodies, one per (dialect, kind) pair. Installed blocks must be
// byte-identical to these templates.
var (
	//go:embed hooks/zsh_error.sh
	ZshErrorHook string

	//go:embed hooks/zsh_command_not_found.sh
	ZshCommandNotFoundHook string

	//go:embed hooks/bash_error.sh
	BashErrorHook string

	//go:embed hooks/bash_command_not_found.sh
	BashCommandNotFoundHook string

	//go:embed hooks/fish_error.fish
	FishErrorHook string

	//go:embed hooks/fish_command_not_found.fish
	FishCommandNotFoundHook string
)
