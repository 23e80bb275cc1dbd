package hook

import (
	"fmt"

	"github.com/wtf-sh/wtf/assets"
	"github.com/wtf-sh/wtf/internal/domain"
)

// templates holds the immutable hook bodies keyed by (dialect, kind).
var templates = map[domain.ShellDialect]map[domain.HookKind]string{
	domain.DialectZsh: {
		domain.HookError:           assets.ZshErrorHook,
		domain.HookCommandNotFound: assets.ZshCommandNotFoundHook,
	},
	domain.DialectBash: {
		domain.HookError:           assets.BashErrorHook,
		domain.HookCommandNotFound: assets.BashCommandNotFoundHook,
	},
	domain.DialectFish: {
		domain.HookError:           assets.FishErrorHook,
		domain.HookCommandNotFound: assets.FishCommandNotFoundHook,
	},
}

// StartMarker returns the exact comment line opening a hook block.
func StartMarker(dialect domain.ShellDialect, kind domain.HookKind) string {
	return fmt.Sprintf("# >>> wtf %s hook (%s) >>>", kind, dialect)
}

// EndMarker returns the exact comment line closing a hook block.
func EndMarker(dialect domain.ShellDialect, kind domain.HookKind) string {
	return fmt.Sprintf("# <<< wtf %s hook (%s) <<<", kind, dialect)
}

// Block renders the full delimited region for a (dialect, kind) pair:
// start marker, canonical body, end marker, each newline-terminated.
func Block(dialect domain.ShellDialect, kind domain.HookKind) (string, error) {
	kinds, ok := templates[dialect]
	if !ok {
		return "", fmt.Errorf("unsupported shell dialect: %s", dialect)
	}
	body, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("unsupported hook kind: %s", kind)
	}
	return StartMarker(dialect, kind) + "\n" + body + EndMarker(dialect, kind) + "\n", nil
}
