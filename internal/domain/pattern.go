package domain

import "strings"

// Pattern matching contract.
//
// A pattern is a whitespace-delimited token sequence, e.g. "git status" or
// "rm -rf". A pattern matches a command when:
//
//  1. the command's first token equals the pattern's first token, and
//  2. every remaining pattern token occurs literally among the command's
//     tokens (any position, exact string equality).
//
// So "git status" matches "git status --short" but not "git stash" and not
// "echo git status" (first token differs). Matching is deliberately literal:
// no globs, no regex, no prefix matching of tokens. Loose matching here would
// widen automatic execution, which is a safety defect.
//
// Specificity is the pattern's token count; a longer pattern is more specific.
func MatchPattern(pattern, command string) bool {
	patTokens := strings.Fields(pattern)
	cmdTokens := strings.Fields(command)
	if len(patTokens) == 0 || len(cmdTokens) == 0 {
		return false
	}
	if patTokens[0] != cmdTokens[0] {
		return false
	}
	for _, want := range patTokens[1:] {
		found := false
		for _, tok := range cmdTokens[1:] {
			if tok == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PatternSpecificity returns the pattern's token count.
func PatternSpecificity(pattern string) int {
	return len(strings.Fields(pattern))
}

// subcommandTools are commands whose first argument names a subcommand, so an
// "always allow" decision should capture both tokens rather than the bare
// tool name.
var subcommandTools = map[string]bool{
	"git":       true,
	"docker":    true,
	"kubectl":   true,
	"npm":       true,
	"yarn":      true,
	"pnpm":      true,
	"cargo":     true,
	"go":        true,
	"brew":      true,
	"apt":       true,
	"systemctl": true,
}

// DerivePattern reduces a concrete command to the pattern recorded by an
// "always allow this" answer: the command token, plus the subcommand for
// tools that have one.
func DerivePattern(command string) string {
	tokens := strings.Fields(command)
	if len(tokens) == 0 {
		return ""
	}
	if subcommandTools[tokens[0]] && len(tokens) > 1 && !strings.HasPrefix(tokens[1], "-") {
		return tokens[0] + " " + tokens[1]
	}
	return tokens[0]
}
