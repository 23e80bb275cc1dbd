package domain

import "strings"

// ComputeInverse maps a command to its deterministic inverse, if the command
// belongs to one of the known invertible families. The table is closed on
// purpose: inverses must be auditable, so anything outside it reports ok=false
// rather than guessing.
//
// Supported shapes:
//
//	git commit ...            -> git reset --soft HEAD~1
//	git branch NAME           -> git branch -D NAME
//	git checkout -b NAME      -> git checkout -
//	git switch -c NAME        -> git switch -
//	git stash [push ...]      -> git stash pop
//	git add PATHS...          -> git reset PATHS...
//	mkdir [-p] DIR            -> rmdir DIR
//	touch FILE                -> rm FILE
//	cp [-n] SRC DST           -> rm DST
//	mv SRC DST                -> mv DST SRC
func ComputeInverse(command string) (string, bool) {
	tokens := strings.Fields(strings.TrimSpace(command))
	if len(tokens) == 0 {
		return "", false
	}

	switch tokens[0] {
	case "git":
		return gitInverse(tokens)
	case "mkdir":
		args := stripFlags(tokens[1:])
		if len(args) == 1 {
			return "rmdir " + args[0], true
		}
	case "touch":
		if len(tokens) == 2 && !strings.HasPrefix(tokens[1], "-") {
			return "rm " + tokens[1], true
		}
	case "cp":
		// Only the plain or no-clobber two-file form; any other flag may
		// change what the copy created, so removing DST would not be safe.
		args := stripFlags(tokens[1:])
		if len(args) == 2 && onlyFlag(tokens[1:], "-n") {
			return "rm " + args[1], true
		}
	case "mv":
		args := stripFlags(tokens[1:])
		if len(args) == 2 {
			return "mv " + args[1] + " " + args[0], true
		}
	}
	return "", false
}

func gitInverse(tokens []string) (string, bool) {
	if len(tokens) < 2 {
		return "", false
	}
	switch tokens[1] {
	case "commit":
		return "git reset --soft HEAD~1", true
	case "branch":
		args := stripFlags(tokens[2:])
		if len(args) == 1 && len(args) == len(tokens[2:]) {
			return "git branch -D " + args[0], true
		}
	case "checkout":
		if len(tokens) == 4 && tokens[2] == "-b" {
			return "git checkout -", true
		}
	case "switch":
		if len(tokens) == 4 && tokens[2] == "-c" {
			return "git switch -", true
		}
	case "stash":
		if len(tokens) == 2 || tokens[2] == "push" {
			return "git stash pop", true
		}
	case "add":
		args := tokens[2:]
		if len(args) > 0 && len(stripFlags(args)) == len(args) {
			return "git reset " + strings.Join(args, " "), true
		}
	}
	return "", false
}

// onlyFlag reports whether every flag token in tokens equals allowed.
func onlyFlag(tokens []string, allowed string) bool {
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-") && tok != allowed {
			return false
		}
	}
	return true
}

func stripFlags(tokens []string) []string {
	var args []string
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			continue
		}
		args = append(args, tok)
	}
	return args
}
