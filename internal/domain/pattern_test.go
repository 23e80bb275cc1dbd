package domain

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		command string
		want    bool
	}{
		// First token must match exactly.
		{"git", "git status", true},
		{"git", "gitk", false},
		{"git", "echo git", false},
		{"ls", "ls", true},
		{"ls", "ls -la", true},

		// Remaining pattern tokens must occur literally, any position.
		{"git status", "git status", true},
		{"git status", "git status --short", true},
		{"git status", "git stash", false},
		{"git push --force", "git push --force origin main", true},
		{"git push --force", "git push origin main --force", true},
		{"git push --force", "git push origin main", false},
		{"git push --force", "git push --force-with-lease", false},

		// No prefix or substring matching of tokens.
		{"rm -rf", "rm -rf build", true},
		{"rm -rf", "rm -r build", false},
		{"rm -rf", "rmdir build", false},

		// Degenerate inputs never match.
		{"", "ls", false},
		{"ls", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := MatchPattern(tt.pattern, tt.command); got != tt.want {
			t.Fatalf("MatchPattern(%q, %q) = %v, want %v", tt.pattern, tt.command, got, tt.want)
		}
	}
}

func TestSpecificity(t *testing.T) {
	if PatternSpecificity("git") != 1 || PatternSpecificity("git push --force") != 3 {
		t.Fatal("specificity is the pattern token count")
	}
}

func TestDerivePattern(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"git status --short", "git status"},
		{"docker ps -a", "docker ps"},
		{"kubectl get pods", "kubectl get"},
		{"ls -la", "ls"},
		{"git -C /tmp status", "git"},
		{"make build", "make"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DerivePattern(tt.command); got != tt.want {
			t.Fatalf("DerivePattern(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}
