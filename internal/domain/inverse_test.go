package domain

import "testing"

func TestComputeInverseKnownShapes(t *testing.T) {
	tests := []struct {
		command string
		inverse string
	}{
		{`git commit -m "x"`, "git reset --soft HEAD~1"},
		{"git commit --amend", "git reset --soft HEAD~1"},
		{"git branch feature-x", "git branch -D feature-x"},
		{"git checkout -b feature-x", "git checkout -"},
		{"git switch -c feature-x", "git switch -"},
		{"git stash", "git stash pop"},
		{"git stash push -m wip", "git stash pop"},
		{"git add main.go util.go", "git reset main.go util.go"},
		{"mkdir build", "rmdir build"},
		{"mkdir -p build", "rmdir build"},
		{"touch notes.txt", "rm notes.txt"},
		{"cp config.yaml config.yaml.bak", "rm config.yaml.bak"},
		{"cp -n config.yaml config.yaml.bak", "rm config.yaml.bak"},
		{"mv old.txt new.txt", "mv new.txt old.txt"},
	}
	for _, tt := range tests {
		got, ok := ComputeInverse(tt.command)
		if !ok {
			t.Fatalf("ComputeInverse(%q) not invertible, want %q", tt.command, tt.inverse)
		}
		if got != tt.inverse {
			t.Fatalf("ComputeInverse(%q) = %q, want %q", tt.command, got, tt.inverse)
		}
	}
}

func TestComputeInverseRejectsUnknownShapes(t *testing.T) {
	commands := []string{
		"",
		"rm -rf build",
		"git push --force",
		"git branch -D feature-x",
		"git branch",
		"mkdir a b",
		"touch -t 202601010000 stamp",
		"cp -r src dst",
		"cp a b c",
		"cp a",
		"mv a b c",
		"curl https://example.com",
	}
	for _, command := range commands {
		if inv, ok := ComputeInverse(command); ok {
			t.Fatalf("ComputeInverse(%q) = %q, want not invertible", command, inv)
		}
	}
}

func TestRecordInvertible(t *testing.T) {
	rec := ExecutionRecord{Inverse: "git reset --soft HEAD~1"}
	if !rec.Invertible() {
		t.Fatal("record with unapplied inverse should be invertible")
	}
	rec.InverseApplied = true
	if rec.Invertible() {
		t.Fatal("record with applied inverse should not be invertible")
	}
	if (ExecutionRecord{}).Invertible() {
		t.Fatal("record without inverse should not be invertible")
	}
}
