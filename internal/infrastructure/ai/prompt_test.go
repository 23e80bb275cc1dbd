package ai

import (
	"strings"
	"testing"

	"github.com/wtf-sh/wtf/internal/domain"
)

func TestRenderPromptIncludesMemoriesVerbatim(t *testing.T) {
	ctx := domain.ContextSnapshot{
		WorkingDir: "/home/dev/project",
		Shell:      "zsh",
		OS:         "linux",
		Memories: []domain.PreferenceEntry{
			{Key: "editor", Value: "emacs", Confidence: 1.0},
			{Key: "package_manager", Value: "pnpm", Confidence: 0.8},
		},
	}

	messages, err := renderPromptMessages(domain.ModelDefinition{}, "open my editor", ctx)
	if err != nil {
		t.Fatalf("renderPromptMessages error: %v", err)
	}

	joined := joinContents(messages)
	for _, want := range []string{"editor=emacs (1.0)", "package_manager=pnpm (0.8)"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("rendered prompt missing %q:\n%s", want, joined)
		}
	}
}

func TestRenderPromptIncludesLastFailure(t *testing.T) {
	ctx := domain.ContextSnapshot{
		WorkingDir:  "/tmp",
		LastFailure: &domain.HookEvent{Command: "git psuh", ExitCode: 1},
	}

	messages, err := renderPromptMessages(domain.ModelDefinition{}, "what went wrong", ctx)
	if err != nil {
		t.Fatalf("renderPromptMessages error: %v", err)
	}

	joined := joinContents(messages)
	if !strings.Contains(joined, "git psuh") || !strings.Contains(joined, "exited 1") {
		t.Fatalf("rendered prompt missing failure context:\n%s", joined)
	}
}

func TestRenderPromptAppendsUserMessage(t *testing.T) {
	model := domain.ModelDefinition{
		Prompt: []domain.PromptMessage{
			{Role: "system", Content: "You translate requests into commands."},
		},
	}

	messages, err := renderPromptMessages(model, "show disk usage", domain.ContextSnapshot{})
	if err != nil {
		t.Fatalf("renderPromptMessages error: %v", err)
	}
	if !hasUserMessage(messages) {
		t.Fatal("expected a user message to be appended")
	}
}

func TestSplitProposal(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantCommand string
		wantExplain string
	}{
		{
			name:        "labelled lines",
			content:     "command: git status --short\nexplanation: shows pending changes",
			wantCommand: "git status --short",
			wantExplain: "shows pending changes",
		},
		{
			name:        "code block wins",
			content:     "Run this:\n```sh\ndf -h\n```",
			wantCommand: "df -h",
			wantExplain: "Run this:",
		},
		{
			name:        "bare reply",
			content:     "  ls -la  ",
			wantCommand: "ls -la",
			wantExplain: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, explanation := splitProposal(tt.content)
			if command != tt.wantCommand {
				t.Fatalf("command = %q, want %q", command, tt.wantCommand)
			}
			if explanation != tt.wantExplain {
				t.Fatalf("explanation = %q, want %q", explanation, tt.wantExplain)
			}
		})
	}
}

func joinContents(messages []domain.PromptMessage) string {
	var parts []string
	for _, msg := range messages {
		parts = append(parts, msg.Content)
	}
	return strings.Join(parts, "\n---\n")
}
