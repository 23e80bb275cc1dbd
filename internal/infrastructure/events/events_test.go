package events

import (
	"path/filepath"
	"testing"

	"github.com/wtf-sh/wtf/internal/domain"
)

func newTestSink(t *testing.T) *FileSink {
	t.Helper()
	return NewFileSink(filepath.Join(t.TempDir(), "events.jsonl"))
}

func TestLatestFailureEmpty(t *testing.T) {
	sink := newTestSink(t)
	event, err := sink.LatestFailure()
	if err != nil {
		t.Fatalf("LatestFailure error: %v", err)
	}
	if event != nil {
		t.Fatalf("expected nil, got %+v", event)
	}
}

func TestLatestFailureSkipsSuccesses(t *testing.T) {
	sink := newTestSink(t)
	events := []domain.HookEvent{
		{Command: "make build", ExitCode: 2, Shell: "zsh"},
		{Command: "ls", ExitCode: 0, Shell: "zsh"},
		{Command: "git psuh", ExitCode: 1, Shell: "zsh"},
		{Command: "echo ok", ExitCode: 0, Shell: "zsh"},
	}
	for _, event := range events {
		if err := sink.Record(event); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	latest, err := sink.LatestFailure()
	if err != nil {
		t.Fatalf("LatestFailure error: %v", err)
	}
	if latest == nil || latest.Command != "git psuh" {
		t.Fatalf("latest = %+v, want git psuh", latest)
	}
}

func TestRecordIgnoresSelfInvocations(t *testing.T) {
	sink := newTestSink(t)
	if err := sink.Record(domain.HookEvent{Command: "wtf undo", ExitCode: 1}); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	latest, err := sink.LatestFailure()
	if err != nil {
		t.Fatalf("LatestFailure error: %v", err)
	}
	if latest != nil {
		t.Fatalf("wtf invocations must not be recorded, got %+v", latest)
	}
}

func TestRecordRejectsEmptyCommand(t *testing.T) {
	sink := newTestSink(t)
	if err := sink.Record(domain.HookEvent{Command: "  ", ExitCode: 1}); err == nil {
		t.Fatal("expected error for empty command")
	}
}
