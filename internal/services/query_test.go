package services

import (
	"testing"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

func newQueryService(ledger *stubLedger, prompter *stubPrompter, executor *stubExecutor, provider *stubProvider) *QueryService {
	gate := &GateService{Ledger: ledger, Guardrail: &stubGuardrail{}, Logger: nopLogger{}}
	return &QueryService{
		ConfigProvider:   &stubConfig{cfg: testConfig()},
		ContextCollector: &stubCollector{snapshot: domain.ContextSnapshot{WorkingDir: "/tmp"}},
		ProviderFactory:  &stubFactory{provider: provider},
		Gate:             gate,
		Undo:             &UndoService{History: &stubHistory{}, Gate: gate, Executor: executor, Logger: nopLogger{}},
		Executor:         executor,
		Prompter:         prompter,
		Logger:           nopLogger{},
	}
}

func TestRunAutoApprovedExecutesAndRecords(t *testing.T) {
	executor := &stubExecutor{}
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "git status --short", Explanation: "short status"}}
	svc := newQueryService(&stubLedger{result: allowRule("git status")}, &stubPrompter{}, executor, provider)

	resp, err := svc.Run(domain.QueryRequest{Prompt: "what changed"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !resp.Executed {
		t.Fatal("auto-approved command should execute")
	}
	if len(executor.commands) != 1 || executor.commands[0] != "git status --short" {
		t.Fatalf("executed = %v", executor.commands)
	}
	if resp.Record == nil {
		t.Fatal("executed command should leave a history record")
	}
}

func TestRunDeniedNeverExecutes(t *testing.T) {
	executor := &stubExecutor{}
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "rm -rf build"}}
	svc := newQueryService(&stubLedger{result: denyRule("rm -rf")}, &stubPrompter{}, executor, provider)

	resp, err := svc.Run(domain.QueryRequest{Prompt: "clean everything"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if resp.Executed || len(executor.commands) != 0 {
		t.Fatalf("denied command executed: %v", executor.commands)
	}
	if resp.Decision.Outcome != domain.GateDenied {
		t.Fatalf("outcome = %s, want denied", resp.Decision.Outcome)
	}
}

func TestRunConfirmationRejectedSkipsExecution(t *testing.T) {
	executor := &stubExecutor{}
	ledger := &stubLedger{}
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "git push --force origin main"}}
	svc := newQueryService(ledger, &stubPrompter{answer: domain.AnswerNo, enabled: true}, executor, provider)

	resp, err := svc.Run(domain.QueryRequest{Prompt: "force push"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if resp.Executed || len(executor.commands) != 0 {
		t.Fatal("rejected command must not execute")
	}
	if len(ledger.recorded) != 0 {
		t.Fatalf("rejection wrote policy: %v", ledger.recorded)
	}
}

func TestRunAnswerAlwaysPersistsAllowRule(t *testing.T) {
	executor := &stubExecutor{}
	ledger := &stubLedger{}
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "docker ps -a"}}
	svc := newQueryService(ledger, &stubPrompter{answer: domain.AnswerAlways, enabled: true}, executor, provider)

	resp, err := svc.Run(domain.QueryRequest{Prompt: "show containers"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !resp.Executed {
		t.Fatal("always answer should execute")
	}
	if len(ledger.recorded) != 1 || ledger.recorded[0] != "docker ps:allow" {
		t.Fatalf("recorded = %v, want docker ps allow rule", ledger.recorded)
	}
}

func TestRunPreviewOnlyStopsBeforeExecution(t *testing.T) {
	executor := &stubExecutor{}
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "ls -la"}}
	svc := newQueryService(&stubLedger{result: allowRule("ls")}, &stubPrompter{}, executor, provider)

	resp, err := svc.Run(domain.QueryRequest{Prompt: "list files", PreviewOnly: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if resp.Executed || len(executor.commands) != 0 {
		t.Fatal("preview must not execute")
	}
	if resp.Command != "ls -la" {
		t.Fatalf("command = %q", resp.Command)
	}
}

func TestRunNonInteractiveConfirmationDoesNotExecute(t *testing.T) {
	executor := &stubExecutor{}
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "make deploy"}}
	svc := newQueryService(&stubLedger{}, &stubPrompter{enabled: false}, executor, provider)

	resp, err := svc.Run(domain.QueryRequest{Prompt: "deploy"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if resp.Executed || len(executor.commands) != 0 {
		t.Fatal("without a prompt the command must stay unexecuted")
	}
}

func TestRunEmptyProposalIsModelFailure(t *testing.T) {
	provider := &stubProvider{resp: ports.ProviderResponse{Command: "   "}}
	svc := newQueryService(&stubLedger{}, &stubPrompter{}, &stubExecutor{}, provider)

	if _, err := svc.Run(domain.QueryRequest{Prompt: "do nothing"}); err == nil {
		t.Fatal("expected error for empty proposal")
	}
}
