package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/pkg/logger"
)

func newTestLedger(t *testing.T) *FileLedger {
	t.Helper()
	ledger := NewFileLedger(filepath.Join(t.TempDir(), "policy.yaml"), logger.NewStd(false))
	// Deterministic, strictly increasing timestamps for recency tie-breaks.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return ledger
}

func TestClassifyEmptyLedgerIsUnknown(t *testing.T) {
	ledger := newTestLedger(t)
	res, err := ledger.Classify("git push --force")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassUnknown {
		t.Fatalf("class = %s, want unknown", res.Class)
	}
}

func TestClassifyAllowCoversMoreSpecificCommand(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.RecordDecision("git status", domain.DispositionAllow); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}
	res, err := ledger.Classify("git status --short")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassAllowed || res.Rule.Pattern != "git status" {
		t.Fatalf("result = %+v, want allowed via git status", res)
	}
}

func TestMutualExclusionLastDecisionWins(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.RecordDecision("git push", domain.DispositionAllow); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}
	if err := ledger.RecordDecision("git push", domain.DispositionDeny); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}

	res, err := ledger.Classify("git push origin main")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassDenied {
		t.Fatalf("class = %s, want denied", res.Class)
	}

	allow, deny, err := ledger.Rules()
	if err != nil {
		t.Fatalf("Rules error: %v", err)
	}
	if len(allow) != 0 || len(deny) != 1 {
		t.Fatalf("pattern must live on exactly one list, allow=%v deny=%v", allow, deny)
	}
}

func TestClassifyMostSpecificWins(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.RecordDecision("git", domain.DispositionAllow); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}
	if err := ledger.RecordDecision("git push --force", domain.DispositionDeny); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}

	res, err := ledger.Classify("git push --force origin")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassDenied || res.Rule.Pattern != "git push --force" {
		t.Fatalf("result = %+v, want denied via most specific rule", res)
	}

	res, err = ledger.Classify("git status")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassAllowed {
		t.Fatalf("result = %+v, want allowed via broad git rule", res)
	}
}

func TestClassifyEqualSpecificityMostRecentWins(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.RecordDecision("git push", domain.DispositionDeny); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}
	if err := ledger.RecordDecision("git origin", domain.DispositionAllow); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}

	// Both two-token patterns match; the allow rule is newer.
	res, err := ledger.Classify("git push origin")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassAllowed || res.Rule.Pattern != "git origin" {
		t.Fatalf("result = %+v, want most recent rule to win the tie", res)
	}
}

func TestHandEditedConflictResolvesToDeny(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	doc := "allow:\n  - pattern: git push\n    created_at: 2026-01-02T00:00:00Z\ndeny:\n  - pattern: git push\n    created_at: 2026-01-01T00:00:00Z\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ledger := NewFileLedger(path, logger.NewStd(false))

	res, err := ledger.Classify("git push")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassDenied {
		t.Fatalf("class = %s, want deny to be authoritative on conflict", res.Class)
	}
}

func TestResetClearsBothLists(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.RecordDecision("git push", domain.DispositionDeny); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}
	if err := ledger.Reset(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	allow, deny, err := ledger.Rules()
	if err != nil {
		t.Fatalf("Rules error: %v", err)
	}
	if len(allow) != 0 || len(deny) != 0 {
		t.Fatalf("expected empty ledger, allow=%v deny=%v", allow, deny)
	}
}

func TestLedgerPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	ledger := NewFileLedger(path, logger.NewStd(false))
	if err := ledger.RecordDecision("git status", domain.DispositionAllow); err != nil {
		t.Fatalf("RecordDecision error: %v", err)
	}

	reopened := NewFileLedger(path, logger.NewStd(false))
	res, err := reopened.Classify("git status")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if res.Class != domain.ClassAllowed {
		t.Fatalf("class = %s, want allowed after reopen", res.Class)
	}
}
