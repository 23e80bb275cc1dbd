package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// UndoService records executed commands and replays their inverses. Applying
// an inverse goes back through the gate like any other command.
type UndoService struct {
	History  ports.HistoryStore
	Gate     *GateService
	Executor ports.CommandExecutor
	Prompter ports.ConfirmationPrompter
	Logger   ports.Logger
}

// UndoOutcome reports what an undo attempt did.
type UndoOutcome struct {
	Record   domain.ExecutionRecord
	Decision domain.GateDecision
	Result   *domain.ExecutionResult
	Applied  bool
}

// Record persists an execution record for a command that ran. The inverse is
// computed at record time, not at undo time, so the history shows upfront
// what undo would do.
func (s *UndoService) Record(command string, workingDir string, startedAt time.Time, result domain.ExecutionResult) (domain.ExecutionRecord, error) {
	if s.History == nil {
		return domain.ExecutionRecord{}, errors.New("services.UndoService dependencies not satisfied")
	}

	record := domain.ExecutionRecord{
		ID:           uuid.NewString(),
		Command:      command,
		WorkingDir:   workingDir,
		StartedAt:    startedAt,
		ExitCode:     result.ExitCode,
		StdoutDigest: digest(result.Stdout),
		StderrDigest: digest(result.Stderr),
	}
	// Only a command that ran and succeeded gets an inverse; undoing a failed
	// or never-started command would act on state the command did not create.
	if result.Ran && result.ExitCode == 0 {
		if inverse, ok := domain.ComputeInverse(command); ok {
			record.Inverse = inverse
		}
	}

	if err := s.History.Save(record); err != nil {
		return domain.ExecutionRecord{}, fmt.Errorf("save history record: %w", err)
	}
	return record, nil
}

// UndoLast applies the inverse of the most recent record. It fails with
// ErrNoHistory when the history is empty and ErrNotInvertible when the newest
// record has no inverse or its inverse was already applied; it never skips
// back to an older invertible record.
func (s *UndoService) UndoLast(ctx context.Context) (UndoOutcome, error) {
	if s.History == nil || s.Gate == nil || s.Executor == nil {
		return UndoOutcome{}, errors.New("services.UndoService dependencies not satisfied")
	}

	records, err := s.History.Recent(1)
	if err != nil {
		return UndoOutcome{}, fmt.Errorf("read history: %w", err)
	}
	if len(records) == 0 {
		return UndoOutcome{}, domain.ErrNoHistory
	}

	record := records[0]
	outcome := UndoOutcome{Record: record}
	switch {
	case record.Inverse == "":
		return outcome, fmt.Errorf("%w: no inverse for %q", domain.ErrNotInvertible, record.Command)
	case record.InverseApplied:
		return outcome, fmt.Errorf("%w: inverse of %q already applied", domain.ErrNotInvertible, record.Command)
	}

	decision, err := s.Gate.Evaluate(record.Inverse)
	if err != nil {
		return outcome, err
	}
	outcome.Decision = decision

	switch decision.Outcome {
	case domain.GateDenied:
		return outcome, fmt.Errorf("inverse %q denied by policy", record.Inverse)
	case domain.GateNeedsConfirmation:
		if s.Prompter == nil || !s.Prompter.Enabled() {
			return outcome, fmt.Errorf("inverse %q needs confirmation but no prompt is available", record.Inverse)
		}
		answer, err := s.Prompter.Confirm(decision)
		if err != nil {
			return outcome, err
		}
		if !answer.Approved() {
			return outcome, nil
		}
		if _, err := s.Gate.ConcludeConfirmation(record.Inverse, answer); err != nil {
			return outcome, err
		}
	}

	result, err := s.Executor.Execute(ctx, record.Inverse)
	outcome.Result = &result
	if err != nil {
		return outcome, err
	}
	if result.ExitCode != 0 {
		return outcome, fmt.Errorf("inverse %q exited %d", record.Inverse, result.ExitCode)
	}

	if err := s.History.MarkInverseApplied(record.ID); err != nil {
		return outcome, fmt.Errorf("mark inverse applied: %w", err)
	}
	outcome.Applied = true
	if s.Logger != nil {
		s.Logger.Info("applied inverse", map[string]interface{}{
			"command": record.Command,
			"inverse": record.Inverse,
		})
	}
	return outcome, nil
}

// Recent lists history records, newest first.
func (s *UndoService) Recent(limit int) ([]domain.ExecutionRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryDisplayLimit
	}
	return s.History.Recent(limit)
}

// Clear drops all history records.
func (s *UndoService) Clear() error {
	return s.History.Clear()
}

func digest(output string) string {
	if len(output) > domain.DigestLimit {
		return output[:domain.DigestLimit]
	}
	return output
}
