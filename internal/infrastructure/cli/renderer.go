package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/services"
)

// RenderResponse prints the query response in a plain, ASCII-only format.
func RenderResponse(resp domain.QueryResponse) {
	fmt.Println("Proposed command:")
	fmt.Printf("  %s\n", resp.Command)
	if resp.Explanation != "" {
		fmt.Printf("  (%s)\n", resp.Explanation)
	}
	if resp.FromCache {
		fmt.Println("Note: result served from cache")
	}

	switch resp.Decision.Outcome {
	case domain.GateDenied:
		fmt.Println("\nBlocked:")
		for _, reason := range resp.Decision.Reasons {
			fmt.Printf(" - %s\n", reason)
		}
		return
	case domain.GateAutoApproved:
		if resp.Decision.MatchedRule != "" {
			fmt.Printf("\nAuto-approved by rule %q\n", resp.Decision.MatchedRule)
		}
	}

	if resp.ExecutionResult == nil {
		fmt.Println("\nCommand was not executed.")
		return
	}

	result := resp.ExecutionResult
	if result.Stdout != "" {
		fmt.Print(result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Print(result.Stderr)
	}
	if result.ExitCode != 0 {
		fmt.Printf("\nexit status %d\n", result.ExitCode)
	}
	if resp.Record != nil && resp.Record.Inverse != "" {
		fmt.Printf("\nUndo with: wtf undo  (%s)\n", resp.Record.Inverse)
	}
}

// RenderUndo prints the outcome of an undo attempt.
func RenderUndo(outcome services.UndoOutcome) {
	fmt.Printf("Last command: %s\n", outcome.Record.Command)
	if !outcome.Applied {
		fmt.Println("Inverse was not applied.")
		return
	}
	fmt.Printf("Applied inverse: %s\n", outcome.Record.Inverse)
	if outcome.Result != nil && outcome.Result.Stdout != "" {
		fmt.Print(outcome.Result.Stdout)
	}
}

// RenderHistory prints history records, newest first.
func RenderHistory(records []domain.ExecutionRecord) {
	if len(records) == 0 {
		fmt.Println("No history.")
		return
	}
	for _, record := range records {
		marker := " "
		switch {
		case record.InverseApplied:
			marker = "u"
		case record.Inverse != "":
			marker = "*"
		}
		fmt.Printf("%s %s  %s  (exit %d, %s)\n",
			marker, record.ID[:8], record.Command, record.ExitCode, humanize.Time(record.StartedAt))
		if record.Inverse != "" && !record.InverseApplied {
			fmt.Printf("    undo: %s\n", record.Inverse)
		}
	}
}

// RenderMemories prints preference entries in store order.
func RenderMemories(entries []domain.PreferenceEntry) {
	if len(entries) == 0 {
		fmt.Println("Nothing remembered.")
		return
	}
	for _, entry := range entries {
		fmt.Printf("%s=%s  (%.1f, %s, %s)\n",
			entry.Key, entry.Value, entry.Confidence, entry.Source, humanize.Time(entry.Timestamp))
	}
}

// RenderRules prints both policy lists.
func RenderRules(allow []domain.PolicyRule, deny []domain.PolicyRule) {
	if len(allow) == 0 && len(deny) == 0 {
		fmt.Println("No policy rules.")
		return
	}
	for _, rule := range allow {
		fmt.Printf("allow  %-30s %s\n", rule.Pattern, humanize.Time(rule.CreatedAt))
	}
	for _, rule := range deny {
		fmt.Printf("deny   %-30s %s\n", rule.Pattern, humanize.Time(rule.CreatedAt))
	}
}
