package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wtf-sh/wtf/internal/app"
	"github.com/wtf-sh/wtf/internal/domain"
)

func newHookCommand(container *app.Container) *cobra.Command {
	var (
		shellName string
		kindName  string
	)

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage shell hooks",
	}

	install := &cobra.Command{
		Use:   "install",
		Short: "Install hook blocks into shell startup files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachTarget(shellName, kindName, func(dialect domain.ShellDialect, kind domain.HookKind) error {
				changed, err := container.HookManager.Install(dialect, kind)
				if err != nil {
					return err
				}
				reportHookChange("installed", changed, dialect, kind)
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove",
		Short: "Remove hook blocks from shell startup files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachTarget(shellName, kindName, func(dialect domain.ShellDialect, kind domain.HookKind) error {
				changed, err := container.HookManager.Remove(dialect, kind)
				if err != nil {
					return err
				}
				reportHookChange("removed", changed, dialect, kind)
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show installed hooks per shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dialect := range selectDialects(shellName) {
				st, err := container.HookManager.Status(dialect)
				if err != nil {
					fmt.Printf("%-5s %v\n", dialect, err)
					continue
				}
				var installed []string
				for _, kind := range domain.HookKinds() {
					if st.Installed[kind] {
						installed = append(installed, string(kind))
					}
				}
				if len(installed) == 0 {
					fmt.Printf("%-5s %s: no hooks\n", dialect, st.RCFile)
					continue
				}
				fmt.Printf("%-5s %s: %s\n", dialect, st.RCFile, strings.Join(installed, ", "))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&shellName, "shell", "", "Limit to one shell (zsh, bash, fish)")
	cmd.PersistentFlags().StringVar(&kindName, "kind", "", "Limit to one hook kind (error, command-not-found)")
	cmd.AddCommand(install, remove, status)
	return cmd
}

func forEachTarget(shellName string, kindName string, apply func(domain.ShellDialect, domain.HookKind) error) error {
	for _, dialect := range selectDialects(shellName) {
		for _, kind := range selectKinds(kindName) {
			if err := apply(dialect, kind); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectDialects(name string) []domain.ShellDialect {
	if name == "" {
		return domain.Dialects()
	}
	return []domain.ShellDialect{domain.ShellDialect(name)}
}

func selectKinds(name string) []domain.HookKind {
	if name == "" {
		return domain.HookKinds()
	}
	return []domain.HookKind{domain.HookKind(name)}
}

func reportHookChange(verb string, changed bool, dialect domain.ShellDialect, kind domain.HookKind) {
	if changed {
		fmt.Printf("%s %s %s hook\n", verb, dialect, kind)
		return
	}
	fmt.Printf("%s %s hook unchanged\n", dialect, kind)
}

func newMemoryCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage remembered preferences",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List remembered preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.Preferences.All()
			if err != nil {
				return err
			}
			RenderMemories(entries)
			return nil
		},
	}

	var sourceName string
	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Remember a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := container.Preferences.Set(args[0], args[1], domain.PreferenceSource(sourceName))
			if err != nil {
				return err
			}
			fmt.Printf("remembered %s=%s (%.1f)\n", entry.Key, entry.Value, entry.Confidence)
			return nil
		},
	}
	set.Flags().StringVar(&sourceName, "source", string(domain.SourceExplicitInstruction),
		"How this fact is known (explicit, strong_inference, weak_inference)")

	forget := &cobra.Command{
		Use:   "forget <key>",
		Short: "Forget one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.Preferences.Remove(args[0])
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Forget everything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.Preferences.Clear()
		},
	}

	cmd.AddCommand(list, set, forget, clear)
	return cmd
}

func newPolicyCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage the allow/deny command ledger",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List policy rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			allow, deny, err := container.Ledger.Rules()
			if err != nil {
				return err
			}
			RenderRules(allow, deny)
			return nil
		},
	}

	allow := &cobra.Command{
		Use:   "allow <pattern...>",
		Short: "Always allow commands matching a pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.Ledger.RecordDecision(strings.Join(args, " "), domain.DispositionAllow)
		},
	}

	deny := &cobra.Command{
		Use:   "deny <pattern...>",
		Short: "Always deny commands matching a pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.Ledger.RecordDecision(strings.Join(args, " "), domain.DispositionDeny)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <pattern...>",
		Short: "Drop a pattern from either list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.Ledger.RemovePattern(strings.Join(args, " "))
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove all policy rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.Ledger.Reset()
		},
	}

	cmd.AddCommand(list, allow, deny, remove, reset)
	return cmd
}

func newUndoCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Apply the inverse of the last recorded command",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := container.UndoService.UndoLast(cmd.Context())
			if err != nil {
				return err
			}
			RenderUndo(outcome)
			return nil
		},
	}
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded commands, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.UndoService.Recent(limit)
			if err != nil {
				return err
			}
			if search != "" {
				var filtered []domain.ExecutionRecord
				for _, record := range records {
					if strings.Contains(record.Command, search) {
						filtered = append(filtered, record)
					}
				}
				records = filtered
			}
			RenderHistory(records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryDisplayLimit, "Maximum records to show")
	cmd.Flags().StringVar(&search, "search", "", "Only show commands containing this text")
	return cmd
}

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigLoader.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("config: %s\n", container.ConfigLoader.Path())
			fmt.Printf("default model: %s\n", cfg.Preferences.DefaultModel)
			fmt.Printf("shell: %s\n", cfg.Execution.Shell)
			fmt.Printf("history cap: %d\n", cfg.History.MaxRecords)
			fmt.Printf("guardrail rules: %s\n", cfg.Security.RulesFile)
			for _, model := range cfg.Models {
				fmt.Printf("model %s: %s (%s)\n", model.Name, model.ModelID, model.Endpoint)
			}
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(container.ConfigLoader.Path())
			return nil
		},
	}

	cmd.AddCommand(show, path)
	return cmd
}

// newHookEventCommand is the hidden entry point the installed shell hooks
// call to report command outcomes.
func newHookEventCommand(container *app.Container) *cobra.Command {
	var (
		exitCode int
		command  string
		shell    string
	)

	cmd := &cobra.Command{
		Use:    "hook-event",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, _ := os.Getwd()
			event := domain.HookEvent{
				Command:    command,
				ExitCode:   exitCode,
				WorkingDir: wd,
				Shell:      shell,
				Timestamp:  time.Now(),
			}
			// Hooks fire on every prompt; recording must never bother the user.
			if err := container.EventSink.Record(event); err != nil {
				container.Logger.Debug("hook event dropped", map[string]interface{}{"error": err.Error()})
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&exitCode, "exit", 0, "Exit code of the reported command")
	cmd.Flags().StringVar(&command, "cmd", "", "The command line that ran")
	cmd.Flags().StringVar(&shell, "shell", "", "Reporting shell")
	return cmd
}

func newVersionCommand(version string) *cobra.Command {
	if version == "" {
		version = "dev"
	}
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wtf version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("wtf", version)
		},
	}
}
