// Package cli wires the cobra command tree around the application services.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wtf-sh/wtf/internal/app"
	"github.com/wtf-sh/wtf/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	Version string
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	prompter := NewPrompter(nil, nil)
	container.QueryService.Prompter = prompter
	container.UndoService.Prompter = prompter

	queryCmd := newQueryCommand(container)

	root := &cobra.Command{
		Use:   "wtf [query]",
		Short: "wtf - terminal assistant",
		Long:  "wtf turns natural language into shell commands, gated by an allow/deny policy, with undo.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			queryCmd.SetArgs(args)
			return queryCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(queryCmd)
	root.AddCommand(newHookCommand(container))
	root.AddCommand(newMemoryCommand(container))
	root.AddCommand(newPolicyCommand(container))
	root.AddCommand(newUndoCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newHookEventCommand(container))
	root.AddCommand(newVersionCommand(opts.Version))
	return root, nil
}

func newQueryCommand(container *app.Container) *cobra.Command {
	var (
		model       string
		previewOnly bool
		debug       bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "query [natural language]",
		Short: "Generate a command from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			req := domain.QueryRequest{
				Context:       ctx,
				Prompt:        strings.Join(args, " "),
				ModelOverride: model,
				PreviewOnly:   previewOnly,
				Debug:         debug,
			}
			resp, err := container.QueryService.Run(req)
			if err != nil {
				return err
			}
			RenderResponse(resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&previewOnly, "preview-only", "p", false, "Only preview the command, never execute")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Override request timeout")

	return cmd
}
