// Package executor runs approved commands on the host shell.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// LocalExecutor runs commands via `$SHELL -c`.
type LocalExecutor struct {
	shell string
}

// NewLocalExecutor builds an executor; shell defaults to $SHELL, then /bin/sh.
func NewLocalExecutor(shell string) *LocalExecutor {
	if shell == "" || shell == "auto" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{shell: shell}
}

// Execute implements ports.CommandExecutor. A command that starts and exits
// non-zero is not an error here; failure to start at all is ErrProcessSpawn.
func (e *LocalExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, e.shell, "-c", command)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Ran = true
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.Ran = true
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
	default:
		result.ExitCode = -1
		result.Err = err
		return result, fmt.Errorf("%w: %v", domain.ErrProcessSpawn, err)
	}
	return result, nil
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
