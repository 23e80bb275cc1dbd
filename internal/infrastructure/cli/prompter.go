package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	isTTY bool
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	isTTY := true
	if in == nil {
		in = os.Stdin
		isTTY = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		isTTY: isTTY,
	}
}

// Enabled reports whether stdin can answer a prompt. Non-interactive runs
// (pipes, CI) get false, which makes the gate skip execution instead of
// hanging.
func (p *Prompter) Enabled() bool {
	return p.isTTY
}

// Confirm asks the user to approve a command the gate could not decide.
// Answers: y runs once, a runs and records an allow rule, anything else
// cancels.
func (p *Prompter) Confirm(decision domain.GateDecision) (domain.ConfirmAnswer, error) {
	fmt.Fprintf(p.out, "\nProposed command:\n  %s\n", decision.Command)
	for _, reason := range decision.Reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
	fmt.Fprint(p.out, "Run it? [y]es / [a]lways / [N]o: ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return domain.AnswerNo, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return domain.AnswerYes, nil
	case "a", "always":
		return domain.AnswerAlways, nil
	default:
		return domain.AnswerNo, nil
	}
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
