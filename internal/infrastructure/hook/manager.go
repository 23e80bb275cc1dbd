// Package hook installs and removes marked blocks in shell startup files.
//
// Each block is delimited by an exact start/end marker comment per
// (dialect, kind) pair. Install is idempotent; remove deletes only the
// delimited region plus the separator newline install wrote before it, so an
// install/remove pair restores the file byte for byte. Files are rewritten
// via a temporary sibling plus atomic rename so an interruption never leaves
// a truncated startup file.
package hook

import (
	"fmt"
	"os"
	"strings"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/pkg/atomicfile"
	"github.com/wtf-sh/wtf/internal/ports"
)

// Manager handles hook block deployment. The shell context is injected so
// target file resolution never depends on ambient state.
type Manager struct {
	shells domain.ShellContext
	logger ports.Logger
}

// NewManager builds a hook manager.
func NewManager(shells domain.ShellContext, logger ports.Logger) *Manager {
	return &Manager{shells: shells, logger: logger}
}

// Install ensures exactly one block of (dialect, kind) exists in the target
// startup file, appended at end-of-file when absent. Returns false when the
// block was already present and the file is unchanged.
func (m *Manager) Install(dialect domain.ShellDialect, kind domain.HookKind) (bool, error) {
	path, content, err := m.readTarget(dialect)
	if err != nil {
		return false, err
	}
	block, err := Block(dialect, kind)
	if err != nil {
		return false, err
	}
	if strings.Contains(content, StartMarker(dialect, kind)) {
		return false, nil
	}

	// A non-empty file always gets a separator newline before the block;
	// cutBlock takes the same newline back out on remove.
	updated := content
	if updated != "" {
		updated += "\n"
	}
	updated += block

	if err := m.writeTarget(path, updated); err != nil {
		return false, err
	}
	m.log("hook installed", dialect, kind, path)
	return true, nil
}

// Remove deletes the delimited region for (dialect, kind), including the
// separator newline Install wrote before it. A missing block is a no-op.
func (m *Manager) Remove(dialect domain.ShellDialect, kind domain.HookKind) (bool, error) {
	path, content, err := m.readTarget(dialect)
	if err != nil {
		return false, err
	}
	updated, found := cutBlock(content, StartMarker(dialect, kind), EndMarker(dialect, kind))
	if !found {
		return false, nil
	}
	if err := m.writeTarget(path, updated); err != nil {
		return false, err
	}
	m.log("hook removed", dialect, kind, path)
	return true, nil
}

// Status reports which hook kinds are installed for a dialect.
func (m *Manager) Status(dialect domain.ShellDialect) (domain.HookStatus, error) {
	path, content, err := m.readTarget(dialect)
	if err != nil {
		return domain.HookStatus{}, err
	}
	status := domain.HookStatus{
		Dialect:   dialect,
		RCFile:    path,
		Installed: map[domain.HookKind]bool{},
	}
	for _, kind := range domain.HookKinds() {
		status.Installed[kind] = strings.Contains(content, StartMarker(dialect, kind))
	}
	return status, nil
}

func (m *Manager) readTarget(dialect domain.ShellDialect) (string, string, error) {
	path := m.shells.RCPath(dialect)
	if path == "" {
		return "", "", fmt.Errorf("unsupported shell dialect: %s", dialect)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w: %s", domain.ErrShellConfigNotFound, path)
		}
		if os.IsPermission(err) {
			return "", "", fmt.Errorf("%w: %s", domain.ErrShellConfigUnwritable, path)
		}
		return "", "", err
	}
	return path, string(data), nil
}

func (m *Manager) writeTarget(path string, content string) error {
	if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", domain.ErrShellConfigUnwritable, path)
		}
		return err
	}
	return nil
}

// cutBlock removes the region from the start-marker line through the
// end-marker line, plus the separator newline preceding the start marker.
func cutBlock(content, startMarker, endMarker string) (string, bool) {
	start := strings.Index(content, startMarker)
	if start == -1 {
		return content, false
	}
	end := strings.Index(content[start:], endMarker)
	if end == -1 {
		// Orphaned start marker without its end: leave the file alone rather
		// than guessing at the region.
		return content, false
	}
	end += start + len(endMarker)
	// Consume the end-marker line terminator.
	if end < len(content) && content[end] == '\n' {
		end++
	}
	// Install writes one separator newline before the block into any
	// non-empty file; taking it back out keeps install/remove byte-exact.
	if start > 0 && content[start-1] == '\n' {
		start--
	}
	return content[:start] + content[end:], true
}

func (m *Manager) log(msg string, dialect domain.ShellDialect, kind domain.HookKind, path string) {
	if m.logger == nil {
		return
	}
	m.logger.Info(msg, map[string]interface{}{
		"dialect": string(dialect),
		"kind":    string(kind),
		"file":    path,
	})
}

var _ ports.HookManager = (*Manager)(nil)
